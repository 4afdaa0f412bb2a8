// Package mongodb implements the repository interfaces on MongoDB collections.
package mongodb

import (
	"context"
	"time"
)

const opTimeout = 10 * time.Second

func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}
