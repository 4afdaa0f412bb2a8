// Package repository defines the storage interfaces the service layer depends
// on. The mongodb subpackage is the production implementation; the memory
// subpackage backs tests.
package repository

import (
	"context"

	"devconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// PostStore persists posts with their embedded likes and comments. AddLike and
// RemoveLike are conditional single-document updates: the membership check is
// part of the write, so concurrent likes by distinct users cannot overwrite
// each other.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AddLike prepends the like unless its user is already present
	// (apperror.ErrConflict) or the post is missing (apperror.ErrNotFound).
	// Returns the updated likes.
	AddLike(ctx context.Context, postID primitive.ObjectID, like models.Like) ([]models.Like, error)

	// RemoveLike removes the actor's like; ErrConflict if the actor has not
	// liked the post, ErrNotFound if the post is missing.
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error)

	// AddComment prepends the comment; ErrNotFound if the post is missing.
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) ([]models.Comment, error)

	// RemoveComment removes a comment by id; ErrNotFound if post or comment
	// is missing. Authorization is the caller's job.
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]models.Comment, error)
}
