package handlers

import (
	"errors"
	"log"
	"net/http"

	"devconnect/apperror"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// writeError maps a typed core failure to an HTTP status. Anything that is
// not a domain failure is logged and reported as an opaque 500.
func writeError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			body := gin.H{"error": appErr.Message}
			if appErr.Field != "" {
				body["field"] = appErr.Field
			}
			c.JSON(http.StatusBadRequest, body)
			return
		case errors.Is(err, apperror.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
			return
		case errors.Is(err, apperror.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": appErr.Message})
			return
		case errors.Is(err, apperror.ErrConflict):
			// already liked / not liked keep the original 400 contract
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
	}

	log.Printf("request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

// actorID extracts the authenticated user id set by the JWT middleware.
func actorID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}
