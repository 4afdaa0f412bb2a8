// Package service is the ownership-checked mutation core. It knows nothing
// about HTTP: every operation takes the authenticated actor id and returns
// the updated entity or a typed apperror failure.
package service

import (
	"context"
	"strings"
	"time"

	"devconnect/apperror"
	"devconnect/models"
	"devconnect/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxPostLength = 10000

type PostService struct {
	posts repository.PostStore
	users repository.UserStore
}

func NewPostService(posts repository.PostStore, users repository.UserStore) *PostService {
	return &PostService{posts: posts, users: users}
}

func (s *PostService) Create(ctx context.Context, actor primitive.ObjectID, text string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "text is required")
	}
	if len(text) > maxPostLength {
		return nil, apperror.ValidationFailed("text", "text is too long")
	}

	user, err := s.users.GetByID(ctx, actor)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:       primitive.NewObjectID(),
		User:     actor,
		Name:     user.Name,
		Text:     text,
		Date:     time.Now(),
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Delete removes a post permanently. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, actor, id primitive.ObjectID) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.User != actor {
		return apperror.Forbidden("post belongs to another user")
	}
	return s.posts.Delete(ctx, id)
}

// Like records the actor's like. A second like by the same actor is rejected,
// not silently ignored. The membership check is pushed down into the store's
// conditional update so concurrent likes cannot lose entries.
func (s *PostService) Like(ctx context.Context, actor, postID primitive.ObjectID) ([]models.Like, error) {
	return s.posts.AddLike(ctx, postID, models.Like{User: actor})
}

// Unlike removes the actor's like; unliking a post the actor has not liked is
// rejected, symmetric with Like.
func (s *PostService) Unlike(ctx context.Context, actor, postID primitive.ObjectID) ([]models.Like, error) {
	return s.posts.RemoveLike(ctx, postID, actor)
}

func (s *PostService) AddComment(ctx context.Context, actor, postID primitive.ObjectID, text string) ([]models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "text is required")
	}
	if len(text) > maxPostLength {
		return nil, apperror.ValidationFailed("text", "text is too long")
	}

	// resolve the author's name; an unresolvable actor surfaces as not found
	user, err := s.users.GetByID(ctx, actor)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:   primitive.NewObjectID(),
		User: actor,
		Name: user.Name,
		Text: text,
		Date: time.Now(),
	}
	return s.posts.AddComment(ctx, postID, comment)
}

// RemoveComment deletes a comment by id. Only the comment's author may remove
// it; the post's author gets no special rights over others' comments. A
// missing post short-circuits before the comment lookup.
func (s *PostService) RemoveComment(ctx context.Context, actor, postID, commentID primitive.ObjectID) ([]models.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var comment *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			comment = &post.Comments[i]
			break
		}
	}
	if comment == nil {
		return nil, apperror.NotFound("comment", commentID.Hex())
	}
	if comment.User != actor {
		return nil, apperror.Forbidden("comment belongs to another user")
	}

	return s.posts.RemoveComment(ctx, postID, commentID)
}
