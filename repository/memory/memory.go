// Package memory holds mutex-guarded in-memory implementations of the
// repository interfaces. They mirror the conditional-update contract of the
// mongodb package (membership checks happen inside the lock, together with
// the write) and back the service and handler tests.
package memory

import (
	"context"
	"sync"

	"devconnect/apperror"
	"devconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return apperror.Conflict("email already in use")
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id.Hex())
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (s *UserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return apperror.NotFound("user", id.Hex())
	}
	delete(s.users, id)
	return nil
}

type ProfileStore struct {
	mu       sync.Mutex
	profiles map[primitive.ObjectID]models.Profile // keyed by user id
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[primitive.ObjectID]models.Profile)}
}

func (s *ProfileStore) Create(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.User]; ok {
		return apperror.Conflict("profile already exists")
	}
	s.profiles[profile.User] = *profile
	return nil
}

func (s *ProfileStore) GetByUser(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, apperror.NotFound("profile", userID.Hex())
	}
	return &profile, nil
}

func (s *ProfileStore) List(_ context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (s *ProfileStore) Update(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.User]; !ok {
		return apperror.NotFound("profile", profile.User.Hex())
	}
	s.profiles[profile.User] = *profile
	return nil
}

func (s *ProfileStore) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[userID]; !ok {
		return apperror.NotFound("profile", userID.Hex())
	}
	delete(s.profiles, userID)
	return nil
}

type PostStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]models.Post
}

func NewPostStore() *PostStore {
	return &PostStore{posts: make(map[primitive.ObjectID]models.Post)}
}

func (s *PostStore) Create(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.ID] = clonePost(*post)
	return nil
}

func (s *PostStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, apperror.NotFound("post", id.Hex())
	}
	post = clonePost(post)
	return &post, nil
}

func (s *PostStore) List(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, clonePost(p))
	}
	// newest first
	for i := 0; i < len(posts); i++ {
		for j := i + 1; j < len(posts); j++ {
			if posts[j].Date.After(posts[i].Date) {
				posts[i], posts[j] = posts[j], posts[i]
			}
		}
	}
	return posts, nil
}

func (s *PostStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return apperror.NotFound("post", id.Hex())
	}
	delete(s.posts, id)
	return nil
}

func (s *PostStore) AddLike(_ context.Context, postID primitive.ObjectID, like models.Like) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, apperror.NotFound("post", postID.Hex())
	}
	for _, l := range post.Likes {
		if l.User == like.User {
			return nil, apperror.Conflict("post already liked")
		}
	}
	post.Likes = append([]models.Like{like}, post.Likes...)
	s.posts[postID] = post
	return append([]models.Like(nil), post.Likes...), nil
}

func (s *PostStore) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, apperror.NotFound("post", postID.Hex())
	}
	likes := make([]models.Like, 0, len(post.Likes))
	found := false
	for _, l := range post.Likes {
		if l.User == userID {
			found = true
			continue
		}
		likes = append(likes, l)
	}
	if !found {
		return nil, apperror.Conflict("post not liked")
	}
	post.Likes = likes
	s.posts[postID] = post
	return append([]models.Like(nil), post.Likes...), nil
}

func (s *PostStore) AddComment(_ context.Context, postID primitive.ObjectID, comment models.Comment) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, apperror.NotFound("post", postID.Hex())
	}
	post.Comments = append([]models.Comment{comment}, post.Comments...)
	s.posts[postID] = post
	return append([]models.Comment(nil), post.Comments...), nil
}

func (s *PostStore) RemoveComment(_ context.Context, postID, commentID primitive.ObjectID) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, apperror.NotFound("post", postID.Hex())
	}
	comments := make([]models.Comment, 0, len(post.Comments))
	found := false
	for _, c := range post.Comments {
		if c.ID == commentID {
			found = true
			continue
		}
		comments = append(comments, c)
	}
	if !found {
		return nil, apperror.NotFound("comment", commentID.Hex())
	}
	post.Comments = comments
	s.posts[postID] = post
	return append([]models.Comment(nil), post.Comments...), nil
}

func clonePost(p models.Post) models.Post {
	p.Likes = append([]models.Like(nil), p.Likes...)
	p.Comments = append([]models.Comment(nil), p.Comments...)
	return p
}
