package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnect/models"
	"devconnect/repository/memory"
	"devconnect/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// asActor stands in for the JWT middleware so handler tests can pick the
// authenticated user per request.
func asActor(actor primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", actor.Hex())
	}
}

type postFixture struct {
	users   *memory.UserStore
	posts   *memory.PostStore
	handler *PostHandler
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	users := memory.NewUserStore()
	posts := memory.NewPostStore()
	return &postFixture{
		users:   users,
		posts:   posts,
		handler: NewPostHandler(service.NewPostService(posts, users)),
	}
}

func (f *postFixture) router(actor primitive.ObjectID) *gin.Engine {
	r := gin.New()
	r.Use(asActor(actor))
	r.POST("/api/posts", f.handler.Create)
	r.GET("/api/posts", f.handler.List)
	r.GET("/api/posts/:id", f.handler.Get)
	r.DELETE("/api/posts/:id", f.handler.Delete)
	r.PUT("/api/posts/like/:id", f.handler.Like)
	r.PUT("/api/posts/unlike/:id", f.handler.Unlike)
	r.POST("/api/posts/comment/:id", f.handler.Comment)
	r.DELETE("/api/posts/comments/:postId/:commentId", f.handler.DeleteComment)
	return r
}

func (f *postFixture) addUser(t *testing.T, name string) primitive.ObjectID {
	t.Helper()
	user := &models.User{ID: primitive.NewObjectID(), Name: name, Email: name + "@example.com"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user.ID
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body == "" {
		buf = bytes.NewBuffer(nil)
	} else {
		buf = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateAndGetPost(t *testing.T) {
	f := newPostFixture(t)
	author := f.addUser(t, "ada")
	r := f.router(author)

	rr := do(r, http.MethodPost, "/api/posts", `{"text":"hello"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var post models.Post
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&post))
	assert.Equal(t, "hello", post.Text)
	assert.Equal(t, "ada", post.Name)

	rr = do(r, http.MethodGet, "/api/posts/"+post.ID.Hex(), "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(r, http.MethodGet, "/api/posts", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreatePostMissingText(t *testing.T) {
	f := newPostFixture(t)
	author := f.addUser(t, "ada")
	r := f.router(author)

	rr := do(r, http.MethodPost, "/api/posts", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetMissingPost(t *testing.T) {
	f := newPostFixture(t)
	author := f.addUser(t, "ada")
	r := f.router(author)

	rr := do(r, http.MethodGet, "/api/posts/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(r, http.MethodGet, "/api/posts/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeletePostStatusCodes(t *testing.T) {
	f := newPostFixture(t)
	author := f.addUser(t, "ada")
	other := f.addUser(t, "brendan")

	rr := do(f.router(author), http.MethodPost, "/api/posts", `{"text":"mine"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var post models.Post
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&post))

	rr = do(f.router(other), http.MethodDelete, "/api/posts/"+post.ID.Hex(), "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(f.router(author), http.MethodDelete, "/api/posts/"+post.ID.Hex(), "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(f.router(author), http.MethodDelete, "/api/posts/"+post.ID.Hex(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLikeStatusCodes(t *testing.T) {
	f := newPostFixture(t)
	author := f.addUser(t, "ada")
	liker := f.addUser(t, "brendan")

	rr := do(f.router(author), http.MethodPost, "/api/posts", `{"text":"like me"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var post models.Post
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&post))

	r := f.router(liker)

	rr = do(r, http.MethodPut, "/api/posts/like/"+post.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	var likes []models.Like
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&likes))
	require.Len(t, likes, 1)

	// second like rejected
	rr = do(r, http.MethodPut, "/api/posts/like/"+post.ID.Hex(), "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(r, http.MethodPut, "/api/posts/unlike/"+post.ID.Hex(), "")
	assert.Equal(t, http.StatusOK, rr.Code)

	// unlike of an unliked post rejected
	rr = do(r, http.MethodPut, "/api/posts/unlike/"+post.ID.Hex(), "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(r, http.MethodPut, "/api/posts/like/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCommentStatusCodes(t *testing.T) {
	f := newPostFixture(t)
	author := f.addUser(t, "ada")
	commenter := f.addUser(t, "brendan")

	rr := do(f.router(author), http.MethodPost, "/api/posts", `{"text":"discuss"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var post models.Post
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&post))

	rr = do(f.router(commenter), http.MethodPost, "/api/posts/comment/"+post.ID.Hex(), `{"text":"first!"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var comments []models.Comment
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&comments))
	require.Len(t, comments, 1)

	rr = do(f.router(commenter), http.MethodPost, "/api/posts/comment/"+post.ID.Hex(), `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// only the comment's author may remove it
	path := "/api/posts/comments/" + post.ID.Hex() + "/" + comments[0].ID.Hex()
	rr = do(f.router(author), http.MethodDelete, path, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(f.router(commenter), http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(f.router(commenter), http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
