package service

import (
	"context"
	"testing"

	"devconnect/apperror"
	"devconnect/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfileService(t *testing.T) (*ProfileService, *memory.UserStore) {
	t.Helper()
	users := memory.NewUserStore()
	return NewProfileService(memory.NewProfileStore(), users), users
}

func TestUpsertCreatesProfile(t *testing.T) {
	svc, users := newTestProfileService(t)
	ctx := context.Background()
	actor := addUser(t, users, "ada")

	profile, err := svc.Upsert(ctx, actor, ProfileInput{
		Status: "dev",
		Skills: "js, go",
	})
	require.NoError(t, err)

	assert.Equal(t, actor, profile.User)
	assert.Equal(t, "dev", profile.Status)
	assert.Equal(t, []string{"js", "go"}, profile.Skills)

	got, err := svc.Get(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, profile.Skills, got.Skills)
}

func TestUpsertCreateRequiresStatusAndSkills(t *testing.T) {
	svc, users := newTestProfileService(t)
	ctx := context.Background()
	actor := addUser(t, users, "ada")

	_, err := svc.Upsert(ctx, actor, ProfileInput{Skills: "go"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Upsert(ctx, actor, ProfileInput{Status: "dev", Skills: " , , "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Get(ctx, actor)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpsertPartialUpdate(t *testing.T) {
	svc, users := newTestProfileService(t)
	ctx := context.Background()
	actor := addUser(t, users, "ada")

	_, err := svc.Upsert(ctx, actor, ProfileInput{
		Status:  "dev",
		Skills:  "js, go",
		Company: "acme",
	})
	require.NoError(t, err)

	// absent fields stay untouched, supplied ones overwrite
	profile, err := svc.Upsert(ctx, actor, ProfileInput{Bio: "hi"})
	require.NoError(t, err)

	assert.Equal(t, "dev", profile.Status)
	assert.Equal(t, []string{"js", "go"}, profile.Skills)
	assert.Equal(t, "acme", profile.Company)
	assert.Equal(t, "hi", profile.Bio)

	profile, err = svc.Upsert(ctx, actor, ProfileInput{Status: "senior dev", Skills: "rust"})
	require.NoError(t, err)
	assert.Equal(t, "senior dev", profile.Status)
	assert.Equal(t, []string{"rust"}, profile.Skills)
	assert.Equal(t, "hi", profile.Bio)
}

func TestUpsertSocialPartialUpdate(t *testing.T) {
	svc, users := newTestProfileService(t)
	ctx := context.Background()
	actor := addUser(t, users, "ada")

	_, err := svc.Upsert(ctx, actor, ProfileInput{
		Status:  "dev",
		Skills:  "go",
		Twitter: "https://twitter.com/ada",
	})
	require.NoError(t, err)

	profile, err := svc.Upsert(ctx, actor, ProfileInput{
		Youtube: "https://youtube.com/@ada",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://twitter.com/ada", profile.Social.Twitter)
	assert.Equal(t, "https://youtube.com/@ada", profile.Social.Youtube)
	assert.Empty(t, profile.Social.Facebook)
}

func TestGetMissingProfile(t *testing.T) {
	svc, users := newTestProfileService(t)
	actor := addUser(t, users, "ada")

	_, err := svc.Get(context.Background(), actor)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListProfiles(t *testing.T) {
	svc, users := newTestProfileService(t)
	ctx := context.Background()

	for _, name := range []string{"ada", "brendan"} {
		actor := addUser(t, users, name)
		_, err := svc.Upsert(ctx, actor, ProfileInput{Status: "dev", Skills: "go"})
		require.NoError(t, err)
	}

	profiles, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestDeleteAccount(t *testing.T) {
	users := memory.NewUserStore()
	posts := memory.NewPostStore()
	profiles := memory.NewProfileStore()
	svc := NewProfileService(profiles, users)
	postSvc := NewPostService(posts, users)
	ctx := context.Background()

	actor := addUser(t, users, "ada")
	_, err := svc.Upsert(ctx, actor, ProfileInput{Status: "dev", Skills: "go"})
	require.NoError(t, err)
	post, err := postSvc.Create(ctx, actor, "will survive")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, actor))

	_, err = svc.Get(ctx, actor)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = users.GetByID(ctx, actor)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// posts are not cascade-deleted
	got, err := postSvc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, actor, got.User)
}

func TestDeleteAccountWithoutProfile(t *testing.T) {
	users := memory.NewUserStore()
	svc := NewProfileService(memory.NewProfileStore(), users)
	ctx := context.Background()

	actor := addUser(t, users, "ada")

	// no profile exists; only the user record goes away
	require.NoError(t, svc.DeleteAccount(ctx, actor))

	_, err := users.GetByID(ctx, actor)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"js", "go"}, parseSkills("js, go"))
	assert.Equal(t, []string{"HTML", "CSS", "C++"}, parseSkills(" HTML ,CSS,  C++ "))
	assert.Empty(t, parseSkills("  ,  ,"))
	assert.Empty(t, parseSkills(""))
}
