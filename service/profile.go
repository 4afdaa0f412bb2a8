package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"devconnect/apperror"
	"devconnect/models"
	"devconnect/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileInput carries the upsert payload. Skills arrive as a comma-delimited
// string; empty fields mean "leave untouched" on the update path.
type ProfileInput struct {
	Status         string
	Skills         string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string

	Youtube   string
	Twitter   string
	Facebook  string
	Linkedin  string
	Instagram string
}

type ProfileService struct {
	profiles repository.ProfileStore
	users    repository.UserStore
}

func NewProfileService(profiles repository.ProfileStore, users repository.UserStore) *ProfileService {
	return &ProfileService{profiles: profiles, users: users}
}

// Get returns the profile for the given user id.
func (s *ProfileService) Get(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return s.profiles.GetByUser(ctx, userID)
}

func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profiles.List(ctx)
}

// Upsert creates the actor's profile on first call and partially updates it
// afterwards. On the update path only supplied, non-empty fields overwrite
// stored values; absent fields are never nulled out. Status and skills are
// required when creating. The lookup-then-branch shape is deliberate: the
// update path returns the merged document, the create path the fresh one.
func (s *ProfileService) Upsert(ctx context.Context, actor primitive.ObjectID, in ProfileInput) (*models.Profile, error) {
	skills := parseSkills(in.Skills)

	profile, err := s.profiles.GetByUser(ctx, actor)
	switch {
	case err == nil:
		applyFields(profile, in, skills)
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil

	case errors.Is(err, apperror.ErrNotFound):
		if strings.TrimSpace(in.Status) == "" {
			return nil, apperror.ValidationFailed("status", "status is required")
		}
		if len(skills) == 0 {
			return nil, apperror.ValidationFailed("skills", "skills is required")
		}
		profile = &models.Profile{
			ID:   primitive.NewObjectID(),
			User: actor,
			Date: time.Now(),
		}
		applyFields(profile, in, skills)
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil

	default:
		return nil, err
	}
}

// DeleteAccount removes the actor's profile (absence is not an error) and then
// the user record. The actor's posts intentionally survive; cascade deletion
// is a documented gap carried over from the original product decision.
func (s *ProfileService) DeleteAccount(ctx context.Context, actor primitive.ObjectID) error {
	if err := s.profiles.DeleteByUser(ctx, actor); err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return err
	}
	return s.users.Delete(ctx, actor)
}

// parseSkills splits a comma-delimited list, trimming each entry and dropping
// empties, preserving order: "js, go" -> ["js" "go"].
func parseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

func applyFields(p *models.Profile, in ProfileInput, skills []string) {
	if v := strings.TrimSpace(in.Status); v != "" {
		p.Status = v
	}
	if len(skills) > 0 {
		p.Skills = skills
	}
	if v := strings.TrimSpace(in.Company); v != "" {
		p.Company = v
	}
	if v := strings.TrimSpace(in.Website); v != "" {
		p.Website = v
	}
	if v := strings.TrimSpace(in.Location); v != "" {
		p.Location = v
	}
	if v := strings.TrimSpace(in.Bio); v != "" {
		p.Bio = v
	}
	if v := strings.TrimSpace(in.GithubUsername); v != "" {
		p.GithubUsername = v
	}

	// social links follow the same partial-update policy, nested
	if v := strings.TrimSpace(in.Youtube); v != "" {
		p.Social.Youtube = v
	}
	if v := strings.TrimSpace(in.Twitter); v != "" {
		p.Social.Twitter = v
	}
	if v := strings.TrimSpace(in.Facebook); v != "" {
		p.Social.Facebook = v
	}
	if v := strings.TrimSpace(in.Linkedin); v != "" {
		p.Social.Linkedin = v
	}
	if v := strings.TrimSpace(in.Instagram); v != "" {
		p.Social.Instagram = v
	}
}
