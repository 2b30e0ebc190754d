package service

import (
	"context"
	"fmt"
	"time"

	"focusflow-be/internal/cache"
	"focusflow-be/internal/entities"
	"focusflow-be/internal/repository"
)

const profileCacheTTL = 1 * time.Hour

func profileCacheKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

// ProfileService defines the interface for profile business logic
type ProfileService interface {
	Upsert(userID, supportMode string) (*entities.Profile, error)
	Get(userID string) (*entities.Profile, error)
}

type profileService struct {
	repo  repository.ProfileRepository
	cache cache.Cache
	ctx   context.Context
}

// NewProfileService creates a new profile service. cacheClient may be nil for
// graceful degradation.
func NewProfileService(repo repository.ProfileRepository, cacheClient cache.Cache) ProfileService {
	return &profileService{
		repo:  repo,
		cache: cacheClient,
		ctx:   context.Background(),
	}
}

// Upsert creates or overwrites the user's profile. Idempotent: the same call
// twice yields one row with onboarding_completed true both times.
func (s *profileService) Upsert(userID, supportMode string) (*entities.Profile, error) {
	profile, err := s.repo.Upsert(userID, supportMode)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, profileCacheKey(userID), profile, profileCacheTTL)
	}

	return profile, nil
}

// Get returns the user's profile, repository.ErrNotFound if never created.
func (s *profileService) Get(userID string) (*entities.Profile, error) {
	if s.cache != nil {
		var cached entities.Profile
		if err := s.cache.GetJSON(s.ctx, profileCacheKey(userID), &cached); err == nil && cached.ID != "" {
			return &cached, nil
		}
	}

	profile, err := s.repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, profileCacheKey(userID), profile, profileCacheTTL)
	}

	return profile, nil
}
