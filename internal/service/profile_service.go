package service

import (
	"context"
	"errors"

	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ProfileService struct {
	userRepo repository.UserRepository
	cache    ProfileCache
}

// NewProfileService creates a ProfileService. cache may be nil.
func NewProfileService(userRepo repository.UserRepository, cache ProfileCache) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		cache:    cache,
	}
}

// GetProfile returns the caller's public profile. A token can outlive its
// account, so a missing user is reported as domain.ErrUserNotFound. A cached
// profile is only served while the account still exists in the store.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	log := zerolog.Ctx(ctx).With().Str("method", "GetProfile").Str("user_id", userID.String()).Logger()

	if s.cache != nil {
		profile, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.Warn().Err(err).Msg("profile cache read failed")
		} else if ok {
			return s.confirmCached(ctx, log, profile)
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		log.Error().Err(err).Msg("failed to load user")
		return nil, domain.Internal(err)
	}

	profile := user.Profile()
	if s.cache != nil {
		if err := s.cache.Set(ctx, profile); err != nil {
			log.Warn().Err(err).Msg("profile cache write failed")
		}
	}
	return profile, nil
}

func (s *ProfileService) confirmCached(ctx context.Context, log zerolog.Logger, profile *domain.Profile) (*domain.Profile, error) {
	exists, err := s.userRepo.Exists(ctx, profile.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check user")
		return nil, domain.Internal(err)
	}
	if exists {
		return profile, nil
	}

	if err := s.cache.Delete(ctx, profile.ID); err != nil {
		log.Warn().Err(err).Msg("profile cache evict failed")
	}
	return nil, domain.ErrUserNotFound
}
