package service

import (
	"context"
	"errors"

	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/repository"
	"github.com/rs/zerolog"
)

type AccountService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	opts     options
}

func NewAccountService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, opts ...Option) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		opts:     buildOptions(opts),
	}
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User        *domain.User
	AccessToken string
}

func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	log := zerolog.Ctx(ctx).With().Str("method", "Register").Str("email", input.Email).Logger()

	if input.FullName == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrMissingField
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error().Err(err).Msg("failed to check existing user")
		return nil, domain.Internal(err)
	}
	if existing != nil {
		log.Debug().Msg("email already registered")
		return nil, domain.ErrAlreadyExists
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, domain.Internal(err)
	}

	user := &domain.User{
		ID:           newID(),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CreatedOn:    s.opts.now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent registration.
			return nil, domain.ErrAlreadyExists
		}
		log.Error().Err(err).Msg("failed to create user")
		return nil, domain.Internal(err)
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, domain.Internal(err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return &AuthResult{User: user, AccessToken: token}, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	log := zerolog.Ctx(ctx).With().Str("method", "Login").Str("email", input.Email).Logger()

	if input.Email == "" || input.Password == "" {
		return nil, domain.MissingField("Please provide both email and password")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Debug().Msg("login attempt with unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("failed to look up user")
		return nil, domain.Internal(err)
	}

	valid, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to verify password")
		return nil, domain.Internal(err)
	}
	if !valid {
		log.Debug().Str("user_id", user.ID.String()).Msg("login attempt with wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, domain.Internal(err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return &AuthResult{User: user, AccessToken: token}, nil
}
