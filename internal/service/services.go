package service

import (
	"context"
	"time"

	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/repository"
	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, time.Time, error)
}

// ProfileCache is a read-through cache for user profiles. Get reports a
// miss with ok=false and a nil error.
type ProfileCache interface {
	Get(ctx context.Context, userID uuid.UUID) (profile *domain.Profile, ok bool, err error)
	Set(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type NoteEventPublisher interface {
	Publish(event domain.NoteEvent)
}

type Dependencies struct {
	Hasher PasswordHasher
	Tokens TokenIssuer
	Cache  ProfileCache
	Events NoteEventPublisher
}

type Services struct {
	Account *AccountService
	Profile *ProfileService
	Note    *NoteService
}

func NewServices(repos *repository.Repositories, deps Dependencies, opts ...Option) *Services {
	return &Services{
		Account: NewAccountService(repos.User, deps.Hasher, deps.Tokens, opts...),
		Profile: NewProfileService(repos.User, deps.Cache),
		Note:    NewNoteService(repos.Note, deps.Events, opts...),
	}
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newID() uuid.UUID {
	// v7 ids sort by creation time.
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
