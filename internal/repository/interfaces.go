package repository

import (
	"context"
	"errors"

	"github.com/dom/notes-api/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// NoteRepository scopes every single-note operation by owner, so a note
// owned by someone else is indistinguishable from a missing one.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	FindOne(ctx context.Context, id, ownerID uuid.UUID) (*domain.Note, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type Repositories struct {
	User UserRepository
	Note NoteRepository
}
