package service

import (
	"context"
	"errors"

	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type NoteService struct {
	noteRepo repository.NoteRepository
	events   NoteEventPublisher
	opts     options
}

// NewNoteService creates a NoteService. events may be nil.
func NewNoteService(noteRepo repository.NoteRepository, events NoteEventPublisher, opts ...Option) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		events:   events,
		opts:     buildOptions(opts),
	}
}

type CreateNoteInput struct {
	OwnerID uuid.UUID
	Title   string
	Content string
	Tags    []string
}

func (s *NoteService) Create(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	if input.Title == "" {
		return nil, domain.MissingField("Title is required")
	}
	if input.Content == "" {
		return nil, domain.MissingField("Content is required")
	}

	now := s.opts.now().UTC()
	note := &domain.Note{
		ID:        newID(),
		Title:     input.Title,
		Content:   input.Content,
		Tags:      domain.NormalizeTags(input.Tags),
		IsPinned:  false,
		OwnerID:   input.OwnerID,
		CreatedOn: now,
		UpdatedOn: now,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("user_id", input.OwnerID.String()).Msg("failed to create note")
		return nil, domain.Internal(err)
	}

	s.publish(domain.NoteEventCreated, note)
	return note, nil
}

// List returns the caller's notes, pinned first, otherwise in creation order.
func (s *NoteService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Note, error) {
	notes, err := s.noteRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("user_id", ownerID.String()).Msg("failed to list notes")
		return nil, domain.Internal(err)
	}
	return notes, nil
}

// Update applies the fields supplied in patch and leaves the others untouched.
func (s *NoteService) Update(ctx context.Context, ownerID, noteID uuid.UUID, patch domain.NotePatch) (*domain.Note, error) {
	if patch.Empty() {
		return nil, domain.ErrNothingToUpdate
	}
	if patch.Title.Set && patch.Title.Value == "" {
		return nil, domain.MissingField("Title is required")
	}
	if patch.Content.Set && patch.Content.Value == "" {
		return nil, domain.MissingField("Content is required")
	}

	return s.mutate(ctx, ownerID, noteID, patch.Apply)
}

func (s *NoteService) SetPinned(ctx context.Context, ownerID, noteID uuid.UUID, pinned bool) (*domain.Note, error) {
	return s.mutate(ctx, ownerID, noteID, func(n *domain.Note) {
		n.IsPinned = pinned
	})
}

// Delete permanently removes the note.
func (s *NoteService) Delete(ctx context.Context, ownerID, noteID uuid.UUID) error {
	if err := s.noteRepo.Delete(ctx, noteID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNoteNotFound
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("note_id", noteID.String()).Msg("failed to delete note")
		return domain.Internal(err)
	}

	if s.events != nil {
		s.events.Publish(domain.NoteEvent{
			Type:       domain.NoteEventDeleted,
			OwnerID:    ownerID,
			NoteID:     noteID,
			OccurredAt: s.opts.now().UTC(),
		})
	}
	return nil
}

func (s *NoteService) mutate(ctx context.Context, ownerID, noteID uuid.UUID, change func(*domain.Note)) (*domain.Note, error) {
	log := zerolog.Ctx(ctx).With().Str("user_id", ownerID.String()).Str("note_id", noteID.String()).Logger()

	note, err := s.noteRepo.FindOne(ctx, noteID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		log.Error().Err(err).Msg("failed to load note")
		return nil, domain.Internal(err)
	}

	change(note)
	note.UpdatedOn = s.opts.now().UTC()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted between the read and the write.
			return nil, domain.ErrNoteNotFound
		}
		log.Error().Err(err).Msg("failed to update note")
		return nil, domain.Internal(err)
	}

	s.publish(domain.NoteEventUpdated, note)
	return note, nil
}

func (s *NoteService) publish(eventType domain.NoteEventType, note *domain.Note) {
	if s.events == nil {
		return
	}
	s.events.Publish(domain.NoteEvent{
		Type:       eventType,
		OwnerID:    note.OwnerID,
		NoteID:     note.ID,
		Note:       note.Clone(),
		OccurredAt: s.opts.now().UTC(),
	})
}
