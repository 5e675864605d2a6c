package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/repository"
	"github.com/google/uuid"
)

type noteRecord struct {
	note *domain.Note
	seq  uint64
}

type noteRepository struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]noteRecord
	seq   uint64
}

func NewNoteRepository() *noteRepository {
	return &noteRepository{notes: make(map[uuid.UUID]noteRecord)}
}

func (r *noteRepository) Create(_ context.Context, note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.ID]; ok {
		return repository.ErrDuplicate
	}
	r.seq++
	r.notes[note.ID] = noteRecord{note: note.Clone(), seq: r.seq}
	return nil
}

func (r *noteRepository) FindOne(_ context.Context, id, ownerID uuid.UUID) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.notes[id]
	if !ok || rec.note.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return rec.note.Clone(), nil
}

func (r *noteRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []noteRecord
	for _, rec := range r.notes {
		if rec.note.OwnerID == ownerID {
			records = append(records, rec)
		}
	}

	// Pinned first, then insertion order.
	sort.Slice(records, func(i, j int) bool {
		if records[i].note.IsPinned != records[j].note.IsPinned {
			return records[i].note.IsPinned
		}
		return records[i].seq < records[j].seq
	})

	notes := make([]*domain.Note, 0, len(records))
	for _, rec := range records {
		notes = append(notes, rec.note.Clone())
	}
	return notes, nil
}

func (r *noteRepository) Update(_ context.Context, note *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.notes[note.ID]
	if !ok || rec.note.OwnerID != note.OwnerID {
		return repository.ErrNotFound
	}
	rec.note = note.Clone()
	r.notes[note.ID] = rec
	return nil
}

func (r *noteRepository) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.notes[id]
	if !ok || rec.note.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}
