package postgres

import (
	"context"

	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *noteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	return translate(r.db.WithContext(ctx).Create(note).Error)
}

func (r *noteRepository) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*domain.Note, error) {
	var note domain.Note
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&note).Error
	if err != nil {
		return nil, translate(err)
	}
	return &note, nil
}

func (r *noteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Note, error) {
	notes := []*domain.Note{}
	// IDs are UUIDv7, so id breaks created_on ties in creation order.
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("is_pinned DESC").
		Order("created_on ASC").
		Order("id ASC").
		Find(&notes).Error
	if err != nil {
		return nil, translate(err)
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Note{}).
		Where("id = ? AND owner_id = ?", note.ID, note.OwnerID).
		Select("title", "content", "tags", "is_pinned", "updated_on").
		Updates(note)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Note{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
