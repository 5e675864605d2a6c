package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/repository"
	"github.com/google/uuid"
)

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *noteRepository {
	return &noteRepository{db: db}
}

const noteColumns = `id, owner_id, title, content, tags, is_pinned, created_on, updated_on`

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	tags, err := json.Marshal(domain.NormalizeTags(note.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID.String(), note.OwnerID.String(), note.Title, note.Content, string(tags),
		note.IsPinned, toNanos(note.CreatedOn), toNanos(note.UpdatedOn),
	)
	return translate(err)
}

func (r *noteRepository) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ? AND owner_id = ?`,
		id.String(), ownerID.String(),
	)
	return scanNote(row)
}

func (r *noteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE owner_id = ? ORDER BY is_pinned DESC, seq ASC`,
		ownerID.String(),
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	tags, err := json.Marshal(domain.NormalizeTags(note.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, tags = ?, is_pinned = ?, updated_on = ?
		 WHERE id = ? AND owner_id = ?`,
		note.Title, note.Content, string(tags), note.IsPinned, toNanos(note.UpdatedOn),
		note.ID.String(), note.OwnerID.String(),
	)
	if err != nil {
		return translate(err)
	}
	return requireAffected(result)
}

func (r *noteRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND owner_id = ?`,
		id.String(), ownerID.String(),
	)
	if err != nil {
		return translate(err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*domain.Note, error) {
	var (
		note                 domain.Note
		id, ownerID, tags    string
		createdOn, updatedOn int64
	)
	err := s.Scan(&id, &ownerID, &note.Title, &note.Content, &tags, &note.IsPinned, &createdOn, &updatedOn)
	if err != nil {
		return nil, translate(err)
	}

	if note.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse note id: %w", err)
	}
	if note.OwnerID, err = uuid.Parse(ownerID); err != nil {
		return nil, fmt.Errorf("parse owner id: %w", err)
	}
	var parsed []string
	if err := json.Unmarshal([]byte(tags), &parsed); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	note.Tags = domain.NormalizeTags(parsed)
	note.CreatedOn = fromNanos(createdOn)
	note.UpdatedOn = fromNanos(updatedOn)
	return &note, nil
}
