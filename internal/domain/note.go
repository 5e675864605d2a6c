package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Note struct {
	ID        uuid.UUID                   `json:"_id" gorm:"type:uuid;primaryKey"`
	Title     string                      `json:"title" gorm:"not null"`
	Content   string                      `json:"content" gorm:"type:text;not null"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	IsPinned  bool                        `json:"isPinned" gorm:"not null;default:false"`
	OwnerID   uuid.UUID                   `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedOn time.Time                   `json:"createdOn" gorm:"not null"`
	UpdatedOn time.Time                   `json:"updatedOn" gorm:"not null"`
}

// Clone returns a deep copy so callers can mutate it without aliasing tags.
func (n *Note) Clone() *Note {
	c := *n
	c.Tags = make(datatypes.JSONSlice[string], len(n.Tags))
	copy(c.Tags, n.Tags)
	return &c
}

// NotePatch carries the fields an edit supplies. Only fields that are Set
// overwrite the stored note.
type NotePatch struct {
	Title    Optional[string]   `json:"title"`
	Content  Optional[string]   `json:"content"`
	Tags     Optional[[]string] `json:"tags"`
	IsPinned Optional[bool]     `json:"isPinned"`
}

// Empty reports whether the patch supplies no field at all.
func (p NotePatch) Empty() bool {
	return !p.Title.Set && !p.Content.Set && !p.Tags.Set && !p.IsPinned.Set
}

// Apply writes the supplied fields onto n.
func (p NotePatch) Apply(n *Note) {
	if p.Title.Set {
		n.Title = p.Title.Value
	}
	if p.Content.Set {
		n.Content = p.Content.Value
	}
	if p.Tags.Set {
		n.Tags = NormalizeTags(p.Tags.Value)
	}
	if p.IsPinned.Set {
		n.IsPinned = p.IsPinned.Value
	}
}

// NormalizeTags copies tags into a non-nil slice so an absent list is
// stored and serialized as [].
func NormalizeTags(tags []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], len(tags))
	copy(out, tags)
	return out
}
