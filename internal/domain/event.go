package domain

import (
	"time"

	"github.com/google/uuid"
)

type NoteEventType string

const (
	NoteEventCreated NoteEventType = "NOTE_CREATED"
	NoteEventUpdated NoteEventType = "NOTE_UPDATED"
	NoteEventDeleted NoteEventType = "NOTE_DELETED"
)

// NoteEvent describes a change to one of OwnerID's notes. Note is nil for
// deletions.
type NoteEvent struct {
	Type       NoteEventType
	OwnerID    uuid.UUID
	NoteID     uuid.UUID
	Note       *Note
	OccurredAt time.Time
}
