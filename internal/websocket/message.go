package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/notes-api/internal/domain"
)

type MessageType string

const (
	// Client to Server
	MessageTypePing MessageType = "PING"

	// Server to Client
	MessageTypePong        MessageType = "PONG"
	MessageTypeNoteCreated MessageType = "NOTE_CREATED"
	MessageTypeNoteUpdated MessageType = "NOTE_UPDATED"
	MessageTypeNoteDeleted MessageType = "NOTE_DELETED"
	MessageTypeError       MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = b
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Server to Client payloads

type NotePayload struct {
	NoteID string       `json:"noteId"`
	Note   *domain.Note `json:"note,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func messageTypeFor(t domain.NoteEventType) MessageType {
	switch t {
	case domain.NoteEventCreated:
		return MessageTypeNoteCreated
	case domain.NoteEventDeleted:
		return MessageTypeNoteDeleted
	default:
		return MessageTypeNoteUpdated
	}
}

// encodeEvent builds the wire frame for a note event.
func encodeEvent(event domain.NoteEvent) ([]byte, error) {
	msg, err := NewMessage(messageTypeFor(event.Type), NotePayload{
		NoteID: event.NoteID.String(),
		Note:   event.Note,
	})
	if err != nil {
		return nil, err
	}
	if !event.OccurredAt.IsZero() {
		msg.Timestamp = event.OccurredAt.UnixMilli()
	}
	return json.Marshal(msg)
}
