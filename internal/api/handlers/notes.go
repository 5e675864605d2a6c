package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dom/notes-api/internal/api/middleware"
	"github.com/dom/notes-api/internal/api/response"
	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

type CreateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type SetPinnedRequest struct {
	IsPinned domain.Optional[bool] `json:"isPinned"`
}

type NoteResponse struct {
	Error   bool         `json:"error"`
	Note    *domain.Note `json:"note"`
	Message string       `json:"message"`
}

type NotesResponse struct {
	Error   bool           `json:"error"`
	Notes   []*domain.Note `json:"notes"`
	Message string         `json:"message"`
}

type MessageResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, r, domain.ErrUnauthenticated)
		return
	}

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	note, err := h.noteService.Create(r.Context(), service.CreateNoteInput{
		OwnerID: userID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, NoteResponse{Note: note, Message: "Note added successfully"})
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, r, domain.ErrUnauthenticated)
		return
	}

	notes, err := h.noteService.List(r.Context(), userID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if notes == nil {
		notes = []*domain.Note{}
	}

	response.JSON(w, http.StatusOK, NotesResponse{Notes: notes, Message: "All notes retrieved successfully"})
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.noteTarget(w, r)
	if !ok {
		return
	}

	// A missing body is an empty patch, reported as nothing to update.
	var patch domain.NotePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil && !errors.Is(err, io.EOF) {
		response.Message(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	note, err := h.noteService.Update(r.Context(), userID, noteID, patch)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, NoteResponse{Note: note, Message: "Note updated successfully"})
}

func (h *NoteHandler) SetPinned(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.noteTarget(w, r)
	if !ok {
		return
	}

	var req SetPinnedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}
	if !req.IsPinned.Set {
		response.Error(w, r, domain.MissingField("isPinned is required"))
		return
	}

	note, err := h.noteService.SetPinned(r.Context(), userID, noteID, req.IsPinned.Value)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, NoteResponse{Note: note, Message: "Note updated successfully"})
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, noteID, ok := h.noteTarget(w, r)
	if !ok {
		return
	}

	if err := h.noteService.Delete(r.Context(), userID, noteID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, MessageResponse{Message: "Note deleted successfully"})
}

// noteTarget resolves the caller and the {noteId} path parameter. An id
// that does not parse cannot name any note, so it is reported as not found.
func (h *NoteHandler) noteTarget(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, r, domain.ErrUnauthenticated)
		return uuid.Nil, uuid.Nil, false
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "noteId"))
	if err != nil {
		response.Error(w, r, domain.ErrNoteNotFound)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, noteID, true
}
