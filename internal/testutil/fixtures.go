package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	fullName string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		fullName: "Test User " + suffix,
		email:    fmt.Sprintf("user_%s@example.com", suffix),
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build stores the user directly through repo and returns it with the raw
// password.
func (b *UserBuilder) Build(t *testing.T, repo repository.UserRepository) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("failed to generate id: %v", err)
	}

	user := &domain.User{
		ID:           id,
		FullName:     b.fullName,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedOn:    time.Now().UTC().Truncate(time.Microsecond),
	}

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// RegisterResponse matches the /create-account response
type RegisterResponse struct {
	Error       bool           `json:"error"`
	User        domain.Profile `json:"user"`
	AccessToken string         `json:"accessToken"`
	Message     string         `json:"message"`
}

// BuildAndAuthenticate registers the user through the API and returns the
// profile and access token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.Profile, string) {
	t.Helper()

	resp := ts.Do(t, http.MethodPost, "/create-account", "", map[string]string{
		"fullName": b.fullName,
		"email":    b.email,
		"password": b.password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code registering user: %d", resp.StatusCode)
	}

	var regResp RegisterResponse
	AssertJSONResponse(t, resp, &regResp)
	return &regResp.User, regResp.AccessToken
}

// NoteBuilder creates notes through the API
type NoteBuilder struct {
	title   string
	content string
	tags    []string
	pinned  bool
}

func NewNoteBuilder() *NoteBuilder {
	return &NoteBuilder{
		title:   "Note " + uuid.New().String()[:8],
		content: "Some content",
	}
}

func (b *NoteBuilder) WithTitle(title string) *NoteBuilder {
	b.title = title
	return b
}

func (b *NoteBuilder) WithContent(content string) *NoteBuilder {
	b.content = content
	return b
}

func (b *NoteBuilder) WithTags(tags ...string) *NoteBuilder {
	b.tags = tags
	return b
}

func (b *NoteBuilder) Pinned() *NoteBuilder {
	b.pinned = true
	return b
}

// NoteResponse matches the single-note API responses
type NoteResponse struct {
	Error   bool        `json:"error"`
	Note    domain.Note `json:"note"`
	Message string      `json:"message"`
}

// NotesResponse matches the /get-all-notes response
type NotesResponse struct {
	Error   bool          `json:"error"`
	Notes   []domain.Note `json:"notes"`
	Message string        `json:"message"`
}

// Create adds the note for the token's owner and pins it if requested.
func (b *NoteBuilder) Create(t *testing.T, ts *TestServer, token string) *domain.Note {
	t.Helper()

	body := map[string]interface{}{
		"title":   b.title,
		"content": b.content,
	}
	if b.tags != nil {
		body["tags"] = b.tags
	}

	resp := ts.Do(t, http.MethodPost, "/add-note", token, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code adding note: %d", resp.StatusCode)
	}

	var noteResp NoteResponse
	AssertJSONResponse(t, resp, &noteResp)
	note := noteResp.Note

	if b.pinned {
		resp := ts.Do(t, http.MethodPut, "/update-note-pinned/"+note.ID.String(), token, map[string]bool{"isPinned": true})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("unexpected status code pinning note: %d", resp.StatusCode)
		}
		AssertJSONResponse(t, resp, &noteResp)
		note = noteResp.Note
	}

	return &note
}
