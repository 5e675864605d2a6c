package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dom/notes-api/internal/domain"
	"github.com/gorilla/websocket"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type registerResponse struct {
	User        domain.Profile `json:"user"`
	AccessToken string         `json:"accessToken"`
}

type noteResponse struct {
	Note domain.Note `json:"note"`
}

type notesResponse struct {
	Notes []domain.Note `json:"notes"`
}

// RegisterUser creates an account with a unique email derived from baseName.
func (c *APIClient) RegisterUser(ctx context.Context, baseName, password string) (*domain.Profile, string, error) {
	suffix := time.Now().UnixNano() % 1000000
	body := map[string]string{
		"fullName": fmt.Sprintf("%s %d", baseName, suffix),
		"email":    fmt.Sprintf("%s.%d@example.com", strings.ToLower(baseName), suffix),
		"password": password,
	}

	var result registerResponse
	if err := c.do(ctx, http.MethodPost, "/create-account", body, "", &result); err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}
	return &result.User, result.AccessToken, nil
}

// Login exchanges credentials for an access token.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	var result struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, "", &result); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return result.AccessToken, nil
}

func (c *APIClient) CreateNote(ctx context.Context, token, title, content string, tags []string) (*domain.Note, error) {
	body := map[string]any{
		"title":   title,
		"content": content,
		"tags":    tags,
	}

	var result noteResponse
	if err := c.do(ctx, http.MethodPost, "/add-note", body, token, &result); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &result.Note, nil
}

func (c *APIClient) PinNote(ctx context.Context, token, noteID string, pinned bool) (*domain.Note, error) {
	body := map[string]bool{"isPinned": pinned}

	var result noteResponse
	if err := c.do(ctx, http.MethodPut, "/update-note-pinned/"+noteID, body, token, &result); err != nil {
		return nil, fmt.Errorf("pin note: %w", err)
	}
	return &result.Note, nil
}

func (c *APIClient) ListNotes(ctx context.Context, token string) ([]domain.Note, error) {
	var result notesResponse
	if err := c.do(ctx, http.MethodGet, "/get-all-notes", nil, token, &result); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return result.Notes, nil
}

func (c *APIClient) DeleteNote(ctx context.Context, token, noteID string) error {
	if err := c.do(ctx, http.MethodDelete, "/delete-note/"+noteID, nil, token, nil); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// DialEvents opens the note event stream for the token's owner.
func (c *APIClient) DialEvents(ctx context.Context, token string) (*websocket.Conn, error) {
	u, err := url.Parse(c.baseURL + "/ws")
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.RawQuery = url.Values{"token": {token}}.Encode()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial events (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dial events: %w", err)
	}
	return conn, nil
}

// HTTP helpers

func (c *APIClient) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	// Some failures, such as a taken email, come back as 200 with the error flag set.
	var envelope struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(bodyBytes, &envelope); err == nil && envelope.Error {
		return fmt.Errorf("status %d: %s", resp.StatusCode, envelope.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
