package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/notes-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "missing field", err: domain.ErrMissingField, want: http.StatusBadRequest},
		{name: "nothing to update", err: domain.ErrNothingToUpdate, want: http.StatusBadRequest},
		{name: "invalid credentials", err: domain.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "unauthenticated", err: domain.ErrUnauthenticated, want: http.StatusUnauthorized},
		{name: "expired token", err: domain.ErrExpiredToken, want: http.StatusForbidden},
		{name: "invalid signature", err: domain.ErrInvalidSignature, want: http.StatusForbidden},
		{name: "malformed token", err: domain.ErrMalformedToken, want: http.StatusForbidden},
		{name: "note not found", err: domain.ErrNoteNotFound, want: http.StatusNotFound},
		{name: "already exists", err: domain.ErrAlreadyExists, want: http.StatusOK},
		{name: "internal", err: domain.Internal(errors.New("db down")), want: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped domain error", err: fmt.Errorf("ctx: %w", domain.ErrNoteNotFound), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(w, r, domain.Internal(errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Error)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestError_PublicMessage(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(w, r, domain.MissingField("Title is required"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":true,"message":"Title is required"}`, w.Body.String())
}
