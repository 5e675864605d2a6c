package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/notes-api/internal/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	codec := auth.NewTokenCodec("middleware-secret", time.Hour)
	userID := uuid.New()
	valid, _, err := codec.Issue(userID)
	require.NoError(t, err)

	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := codec.WithClock(past).Issue(userID)
	require.NoError(t, err)

	forged, _, err := auth.NewTokenCodec("other-secret", time.Hour).Issue(userID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMsg: "Access token required"},
		{name: "scheme only", header: "Bearer", wantStatus: http.StatusUnauthorized, wantMsg: "Access token required"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantMsg: "Access token required"},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusForbidden, wantMsg: "Invalid or expired token"},
		{name: "forged token", header: "Bearer " + forged, wantStatus: http.StatusForbidden, wantMsg: "Invalid or expired token"},
		{name: "garbage token", header: "Bearer abc", wantStatus: http.StatusForbidden, wantMsg: "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID uuid.UUID
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUserID, _ = GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/get-user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			Auth(codec)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, userID, gotUserID)
				return
			}

			assert.False(t, called, "downstream handler must not run")
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, true, body["error"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req.Context())
	assert.False(t, ok)
}
