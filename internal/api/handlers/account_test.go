package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/notes-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginResponse struct {
	Error       bool   `json:"error"`
	Message     string `json:"message"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

func TestAccountHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setup          func(t *testing.T, ts *testutil.TestServer)
		expectedStatus int
		expectedMsg    string
		inBandError    bool
	}{
		{
			name:           "successful registration",
			body:           map[string]string{"fullName": "Ada Lovelace", "email": "ada@example.com", "password": "engine"},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Registration Successful",
		},
		{
			name:           "missing full name",
			body:           map[string]string{"email": "ada@example.com", "password": "engine"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Please provide all required fields",
		},
		{
			name:           "missing password",
			body:           map[string]string{"fullName": "Ada", "email": "ada@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Please provide all required fields",
		},
		{
			name:           "empty request body",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Please provide all required fields",
		},
		{
			name:           "malformed json",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request body",
		},
		{
			name: "duplicate email",
			body: map[string]string{"fullName": "Imposter", "email": "taken@example.com", "password": "other"},
			setup: func(t *testing.T, ts *testutil.TestServer) {
				testutil.NewUserBuilder().WithEmail("taken@example.com").Build(t, ts.Repos.User)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "User already exists",
			inBandError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := testutil.NewTestServer(t)
			if tt.setup != nil {
				tt.setup(t, ts)
			}

			resp := ts.Do(t, http.MethodPost, "/create-account", "", tt.body)

			if tt.expectedStatus != http.StatusOK || tt.inBandError {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedMsg)
				return
			}

			testutil.AssertStatusCode(t, resp, http.StatusOK)
			var result testutil.RegisterResponse
			testutil.AssertJSONResponse(t, resp, &result)
			assert.False(t, result.Error)
			assert.Equal(t, tt.expectedMsg, result.Message)
			assert.Equal(t, "Ada Lovelace", result.User.FullName)
			assert.Equal(t, "ada@example.com", result.User.Email)
			assert.NotEmpty(t, result.AccessToken)

			claims, err := ts.Tokens.Verify(result.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, result.User.ID, claims.UserID)
		})
	}
}

func TestAccountHandler_RegisterNeverExposesHash(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := ts.Do(t, http.MethodPost, "/create-account", "", map[string]string{
		"fullName": "Secret Keeper",
		"email":    "keeper@example.com",
		"password": "hunter2",
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var envelope struct {
		User map[string]interface{} `json:"user"`
	}
	testutil.AssertJSONResponse(t, resp, &envelope)

	assert.Contains(t, envelope.User, "_id")
	assert.Contains(t, envelope.User, "fullName")
	assert.Contains(t, envelope.User, "email")
	assert.Contains(t, envelope.User, "createdOn")
	assert.NotContains(t, envelope.User, "password")
	assert.NotContains(t, envelope.User, "passwordHash")
	assert.NotContains(t, envelope.User, "PasswordHash")
}

func TestAccountHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)
	profile, _ := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		BuildAndAuthenticate(t, ts)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "successful login",
			body:           map[string]string{"email": "login@example.com", "password": "correctpassword"},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Login successful",
		},
		{
			name:           "wrong password",
			body:           map[string]string{"email": "login@example.com", "password": "wrongpassword"},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid credentials",
		},
		{
			name:           "unknown email",
			body:           map[string]string{"email": "nobody@example.com", "password": "correctpassword"},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid credentials",
		},
		{
			name:           "missing password",
			body:           map[string]string{"email": "login@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Please provide both email and password",
		},
		{
			name:           "malformed json",
			body:           "[",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Do(t, http.MethodPost, "/login", "", tt.body)

			if tt.expectedStatus != http.StatusOK {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedMsg)
				return
			}

			var result loginResponse
			testutil.AssertStatusCode(t, resp, http.StatusOK)
			testutil.AssertJSONResponse(t, resp, &result)
			assert.False(t, result.Error)
			assert.Equal(t, tt.expectedMsg, result.Message)
			assert.Equal(t, "login@example.com", result.Email)

			claims, err := ts.Tokens.Verify(result.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, profile.ID, claims.UserID)
		})
	}
}
