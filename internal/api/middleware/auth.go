package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/notes-api/internal/api/response"
	"github.com/dom/notes-api/internal/auth"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
)

const invalidTokenMessage = "Invalid or expired token"

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Auth rejects requests without a valid bearer token. A missing token is
// 401; a token that fails verification is 403.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := hlog.FromRequest(r)

			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Debug().Msg("missing bearer token")
				response.Message(w, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				log.Debug().Err(err).Msg("token verification failed")
				response.Message(w, http.StatusForbidden, invalidTokenMessage)
				return
			}

			userLog := log.With().Str("user_id", claims.UserID.String()).Logger()
			ctx := userLog.WithContext(r.Context())
			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
