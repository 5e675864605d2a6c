// Package response writes JSON bodies and maps domain errors to HTTP
// statuses.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/notes-api/internal/domain"
	"github.com/rs/zerolog/hlog"
)

type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Message writes an error body with an explicit status and message.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: true, Message: message})
}

// Error maps err to a status and writes its public message. Internal
// failures are logged with their cause and reported generically.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	Message(w, status, domain.PublicMessage(err))
}

// Status returns the HTTP status for err.
func Status(err error) int {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}

	switch de.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuth:
		switch de.Code {
		case domain.CodeExpiredToken, domain.CodeInvalidSignature, domain.CodeMalformedToken:
			return http.StatusForbidden
		default:
			return http.StatusUnauthorized
		}
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		// Reported in-band: 200 with the error flag set.
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
