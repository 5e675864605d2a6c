package handlers

import (
	"net/http"

	"github.com/dom/notes-api/internal/api/middleware"
	"github.com/dom/notes-api/internal/api/response"
	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type ProfileResponse struct {
	User    *domain.Profile `json:"user"`
	Message string          `json:"message"`
}

// GetUser returns the authenticated caller's profile.
func (h *ProfileHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, r, domain.ErrUnauthenticated)
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, ProfileResponse{User: profile, Message: ""})
}
