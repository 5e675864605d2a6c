package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/notes-api/internal/api/response"
	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Error       bool            `json:"error"`
	User        *domain.Profile `json:"user"`
	AccessToken string          `json:"accessToken"`
	Message     string          `json:"message"`
}

type LoginResponse struct {
	Error       bool   `json:"error"`
	Message     string `json:"message"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	result, err := h.accountService.Register(r.Context(), service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, RegisterResponse{
		Error:       false,
		User:        result.User.Profile(),
		AccessToken: result.AccessToken,
		Message:     "Registration Successful",
	})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	result, err := h.accountService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, LoginResponse{
		Error:       false,
		Message:     "Login successful",
		Email:       result.User.Email,
		AccessToken: result.AccessToken,
	})
}
