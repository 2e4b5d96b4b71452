package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pdelgado/mtg-metagame/internal/api/auth"
	"github.com/pdelgado/mtg-metagame/internal/api/response"
)

// AuthHandler handles admin login and session introspection.
type AuthHandler struct {
	auth *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: svc}
}

// LoginRequest is the admin login body.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for subsequent admin calls.
type LoginResponse struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

// Login checks the admin password and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	token, err := h.auth.Login(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrRateLimited):
			response.TooManyRequests(w, err)
		case errors.Is(err, auth.ErrLoginDisabled), errors.Is(err, auth.ErrInvalidCredentials):
			response.Unauthorized(w, err)
		default:
			response.InternalError(w, err)
		}
		return
	}
	response.OK(w, LoginResponse{Token: token, User: "admin"})
}

// Me returns the current user when the bearer token is valid.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.VerifyRequest(r); err != nil {
		response.Unauthorized(w, err)
		return
	}
	response.OK(w, map[string]string{"user": "admin"})
}
