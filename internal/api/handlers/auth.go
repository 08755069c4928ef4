package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/insurehub/insurehub/internal/auth"
	"github.com/insurehub/insurehub/internal/domain"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest is the request body for registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.authService.Register(r.Context(), auth.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})

	if errors.Is(err, domain.ErrInvalidInput) {
		jsonError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		jsonError(w, http.StatusBadRequest, "user already exists")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"message": "User registered successfully",
	})
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	signed, err := h.authService.Login(r.Context(), auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})

	if errors.Is(err, domain.ErrInvalidCredentials) {
		jsonError(w, http.StatusBadRequest, "invalid email or password")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "login failed")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"token": signed,
	})
}
