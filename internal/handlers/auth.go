package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AnshRaj112/secure-profile-hub/internal/middleware"
	"github.com/AnshRaj112/secure-profile-hub/internal/models"
	"github.com/AnshRaj112/secure-profile-hub/internal/services"
)

const maxBodyBytes = 1 << 20

// CredentialService is the subset of services.CredentialService the HTTP layer needs.
type CredentialService interface {
	Register(ctx context.Context, in services.RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100,personname"`
	Email    string `json:"email" validate:"required,max=255,email"`
	Password string `json:"password" validate:"required,min=8,max=100,strongpassword"`
	Aadhaar  string `json:"aadhaar" validate:"required,aadhaar"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=255,email"`
	Password string `json:"password" validate:"required,max=100"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type AuthHandler struct {
	svc       CredentialService
	validator *Validator
	logger    *slog.Logger
}

func NewAuthHandler(svc CredentialService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:       svc,
		validator: NewValidator(),
		logger:    logger,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Aadhaar = strings.TrimSpace(req.Aadhaar)

	if fieldErrs := h.validator.Struct(req); fieldErrs != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Validation failed", Errors: fieldErrs})
		return
	}

	token, err := h.svc.Register(r.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Aadhaar:  req.Aadhaar,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, TokenResponse{Token: token})
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if fieldErrs := h.validator.Struct(req); fieldErrs != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Validation failed", Errors: fieldErrs})
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Profile returns the authenticated user's decrypted profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, MessageResponse{Message: "Not authorized, no token"})
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil || dec.More() {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid request body"})
		return false
	}
	return true
}

// writeServiceError maps the credential error taxonomy onto status codes.
// Anything unrecognised, including decryption failures, is a 500.
func (h *AuthHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicateUser):
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "User already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid credentials"})
	case errors.Is(err, services.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, MessageResponse{Message: "User not found"})
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
