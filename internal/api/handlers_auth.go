package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/saiful-70/ai-rate-limiter/internal/auth"
	"github.com/saiful-70/ai-rate-limiter/internal/models"
	"github.com/saiful-70/ai-rate-limiter/internal/storage"
)

// Register handles account creation
// POST /api/v1/auth/register
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid JSON body")
		return
	}

	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusUnprocessableEntity, models.ErrorCodeValidation, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password, h.config.Security.BCryptCost)
	if err != nil {
		slog.Error("Password hashing failed", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrorCodeInternalError, "Internal server error")
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Tier:         req.Tier,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			h.writeErrorResponse(w, http.StatusConflict, models.ErrorCodeConflict, "Email is already registered")
			return
		}
		slog.Error("User creation failed", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrorCodeInternalError, "Internal server error")
		return
	}

	token, expiresAt, err := h.issuer.Issue(user)
	if err != nil {
		slog.Error("Token issuance failed", "error", err, "user_id", user.ID)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrorCodeInternalError, "Internal server error")
		return
	}

	slog.Info("User registered", "user_id", user.ID, "tier", user.Tier)

	h.writeJSONResponse(w, http.StatusCreated, models.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// Login exchanges credentials for a JWT
// POST /api/v1/auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid JSON body")
		return
	}

	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusUnprocessableEntity, models.ErrorCodeValidation, err.Error())
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Same response as a bad password so emails cannot be probed
			h.writeErrorResponse(w, http.StatusUnauthorized, models.ErrorCodeUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("User lookup failed", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrorCodeInternalError, "Internal server error")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		h.writeErrorResponse(w, http.StatusUnauthorized, models.ErrorCodeUnauthorized, "Invalid credentials")
		return
	}

	token, expiresAt, err := h.issuer.Issue(user)
	if err != nil {
		slog.Error("Token issuance failed", "error", err, "user_id", user.ID)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrorCodeInternalError, "Internal server error")
		return
	}

	slog.Info("User logged in", "user_id", user.ID, "tier", user.Tier)

	h.writeJSONResponse(w, http.StatusOK, models.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      user,
	})
}
