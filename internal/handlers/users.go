package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"zentrafuge/internal/apperrors"
	"zentrafuge/internal/models"
	"zentrafuge/internal/persona"
)

// UserStore is the user persistence collaborator for registration and
// profile reads/patches.
type UserStore interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, name, buddyName, buddyVibe *string) (models.User, error)
}

// DefaultBuddyName is given to buddies whose owner never named them.
const DefaultBuddyName = "Zentrafuge"

type UserHandler struct {
	base
	users UserStore
}

func NewUserHandler(users UserStore, logger *zap.Logger, exposeErrors bool) *UserHandler {
	return &UserHandler{base: base{logger: logger, exposeErrors: exposeErrors}, users: users}
}

type registerRequest struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	BuddyName string `json:"buddyName"`
	BuddyVibe string `json:"buddyVibe"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.Email == "" || req.Name == "" {
		h.fail(w, http.StatusBadRequest, "UserId, email, and name are required")
		return
	}
	if req.BuddyName == "" {
		req.BuddyName = DefaultBuddyName
	}
	if req.BuddyVibe == "" {
		req.BuddyVibe = persona.DefaultVibe
	}

	user, err := h.users.CreateUser(r.Context(), models.User{
		UserID:       req.UserID,
		Email:        req.Email,
		Name:         req.Name,
		BuddyName:    req.BuddyName,
		BuddyVibe:    req.BuddyVibe,
		GrowthLevel:  1,
		GrowthPoints: 0,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			h.fail(w, http.StatusBadRequest, "User already exists")
			return
		}
		h.serviceError(w, err, "Error registering user")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.fail(w, http.StatusBadRequest, "UserId is required")
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "Error retrieving user profile")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	BuddyName *string `json:"buddyName"`
	BuddyVibe *string `json:"buddyVibe"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.fail(w, http.StatusBadRequest, "UserId is required")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, req.Name, req.BuddyName, req.BuddyVibe)
	if err != nil {
		h.serviceError(w, err, "Error updating user profile")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User profile updated successfully",
		"user":    user,
	})
}
