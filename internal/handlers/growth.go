package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"zentrafuge/internal/growth"
	"zentrafuge/internal/models"
)

// GrowthStore is the slice of user persistence the growth endpoints need.
type GrowthStore interface {
	GetUser(ctx context.Context, userID string) (models.User, error)
	AddPoints(ctx context.Context, userID string, delta int) (int, error)
	SetLevel(ctx context.Context, userID string, level int) error
}

type GrowthHandler struct {
	base
	users GrowthStore
}

func NewGrowthHandler(users GrowthStore, logger *zap.Logger, exposeErrors bool) *GrowthHandler {
	return &GrowthHandler{base: base{logger: logger, exposeErrors: exposeErrors}, users: users}
}

func (h *GrowthHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.fail(w, http.StatusBadRequest, "UserId is required")
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "Error retrieving growth status")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"growthLevel":  user.GrowthLevel,
		"growthPoints": user.GrowthPoints,
	})
}

type updateGrowthRequest struct {
	Points *int `json:"points"`
}

// UpdateStatus adds points and evaluates one level transition against the
// pre-call level.
func (h *GrowthHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.fail(w, http.StatusBadRequest, "UserId is required")
		return
	}

	var req updateGrowthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Points == nil {
		h.fail(w, http.StatusBadRequest, "Points are required")
		return
	}
	if *req.Points < 0 {
		h.fail(w, http.StatusBadRequest, "Points must be non-negative")
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "Error updating growth status")
		return
	}

	totalPoints, err := h.users.AddPoints(r.Context(), userID, *req.Points)
	if err != nil {
		h.serviceError(w, err, "Error updating growth status")
		return
	}

	_, newLevel, leveledUp := growth.ApplyDelta(user.GrowthLevel, totalPoints, 0)
	if leveledUp {
		if err := h.users.SetLevel(r.Context(), userID, newLevel); err != nil {
			h.serviceError(w, err, "Error updating growth status")
			return
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"growthLevel":  newLevel,
		"growthPoints": totalPoints,
		"levelUp":      leveledUp,
	})
}

// CheckLevelUp re-evaluates the level from current points without adding
// any.
func (h *GrowthHandler) CheckLevelUp(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.fail(w, http.StatusBadRequest, "UserId is required")
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "Error checking level up")
		return
	}

	_, newLevel, leveledUp := growth.ApplyDelta(user.GrowthLevel, user.GrowthPoints, 0)
	if leveledUp {
		if err := h.users.SetLevel(r.Context(), userID, newLevel); err != nil {
			h.serviceError(w, err, "Error checking level up")
			return
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"growthLevel":  newLevel,
		"growthPoints": user.GrowthPoints,
		"levelUp":      leveledUp,
	})
}
