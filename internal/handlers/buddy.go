package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"zentrafuge/internal/buddy"
	"zentrafuge/internal/models"
)

// BuddyService is the peer-message matchmaker.
type BuddyService interface {
	Submit(ctx context.Context, userID, text string) (models.PeerMessage, error)
	ClaimRandom(ctx context.Context, userID string) (models.PeerMessage, error)
	ListAll(ctx context.Context, userID string) ([]buddy.MessageWithType, error)
}

type BuddyHandler struct {
	base
	svc BuddyService
}

func NewBuddyHandler(svc BuddyService, logger *zap.Logger, exposeErrors bool) *BuddyHandler {
	return &BuddyHandler{base: base{logger: logger, exposeErrors: exposeErrors}, svc: svc}
}

type sendBuddyMessageRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

func (h *BuddyHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendBuddyMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" || req.UserID == "" {
		h.fail(w, http.StatusBadRequest, "Message and userId are required")
		return
	}

	msg, err := h.svc.Submit(r.Context(), req.UserID, req.Message)
	if err != nil {
		h.serviceError(w, err, "Error sending buddy message")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"message":   "Buddy message sent successfully",
		"messageId": msg.ID,
	})
}

func (h *BuddyHandler) Random(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.fail(w, http.StatusBadRequest, "UserId is required")
		return
	}

	msg, err := h.svc.ClaimRandom(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "Error retrieving buddy message")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  msg.Message,
		"received": msg.ReceivedAt.Format(time.RFC3339),
	})
}

func (h *BuddyHandler) All(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.fail(w, http.StatusBadRequest, "UserId is required")
		return
	}

	msgs, err := h.svc.ListAll(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "Error retrieving buddy messages")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "messages": msgs})
}
