package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"zentrafuge/internal/chat"
	"zentrafuge/internal/models"
)

// ChatService runs one conversation turn with the buddy.
type ChatService interface {
	HandleTurn(ctx context.Context, req chat.TurnRequest) (*chat.TurnResult, error)
}

// ThreadStore reads and clears the stored conversation thread.
type ThreadStore interface {
	ListMessages(ctx context.Context, userID string) ([]models.ChatMessage, error)
	ClearMessages(ctx context.Context, userID string) error
}

type ChatHandler struct {
	base
	svc     ChatService
	threads ThreadStore
}

func NewChatHandler(svc ChatService, threads ThreadStore, logger *zap.Logger, exposeErrors bool) *ChatHandler {
	return &ChatHandler{
		base:    base{logger: logger, exposeErrors: exposeErrors},
		svc:     svc,
		threads: threads,
	}
}

type sendMessageRequest struct {
	Message     string              `json:"message"`
	UserID      string              `json:"userId"`
	BuddyName   string              `json:"buddyName"`
	BuddyVibe   string              `json:"buddyVibe"`
	ChatHistory []chat.HistoryEntry `json:"chatHistory"`
}

// Send runs one conversation turn: generated reply, thread append, growth
// update.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" || req.UserID == "" || req.BuddyName == "" {
		h.fail(w, http.StatusBadRequest, "Message, userId, and buddyName are required")
		return
	}

	res, err := h.svc.HandleTurn(r.Context(), chat.TurnRequest{
		UserID:    req.UserID,
		Message:   req.Message,
		BuddyName: req.BuddyName,
		BuddyVibe: req.BuddyVibe,
		History:   req.ChatHistory,
	})
	if err != nil {
		h.serviceError(w, err, "Error processing your message")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"reply":        res.Reply,
		"usage":        res.Usage,
		"growthPoints": res.GrowthPoints,
		"growthLevel":  res.GrowthLevel,
		"levelUp":      res.LeveledUp,
	})
}

// History returns the stored thread; an unknown thread is an empty list.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.fail(w, http.StatusBadRequest, "UserId is required")
		return
	}

	msgs, err := h.threads.ListMessages(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "Error retrieving chat history")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "messages": msgs})
}

// Clear resets the thread to empty.
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.fail(w, http.StatusBadRequest, "UserId is required")
		return
	}

	if err := h.threads.ClearMessages(r.Context(), userID); err != nil {
		h.serviceError(w, err, "Error clearing chat history")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Chat history cleared successfully"})
}
