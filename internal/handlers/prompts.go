package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// PromptSource serves the reflection-prompt catalog.
type PromptSource interface {
	Daily() string
	All() []string
}

type PromptHandler struct {
	base
	prompts PromptSource
}

func NewPromptHandler(prompts PromptSource, logger *zap.Logger, exposeErrors bool) *PromptHandler {
	return &PromptHandler{base: base{logger: logger, exposeErrors: exposeErrors}, prompts: prompts}
}

func (h *PromptHandler) Daily(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "prompt": h.prompts.Daily()})
}

func (h *PromptHandler) All(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "prompts": h.prompts.All()})
}

type addPromptRequest struct {
	Prompt string `json:"prompt"`
}

// Add accepts new prompt text. The catalog is a startup constant, so the
// prompt is acknowledged but not persisted.
func (h *PromptHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		h.fail(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Prompt added successfully",
		"prompt":  req.Prompt,
	})
}
