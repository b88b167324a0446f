package handlers

import (
	"encoding/json"
	"net/http"
)

type ChatHandler struct {
	pipeline Pipeline
}

func NewChatHandler(p Pipeline) *ChatHandler {
	return &ChatHandler{pipeline: p}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Ask answers a question grounded in the active document.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.pipeline.Ask(r.Context(), req.Message)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}
