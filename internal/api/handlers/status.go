package handlers

import "net/http"

type StatusHandler struct {
	pipeline Pipeline
}

func NewStatusHandler(p Pipeline) *StatusHandler {
	return &StatusHandler{pipeline: p}
}

// Get reports whether an active document exists. Consumers poll this
// endpoint, so every layer of caching is disabled explicitly.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.pipeline.Status(r.Context())
	if err != nil {
		writePipelineError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	writeJSON(w, http.StatusOK, status)
}
