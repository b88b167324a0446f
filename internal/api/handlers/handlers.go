package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fededelrincon/docchat/internal/rag"
)

// Pipeline is the surface handlers need from the QA service.
type Pipeline interface {
	Ingest(ctx context.Context, data []byte, filename string) (*rag.IngestResult, error)
	Ask(ctx context.Context, question string) (*rag.Answer, error)
	Status(ctx context.Context) (*rag.Status, error)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": msg})
}

// writePipelineError maps a pipeline failure kind to an HTTP status. All
// failures come back in the same {success:false, error} shape.
func writePipelineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch rag.KindOf(err) {
	case rag.KindValidation, rag.KindExtraction, rag.KindEmptyChunkSet:
		status = http.StatusBadRequest
	case rag.KindEmbedding, rag.KindLLM:
		status = http.StatusBadGateway
	case rag.KindStore:
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, err.Error())
}
