package handlers

import (
	"io"
	"net/http"
)

type DocumentHandler struct {
	pipeline    Pipeline
	maxFileSize int64
}

func NewDocumentHandler(p Pipeline, maxFileSize int64) *DocumentHandler {
	return &DocumentHandler{pipeline: p, maxFileSize: maxFileSize}
}

// Upload ingests a multipart file as the new active document, replacing
// whatever was stored before.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Cap the form parse slightly above the pipeline limit; the pipeline
	// reports its own, friendlier error for oversized content.
	if err := r.ParseMultipartForm(h.maxFileSize + 1024); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read uploaded file: "+err.Error())
		return
	}

	result, err := h.pipeline.Ingest(r.Context(), data, header.Filename)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Document processed successfully",
		"documentInfo": map[string]interface{}{
			"filename":   result.Filename,
			"chunks":     result.ChunksStored,
			"documentId": result.DocumentID,
		},
	})
}
