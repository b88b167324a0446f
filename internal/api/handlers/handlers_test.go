package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fededelrincon/docchat/internal/rag"
)

type mockPipeline struct {
	ingestResult *rag.IngestResult
	ingestErr    error
	answer       *rag.Answer
	askErr       error
	status       *rag.Status
	statusErr    error

	lastFilename string
	lastQuestion string
}

func (m *mockPipeline) Ingest(_ context.Context, data []byte, filename string) (*rag.IngestResult, error) {
	m.lastFilename = filename
	return m.ingestResult, m.ingestErr
}

func (m *mockPipeline) Ask(_ context.Context, question string) (*rag.Answer, error) {
	m.lastQuestion = question
	return m.answer, m.askErr
}

func (m *mockPipeline) Status(_ context.Context) (*rag.Status, error) {
	return m.status, m.statusErr
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload_Success(t *testing.T) {
	mock := &mockPipeline{ingestResult: &rag.IngestResult{
		DocumentID:   "doc_1_abc",
		Filename:     "report.pdf",
		ChunksStored: 3,
	}}
	h := NewDocumentHandler(mock, 1<<20)

	body, contentType := multipartBody(t, "report.pdf", "fake pdf bytes")
	r := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.Upload(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "report.pdf", mock.lastFilename)

	var out struct {
		Success      bool `json:"success"`
		DocumentInfo struct {
			Filename   string `json:"filename"`
			Chunks     int    `json:"chunks"`
			DocumentID string `json:"documentId"`
		} `json:"documentInfo"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, 3, out.DocumentInfo.Chunks)
	assert.Equal(t, "doc_1_abc", out.DocumentInfo.DocumentID)
}

func TestUpload_MissingFile(t *testing.T) {
	h := NewDocumentHandler(&mockPipeline{}, 1<<20)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())
	r := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.Upload(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpload_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		kind rag.Kind
		want int
	}{
		{rag.KindValidation, http.StatusBadRequest},
		{rag.KindExtraction, http.StatusBadRequest},
		{rag.KindEmptyChunkSet, http.StatusBadRequest},
		{rag.KindEmbedding, http.StatusBadGateway},
		{rag.KindStore, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			mock := &mockPipeline{ingestErr: &rag.Error{Kind: tc.kind, Err: assert.AnError}}
			h := NewDocumentHandler(mock, 1<<20)

			body, contentType := multipartBody(t, "doc.pdf", "data")
			r := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
			r.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			h.Upload(w, r)

			assert.Equal(t, tc.want, w.Code)
			var out struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
			assert.False(t, out.Success)
			assert.NotEmpty(t, out.Error)
		})
	}
}

func TestAsk_ReturnsAnswer(t *testing.T) {
	mock := &mockPipeline{answer: &rag.Answer{
		Answer:      "El cielo es azul.",
		Similarity:  0.87,
		SourceChunk: "The sky is blue.",
	}}
	h := NewChatHandler(mock)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"message":"What color is the sky?"}`))
	w := httptest.NewRecorder()
	h.Ask(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "What color is the sky?", mock.lastQuestion)

	var out rag.Answer
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Equal(t, "El cielo es azul.", out.Answer)
	assert.InDelta(t, 0.87, out.Similarity, 1e-9)
}

func TestAsk_InvalidBody(t *testing.T) {
	h := NewChatHandler(&mockPipeline{})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	h.Ask(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatus_SetsNoCacheHeaders(t *testing.T) {
	mock := &mockPipeline{status: &rag.Status{
		HasDocument: true,
		Document: &rag.DocumentStatus{
			Filename:    "report.pdf",
			TotalChunks: 12,
			UploadedAt:  "2026-08-27T10:00:00Z",
		},
	}}
	h := NewStatusHandler(mock)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	h.Get(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	assert.Equal(t, "0", w.Header().Get("Expires"))

	var out rag.Status
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.True(t, out.HasDocument)
	require.NotNil(t, out.Document)
	assert.Equal(t, "report.pdf", out.Document.Filename)
}

func TestStatus_NoDocument(t *testing.T) {
	h := NewStatusHandler(&mockPipeline{status: &rag.Status{HasDocument: false}})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	h.Get(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var out rag.Status
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.False(t, out.HasDocument)
	assert.Nil(t, out.Document)
}
