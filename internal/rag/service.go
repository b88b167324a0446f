package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fededelrincon/docchat/internal/embedding"
	"github.com/fededelrincon/docchat/internal/llm"
	"github.com/fededelrincon/docchat/internal/vectorstore"
	"github.com/fededelrincon/docchat/pkg/chunker"
)

const (
	// RefusalAnswer is returned whenever no grounded answer is possible. On
	// the no-match path it is a hard pipeline guarantee; with a match it is a
	// prompt-level instruction to the model.
	RefusalAnswer = "No tengo suficiente información en el documento para responder esa pregunta."

	// FallbackAnswer stands in when the model returns empty content.
	FallbackAnswer = "No se pudo generar una respuesta."
)

// Extractor converts a binary document to plain text.
type Extractor interface {
	Extract(data []byte, filename string) (string, error)
	Supported(filename string) bool
}

// Options are the pipeline knobs fixed at construction.
type Options struct {
	MaxFileSize       int64
	ChatModel         string
	MaxResponseTokens int
	TopK              int
}

// Service is the single-document QA pipeline: Ingest replaces the active
// document, Ask answers against it, Status derives whether one exists.
type Service struct {
	extractor Extractor
	chunker   *chunker.Chunker
	embedder  embedding.Embedder
	store     vectorstore.Store
	gateway   llm.Gateway
	opts      Options
}

func NewService(ex Extractor, ch *chunker.Chunker, em embedding.Embedder, st vectorstore.Store, gw llm.Gateway, opts Options) *Service {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.MaxResponseTokens <= 0 {
		opts.MaxResponseTokens = 256
	}
	return &Service{
		extractor: ex,
		chunker:   ch,
		embedder:  em,
		store:     st,
		gateway:   gw,
		opts:      opts,
	}
}

// IngestResult describes a stored document.
type IngestResult struct {
	DocumentID   string `json:"documentId"`
	Filename     string `json:"filename"`
	ChunksStored int    `json:"chunks"`
}

// Answer is the result of one grounded question.
type Answer struct {
	Answer      string  `json:"answer"`
	Similarity  float64 `json:"similarity"`
	SourceChunk string  `json:"chunk"`
}

// SearchResult is one retrieved chunk, derived per query and never persisted.
type SearchResult struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunkIndex"`
}

// DocumentStatus describes the active document as derived from the store.
type DocumentStatus struct {
	Filename    string `json:"filename"`
	TotalChunks int    `json:"chunks"`
	UploadedAt  string `json:"uploadedAt"`
}

// Status reports whether an active document exists.
type Status struct {
	HasDocument bool            `json:"hasDocument"`
	Document    *DocumentStatus `json:"documentInfo"`
}

// Ingest validates and extracts the upload, wipes the previous document's
// vectors, then chunks, embeds and stores the new one. Extraction failures
// happen before the destructive clear so a bad upload never loses the prior
// document. After a successful clear and before the upsert returns, status
// reads observe "no document"; that window is accepted.
func (s *Service) Ingest(ctx context.Context, data []byte, filename string) (*IngestResult, error) {
	if len(data) == 0 {
		return nil, newError(KindValidation, "no file provided")
	}
	if !s.extractor.Supported(filename) {
		return nil, newError(KindValidation, "unsupported file type: %s", filename)
	}
	if int64(len(data)) > s.opts.MaxFileSize {
		return nil, newError(KindValidation, "file size %d exceeds limit of %d bytes", len(data), s.opts.MaxFileSize)
	}

	text, err := s.extractor.Extract(data, filename)
	if err != nil {
		return nil, &Error{Kind: KindExtraction, Err: fmt.Errorf("extract text: %w", err)}
	}
	if strings.TrimSpace(text) == "" {
		return nil, newError(KindExtraction, "no text could be extracted from the document")
	}

	if err := s.store.Clear(ctx); err != nil {
		return nil, &Error{Kind: KindStore, Err: fmt.Errorf("clear previous document: %w", err)}
	}

	chunks := s.chunker.Chunk(text)
	if len(chunks) == 0 {
		return nil, newError(KindEmptyChunkSet, "no chunks could be generated from the text")
	}

	documentID := newDocumentID()
	timestamp := time.Now().UTC().Format(time.RFC3339)

	records := make([]vectorstore.Record, len(chunks))
	for i, chunk := range chunks {
		vec, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return nil, &Error{Kind: KindEmbedding, Err: fmt.Errorf("embed chunk %d: %w", i, err)}
		}
		records[i] = vectorstore.Record{
			ID:        fmt.Sprintf("%s_chunk_%d", documentID, i),
			Embedding: vec,
			Metadata: vectorstore.Metadata{
				Text:        chunk,
				Filename:    filename,
				ChunkIndex:  i,
				DocumentID:  documentID,
				Timestamp:   timestamp,
				TotalChunks: len(chunks),
			},
		}
	}

	if err := s.store.Upsert(ctx, records); err != nil {
		return nil, &Error{Kind: KindStore, Err: fmt.Errorf("store embeddings: %w", err)}
	}

	return &IngestResult{
		DocumentID:   documentID,
		Filename:     filename,
		ChunksStored: len(records),
	}, nil
}

// Retrieve embeds the query and returns the top-K most similar chunks.
// Records with partial metadata come back with zero-valued fields rather
// than failing the read.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	if topK <= 0 {
		topK = s.opts.TopK
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &Error{Kind: KindEmbedding, Err: fmt.Errorf("embed query: %w", err)}
	}

	matches, err := s.store.Query(ctx, vec, topK)
	if err != nil {
		return nil, &Error{Kind: KindStore, Err: fmt.Errorf("search chunks: %w", err)}
	}

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Text:       m.Metadata.Text,
			Similarity: m.Score,
			Filename:   m.Metadata.Filename,
			ChunkIndex: m.Metadata.ChunkIndex,
		}
	}
	return results, nil
}

// Ask retrieves the best-matching chunk and asks the chat model to answer
// strictly from it. With zero matches the fixed refusal is returned directly
// and no model call is made.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, newError(KindValidation, "message is required")
	}

	results, err := s.Retrieve(ctx, question, s.opts.TopK)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return &Answer{
			Answer:      RefusalAnswer,
			Similarity:  0,
			SourceChunk: "",
		}, nil
	}

	best := results[0]

	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Model: s.opts.ChatModel,
		Messages: []llm.Message{
			{
				Role:    "system",
				Content: "You are a helpful assistant that answers questions based on provided document context. Always respond in Spanish.",
			},
			{
				Role:    "user",
				Content: buildPrompt(question, best.Text),
			},
		},
		MaxTokens:   s.opts.MaxResponseTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, &Error{Kind: KindLLM, Err: fmt.Errorf("generate answer: %w", err)}
	}

	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		answer = FallbackAnswer
	}

	return &Answer{
		Answer:      answer,
		Similarity:  best.Similarity,
		SourceChunk: best.Text,
	}, nil
}

// Status probes the namespace with a zero vector: any match implies a
// document, since the namespace holds at most one document's chunks. A match
// missing filename or chunk count is reported as no document so consumers
// never act on a partial write.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	probe := make([]float32, embedding.Dimension)

	matches, err := s.store.Query(ctx, probe, 1)
	if err != nil {
		return nil, &Error{Kind: KindStore, Err: fmt.Errorf("probe namespace: %w", err)}
	}
	if len(matches) == 0 {
		return &Status{HasDocument: false}, nil
	}

	md := matches[0].Metadata
	if md.Filename == "" || md.TotalChunks == 0 {
		return &Status{HasDocument: false}, nil
	}

	uploadedAt := md.Timestamp
	if uploadedAt == "" {
		uploadedAt = time.Now().UTC().Format(time.RFC3339)
	}

	return &Status{
		HasDocument: true,
		Document: &DocumentStatus{
			Filename:    md.Filename,
			TotalChunks: md.TotalChunks,
			UploadedAt:  uploadedAt,
		},
	}, nil
}

func buildPrompt(question, context string) string {
	return fmt.Sprintf(`Based on the following context, answer the user's question. If the context doesn't contain enough information to answer the question, respond with %q

Context: %s

Question: %s

Answer:`, RefusalAnswer, context, question)
}

// newDocumentID combines a millisecond timestamp with a random suffix so
// replaced documents never collide.
func newDocumentID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("doc_%d_%s", time.Now().UnixMilli(), suffix)
}
