package embedding

import (
	"context"
	"fmt"

	"github.com/fededelrincon/docchat/internal/llm"
)

// Dimension is fixed by the embedding model; text-embedding-3-small emits
// 1536-dimensional vectors and every record in the store must match.
const Dimension = 1536

// Embedder maps text to a fixed-dimensionality vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Service generates embeddings through the LLM gateway, one call per text.
// Each chunk embeds independently so a failure is attributable to the chunk
// that caused it.
type Service struct {
	gateway llm.Gateway
	model   string
}

func NewService(gw llm.Gateway, model string) *Service {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &Service{gateway: gw, model: model}
}

func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.gateway.Embed(ctx, llm.EmbeddingRequest{
		Model: s.model,
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for input")
	}

	vec := resp.Embeddings[0]
	if len(vec) != Dimension {
		return nil, fmt.Errorf("unexpected embedding dimension %d, want %d", len(vec), Dimension)
	}
	return vec, nil
}
