package llm

import (
	"context"
	"fmt"

	"github.com/fededelrincon/docchat/internal/config"
)

type gateway struct {
	providers    map[string]Provider
	chatProvider string
}

// NewGateway wires the configured providers. Chat goes to cfg.Provider;
// embeddings always go to OpenAI, the only configured embedding backend.
func NewGateway(cfg config.LLMConfig) Gateway {
	g := &gateway{
		providers:    make(map[string]Provider),
		chatProvider: cfg.Provider,
	}

	if cfg.OpenAIKey != "" {
		g.providers["openai"] = NewOpenAIProvider(cfg.OpenAIKey)
	}
	if cfg.AnthropicKey != "" {
		g.providers["anthropic"] = NewAnthropicProvider(cfg.AnthropicKey)
	}

	return g
}

func (g *gateway) provider(name string) (Provider, error) {
	p, ok := g.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not configured", name)
	}
	return p, nil
}

func (g *gateway) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	p, err := g.provider(g.chatProvider)
	if err != nil {
		return nil, err
	}
	return p.ChatCompletion(ctx, req)
}

func (g *gateway) Embed(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	p, err := g.provider("openai")
	if err != nil {
		return nil, err
	}
	return p.GenerateEmbedding(ctx, req)
}
