package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg, _ := Load()
	cfg.Database.URL = "postgres://localhost/docchat"
	cfg.LLM.OpenAIKey = "sk-test"
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 400, cfg.Pipeline.ChunkSize)
	assert.Equal(t, 80, cfg.Pipeline.ChunkOverlap)
	assert.Equal(t, int64(10485760), cfg.Pipeline.MaxFileSize)
	assert.Equal(t, 256, cfg.Pipeline.MaxResponseTokens)
	assert.Equal(t, "rag-basico", cfg.Pipeline.Namespace)
	assert.Equal(t, "text-embedding-3-small", cfg.LLM.EmbeddingModel)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.ChatModel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "200")
	t.Setenv("CHUNK_OVERLAP", "50")
	t.Setenv("VECTOR_NAMESPACE", "custom-ns")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Pipeline.ChunkSize)
	assert.Equal(t, 50, cfg.Pipeline.ChunkOverlap)
	assert.Equal(t, "custom-ns", cfg.Pipeline.Namespace)
}

func TestLoad_BadInt(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "four hundred")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_OverlapMustBeSmallerThanChunkSize(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.ChunkSize = 100
	cfg.Pipeline.ChunkOverlap = 100
	assert.ErrorContains(t, cfg.Validate(), "CHUNK_OVERLAP")

	cfg.Pipeline.ChunkOverlap = 150
	assert.ErrorContains(t, cfg.Validate(), "CHUNK_OVERLAP")

	cfg.Pipeline.ChunkOverlap = 20
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Database.URL = ""
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Provider = "cohere"
	assert.ErrorContains(t, cfg.Validate(), "LLM_PROVIDER")
}
