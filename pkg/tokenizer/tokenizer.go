package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer converts text to and from the token IDs of a specific model
// vocabulary. Chunk sizing is only meaningful when the vocabulary matches the
// embedding model's tokenization scheme.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
	Count(text string) int
}

type tiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

// ForModel returns a Tokenizer backed by the BPE encoding of the given
// embedding model (cl100k_base for text-embedding-3-small).
func ForModel(model string) (Tokenizer, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("load encoding for model %q: %w", model, err)
	}
	return &tiktokenTokenizer{enc: enc}, nil
}

func (t *tiktokenTokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

func (t *tiktokenTokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

func (t *tiktokenTokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}
