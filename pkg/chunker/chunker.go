package chunker

import (
	"fmt"

	"github.com/fededelrincon/docchat/pkg/tokenizer"
)

// Chunker splits text into overlapping fixed-size token windows. Consecutive
// windows share exactly Overlap tokens when both are full-length.
type Chunker struct {
	tok       tokenizer.Tokenizer
	chunkSize int
	overlap   int
}

// New validates the window parameters up front. An overlap >= chunkSize would
// produce a non-advancing step, so it is rejected before any chunking runs.
func New(tok tokenizer.Tokenizer, chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap <= 0 {
		return nil, fmt.Errorf("chunk overlap must be positive, got %d", overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", overlap, chunkSize)
	}
	return &Chunker{tok: tok, chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk tokenizes the full text and slices it into windows of up to chunkSize
// tokens, advancing by chunkSize-overlap each step. Each window is decoded
// back to text independently; boundary tokens may decode slightly differently
// without their surrounding context. Empty text yields zero chunks.
func (c *Chunker) Chunk(text string) []string {
	tokens := c.tok.Encode(text)
	if len(tokens) == 0 {
		return nil
	}

	step := c.chunkSize - c.overlap
	var chunks []string
	for start := 0; start < len(tokens); start += step {
		end := start + c.chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, c.tok.Decode(tokens[start:end]))
	}
	return chunks
}

// ChunkSize reports the configured window size in tokens.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap reports the configured window overlap in tokens.
func (c *Chunker) Overlap() int { return c.overlap }
