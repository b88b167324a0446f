package rag

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure so the transport layer can map it to a
// status code without string matching.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindExtraction    Kind = "extraction"
	KindEmptyChunkSet Kind = "empty_chunk_set"
	KindEmbedding     Kind = "embedding"
	KindLLM           Kind = "llm"
	KindStore         Kind = "store_unavailable"
)

// Error is a pipeline failure tagged with its stage. Failures are terminal
// for the request; nothing in the pipeline retries.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the failure kind, or "" for untagged errors.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
