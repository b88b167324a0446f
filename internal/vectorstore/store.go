package vectorstore

import "context"

// Metadata is the payload stored alongside each vector. The shape mirrors
// what retrieval and status reads need; missing fields unmarshal to zero
// values rather than failing.
type Metadata struct {
	Text        string `json:"text"`
	Filename    string `json:"filename"`
	ChunkIndex  int    `json:"chunkIndex"`
	DocumentID  string `json:"documentId"`
	Timestamp   string `json:"timestamp"`
	TotalChunks int    `json:"totalChunks"`
}

// Record is the persisted unit: one embedded chunk keyed by
// "{documentId}_chunk_{chunkIndex}".
type Record struct {
	ID        string
	Embedding []float32
	Metadata  Metadata
}

// Match is one similarity-query hit, scored in descending order.
type Match struct {
	ID       string
	Score    float64
	Metadata Metadata
}

// Store is a single-namespace vector collection. Upsert is idempotent by ID
// with last-write-wins; Clear wipes the whole namespace and is the only
// delete operation — the system keeps at most one document's chunks, so
// replace is modeled as clear-then-insert.
type Store interface {
	Upsert(ctx context.Context, records []Record) error
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
	Clear(ctx context.Context) error
}
