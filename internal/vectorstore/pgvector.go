package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PgVectorStore keeps one namespace's vectors in a pgvector-typed Postgres
// table. Cosine similarity is reported as 1 - (embedding <=> query).
type PgVectorStore struct {
	db        *pgxpool.Pool
	namespace string
}

func NewPgVectorStore(db *pgxpool.Pool, namespace string) *PgVectorStore {
	return &PgVectorStore{db: db, namespace: namespace}
}

func (s *PgVectorStore) Upsert(ctx context.Context, records []Record) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		metadata, err := json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for %s: %w", r.ID, err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO chunks (id, namespace, embedding, metadata)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE SET namespace = $2, embedding = $3, metadata = $4`,
			r.ID, s.namespace, pgvector.NewVector(r.Embedding), metadata,
		)
		if err != nil {
			return fmt.Errorf("upsert record %s: %w", r.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PgVectorStore) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = 5
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, metadata, 1 - (embedding <=> $1) AS score
		 FROM chunks
		 WHERE namespace = $2
		 ORDER BY embedding <=> $1, id
		 LIMIT $3`,
		pgvector.NewVector(vector), s.namespace, topK,
	)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var metadata []byte
		if err := rows.Scan(&m.ID, &metadata, &m.Score); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		// Partial or corrupt metadata degrades to zero-valued fields.
		_ = json.Unmarshal(metadata, &m.Metadata)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read matches: %w", err)
	}
	return matches, nil
}

func (s *PgVectorStore) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM chunks WHERE namespace = $1", s.namespace); err != nil {
		return fmt.Errorf("clear namespace %s: %w", s.namespace, err)
	}
	return nil
}
