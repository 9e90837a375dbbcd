package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_index.go -package=mocks supportsphere/internal/vectorstore Index

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the vector index cannot be reached or the
// configured collection does not exist. It is never retried here: without
// retrieval no answer can be produced, so it propagates as a hard failure.
var ErrUnavailable = errors.New("vector index unavailable")

// Document is one retrieved support snippet. Ordering in a query result is by
// descending similarity score; ties keep the index-internal order. RowID and
// ChunkID are nil when the stored payload lacks them.
type Document struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	RowID    *int64  `json:"row_id"`
	ChunkID  *int64  `json:"chunk_id"`
	Score    float32 `json:"score"`
}

// Point represents a vector point with its payload, as written by ingestion.
type Point struct {
	ID       string
	Vec      []float32
	Question string
	Answer   string
	RowID    int64
	ChunkID  int64
}

// Index defines the query surface the RAG engine depends on.
type Index interface {
	// Query returns up to topK documents nearest to the given vector within
	// the namespace, ranked by descending cosine similarity.
	Query(ctx context.Context, vector []float32, topK int, namespace string) ([]Document, error)
}
