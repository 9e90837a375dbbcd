// Package ingest populates the vector index from a FAQ dataset. It is the
// one-shot batch job whose output contract the query path depends on:
// points carrying {question, answer, row_id, chunk_id, namespace} payloads
// in a cosine-distance collection.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"supportsphere/internal/contextutil"
	"supportsphere/internal/vectorstore"
)

// FAQ is one question/answer record of the source dataset.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Embedder turns chunk texts into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Store is the write surface of the vector index used by ingestion.
type Store interface {
	Upsert(ctx context.Context, namespace string, points []vectorstore.Point) error
	EnsureCollection(ctx context.Context, vectorSize int) error
}

// Stats summarizes one ingestion run.
type Stats struct {
	FAQs     int
	Chunks   int
	Upserted int
}

// Pipeline orchestrates chunking, embedding and upserting of FAQ records.
type Pipeline struct {
	embedder   Embedder
	store      Store
	namespace  string
	chunkWords int
	batchSize  int
}

// NewPipeline creates a new ingestion pipeline. batchSize bounds both the
// embedding request size and the upsert size per round trip.
func NewPipeline(embedder Embedder, store Store, namespace string, batchSize int) *Pipeline {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &Pipeline{
		embedder:   embedder,
		store:      store,
		namespace:  namespace,
		chunkWords: DefaultChunkWords,
		batchSize:  batchSize,
	}
}

// LoadFAQs reads a JSON array of {question, answer} records from path.
func LoadFAQs(path string) ([]FAQ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ file: %w", err)
	}
	var faqs []FAQ
	if err := json.Unmarshal(data, &faqs); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ file: %w", err)
	}
	return faqs, nil
}

// Run ensures the collection exists, then chunks, embeds and upserts every
// FAQ record. Point IDs are derived deterministically from (row_id, chunk_id)
// so re-running ingestion updates points in place instead of duplicating them.
func (p *Pipeline) Run(ctx context.Context, faqs []FAQ, vectorSize int) (Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	stats := Stats{FAQs: len(faqs)}

	if err := p.store.EnsureCollection(ctx, vectorSize); err != nil {
		return stats, fmt.Errorf("failed to ensure collection: %w", err)
	}

	var batch []vectorstore.Point
	var texts []string

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch: %w", err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("expected %d vectors, got %d", len(batch), len(vectors))
		}
		for i := range batch {
			batch[i].Vec = vectors[i]
		}
		if err := p.store.Upsert(ctx, p.namespace, batch); err != nil {
			return fmt.Errorf("failed to upsert batch: %w", err)
		}
		stats.Upserted += len(batch)
		logger.InfoContext(ctx, "batch upserted", "count", len(batch), "total", stats.Upserted)
		batch = batch[:0]
		texts = texts[:0]
		return nil
	}

	for rowID, faq := range faqs {
		for chunkID, chunk := range ChunkWords(faq.Answer, p.chunkWords) {
			stats.Chunks++
			batch = append(batch, vectorstore.Point{
				ID:       pointID(rowID, chunkID),
				Question: faq.Question,
				Answer:   chunk,
				RowID:    int64(rowID),
				ChunkID:  int64(chunkID),
			})
			// The chunk text is what gets embedded; the full question
			// rides along in the payload for display and escalation.
			texts = append(texts, chunk)

			if len(batch) == p.batchSize {
				if err := flush(); err != nil {
					return stats, err
				}
			}
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}

	logger.InfoContext(ctx, "ingestion completed", "faqs", stats.FAQs, "chunks", stats.Chunks, "upserted", stats.Upserted)
	return stats, nil
}

// pointID derives a stable UUID from the row and chunk ids.
func pointID(rowID, chunkID int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d-%d", rowID, chunkID))).String()
}
