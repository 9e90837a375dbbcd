package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"supportsphere/internal/contextutil"
)

// QdrantIndex implements Index using Qdrant. Snippets are stored with their
// full question/answer text in the point payload, so a query result is
// self-contained and needs no secondary lookup.
type QdrantIndex struct {
	client     *qdrant.Client
	collection string
}

// NewQdrantIndex creates a new Qdrant-backed index client.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port (typically 6334) is derived from the HTTP port.
func NewQdrantIndex(urlStr, apiKey, collection string) (*QdrantIndex, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	// Extract port from URL, default to the standard gRPC port.
	port := 6334
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			// gRPC port is typically HTTP port + 1
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsedURL.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantIndex{
		client:     client,
		collection: collection,
	}, nil
}

// Query performs a cosine similarity search scoped to a namespace.
// Qdrant has no Pinecone-style namespaces, so the namespace is a payload
// field on every point and a must-match filter on every query.
func (s *QdrantIndex) Query(ctx context.Context, vector []float32, topK int, namespace string) ([]Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if topK <= 0 {
		return nil, fmt.Errorf("topK must be greater than 0")
	}

	limit := uint64(topK)
	queryReq := &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if namespace != "" {
		queryReq.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("namespace", namespace),
			},
		}
	}

	scoredPoints, err := s.client.Query(ctx, queryReq)
	if err != nil {
		logger.ErrorContext(ctx, "failed to query points", "collection", s.collection, "top_k", topK, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Qdrant already returns points in descending score order; the mapping
	// below preserves it, which is the ordering contract callers rely on.
	docs := make([]Document, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		docs = append(docs, documentFromPayload(point.Payload, point.Score))
	}

	logger.InfoContext(ctx, "query completed", "collection", s.collection, "top_k", topK, "results", len(docs))
	return docs, nil
}

// Upsert inserts or updates points in the collection.
func (s *QdrantIndex) Upsert(ctx context.Context, namespace string, points []Point) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, 0, len(points))
	for _, point := range points {
		qdrantPoints = append(qdrantPoints, &qdrant.PointStruct{
			Id:      qdrant.NewID(point.ID),
			Vectors: qdrant.NewVectors(point.Vec...),
			Payload: qdrant.NewValueMap(map[string]any{
				"question":  point.Question,
				"answer":    point.Answer,
				"row_id":    point.RowID,
				"chunk_id":  point.ChunkID,
				"namespace": namespace,
			}),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", s.collection, "count", len(points), "error", err)
		return fmt.Errorf("%w: failed to upsert points: %v", ErrUnavailable, err)
	}

	logger.InfoContext(ctx, "upserted points", "collection", s.collection, "count", len(points))
	return nil
}

// CollectionExists checks if the configured collection exists.
func (s *QdrantIndex) CollectionExists(ctx context.Context) (bool, error) {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return false, fmt.Errorf("%w: failed to check collection existence: %v", ErrUnavailable, err)
	}
	return exists, nil
}

// EnsureCollection ensures the collection exists with the specified vector size.
// If the collection exists, validates that the vector size matches.
// If it doesn't exist, creates it with cosine distance.
func (s *QdrantIndex) EnsureCollection(ctx context.Context, vectorSize int) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.CollectionExists(ctx)
	if err != nil {
		return err
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", s.collection, "vector_size", vectorSize)
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		logger.InfoContext(ctx, "collection created", "collection", s.collection, "vector_size", vectorSize)
		return nil
	}

	info, err := s.client.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to get collection info: %w", err)
	}

	config := info.Config
	if config == nil || config.Params == nil {
		return fmt.Errorf("collection config is invalid")
	}

	vectorsConfig := config.Params.GetVectorsConfig()
	if vectorsConfig == nil {
		return fmt.Errorf("collection vectors config is invalid")
	}

	params := vectorsConfig.GetParams()
	if params == nil {
		return fmt.Errorf("collection vector params are invalid")
	}

	actualSize := params.Size
	if actualSize == 0 {
		return fmt.Errorf("could not determine collection vector size")
	}

	if int(actualSize) != vectorSize {
		return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, actualSize)
	}

	logger.InfoContext(ctx, "collection validated", "collection", s.collection, "vector_size", vectorSize)
	return nil
}

// documentFromPayload maps a Qdrant payload to a Document.
// Missing or mistyped fields default to empty string / nil rather than erroring.
func documentFromPayload(payload map[string]*qdrant.Value, score float32) Document {
	doc := Document{Score: score}
	if payload == nil {
		return doc
	}

	if v, ok := payload["question"]; ok {
		doc.Question = v.GetStringValue()
	}
	if v, ok := payload["answer"]; ok {
		doc.Answer = v.GetStringValue()
	}
	if v, ok := payload["row_id"]; ok {
		if _, isInt := v.Kind.(*qdrant.Value_IntegerValue); isInt {
			rowID := v.GetIntegerValue()
			doc.RowID = &rowID
		}
	}
	if v, ok := payload["chunk_id"]; ok {
		if _, isInt := v.Kind.(*qdrant.Value_IntegerValue); isInt {
			chunkID := v.GetIntegerValue()
			doc.ChunkID = &chunkID
		}
	}
	return doc
}
