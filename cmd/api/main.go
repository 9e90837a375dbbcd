package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"supportsphere/internal/config"
	"supportsphere/internal/escalation"
	"supportsphere/internal/http"
	"supportsphere/internal/llm"
	"supportsphere/internal/rag"
	"supportsphere/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level). A missing credential
	// or vector size aborts here: the process cannot serve any question.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx := context.Background()

	index, err := vectorstore.NewQdrantIndex(cfg.QdrantURL, cfg.QdrantAPIKey, cfg.QdrantCollection)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	exists, err := index.CollectionExists(ctx)
	if err != nil {
		log.Fatalf("Failed to reach Qdrant: %v", err)
	}
	if !exists {
		log.Fatalf("Qdrant collection %q does not exist; run cmd/ingest first", cfg.QdrantCollection)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "namespace", cfg.Namespace)

	// Validate the embedding backend fail-fast: a dimension mismatch or an
	// unreachable model server should kill the process at startup, not the
	// first user question.
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.VectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.VectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d", cfg.VectorSize)
	}
	slog.Info("Embedding client validated", "model", cfg.EmbeddingModel, "vector_size", cfg.VectorSize)

	generator := llm.NewGeneratorClient(cfg.GeneratorBaseURL, cfg.LLMAPIKey, cfg.GeneratorModel)

	// One engine instance for the whole process; every request handler
	// shares it by reference.
	engine := rag.NewEngine(embedder, index, generator, cfg.Namespace, cfg.TopK, cfg.MaxContextChars)
	slog.Info("RAG engine initialized", "top_k", cfg.TopK, "max_context_chars", cfg.MaxContextChars)

	escalationLogger := escalation.NewLogger(cfg.EscalationLogPath)
	slog.Info("Escalation log configured", "path", cfg.EscalationLogPath)

	deps := &http.Deps{
		Engine:           engine,
		EscalationLogger: escalationLogger,
		HealthChecker:    index,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("Generator configuration", "base_url", cfg.GeneratorBaseURL, "model", cfg.GeneratorModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
