package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"supportsphere/internal/config"
	"supportsphere/internal/ingest"
	"supportsphere/internal/llm"
	"supportsphere/internal/vectorstore"
)

func main() {
	faqsPath := flag.String("faqs", "./data/faqs.json", "path to the FAQ dataset (JSON array of {question, answer})")
	batchSize := flag.Int("batch", 200, "points per embedding/upsert batch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	faqs, err := ingest.LoadFAQs(*faqsPath)
	if err != nil {
		log.Fatalf("Failed to load FAQ dataset: %v", err)
	}
	slog.Info("FAQ dataset loaded", "path", *faqsPath, "rows", len(faqs))

	index, err := vectorstore.NewQdrantIndex(cfg.QdrantURL, cfg.QdrantAPIKey, cfg.QdrantCollection)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.VectorSize)

	pipeline := ingest.NewPipeline(embedder, index, cfg.Namespace, *batchSize)

	stats, err := pipeline.Run(context.Background(), faqs, cfg.VectorSize)
	if err != nil {
		log.Fatalf("Ingestion failed after %d points: %v", stats.Upserted, err)
	}

	slog.Info("Ingestion finished", "faqs", stats.FAQs, "chunks", stats.Chunks, "upserted", stats.Upserted)
}
