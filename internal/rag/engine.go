package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_clients.go -package=mocks supportsphere/internal/rag Embedder,Generator

import (
	"context"
	"fmt"

	"supportsphere/internal/contextutil"
	"supportsphere/internal/vectorstore"
)

// Embedder turns free text into fixed-length dense vectors.
// This interface is defined from the engine's perspective (consumer-first).
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces answer text from a fully rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine provides retrieval-augmented question answering.
type Engine interface {
	// Answer retrieves relevant support snippets for the question and
	// generates a tone-adjusted step-by-step answer from them.
	Answer(ctx context.Context, req AskRequest) (AskResponse, error)
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	embedder        Embedder
	index           vectorstore.Index
	generator       Generator
	namespace       string
	topK            int
	maxContextChars int
}

// NewEngine creates a new RAG engine. The embedder, index and generator are
// expensive collaborators constructed once per process; the engine itself
// holds no per-request state and is safe to share.
func NewEngine(embedder Embedder, index vectorstore.Index, generator Generator, namespace string, topK, maxContextChars int) Engine {
	return &ragEngine{
		embedder:        embedder,
		index:           index,
		generator:       generator,
		namespace:       namespace,
		topK:            topK,
		maxContextChars: maxContextChars,
	}
}

// Answer runs the pipeline strictly in sequence: embed the question, query
// the vector index, assemble the bounded context, build the prompt, generate.
// There is no retry or fallback anywhere; retrieval and generation failures
// propagate to the caller unmodified, wrapped with position only.
func (e *ragEngine) Answer(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	logger.InfoContext(ctx, "answering question", "question_length", len(req.Question), "tone", req.Tone)

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{req.Question})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed question", "error", err)
		return AskResponse{}, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(embeddings) == 0 {
		return AskResponse{}, fmt.Errorf("no embedding returned for question")
	}
	queryVector := embeddings[0]

	docs, err := e.index.Query(ctx, queryVector, e.topK, e.namespace)
	if err != nil {
		logger.ErrorContext(ctx, "failed to query vector index", "error", err)
		return AskResponse{}, fmt.Errorf("failed to query vector index: %w", err)
	}
	logger.InfoContext(ctx, "retrieval completed", "docs", len(docs), "top_k", e.topK)

	contextText := BuildContext(docs, e.maxContextChars)
	logger.DebugContext(ctx, "context assembled", "context_length", len(contextText), "max_chars", e.maxContextChars)

	prompt := BuildPrompt(req.Question, contextText, req.Tone)

	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		return AskResponse{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	logger.InfoContext(ctx, "answer generated", "answer_length", len(answer), "docs_used", len(docs))

	// Docs is the exact snapshot the context was built from, so an
	// escalation of this answer logs the evidence that produced it.
	return AskResponse{
		Answer: answer,
		Docs:   docs,
	}, nil
}
