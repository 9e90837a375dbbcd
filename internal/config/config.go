package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	QdrantURL         string
	QdrantAPIKey      string
	QdrantCollection  string
	Namespace         string
	VectorSize        int
	EmbeddingBaseURL  string
	EmbeddingModel    string
	GeneratorBaseURL  string
	GeneratorModel    string
	LLMAPIKey         string
	TopK              int
	MaxContextChars   int
	EscalationLogPath string
	APIPort           string
	LogLevel          slog.Level
	LogFormat         string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it is loaded
// automatically; variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up toward the project root looking for a .env file.
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "supportsphere-better"),
		Namespace:        getEnv("QDRANT_NAMESPACE", "support"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL_NAME", "paraphrase-MiniLM-L3-v2"),
		GeneratorBaseURL: getEnv("GENERATOR_BASE_URL", "http://localhost:8080"),
		GeneratorModel:   getEnv("GENERATOR_MODEL_NAME", "flan-t5-large"),
		LLMAPIKey:        getEnv("LLM_API_KEY", "dummy-key"),
		// The escalation log lives next to the process by default; the
		// directory is created on first write.
		EscalationLogPath: getEnv("ESCALATION_LOG", "./logs/escalations.csv"),
		APIPort:           getEnv("API_PORT", "9000"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
	}

	// The vector index credential is the one setting the process cannot
	// serve a single question without.
	if cfg.QdrantAPIKey == "" {
		return nil, fmt.Errorf("QDRANT_API_KEY is required")
	}

	// Must match the output vector size of the embedding model. If the
	// embedding model changes, the Qdrant collection must be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.VectorSize = vectorSize

	topK, err := getEnvInt("TOP_K", 5)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, fmt.Errorf("TOP_K must be greater than 0")
	}
	cfg.TopK = topK

	maxChars, err := getEnvInt("MAX_CONTEXT_CHARS", 1200)
	if err != nil {
		return nil, err
	}
	if maxChars <= 0 {
		return nil, fmt.Errorf("MAX_CONTEXT_CHARS must be greater than 0")
	}
	cfg.MaxContextChars = maxChars

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

// parseLogLevel converts a level name to a slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", level)
	}
}
