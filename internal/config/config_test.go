package config

import (
	"log/slog"
	"os"
	"testing"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	envVars := []string{
		"QDRANT_URL", "QDRANT_API_KEY", "QDRANT_COLLECTION", "QDRANT_NAMESPACE",
		"QDRANT_VECTOR_SIZE", "EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME",
		"GENERATOR_BASE_URL", "GENERATOR_MODEL_NAME", "LLM_API_KEY",
		"TOP_K", "MAX_CONTEXT_CHARS", "ESCALATION_LOG", "API_PORT",
		"LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func()
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "valid config with required fields",
			setupEnv: func() {
				setEnv("QDRANT_API_KEY", "secret")
				setEnv("QDRANT_VECTOR_SIZE", "384")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.QdrantAPIKey == "secret" && cfg.VectorSize == 384
			},
		},
		{
			name: "default values for optional fields",
			setupEnv: func() {
				setEnv("QDRANT_API_KEY", "secret")
				setEnv("QDRANT_VECTOR_SIZE", "384")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.QdrantCollection == "supportsphere-better" &&
					cfg.Namespace == "support" &&
					cfg.TopK == 5 &&
					cfg.MaxContextChars == 1200 &&
					cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo
			},
		},
		{
			name: "missing QDRANT_API_KEY",
			setupEnv: func() {
				setEnv("QDRANT_VECTOR_SIZE", "384")
			},
			wantErr: true,
		},
		{
			name: "missing QDRANT_VECTOR_SIZE",
			setupEnv: func() {
				setEnv("QDRANT_API_KEY", "secret")
			},
			wantErr: true,
		},
		{
			name: "invalid QDRANT_VECTOR_SIZE",
			setupEnv: func() {
				setEnv("QDRANT_API_KEY", "secret")
				setEnv("QDRANT_VECTOR_SIZE", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero QDRANT_VECTOR_SIZE",
			setupEnv: func() {
				setEnv("QDRANT_API_KEY", "secret")
				setEnv("QDRANT_VECTOR_SIZE", "0")
			},
			wantErr: true,
		},
		{
			name: "negative TOP_K",
			setupEnv: func() {
				setEnv("QDRANT_API_KEY", "secret")
				setEnv("QDRANT_VECTOR_SIZE", "384")
				setEnv("TOP_K", "-2")
			},
			wantErr: true,
		},
		{
			name: "invalid MAX_CONTEXT_CHARS",
			setupEnv: func() {
				setEnv("QDRANT_API_KEY", "secret")
				setEnv("QDRANT_VECTOR_SIZE", "384")
				setEnv("MAX_CONTEXT_CHARS", "lots")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_LEVEL",
			setupEnv: func() {
				setEnv("QDRANT_API_KEY", "secret")
				setEnv("QDRANT_VECTOR_SIZE", "384")
				setEnv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
		{
			name: "custom retrieval settings",
			setupEnv: func() {
				setEnv("QDRANT_API_KEY", "secret")
				setEnv("QDRANT_VECTOR_SIZE", "768")
				setEnv("TOP_K", "8")
				setEnv("MAX_CONTEXT_CHARS", "2000")
				setEnv("LOG_LEVEL", "debug")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.TopK == 8 && cfg.MaxContextChars == 2000 && cfg.LogLevel == slog.LevelDebug
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				unsetEnv(key)
			}
			tt.setupEnv()

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config check failed: %+v", cfg)
			}
		})
	}
}
