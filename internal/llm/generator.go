package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrGenerationFailed is returned when the generation backend raises or
// returns malformed output. Callers can match it with errors.Is.
var ErrGenerationFailed = errors.New("generation failed")

// Decoding hyperparameters for the seq2seq generation backend. These are
// fixed: the prompt template is tuned against them and the answer length
// budget assumes them. Changing them is a model change, not a config change.
const (
	maxInputTokens  = 768
	maxOutputTokens = 512
	beamCount       = 4
	temperature     = 0.4
	topP            = 0.9
)

// GeneratorClient is a client for a hosted seq2seq text-generation API
// (e.g. a FLAN-T5 model behind a text-generation-inference server).
//
// The model weights live in the serving process, so loading happens exactly
// once there; this client is cheap and is constructed once at startup and
// shared by every request.
type GeneratorClient struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewGeneratorClient creates a new generation client.
func NewGeneratorClient(baseURL, apiKey, model string) *GeneratorClient {
	return &GeneratorClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  http.DefaultClient,
	}
}

// GenerateRequest represents the request payload for the generation API.
type GenerateRequest struct {
	Model           string  `json:"model"`
	Prompt          string  `json:"prompt"`
	MaxInputTokens  int     `json:"max_input_tokens"`
	MaxOutputTokens int     `json:"max_output_tokens"`
	BeamCount       int     `json:"beam_count"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"top_p"`
	EarlyStopping   bool    `json:"early_stopping"`
}

// GenerateResponse represents the response from the generation API.
type GenerateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Generate sends the prompt to the generation backend and returns the decoded
// answer text with surrounding whitespace trimmed. One call per question, no
// retries: failures propagate to the caller wrapped in ErrGenerationFailed.
func (c *GeneratorClient) Generate(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1/generate", c.BaseURL)

	payload := GenerateRequest{
		Model:           c.Model,
		Prompt:          prompt,
		MaxInputTokens:  maxInputTokens,
		MaxOutputTokens: maxOutputTokens,
		BeamCount:       beamCount,
		Temperature:     temperature,
		TopP:            topP,
		EarlyStopping:   true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrGenerationFailed, err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to send request: %v", ErrGenerationFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: bad status %d: %s", ErrGenerationFailed, resp.StatusCode, string(raw))
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrGenerationFailed, err)
	}

	answer := strings.TrimSpace(genResp.GeneratedText)
	if answer == "" {
		return "", fmt.Errorf("%w: empty generation output", ErrGenerationFailed)
	}

	return answer, nil
}
