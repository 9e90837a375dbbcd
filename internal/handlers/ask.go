package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"supportsphere/internal/contextutil"
	"supportsphere/internal/llm"
	"supportsphere/internal/rag"
	"supportsphere/internal/vectorstore"
)

// AskHandler handles HTTP requests for support questions.
type AskHandler struct {
	engine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine rag.Engine) *AskHandler {
	return &AskHandler{engine: engine}
}

// AskRequest represents the HTTP request payload for a support question.
// This mirrors rag.AskRequest but is defined here for HTTP layer separation.
type AskRequest struct {
	Question string `json:"question"`
	Tone     string `json:"tone,omitempty"`
}

// AskResponse represents the HTTP response payload for a support question.
type AskResponse struct {
	Answer string                 `json:"answer"`
	Docs   []vectorstore.Document `json:"docs"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles POST /api/ask.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	// The engine tolerates blank questions, but they are a caller mistake:
	// reject them here instead of burning a generation call.
	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question in ask request")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "question cannot be empty"})
		return
	}

	resp, err := h.engine.Answer(ctx, rag.AskRequest{
		Question: req.Question,
		Tone:     rag.ParseTone(req.Tone),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer question", "error", err)
		switch {
		case errors.Is(err, vectorstore.ErrUnavailable):
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "retrieval service unavailable"})
		case errors.Is(err, llm.ErrGenerationFailed):
			writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "generation service failed"})
		default:
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Answer: resp.Answer,
		Docs:   resp.Docs,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
