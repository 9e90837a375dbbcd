package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"supportsphere/internal/contextutil"
	"supportsphere/internal/escalation"
	"supportsphere/internal/vectorstore"
)

// EscalateHandler handles HTTP requests to escalate a question to a human agent.
type EscalateHandler struct {
	logger *escalation.Logger
}

// NewEscalateHandler creates a new EscalateHandler.
func NewEscalateHandler(logger *escalation.Logger) *EscalateHandler {
	return &EscalateHandler{logger: logger}
}

// EscalateRequest represents the HTTP request payload for an escalation.
// TopDocs should be the docs list returned by the ask endpoint for the answer
// being escalated, so the log records the evidence behind that answer.
type EscalateRequest struct {
	UserQuestion string                 `json:"user_question"`
	ModelAnswer  string                 `json:"model_answer"`
	Reason       string                 `json:"reason"`
	TopDocs      []vectorstore.Document `json:"top_docs"`
	UserEmail    string                 `json:"user_email,omitempty"`
}

// ServeHTTP handles POST /api/escalate.
func (h *EscalateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	var req EscalateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(req.UserQuestion) == "" {
		logger.WarnContext(ctx, "empty question in escalate request")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "user_question cannot be empty"})
		return
	}

	if err := h.logger.Log(req.UserQuestion, req.ModelAnswer, req.Reason, req.TopDocs, req.UserEmail); err != nil {
		logger.ErrorContext(ctx, "failed to log escalation", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to record escalation"})
		return
	}

	logger.InfoContext(ctx, "escalation recorded", "reason", req.Reason, "docs", len(req.TopDocs))
	w.WriteHeader(http.StatusNoContent)
}
