package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"supportsphere/internal/escalation"
	"supportsphere/internal/rag"
	"supportsphere/internal/vectorstore"
)

type stubEngine struct{}

func (s *stubEngine) Answer(_ context.Context, req rag.AskRequest) (rag.AskResponse, error) {
	return rag.AskResponse{
		Answer: "1. Open settings.",
		Docs:   []vectorstore.Document{{Question: req.Question, Score: 0.5}},
	}, nil
}

type stubChecker struct{}

func (s *stubChecker) CollectionExists(_ context.Context) (bool, error) {
	return true, nil
}

func testRouter(t *testing.T) nethttp.Handler {
	t.Helper()
	return NewRouter(&Deps{
		Engine:           &stubEngine{},
		EscalationLogger: escalation.NewLogger(filepath.Join(t.TempDir(), "escalations.csv")),
		HealthChecker:    &stubChecker{},
	})
}

func TestRouterAskRoute(t *testing.T) {
	router := testRouter(t)

	body, _ := json.Marshal(map[string]string{"question": "help me", "tone": "Formal"})
	req := httptest.NewRequest(nethttp.MethodPost, "/api/ask", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("POST /api/ask status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestRouterEscalateRoute(t *testing.T) {
	router := testRouter(t)

	body, _ := json.Marshal(map[string]any{
		"user_question": "still broken",
		"model_answer":  "1. Try again.",
		"reason":        "User clicked escalate button.",
	})
	req := httptest.NewRequest(nethttp.MethodPost, "/api/escalate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != nethttp.StatusNoContent {
		t.Fatalf("POST /api/escalate status = %d, want 204 (body %s)", w.Code, w.Body.String())
	}
}

func TestRouterHealthRoute(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("GET /api/health status = %d, want 200", w.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("GET /api/nope status = %d, want 404", w.Code)
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(nethttp.MethodOptions, "/api/ask", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != nethttp.StatusNoContent {
		t.Fatalf("OPTIONS preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
