package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"supportsphere/internal/escalation"
	"supportsphere/internal/handlers"
	"supportsphere/internal/rag"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine           rag.Engine
	EscalationLogger *escalation.Logger
	HealthChecker    handlers.CollectionChecker
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Engine)
	escalateHandler := handlers.NewEscalateHandler(deps.EscalationLogger)
	healthHandler := handlers.NewHealthHandler(deps.HealthChecker)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodPost, "/escalate", escalateHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
