package api

import (
	"time"

	"github.com/Project-Sylos/Corpus/internal/api/handlers"
	"github.com/Project-Sylos/Corpus/sdk"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router represents the HTTP API router
type Router struct {
	corpus *sdk.Corpus
}

// NewRouter creates a new API router
func NewRouter(corpus *sdk.Corpus) *Router {
	return &Router{corpus: corpus}
}

// SetupRoutes configures all API routes using modular handlers
func (r *Router) SetupRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Standard middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Timeout(60 * time.Second))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	streamHandler := handlers.NewStreamHandler(r.corpus)
	verifyHandler := handlers.NewVerifyHandler(r.corpus)
	systemHandler := handlers.NewSystemHandler(r.corpus)

	// Health check
	router.Get("/health", healthHandler.HealthCheck)

	// API routes
	router.Route("/api/v1", func(api chi.Router) {
		// Content streams: download reproducible payload+trailer bytes
		api.Get("/streams/{size}/{seed}", streamHandler.GetStream)

		// Verification: upload a body and check its trailer
		api.Post("/verify", verifyHandler.Verify)

		// Telemetry and system operations
		api.Get("/stats", systemHandler.GetStats)
		api.Get("/passes", systemHandler.ListPasses)
		api.Get("/passes/{id}", systemHandler.GetPass)
		api.Get("/config", systemHandler.GetConfig)
		api.Post("/reset", systemHandler.Reset)
	})

	return router
}
