package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bwillems/portfolio-tracker/internal/api/handlers"
	custommiddleware "github.com/bwillems/portfolio-tracker/internal/api/middleware"
	"github.com/bwillems/portfolio-tracker/internal/config"
	"github.com/bwillems/portfolio-tracker/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	positionService *service.PositionService,
	syncService *service.SyncService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/position", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(positionService, syncService)
			r.Get("/", positionHandler.Positions)
			r.Post("/", positionHandler.Load)
			r.Post("/sync", positionHandler.Sync)
			r.Post("/accrue", positionHandler.Accrue)
			r.Get("/history", positionHandler.History)
		})

		r.Route("/symbol", func(r chi.Router) {
			symbolHandler := handlers.NewSymbolHandler(syncService)
			r.Get("/{symbol}", symbolHandler.Symbol)
			r.Get("/{symbol}/prices", symbolHandler.Prices)
		})
	})

	return r
}
