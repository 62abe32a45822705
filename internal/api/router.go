package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/api/handlers"
	custommiddleware "github.com/jhofstede/Data-Quality-Tool-Backend/internal/api/middleware"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/config"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, runService *service.RunService, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
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

		r.Route("/runs", func(r chi.Router) {
			runHandler := handlers.NewRunHandler(runService, cfg.Upload.MaxBytes)
			r.Post("/", runHandler.Upload)
			r.Get("/{runId}", runHandler.GetRun)
			r.Get("/{runId}/artifact", runHandler.DownloadArtifact)
			r.Get("/{runId}/log", runHandler.DownloadLog)
		})
	})

	return r
}
