package routes

import (
	"context"
	"net/http"
	"time"

	"skylens/verdant/internal/api"
	"skylens/verdant/internal/config"
	"skylens/verdant/internal/db"
	"skylens/verdant/internal/logging"
	"skylens/verdant/internal/metrics"
	"skylens/verdant/internal/middleware"
	"skylens/verdant/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(conf *config.AppConfig, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(conf, metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Background precompute worker, wired into the dataset service
	workers.InitWorkers(context.Background(), deps.Services.Analytics, deps.Services.Datasets)

	// Register API routes
	RegisterAPIRoutes(r, metricsReg, deps)

	return r
}
