package routes

import (
	"skylens/verdant/internal/api"
	"skylens/verdant/internal/metrics"
	"skylens/verdant/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, deps *api.Dependencies) {

	conf := deps.Conf

	// Public routes with metrics
	r.Group(func(public chi.Router) {
		public.Use(middleware.MetricsMiddleware(metricsReg))
		public.Get("/public/scenarios", api.ListScenariosHandler(deps.Services.Scenarios))
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(middleware.RateLimitMiddleware)
		v1.Use(middleware.AuthMiddleware(conf.APIKey, conf.JWTSecret)) // global: key for writes, dashboard token for reads

		v1.Get("/scenarios", api.ListScenariosHandler(deps.Services.Scenarios))
		v1.Post("/estimate", api.EstimateHandler(conf.Calculator))

		// Key holders mint read-only tokens for dashboards
		v1.Post("/auth/dashboard-token", api.DashboardTokenHandler(conf.JWTSecret))

		v1.Route("/datasets", func(ds chi.Router) {
			ds.Post("/", api.UploadDatasetHandler(deps.Services.Datasets))
			ds.Post("/generate", api.GenerateDatasetHandler(deps.Services.Datasets))
			ds.Get("/", api.ListDatasetsHandler(deps.Services.Datasets))

			ds.Route("/{datasetID}", func(one chi.Router) {
				one.Delete("/", api.DeleteDatasetHandler(deps.Services.Datasets))
				one.Get("/baseline", api.BaselineHandler(deps.Services.Analytics))
				one.Get("/compare", api.CompareHandler(deps.Services.Analytics))
				one.Get("/routes/ranking", api.RankRoutesHandler(deps.Services.Analytics))
				one.Get("/routes/stats", api.RouteStatsHandler(deps.Services.Analytics))
				one.Get("/flight-levels", api.FlightLevelsHandler(deps.Services.Analytics))
				one.Post("/fleet-replacement", api.FleetReplacementHandler(deps.Services.Analytics))
			})
		})
	})
}
