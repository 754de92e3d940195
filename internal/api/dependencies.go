package api

import (
	"os"

	"skylens/verdant/internal/common"
	"skylens/verdant/internal/config"
	"skylens/verdant/internal/db"
	"skylens/verdant/internal/db/repositories"
	"skylens/verdant/internal/logging"
	"skylens/verdant/internal/metrics"
	"skylens/verdant/internal/services"
)

type Repositories struct {
	Flights  *repositories.FlightRepository
	Datasets *repositories.DatasetRepository
}

type Services struct {
	Cache     common.CacheInterface
	Scenarios *services.ScenarioConfigService
	Datasets  *services.DatasetService
	Analytics *services.AnalyticsService
}

type Dependencies struct {
	Conf     *config.AppConfig
	Repo     *Repositories
	Services *Services
}

func InitDependencies(conf *config.AppConfig, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Flights:  repositories.NewFlightRepository(db.DB),
		Datasets: repositories.NewDatasetRepository(db.PgDB),
	}

	// Redis when configured, in-memory otherwise
	var cacheSvc common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis unavailable, falling back to in-memory cache", "error", err.Error())
			cacheSvc = common.NewCacheService(600, 600)
		} else {
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(600, 600)
	}

	scenarioSvc, err := services.NewScenarioConfigService(conf.Scenarios)
	if err != nil {
		return nil, err
	}

	datasetSvc := services.NewDatasetService(repos.Datasets, repos.Flights, cacheSvc, metricsReg, conf.Calculator)
	analyticsSvc := services.NewAnalyticsService(repos.Flights, cacheSvc, scenarioSvc, metricsReg, conf.Calculator)

	return &Dependencies{
		Conf: conf,
		Repo: repos,
		Services: &Services{
			Cache:     cacheSvc,
			Scenarios: scenarioSvc,
			Datasets:  datasetSvc,
			Analytics: analyticsSvc,
		},
	}, nil
}
