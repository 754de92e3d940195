package config

import (
	"fmt"
	"os"
	"strconv"

	"skylens/verdant/internal/emissions"
)

// AppConfig is everything the server reads from the environment at boot.
// The calculator never sees it directly: handlers pass Calculator and the
// scenario set explicitly into each call.
type AppConfig struct {
	AppEnv    string
	Port      string
	APIKey    string
	JWTSecret string

	// PostgresDSN is shared by the sqlx and GORM pools.
	PostgresDSN string

	Calculator *emissions.Config
	Scenarios  []emissions.Scenario
}

// Load builds the app configuration from environment variables, falling
// back to the defaults the legacy dashboard shipped with.
func Load() *AppConfig {
	calc := emissions.DefaultConfig()
	calc.EmissionFactor = envFloat("EMISSION_FACTOR", calc.EmissionFactor)
	calc.FuelPricePerTonne = envFloat("FUEL_PRICE_EUR_TONNE", calc.FuelPricePerTonne)
	calc.CarbonPricePerTonne = envFloat("CARBON_PRICE_EUR_TONNE", calc.CarbonPricePerTonne)

	scenarios := emissions.DefaultScenarios()
	overrides := map[string]string{
		emissions.ScenarioOptimizedClimb:  "SCENARIO_CLIMB_FRACTION",
		emissions.ScenarioWeightReduction: "SCENARIO_WEIGHT_FRACTION",
		emissions.ScenarioImprovedRouting: "SCENARIO_ROUTING_FRACTION",
		emissions.ScenarioEngineWash:      "SCENARIO_ENGINE_WASH_FRACTION",
	}
	for i := range scenarios {
		if envVar, ok := overrides[scenarios[i].Name]; ok {
			scenarios[i].Fraction = envFloat(envVar, scenarios[i].Fraction)
		}
	}

	return &AppConfig{
		AppEnv:      envString("APP_ENV", "development"),
		Port:        envString("PORT", "8080"),
		APIKey:      os.Getenv("API_KEY"),
		JWTSecret:   envString("JWT_SECRET", "dev-only-secret"),
		PostgresDSN: postgresDSN(),
		Calculator:  calc,
		Scenarios:   scenarios,
	}
}

// postgresDSN assembles the connection string from the PG_* variables.
func postgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("PG_USER"),
		os.Getenv("PG_PASSWORD"),
		os.Getenv("PG_HOST"),
		os.Getenv("PG_PORT"),
		os.Getenv("PG_DB"),
	)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
