package emissions

// Config carries every constant the calculator consumes. Callers pass it
// explicitly with each call so results stay deterministic and parallel-safe;
// nothing in this package reads ambient state.
type Config struct {
	// EmissionFactor is kg of CO2 emitted per kg of jet fuel burned.
	EmissionFactor float64

	// FuelPricePerTonne is the jet fuel price in EUR per tonne.
	FuelPricePerTonne float64

	// CarbonPricePerTonne is the carbon credit price in EUR per tonne of CO2.
	CarbonPricePerTonne float64

	// OptimalFlightLevels maps aircraft type to its most efficient flight
	// level (in FL, e.g. 360 = 36,000 ft). Used by the climb-profile effect
	// model and the fuel burn estimator.
	OptimalFlightLevels map[string]int

	// DefaultOptimalFlightLevel is used for aircraft types not present in
	// OptimalFlightLevels.
	DefaultOptimalFlightLevel int
}

// DefaultEmissionFactor is the widely used ratio of kg CO2 per kg of jet
// fuel. It is a default, not a constant of the calculator: real deployments
// override it through Config.
const DefaultEmissionFactor = 3.16

// DefaultConfig returns a Config populated with industry-typical values.
func DefaultConfig() *Config {
	return &Config{
		EmissionFactor:      DefaultEmissionFactor,
		FuelPricePerTonne:   800,
		CarbonPricePerTonne: 80,
		OptimalFlightLevels: map[string]int{
			"A320": 360,
			"B737": 370,
			"A350": 400,
			"B777": 390,
			"B787": 400,
			"A220": 350,
		},
		DefaultOptimalFlightLevel: 370,
	}
}

// optimalFlightLevelFt returns the optimal cruise altitude in feet for the
// given aircraft type.
func (c *Config) optimalFlightLevelFt(aircraftType string) int {
	if fl, ok := c.OptimalFlightLevels[aircraftType]; ok {
		return fl * 100
	}
	return c.DefaultOptimalFlightLevel * 100
}
