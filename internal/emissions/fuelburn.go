package emissions

import "math"

// Per-aircraft burn characteristics for the parametric fuel model. These
// cover the fleet the synthetic generator produces; unknown types fall back
// to the A320 profile.
var (
	baseFuelRatesKgKm = map[string]float64{
		"A320": 3.0,
		"B737": 3.2,
		"A350": 7.5,
		"B777": 8.0,
		"A220": 2.5,
		"B787": 6.8,
	}

	aircraftWeightRangesKg = map[string][2]float64{
		"A320": {65000, 78000},
		"B737": {62000, 82000},
		"A350": {185000, 220000},
		"B777": {190000, 247000},
		"A220": {45000, 60000},
		"B787": {150000, 180000},
	}
)

const fallbackAircraftType = "A320"

// AircraftTypes returns the aircraft types the burn model knows about.
func AircraftTypes() []string {
	return []string{"A320", "B737", "A350", "B777", "A220", "B787"}
}

// WeightRangeKg returns the min and max takeoff weight for an aircraft
// type, falling back to the A320 range for unknown types.
func WeightRangeKg(aircraftType string) (float64, float64) {
	r, ok := aircraftWeightRangesKg[aircraftType]
	if !ok {
		r = aircraftWeightRangesKg[fallbackAircraftType]
	}
	return r[0], r[1]
}

// BurnParams are the inputs to the parametric fuel burn estimate.
type BurnParams struct {
	DistanceKm      float64 `json:"distance_km"`
	AircraftType    string  `json:"aircraft_type"`
	TakeoffWeightKg float64 `json:"takeoff_weight_kg"`
	FlightLevel     int     `json:"flight_level"` // feet
	HeadwindKmh     float64 `json:"headwind_kmh"` // negative for tailwind
	TemperatureDev  float64 `json:"temperature_deviation"`
	OptimalClimb    bool    `json:"optimal_climb"`
}

// BurnEstimate is the model output: estimated burn and emissions plus the
// savings an optimized climb would unlock on this leg.
type BurnEstimate struct {
	FuelConsumedKg         float64 `json:"fuel_consumed_kg"`
	CO2EmissionsKg         float64 `json:"co2_emissions_kg"`
	PotentialFuelSavingsKg float64 `json:"potential_fuel_savings_kg"`
	PotentialCO2SavingsKg  float64 `json:"potential_co2_savings_kg"`
}

// EstimateFuelBurn models a leg's fuel burn from distance, weight, cruise
// altitude and weather. The model is deliberately simple: a per-km base
// rate shaped by multiplicative factors, good enough to seed synthetic
// datasets and sanity-check uploads.
func EstimateFuelBurn(p BurnParams, cfg *Config) (*BurnEstimate, error) {
	if p.DistanceKm <= 0 {
		return nil, &SchemaError{Field: "distance_km", Reason: "must be positive"}
	}

	acType := p.AircraftType
	if _, ok := baseFuelRatesKgKm[acType]; !ok {
		acType = fallbackAircraftType
	}
	baseRate := baseFuelRatesKgKm[acType]

	// Heavier takeoff weight burns more, spanning a 0.9..1.1 factor across
	// the type's certified weight range.
	minW, maxW := WeightRangeKg(acType)
	w := math.Min(math.Max(p.TakeoffWeightKg, minW), maxW)
	weightFactor := 0.9 + ((w-minW)/(maxW-minW))*0.2

	// Flying off the optimal level costs 5% per 10,000 ft of deviation.
	deviation := math.Abs(float64(p.FlightLevel - cfg.optimalFlightLevelFt(acType)))
	altitudeFactor := 1.0 + (deviation/10000)*0.05

	headwindFactor := 1.0 + (p.HeadwindKmh / 500)
	tempFactor := 1.0 + (p.TemperatureDev / 100)

	fuel := baseRate * p.DistanceKm * weightFactor * altitudeFactor * headwindFactor * tempFactor

	var savings float64
	if !p.OptimalClimb {
		// Around 2% of burn is recoverable with an optimized climb profile.
		savings = fuel * 0.02
	}

	return &BurnEstimate{
		FuelConsumedKg:         fuel,
		CO2EmissionsKg:         fuel * cfg.EmissionFactor,
		PotentialFuelSavingsKg: savings,
		PotentialCO2SavingsKg:  savings * cfg.EmissionFactor,
	}, nil
}
