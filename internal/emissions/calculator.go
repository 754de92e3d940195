package emissions

import (
	"sort"

	"skylens/verdant/internal/models/entities"
)

// Result aggregates fuel and emissions across a set of flight records.
type Result struct {
	TotalFlights    int     `json:"total_flights"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalFuelKg     float64 `json:"total_fuel_kg"`
	TotalCO2Kg      float64 `json:"total_co2_kg"`
	AvgCO2PerKm     float64 `json:"avg_co2_per_km"`
	AvgCO2PerFlight float64 `json:"avg_co2_per_flight"`
	AvgFuelPerKm    float64 `json:"avg_fuel_per_km"`
}

// Comparison holds a baseline result, its scenario-adjusted counterpart and
// the signed deltas between them, including the financial impact.
type Comparison struct {
	Scenario        string  `json:"scenario"`
	Baseline        Result  `json:"baseline"`
	Adjusted        Result  `json:"adjusted"`
	DeltaFuelKg     float64 `json:"delta_fuel_kg"`
	DeltaCO2Kg      float64 `json:"delta_co2_kg"`
	DeltaCostEUR    float64 `json:"delta_cost_eur"`
	CarbonCreditEUR float64 `json:"carbon_credit_eur"`
}

// RouteSavings is the scenario impact on one route.
type RouteSavings struct {
	Route       string  `json:"route"`
	Flights     int     `json:"flights"`
	DeltaFuelKg float64 `json:"delta_fuel_kg"`
	DeltaCO2Kg  float64 `json:"delta_co2_kg"`
}

// usable reports whether a record satisfies the positivity invariant and
// may take part in aggregate computations.
func usable(rec *entities.FlightRecord) bool {
	return rec.DistanceKm > 0 && rec.FuelKg > 0
}

// recordCO2 returns a record's CO2 in kg, deriving it from fuel burn when
// the dataset did not supply it independently.
func recordCO2(rec *entities.FlightRecord, cfg *Config) float64 {
	if rec.CO2Kg > 0 {
		return rec.CO2Kg
	}
	return rec.FuelKg * cfg.EmissionFactor
}

func aggregate(records []entities.FlightRecord, cfg *Config) Result {
	var res Result
	for i := range records {
		rec := &records[i]
		if !usable(rec) {
			continue
		}
		res.TotalFlights++
		res.TotalDistanceKm += rec.DistanceKm
		res.TotalFuelKg += rec.FuelKg
		res.TotalCO2Kg += recordCO2(rec, cfg)
	}
	if res.TotalDistanceKm > 0 {
		res.AvgCO2PerKm = res.TotalCO2Kg / res.TotalDistanceKm
		res.AvgFuelPerKm = res.TotalFuelKg / res.TotalDistanceKm
	}
	if res.TotalFlights > 0 {
		res.AvgCO2PerFlight = res.TotalCO2Kg / float64(res.TotalFlights)
	}
	return res
}

// ComputeBaseline aggregates fuel and emissions across the dataset.
// Records failing the positivity invariant are excluded, not fatal; a
// dataset where everything was excluded yields a zero-valued result. Only
// a dataset with no rows at all is an EmptyDatasetError.
func ComputeBaseline(records []entities.FlightRecord, cfg *Config) (*Result, error) {
	if len(records) == 0 {
		return nil, &EmptyDatasetError{}
	}
	res := aggregate(records, cfg)
	return &res, nil
}

// ApplyScenario recomputes aggregates with the scenario's fuel reduction
// applied per flight. CO2 scales proportionally with the adjusted fuel, so
// independently supplied CO2 values keep their original intensity.
func ApplyScenario(records []entities.FlightRecord, scenario Scenario, cfg *Config) (*Result, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &EmptyDatasetError{}
	}

	adjusted := adjustRecords(records, scenario, cfg)
	res := aggregate(adjusted, cfg)
	return &res, nil
}

// adjustRecords returns a copy of records with the scenario's reduction
// applied. The input is never mutated.
func adjustRecords(records []entities.FlightRecord, scenario Scenario, cfg *Config) []entities.FlightRecord {
	out := make([]entities.FlightRecord, len(records))
	copy(out, records)
	for i := range out {
		rec := &out[i]
		if !usable(rec) {
			continue
		}
		reduction := scenario.ReductionKg(rec, cfg)
		newFuel := rec.FuelKg - reduction
		if newFuel < 0 {
			newFuel = 0
		}
		if rec.CO2Kg > 0 && rec.FuelKg > 0 {
			rec.CO2Kg = rec.CO2Kg * (newFuel / rec.FuelKg)
		} else {
			rec.CO2Kg = newFuel * cfg.EmissionFactor
		}
		rec.FuelKg = newFuel
	}
	return out
}

// Compare computes baseline and scenario-adjusted results plus the signed
// differences. Cost deltas use the configured fuel and carbon prices
// (EUR per tonne).
func Compare(records []entities.FlightRecord, scenario Scenario, cfg *Config) (*Comparison, error) {
	baseline, err := ComputeBaseline(records, cfg)
	if err != nil {
		return nil, err
	}
	adjusted, err := ApplyScenario(records, scenario, cfg)
	if err != nil {
		return nil, err
	}

	deltaFuel := baseline.TotalFuelKg - adjusted.TotalFuelKg
	deltaCO2 := baseline.TotalCO2Kg - adjusted.TotalCO2Kg

	return &Comparison{
		Scenario:        scenario.Name,
		Baseline:        *baseline,
		Adjusted:        *adjusted,
		DeltaFuelKg:     deltaFuel,
		DeltaCO2Kg:      deltaCO2,
		DeltaCostEUR:    (deltaFuel / 1000) * cfg.FuelPricePerTonne,
		CarbonCreditEUR: (deltaCO2 / 1000) * cfg.CarbonPricePerTonne,
	}, nil
}

// RankRoutesBySavings groups records by route, applies the scenario per
// group and orders routes by CO2 reduction descending. Ties break on route
// name ascending so the ranking is deterministic.
func RankRoutesBySavings(records []entities.FlightRecord, scenario Scenario, cfg *Config) ([]RouteSavings, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &EmptyDatasetError{}
	}

	type group struct {
		flights int
		fuel    float64
		co2     float64
		adjFuel float64
		adjCO2  float64
	}
	groups := make(map[string]*group)

	adjusted := adjustRecords(records, scenario, cfg)
	for i := range records {
		rec := &records[i]
		if !usable(rec) {
			continue
		}
		g, ok := groups[rec.Route()]
		if !ok {
			g = &group{}
			groups[rec.Route()] = g
		}
		g.flights++
		g.fuel += rec.FuelKg
		g.co2 += recordCO2(rec, cfg)
		g.adjFuel += adjusted[i].FuelKg
		g.adjCO2 += recordCO2(&adjusted[i], cfg)
	}

	ranking := make([]RouteSavings, 0, len(groups))
	for route, g := range groups {
		ranking = append(ranking, RouteSavings{
			Route:       route,
			Flights:     g.flights,
			DeltaFuelKg: g.fuel - g.adjFuel,
			DeltaCO2Kg:  g.co2 - g.adjCO2,
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].DeltaCO2Kg != ranking[j].DeltaCO2Kg {
			return ranking[i].DeltaCO2Kg > ranking[j].DeltaCO2Kg
		}
		return ranking[i].Route < ranking[j].Route
	})
	return ranking, nil
}
