package emissions

import (
	"sort"

	"skylens/verdant/internal/models/entities"
)

// RouteStatsRow summarizes observed emissions on one route. Potential
// savings measure the gap between the route's average flight and its best
// observed flight.
type RouteStatsRow struct {
	Route              string  `json:"route"`
	Flights            int     `json:"flights"`
	AvgDistanceKm      float64 `json:"avg_distance_km"`
	AvgFuelKg          float64 `json:"avg_fuel_kg"`
	MinFuelKg          float64 `json:"min_fuel_kg"`
	AvgCO2Kg           float64 `json:"avg_co2_kg"`
	MinCO2Kg           float64 `json:"min_co2_kg"`
	MaxCO2Kg           float64 `json:"max_co2_kg"`
	EmissionsPerKm     float64 `json:"emissions_per_km"`
	PotentialSavingsKg float64 `json:"potential_savings_kg"`
	SavingsPercent     float64 `json:"savings_percent"`
}

// RouteStatsSummary is the fleet-wide rollup over all route rows.
type RouteStatsSummary struct {
	Routes                  []RouteStatsRow `json:"routes"`
	TotalFlights            int             `json:"total_flights"`
	TotalPotentialSavingsKg float64         `json:"total_potential_savings_kg"`
	AvgSavingsPerFlightKg   float64         `json:"avg_savings_per_flight_kg"`
}

// RouteStats computes per-route emission statistics: how each route's
// average flight compares against the best flight ever observed on it.
func RouteStats(records []entities.FlightRecord, cfg *Config) (*RouteStatsSummary, error) {
	if len(records) == 0 {
		return nil, &EmptyDatasetError{}
	}

	type acc struct {
		flights  int
		distance float64
		fuel     float64
		minFuel  float64
		co2      float64
		minCO2   float64
		maxCO2   float64
	}
	groups := make(map[string]*acc)

	for i := range records {
		rec := &records[i]
		if !usable(rec) {
			continue
		}
		co2 := recordCO2(rec, cfg)
		g, ok := groups[rec.Route()]
		if !ok {
			g = &acc{minFuel: rec.FuelKg, minCO2: co2, maxCO2: co2}
			groups[rec.Route()] = g
		}
		g.flights++
		g.distance += rec.DistanceKm
		g.fuel += rec.FuelKg
		g.co2 += co2
		if rec.FuelKg < g.minFuel {
			g.minFuel = rec.FuelKg
		}
		if co2 < g.minCO2 {
			g.minCO2 = co2
		}
		if co2 > g.maxCO2 {
			g.maxCO2 = co2
		}
	}

	summary := &RouteStatsSummary{Routes: make([]RouteStatsRow, 0, len(groups))}
	for route, g := range groups {
		n := float64(g.flights)
		row := RouteStatsRow{
			Route:         route,
			Flights:       g.flights,
			AvgDistanceKm: g.distance / n,
			AvgFuelKg:     g.fuel / n,
			MinFuelKg:     g.minFuel,
			AvgCO2Kg:      g.co2 / n,
			MinCO2Kg:      g.minCO2,
			MaxCO2Kg:      g.maxCO2,
		}
		if row.AvgDistanceKm > 0 {
			row.EmissionsPerKm = row.AvgCO2Kg / row.AvgDistanceKm
		}
		row.PotentialSavingsKg = row.AvgCO2Kg - row.MinCO2Kg
		if row.AvgCO2Kg > 0 {
			row.SavingsPercent = (row.PotentialSavingsKg / row.AvgCO2Kg) * 100
		}
		summary.Routes = append(summary.Routes, row)
		summary.TotalFlights += g.flights
		summary.TotalPotentialSavingsKg += row.PotentialSavingsKg * n
	}

	sort.Slice(summary.Routes, func(i, j int) bool {
		return summary.Routes[i].Route < summary.Routes[j].Route
	})
	if summary.TotalFlights > 0 {
		summary.AvgSavingsPerFlightKg = summary.TotalPotentialSavingsKg / float64(summary.TotalFlights)
	}
	return summary, nil
}

// FleetReplacement maps an aircraft type to the more efficient model that
// replaces it, with the replacement's fuel burn relative to the replaced
// type (0.85 = burns 15% less).
type FleetReplacement struct {
	OldType          string  `json:"old_type"`
	NewType          string  `json:"new_type"`
	EfficiencyFactor float64 `json:"efficiency_factor"`
}

// FleetReplacementResult reports the emission impact of re-fleeting.
type FleetReplacementResult struct {
	Baseline        Result  `json:"baseline"`
	Adjusted        Result  `json:"adjusted"`
	FlightsReplaced int     `json:"flights_replaced"`
	EmissionDeltaKg float64 `json:"emission_delta_kg"`
}

// DefaultFleetReplacements mirrors the typical upgrade path: B777 legs to
// the B787, A320 legs to the A220.
func DefaultFleetReplacements() []FleetReplacement {
	return []FleetReplacement{
		{OldType: "B777", NewType: "B787", EfficiencyFactor: 0.85},
		{OldType: "A320", NewType: "A220", EfficiencyFactor: 0.80},
	}
}

// AnalyzeFleetReplacement applies aircraft substitutions and recomputes
// aggregates. Efficiency factors above 1 are rejected since a replacement
// must never increase emissions.
func AnalyzeFleetReplacement(records []entities.FlightRecord, replacements []FleetReplacement, cfg *Config) (*FleetReplacementResult, error) {
	if len(records) == 0 {
		return nil, &EmptyDatasetError{}
	}
	byType := make(map[string]FleetReplacement, len(replacements))
	for _, rep := range replacements {
		if rep.EfficiencyFactor <= 0 || rep.EfficiencyFactor > 1 {
			return nil, &InvalidScenarioError{
				Scenario: "fleet-replacement",
				Reason:   "efficiency factor must be in (0, 1]",
			}
		}
		byType[rep.OldType] = rep
	}

	baseline := aggregate(records, cfg)

	adjusted := make([]entities.FlightRecord, len(records))
	copy(adjusted, records)
	replaced := 0
	for i := range adjusted {
		rec := &adjusted[i]
		rep, ok := byType[rec.AircraftType]
		if !ok || !usable(rec) {
			continue
		}
		rec.AircraftType = rep.NewType
		rec.FuelKg *= rep.EfficiencyFactor
		if rec.CO2Kg > 0 {
			rec.CO2Kg *= rep.EfficiencyFactor
		}
		replaced++
	}

	after := aggregate(adjusted, cfg)
	return &FleetReplacementResult{
		Baseline:        baseline,
		Adjusted:        after,
		FlightsReplaced: replaced,
		EmissionDeltaKg: baseline.TotalCO2Kg - after.TotalCO2Kg,
	}, nil
}

// FlightLevelStats describes the most efficient observed cruise altitude
// for one aircraft type.
type FlightLevelStats struct {
	AircraftType        string  `json:"aircraft_type"`
	OptimalFlightLevel  int     `json:"optimal_flight_level"`
	MinEmissionsPerKm   float64 `json:"min_emissions_per_km"`
	AvgEmissionsPerKm   float64 `json:"avg_emissions_per_km"`
	PotentialSavingsPct float64 `json:"potential_savings_pct"`
	FlightsObserved     int     `json:"flights_observed"`
}

// OptimalFlightLevels finds, per aircraft type, the observed flight level
// with the lowest emissions per km, and how far the type's average sits
// above it. Pass an aircraft type to restrict the analysis, or "" for all.
func OptimalFlightLevels(records []entities.FlightRecord, aircraftType string, cfg *Config) ([]FlightLevelStats, error) {
	if len(records) == 0 {
		return nil, &EmptyDatasetError{}
	}

	type cell struct {
		co2      float64
		distance float64
		flights  int
	}
	type key struct {
		acType string
		fl     int
	}
	cells := make(map[key]*cell)
	perType := make(map[string]*cell)

	for i := range records {
		rec := &records[i]
		if !usable(rec) {
			continue
		}
		if aircraftType != "" && rec.AircraftType != aircraftType {
			continue
		}
		co2 := recordCO2(rec, cfg)

		k := key{acType: rec.AircraftType, fl: rec.FlightLevel}
		c, ok := cells[k]
		if !ok {
			c = &cell{}
			cells[k] = c
		}
		c.co2 += co2
		c.distance += rec.DistanceKm
		c.flights++

		t, ok := perType[rec.AircraftType]
		if !ok {
			t = &cell{}
			perType[rec.AircraftType] = t
		}
		t.co2 += co2
		t.distance += rec.DistanceKm
		t.flights++
	}

	best := make(map[string]FlightLevelStats)
	for k, c := range cells {
		if c.distance <= 0 {
			continue
		}
		perKm := c.co2 / c.distance
		cur, seen := best[k.acType]
		// Lower level wins ties so repeated runs agree.
		if !seen || perKm < cur.MinEmissionsPerKm ||
			(perKm == cur.MinEmissionsPerKm && k.fl < cur.OptimalFlightLevel) {
			best[k.acType] = FlightLevelStats{
				AircraftType:       k.acType,
				OptimalFlightLevel: k.fl,
				MinEmissionsPerKm:  perKm,
			}
		}
	}

	out := make([]FlightLevelStats, 0, len(best))
	for acType, stats := range best {
		t := perType[acType]
		stats.FlightsObserved = t.flights
		if t.distance > 0 {
			stats.AvgEmissionsPerKm = t.co2 / t.distance
		}
		if stats.AvgEmissionsPerKm > 0 {
			stats.PotentialSavingsPct = (stats.AvgEmissionsPerKm - stats.MinEmissionsPerKm) / stats.AvgEmissionsPerKm * 100
		}
		out = append(out, stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AircraftType < out[j].AircraftType })
	return out, nil
}
