package emissions

import (
	"math"

	"skylens/verdant/internal/models/entities"
)

// EffectKind selects the effect model a scenario applies to each flight.
type EffectKind string

const (
	// EffectFractional removes a fixed fraction of each flight's fuel burn.
	EffectFractional EffectKind = "fractional"

	// EffectFixed removes a fixed number of kg from each flight's fuel burn.
	EffectFixed EffectKind = "fixed"

	// EffectClimbProfile models an optimized climb. Flights already flown
	// with an optimal climb are untouched; the others save either their
	// recorded potential savings or a fraction of fuel scaled by how far
	// the flight sat from the aircraft's optimal flight level.
	EffectClimbProfile EffectKind = "climb-profile"
)

// Built-in scenario names. The effect parameters behind them are
// configuration, not constants; see DefaultScenarios.
const (
	ScenarioOptimizedClimb  = "optimized-climb"
	ScenarioWeightReduction = "weight-reduction"
	ScenarioImprovedRouting = "improved-routing"
	ScenarioEngineWash      = "engine-wash"
)

// Scenario is a named intervention strategy with a declared effect model.
// An effect never increases emissions: reductions are clamped so adjusted
// fuel stays non-negative.
type Scenario struct {
	Name     string     `json:"name"`
	Kind     EffectKind `json:"kind"`
	Fraction float64    `json:"fraction,omitempty"` // fractional fuel reduction, [0, 1)
	FixedKg  float64    `json:"fixed_kg,omitempty"` // absolute per-flight reduction, >= 0
}

// DefaultScenarios returns the built-in intervention set with
// industry-typical effect parameters: a ~2% climb-profile saving, the
// rule-of-thumb 1% weight cut -> 0.6% fuel, 1.5% from routing and 0.8%
// from engine washing.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: ScenarioOptimizedClimb, Kind: EffectClimbProfile, Fraction: 0.02},
		{Name: ScenarioWeightReduction, Kind: EffectFractional, Fraction: 0.006},
		{Name: ScenarioImprovedRouting, Kind: EffectFractional, Fraction: 0.015},
		{Name: ScenarioEngineWash, Kind: EffectFractional, Fraction: 0.008},
	}
}

// Validate checks the scenario's effect parameters against their declared
// bounds and returns an InvalidScenarioError on violation.
func (s *Scenario) Validate() error {
	switch s.Kind {
	case EffectFractional, EffectClimbProfile:
		if s.Fraction < 0 || s.Fraction >= 1 {
			return &InvalidScenarioError{
				Scenario: s.Name,
				Reason:   "fractional effect must be in [0, 1)",
			}
		}
	case EffectFixed:
		if s.FixedKg < 0 {
			return &InvalidScenarioError{
				Scenario: s.Name,
				Reason:   "fixed reduction must be non-negative",
			}
		}
	default:
		return &InvalidScenarioError{
			Scenario: s.Name,
			Reason:   "unknown effect kind " + string(s.Kind),
		}
	}
	return nil
}

// ReductionKg computes the fuel reduction this scenario yields for one
// flight. Pure: the same record, scenario and config always produce the
// same adjustment. The result is clamped to the flight's fuel burn.
func (s *Scenario) ReductionKg(rec *entities.FlightRecord, cfg *Config) float64 {
	var reduction float64

	switch s.Kind {
	case EffectFractional:
		reduction = rec.FuelKg * s.Fraction
	case EffectFixed:
		reduction = s.FixedKg
	case EffectClimbProfile:
		if rec.OptimalClimbUsed {
			return 0
		}
		if rec.PotentialSavingsKg > 0 {
			reduction = rec.PotentialSavingsKg
		} else {
			// Savings grow with distance from the optimal flight level,
			// mirroring the altitude penalty in the burn model.
			deviation := math.Abs(float64(rec.FlightLevel - cfg.optimalFlightLevelFt(rec.AircraftType)))
			scale := 1.0 + (deviation/10000)*0.05
			reduction = rec.FuelKg * s.Fraction * scale
		}
	}

	if reduction > rec.FuelKg {
		return rec.FuelKg
	}
	return reduction
}
