package emissions

import (
	"testing"

	"skylens/verdant/internal/models/entities"
)

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		wantErr  bool
	}{
		{"valid fractional", Scenario{Name: "a", Kind: EffectFractional, Fraction: 0.05}, false},
		{"zero fraction", Scenario{Name: "b", Kind: EffectFractional, Fraction: 0}, false},
		{"fraction at one", Scenario{Name: "c", Kind: EffectFractional, Fraction: 1.0}, true},
		{"fraction above one", Scenario{Name: "d", Kind: EffectFractional, Fraction: 1.2}, true},
		{"negative fraction", Scenario{Name: "e", Kind: EffectFractional, Fraction: -0.1}, true},
		{"valid fixed", Scenario{Name: "f", Kind: EffectFixed, FixedKg: 100}, false},
		{"negative fixed", Scenario{Name: "g", Kind: EffectFixed, FixedKg: -5}, true},
		{"valid climb", Scenario{Name: "h", Kind: EffectClimbProfile, Fraction: 0.02}, false},
		{"unknown kind", Scenario{Name: "i", Kind: "teleport"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scenario.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultScenariosAreValid(t *testing.T) {
	for _, sc := range DefaultScenarios() {
		if err := sc.Validate(); err != nil {
			t.Errorf("built-in scenario %s invalid: %v", sc.Name, err)
		}
	}
}

func TestClimbProfileSkipsOptimalFlights(t *testing.T) {
	scenario := Scenario{Name: ScenarioOptimizedClimb, Kind: EffectClimbProfile, Fraction: 0.02}
	cfg := DefaultConfig()

	optimal := entities.FlightRecord{FuelKg: 1000, OptimalClimbUsed: true, PotentialSavingsKg: 40}
	if got := scenario.ReductionKg(&optimal, cfg); got != 0 {
		t.Errorf("reduction for optimal-climb flight = %f, want 0", got)
	}

	recorded := entities.FlightRecord{FuelKg: 1000, PotentialSavingsKg: 40}
	if got := scenario.ReductionKg(&recorded, cfg); got != 40 {
		t.Errorf("reduction = %f, want recorded 40", got)
	}
}

func TestClimbProfileScalesWithFlightLevel(t *testing.T) {
	scenario := Scenario{Name: ScenarioOptimizedClimb, Kind: EffectClimbProfile, Fraction: 0.02}
	cfg := DefaultConfig()

	atOptimal := entities.FlightRecord{AircraftType: "A320", FlightLevel: 36000, FuelKg: 1000}
	offOptimal := entities.FlightRecord{AircraftType: "A320", FlightLevel: 31000, FuelKg: 1000}

	rAt := scenario.ReductionKg(&atOptimal, cfg)
	rOff := scenario.ReductionKg(&offOptimal, cfg)
	if rAt != 1000*0.02 {
		t.Errorf("reduction at optimal level = %f, want %f", rAt, 1000*0.02)
	}
	if rOff <= rAt {
		t.Errorf("off-optimal reduction %f should exceed on-optimal %f", rOff, rAt)
	}
}

func TestReductionIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	rec := entities.FlightRecord{AircraftType: "B777", FlightLevel: 33000, FuelKg: 5400}
	for _, sc := range DefaultScenarios() {
		first := sc.ReductionKg(&rec, cfg)
		for i := 0; i < 5; i++ {
			if got := sc.ReductionKg(&rec, cfg); got != first {
				t.Fatalf("%s: reduction changed between calls: %f vs %f", sc.Name, got, first)
			}
		}
	}
}

func TestReductionClampedToFuel(t *testing.T) {
	cfg := DefaultConfig()
	rec := entities.FlightRecord{FuelKg: 10}
	sc := Scenario{Name: "deep-cut", Kind: EffectFixed, FixedKg: 100}
	if got := sc.ReductionKg(&rec, cfg); got != 10 {
		t.Errorf("reduction = %f, want clamp at 10", got)
	}
}
