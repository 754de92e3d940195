package ingest

import (
	"testing"

	"skylens/verdant/internal/emissions"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := emissions.DefaultConfig()
	a := Generate(50, DefaultSeed, cfg)
	b := Generate(50, DefaultSeed, cfg)

	if len(a) != 50 || len(b) != 50 {
		t.Fatalf("got %d and %d records, want 50", len(a), len(b))
	}
	for i := range a {
		if a[i].FlightID != b[i].FlightID || a[i].FuelKg != b[i].FuelKg || a[i].Origin != b[i].Origin {
			t.Fatalf("records diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateProducesValidRecords(t *testing.T) {
	cfg := emissions.DefaultConfig()
	records := Generate(200, 7, cfg)

	for i := range records {
		rec := &records[i]
		if rec.DistanceKm <= 0 || rec.FuelKg <= 0 {
			t.Errorf("record %s violates positivity: dist=%f fuel=%f", rec.FlightID, rec.DistanceKm, rec.FuelKg)
		}
		if rec.CO2Kg != rec.FuelKg*cfg.EmissionFactor {
			t.Errorf("record %s CO2 not derived from fuel", rec.FlightID)
		}
		if rec.OptimalClimbUsed && rec.PotentialSavingsKg != 0 {
			t.Errorf("record %s has savings despite optimal climb", rec.FlightID)
		}
	}

	// The whole generated set must pass straight through the calculator.
	if _, err := emissions.ComputeBaseline(records, cfg); err != nil {
		t.Fatalf("baseline over generated data: %v", err)
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	cfg := emissions.DefaultConfig()
	a := Generate(20, 1, cfg)
	b := Generate(20, 2, cfg)

	same := true
	for i := range a {
		if a[i].FuelKg != b[i].FuelKg {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical datasets")
	}
}
