package ingest

import (
	"errors"
	"strings"
	"testing"

	"skylens/verdant/internal/emissions"
)

const sampleCSV = `flight_id,date,origin,destination,distance_km,aircraft_type,flight_level,fuel_kg,co2_kg,weather
FL0001,2025-03-01,Paris,London,350,A320,36000,1000,3160,Clear
FL0002,2025-03-02,Paris,Berlin,880,B737,37000,2500,,Cloudy
FL0003,2025-03-03,Paris,Madrid,abc,B777,39000,7000,22120,Rain
`

func TestParseCSV(t *testing.T) {
	cfg := emissions.DefaultConfig()
	result, err := ParseCSV(strings.NewReader(sampleCSV), cfg)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}

	if len(result.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(result.Records))
	}
	if len(result.RowErrors) != 1 {
		t.Fatalf("got %d row errors, want 1", len(result.RowErrors))
	}
	if result.RowErrors[0].Line != 4 || result.RowErrors[0].Field != "distance_km" {
		t.Errorf("row error = %+v", result.RowErrors[0])
	}

	first := result.Records[0]
	if first.FlightID != "FL0001" || first.Origin != "Paris" || first.CO2Kg != 3160 {
		t.Errorf("first record wrong: %+v", first)
	}

	// Empty co2_kg derives from fuel through the emission factor.
	second := result.Records[1]
	if second.CO2Kg != 2500*cfg.EmissionFactor {
		t.Errorf("derived CO2 = %f, want %f", second.CO2Kg, 2500*cfg.EmissionFactor)
	}
}

func TestParseCSVHeaderAliases(t *testing.T) {
	legacy := `flight_id,date,origin,destination,distance_km,aircraft_type,flight_level,fuel_consumed_kg,co2_emissions_kg
FL0001,2025-03-01,Paris,Rome,1100,A350,40000,8000,25280
`
	result, err := ParseCSV(strings.NewReader(legacy), emissions.DefaultConfig())
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}
	if result.Records[0].FuelKg != 8000 || result.Records[0].CO2Kg != 25280 {
		t.Errorf("legacy columns not mapped: %+v", result.Records[0])
	}
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	noFuel := `flight_id,date,origin,destination,distance_km,aircraft_type,flight_level
FL0001,2025-03-01,Paris,London,350,A320,36000
`
	_, err := ParseCSV(strings.NewReader(noFuel), emissions.DefaultConfig())
	var schemaErr *emissions.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Field != "fuel_kg" {
		t.Errorf("SchemaError field = %s, want fuel_kg", schemaErr.Field)
	}
}

func TestParseCSVRejectsNegativeValues(t *testing.T) {
	bad := `flight_id,date,origin,destination,distance_km,aircraft_type,flight_level,fuel_kg
FL0001,2025-03-01,Paris,London,350,A320,36000,-10
FL0002,2025-03-01,Paris,London,-350,A320,36000,1000
`
	result, err := ParseCSV(strings.NewReader(bad), emissions.DefaultConfig())
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("got %d records, want 0", len(result.Records))
	}
	if len(result.RowErrors) != 2 {
		t.Errorf("got %d row errors, want 2", len(result.RowErrors))
	}
}

func TestParseCSVEmptyInput(t *testing.T) {
	result, err := ParseCSV(strings.NewReader(""), emissions.DefaultConfig())
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("got %d records from empty input", len(result.Records))
	}
}
