package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/models/entities"
)

// RowError reports one rejected row. Rows fail individually; a bad row
// never aborts the rest of the upload.
type RowError struct {
	Line   int    `json:"line"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ParseResult is the outcome of decoding an uploaded dataset.
type ParseResult struct {
	Records   []entities.FlightRecord `json:"-"`
	RowErrors []RowError              `json:"row_errors,omitempty"`
}

// Header names accepted per column. The first entry is canonical; the rest
// are aliases seen in exports from the legacy dashboard.
var headerAliases = map[string][]string{
	"flight_id":                 {"flight_id"},
	"date":                      {"date", "flight_date"},
	"origin":                    {"origin"},
	"destination":               {"destination"},
	"distance_km":               {"distance_km"},
	"aircraft_type":             {"aircraft_type"},
	"takeoff_weight_kg":         {"takeoff_weight_kg"},
	"flight_level":              {"flight_level"},
	"headwind_kmh":              {"headwind_kmh"},
	"temperature_deviation":     {"temperature_deviation"},
	"fuel_kg":                   {"fuel_kg", "fuel_consumed_kg"},
	"co2_kg":                    {"co2_kg", "co2_emissions_kg"},
	"weather":                   {"weather", "wind_category"},
	"optimal_climb_used":        {"optimal_climb_used"},
	"potential_fuel_savings_kg": {"potential_fuel_savings_kg"},
}

var requiredColumns = []string{
	"date", "origin", "destination", "distance_km", "aircraft_type", "flight_level", "fuel_kg",
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// ParseCSV decodes an uploaded CSV into typed flight records. A missing
// required header is a SchemaError; individual bad rows are collected as
// RowErrors and skipped. CO2 is derived from fuel burn through cfg when the
// column is absent or empty.
func ParseCSV(r io.Reader, cfg *emissions.Config) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &ParseResult{}, nil
	}
	if err != nil {
		return nil, &emissions.SchemaError{Field: "header", Reason: "unreadable header row", Err: err}
	}

	cols := make(map[string]int)
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for canonical, aliases := range headerAliases {
			for _, alias := range aliases {
				if name == alias {
					cols[canonical] = i
				}
			}
		}
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, &emissions.SchemaError{Field: required, Reason: "required column missing"}
		}
	}

	result := &ParseResult{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Line: line, Field: "", Reason: err.Error()})
			continue
		}

		rec, rowErr := parseRow(row, cols, line, cfg)
		if rowErr != nil {
			result.RowErrors = append(result.RowErrors, *rowErr)
			continue
		}
		result.Records = append(result.Records, *rec)
	}
	return result, nil
}

func field(row []string, cols map[string]int, name string) (string, bool) {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

func parseRow(row []string, cols map[string]int, line int, cfg *emissions.Config) (*entities.FlightRecord, *RowError) {
	rec := &entities.FlightRecord{}

	dateStr, _ := field(row, cols, "date")
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, &RowError{Line: line, Field: "date", Reason: "unparseable date " + strconv.Quote(dateStr)}
	}
	rec.Date = date

	rec.Origin, _ = field(row, cols, "origin")
	rec.Destination, _ = field(row, cols, "destination")
	if rec.Origin == "" || rec.Destination == "" {
		return nil, &RowError{Line: line, Field: "origin", Reason: "origin and destination are required"}
	}
	rec.AircraftType, _ = field(row, cols, "aircraft_type")
	if rec.AircraftType == "" {
		return nil, &RowError{Line: line, Field: "aircraft_type", Reason: "aircraft type is required"}
	}

	if rec.DistanceKm, err = parseFloat(row, cols, "distance_km"); err != nil {
		return nil, &RowError{Line: line, Field: "distance_km", Reason: err.Error()}
	}
	if rec.DistanceKm <= 0 {
		return nil, &RowError{Line: line, Field: "distance_km", Reason: "must be positive"}
	}
	if rec.FuelKg, err = parseFloat(row, cols, "fuel_kg"); err != nil {
		return nil, &RowError{Line: line, Field: "fuel_kg", Reason: err.Error()}
	}
	if rec.FuelKg < 0 {
		return nil, &RowError{Line: line, Field: "fuel_kg", Reason: "must not be negative"}
	}

	fl, err := parseFloat(row, cols, "flight_level")
	if err != nil {
		return nil, &RowError{Line: line, Field: "flight_level", Reason: err.Error()}
	}
	if fl <= 0 {
		return nil, &RowError{Line: line, Field: "flight_level", Reason: "must be positive"}
	}
	rec.FlightLevel = int(fl)

	// Optional columns from here on; parse errors still reject the row so
	// silently-wrong numbers never enter the aggregates.
	rec.FlightID, _ = field(row, cols, "flight_id")
	if rec.FlightID == "" {
		rec.FlightID = fmt.Sprintf("ROW%04d", line)
	}
	rec.Weather, _ = field(row, cols, "weather")

	for name, dst := range map[string]*float64{
		"takeoff_weight_kg":         &rec.TakeoffWeightKg,
		"headwind_kmh":              &rec.HeadwindKmh,
		"temperature_deviation":     &rec.TemperatureDev,
		"potential_fuel_savings_kg": &rec.PotentialSavingsKg,
	} {
		if raw, ok := field(row, cols, name); ok && raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &RowError{Line: line, Field: name, Reason: "not numeric"}
			}
			*dst = v
		}
	}

	if raw, ok := field(row, cols, "optimal_climb_used"); ok && raw != "" {
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return nil, &RowError{Line: line, Field: "optimal_climb_used", Reason: "not a boolean"}
		}
		rec.OptimalClimbUsed = b
	}

	if raw, ok := field(row, cols, "co2_kg"); ok && raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &RowError{Line: line, Field: "co2_kg", Reason: "not numeric"}
		}
		if v < 0 {
			return nil, &RowError{Line: line, Field: "co2_kg", Reason: "must not be negative"}
		}
		rec.CO2Kg = v
	} else {
		rec.CO2Kg = rec.FuelKg * cfg.EmissionFactor
	}

	return rec, nil
}

func parseFloat(row []string, cols map[string]int, name string) (float64, error) {
	raw, ok := field(row, cols, name)
	if !ok || raw == "" {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric")
	}
	return v, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no matching date layout")
}
