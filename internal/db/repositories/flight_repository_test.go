package repositories

import (
	"context"
	"testing"
	"time"

	"skylens/verdant/internal/models/entities"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const flightRecordsSchema = `
	CREATE TABLE flight_records (
		id                        INTEGER PRIMARY KEY AUTOINCREMENT,
		dataset_id                TEXT NOT NULL,
		flight_id                 TEXT NOT NULL,
		flight_date               TIMESTAMP NOT NULL,
		origin                    TEXT NOT NULL,
		destination               TEXT NOT NULL,
		distance_km               REAL NOT NULL,
		aircraft_type             TEXT NOT NULL,
		takeoff_weight_kg         REAL NOT NULL,
		flight_level              INTEGER NOT NULL,
		headwind_kmh              REAL NOT NULL,
		temperature_deviation     REAL NOT NULL,
		fuel_kg                   REAL NOT NULL,
		co2_kg                    REAL NOT NULL,
		weather                   TEXT NOT NULL,
		optimal_climb_used        BOOLEAN NOT NULL,
		potential_fuel_savings_kg REAL NOT NULL,
		created_at                TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

func newTestFlightRepository(t *testing.T) *FlightRepository {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(flightRecordsSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewFlightRepository(db)
}

func sampleFlights() []entities.FlightRecord {
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return []entities.FlightRecord{
		{FlightID: "FL0001", Date: date, Origin: "Paris", Destination: "London", DistanceKm: 350, AircraftType: "A320", TakeoffWeightKg: 65000, FlightLevel: 36000, FuelKg: 1000, CO2Kg: 3160, Weather: "calm"},
		{FlightID: "FL0002", Date: date.AddDate(0, 0, 1), Origin: "Paris", Destination: "Dubai", DistanceKm: 5200, AircraftType: "B777", TakeoffWeightKg: 280000, FlightLevel: 39000, FuelKg: 41000, CO2Kg: 129560, Weather: "storm"},
	}
}

func TestFlightRepositoryInsertAndCount(t *testing.T) {
	repo := newTestFlightRepository(t)
	ctx := context.Background()

	if err := repo.InsertBatch(ctx, "ds-1", sampleFlights()); err != nil {
		t.Fatalf("InsertBatch returned error: %v", err)
	}

	count, err := repo.CountByDataset(ctx, "ds-1")
	if err != nil {
		t.Fatalf("CountByDataset returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	records, err := repo.FindByDataset(ctx, "ds-1")
	if err != nil {
		t.Fatalf("FindByDataset returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].FlightID != "FL0001" {
		t.Errorf("first record = %s, want FL0001 (date order)", records[0].FlightID)
	}
	if records[0].DatasetID != "ds-1" {
		t.Errorf("stored DatasetID = %q, want ds-1", records[0].DatasetID)
	}
}

func TestFlightRepositoryInsertLeavesInputUntouched(t *testing.T) {
	repo := newTestFlightRepository(t)
	records := sampleFlights()

	if err := repo.InsertBatch(context.Background(), "ds-1", records); err != nil {
		t.Fatalf("InsertBatch returned error: %v", err)
	}
	for i := range records {
		if records[i].DatasetID != "" {
			t.Errorf("records[%d].DatasetID = %q, want untouched empty value", i, records[i].DatasetID)
		}
	}
}

func TestFlightRepositoryDeleteByDataset(t *testing.T) {
	repo := newTestFlightRepository(t)
	ctx := context.Background()

	if err := repo.InsertBatch(ctx, "ds-1", sampleFlights()); err != nil {
		t.Fatalf("InsertBatch returned error: %v", err)
	}
	if err := repo.DeleteByDataset(ctx, "ds-1"); err != nil {
		t.Fatalf("DeleteByDataset returned error: %v", err)
	}

	count, err := repo.CountByDataset(ctx, "ds-1")
	if err != nil {
		t.Fatalf("CountByDataset returned error: %v", err)
	}
	if count != 0 {
		t.Errorf("count after delete = %d, want 0", count)
	}
}
