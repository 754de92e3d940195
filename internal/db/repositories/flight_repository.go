package repositories

import (
	"context"
	"fmt"

	"skylens/verdant/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type FlightRepository struct {
	db *sqlx.DB
}

func NewFlightRepository(db *sqlx.DB) *FlightRepository {
	return &FlightRepository{db}
}

const insertFlightQuery = `
	INSERT INTO flight_records (
		dataset_id,
		flight_id,
		flight_date,
		origin,
		destination,
		distance_km,
		aircraft_type,
		takeoff_weight_kg,
		flight_level,
		headwind_kmh,
		temperature_deviation,
		fuel_kg,
		co2_kg,
		weather,
		optimal_climb_used,
		potential_fuel_savings_kg
	)
	VALUES (
		:dataset_id, :flight_id, :flight_date, :origin, :destination,
		:distance_km, :aircraft_type, :takeoff_weight_kg, :flight_level,
		:headwind_kmh, :temperature_deviation, :fuel_kg, :co2_kg,
		:weather, :optimal_climb_used, :potential_fuel_savings_kg
	);
`

// InsertBatch stores all records of one dataset in a single transaction so
// a dataset is either fully present or absent.
func (r *FlightRepository) InsertBatch(ctx context.Context, datasetID string, records []entities.FlightRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i := range records {
		// Stamp a copy; the caller's slice stays untouched.
		rec := records[i]
		rec.DatasetID = datasetID
		if _, err := tx.NamedExecContext(ctx, insertFlightQuery, &rec); err != nil {
			return fmt.Errorf("insert flight %s: %w", rec.FlightID, err)
		}
	}
	return tx.Commit()
}

func (r *FlightRepository) FindByDataset(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
	query := `
		SELECT id, dataset_id, flight_id, flight_date, origin, destination,
		       distance_km, aircraft_type, takeoff_weight_kg, flight_level,
		       headwind_kmh, temperature_deviation, fuel_kg, co2_kg, weather,
		       optimal_climb_used, potential_fuel_savings_kg, created_at
		FROM flight_records
		WHERE dataset_id = $1
		ORDER BY flight_date, flight_id;
	`

	var records []entities.FlightRecord
	if err := r.db.SelectContext(ctx, &records, query, datasetID); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *FlightRepository) DeleteByDataset(ctx context.Context, datasetID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM flight_records WHERE dataset_id = $1;`, datasetID)
	return err
}

func (r *FlightRepository) CountByDataset(ctx context.Context, datasetID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM flight_records WHERE dataset_id = $1;`, datasetID)
	return count, err
}
