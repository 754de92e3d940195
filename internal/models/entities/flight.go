package entities

import "time"

// FlightRecord is one observed or synthetic flight leg.
type FlightRecord struct {
	ID                 string    `db:"id" json:"id,omitempty"`
	DatasetID          string    `db:"dataset_id" json:"dataset_id,omitempty"`
	FlightID           string    `db:"flight_id" json:"flight_id"`
	Date               time.Time `db:"flight_date" json:"date"`
	Origin             string    `db:"origin" json:"origin"`
	Destination        string    `db:"destination" json:"destination"`
	DistanceKm         float64   `db:"distance_km" json:"distance_km"`
	AircraftType       string    `db:"aircraft_type" json:"aircraft_type"`
	TakeoffWeightKg    float64   `db:"takeoff_weight_kg" json:"takeoff_weight_kg"`
	FlightLevel        int       `db:"flight_level" json:"flight_level"`
	HeadwindKmh        float64   `db:"headwind_kmh" json:"headwind_kmh"`
	TemperatureDev     float64   `db:"temperature_deviation" json:"temperature_deviation"`
	FuelKg             float64   `db:"fuel_kg" json:"fuel_kg"`
	CO2Kg              float64   `db:"co2_kg" json:"co2_kg"`
	Weather            string    `db:"weather" json:"weather"`
	OptimalClimbUsed   bool      `db:"optimal_climb_used" json:"optimal_climb_used"`
	PotentialSavingsKg float64   `db:"potential_fuel_savings_kg" json:"potential_fuel_savings_kg"`
	CreatedAt          time.Time `db:"created_at" json:"-"`
}

// Route returns the canonical "Origin - Destination" identifier used for
// grouping and ranking.
func (f *FlightRecord) Route() string {
	return f.Origin + " - " + f.Destination
}
