package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/ingest"
)

// Small operator tool that writes a synthetic flight dataset as CSV,
// ready to feed back through the upload endpoint or into tests.
func main() {
	flights := flag.Int("flights", 1000, "number of flights to generate")
	seed := flag.Int64("seed", ingest.DefaultSeed, "random seed, same seed gives the same dataset")
	out := flag.String("out", "", "output file, stdout when empty")
	flag.Parse()

	if *flights <= 0 {
		log.Fatalf("flights must be positive, got %d", *flights)
	}

	dst := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create %s: %v", *out, err)
		}
		defer f.Close()
		dst = f
	}

	records := ingest.Generate(*flights, *seed, emissions.DefaultConfig())

	w := csv.NewWriter(dst)
	header := []string{
		"flight_id", "date", "origin", "destination", "distance_km",
		"aircraft_type", "takeoff_weight_kg", "flight_level", "headwind_kmh",
		"temperature_deviation", "fuel_kg", "co2_kg", "weather",
		"optimal_climb_used", "potential_fuel_savings_kg",
	}
	if err := w.Write(header); err != nil {
		log.Fatalf("write header: %v", err)
	}
	for i := range records {
		rec := &records[i]
		row := []string{
			rec.FlightID,
			rec.Date.Format("2006-01-02"),
			rec.Origin,
			rec.Destination,
			strconv.FormatFloat(rec.DistanceKm, 'f', 1, 64),
			rec.AircraftType,
			strconv.FormatFloat(rec.TakeoffWeightKg, 'f', 0, 64),
			strconv.Itoa(rec.FlightLevel),
			strconv.FormatFloat(rec.HeadwindKmh, 'f', 1, 64),
			strconv.FormatFloat(rec.TemperatureDev, 'f', 1, 64),
			strconv.FormatFloat(rec.FuelKg, 'f', 1, 64),
			strconv.FormatFloat(rec.CO2Kg, 'f', 1, 64),
			rec.Weather,
			strconv.FormatBool(rec.OptimalClimbUsed),
			strconv.FormatFloat(rec.PotentialSavingsKg, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			log.Fatalf("write row %d: %v", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flush: %v", err)
	}

	fmt.Fprintf(os.Stderr, "wrote %d flights (seed %d)\n", len(records), *seed)
}
