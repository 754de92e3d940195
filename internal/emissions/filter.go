package emissions

import (
	"time"

	"skylens/verdant/internal/models/entities"
)

// FilterOptions narrows a dataset before computation. Zero values mean "no
// filter" for their dimension.
type FilterOptions struct {
	AircraftType string
	Route        string // "Origin - Destination"
	From         time.Time
	To           time.Time
}

// IsZero reports whether no filter dimension is set.
func (f FilterOptions) IsZero() bool {
	return f.AircraftType == "" && f.Route == "" && f.From.IsZero() && f.To.IsZero()
}

// Key renders the options as a stable cache-key fragment. Equal options
// always produce the same string.
func (f FilterOptions) Key() string {
	from, to := "", ""
	if !f.From.IsZero() {
		from = f.From.Format("2006-01-02")
	}
	if !f.To.IsZero() {
		to = f.To.Format("2006-01-02")
	}
	return f.AircraftType + "|" + f.Route + "|" + from + "|" + to
}

// Filter returns the records matching every set dimension. The input slice
// is not mutated; filtering everything out is valid and yields an empty
// slice, not an error.
func Filter(records []entities.FlightRecord, opts FilterOptions) []entities.FlightRecord {
	if opts.IsZero() {
		return records
	}

	out := make([]entities.FlightRecord, 0, len(records))
	for i := range records {
		rec := &records[i]
		if opts.AircraftType != "" && rec.AircraftType != opts.AircraftType {
			continue
		}
		if opts.Route != "" && rec.Route() != opts.Route {
			continue
		}
		if !opts.From.IsZero() && rec.Date.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && rec.Date.After(opts.To) {
			continue
		}
		out = append(out, *rec)
	}
	return out
}
