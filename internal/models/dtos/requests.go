package dtos

import "skylens/verdant/internal/emissions"

// GenerateDatasetRequest asks for a synthetic dataset.
type GenerateDatasetRequest struct {
	Name    string `json:"name"`
	Flights int    `json:"flights"`
	Seed    *int64 `json:"seed,omitempty"`
}

// FleetReplacementRequest lists the substitutions to evaluate. Empty means
// the default upgrade path.
type FleetReplacementRequest struct {
	Replacements []emissions.FleetReplacement `json:"replacements"`
}

// EstimateRequest wraps the parametric burn model inputs.
type EstimateRequest struct {
	emissions.BurnParams
}
