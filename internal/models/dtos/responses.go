package dtos

import (
	"time"

	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/ingest"
)

type APIResponse[T any] struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	ResponseTime string    `json:"response_time,omitempty"`
	Error        string    `json:"error,omitempty"`
	Data         *T        `json:"data,omitempty"`
}

// DatasetSummary describes one stored dataset to the presentation layer.
type DatasetSummary struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Source       string            `json:"source"`
	RowsAccepted int               `json:"rows_accepted"`
	RowsRejected int               `json:"rows_rejected"`
	RowErrors    []ingest.RowError `json:"row_errors,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ComparisonResponse pairs the calculator comparison with its monetary
// valuation.
type ComparisonResponse struct {
	Comparison emissions.Comparison      `json:"comparison"`
	Impact     emissions.FinancialImpact `json:"impact"`
}

// ScenarioSweepResponse is the result of comparing every configured
// scenario against the same baseline.
type ScenarioSweepResponse struct {
	DatasetID   string               `json:"dataset_id"`
	Comparisons []ComparisonResponse `json:"comparisons"`
}

// DashboardTokenResponse carries a freshly issued read-only token.
type DashboardTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
