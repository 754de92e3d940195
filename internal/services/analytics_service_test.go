package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"skylens/verdant/internal/common"
	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/models/entities"
)

// Mock FlightStore
type mockFlightStore struct {
	insertBatchFunc   func(ctx context.Context, datasetID string, records []entities.FlightRecord) error
	findByDatasetFunc func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error)
	deleteFunc        func(ctx context.Context, datasetID string) error
}

func (m *mockFlightStore) InsertBatch(ctx context.Context, datasetID string, records []entities.FlightRecord) error {
	return m.insertBatchFunc(ctx, datasetID, records)
}

func (m *mockFlightStore) FindByDataset(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
	return m.findByDatasetFunc(ctx, datasetID)
}

func (m *mockFlightStore) DeleteByDataset(ctx context.Context, datasetID string) error {
	return m.deleteFunc(ctx, datasetID)
}

func storedRecords() []entities.FlightRecord {
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return []entities.FlightRecord{
		{FlightID: "FL0001", Origin: "Paris", Destination: "London", DistanceKm: 350, AircraftType: "A320", FlightLevel: 36000, FuelKg: 1000, CO2Kg: 3160, Date: date},
		{FlightID: "FL0002", Origin: "Paris", Destination: "Dubai", DistanceKm: 5200, AircraftType: "B777", FlightLevel: 39000, FuelKg: 41000, CO2Kg: 129560, Date: date},
	}
}

func newTestAnalytics(t *testing.T, store FlightStore) *AnalyticsService {
	t.Helper()
	scenarios, err := NewScenarioConfigService(emissions.DefaultScenarios())
	if err != nil {
		t.Fatalf("scenario config: %v", err)
	}
	cache := common.NewCacheService(60, 600)
	return NewAnalyticsService(store, cache, scenarios, nil, emissions.DefaultConfig())
}

func TestAnalyticsBaseline(t *testing.T) {
	calls := 0
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			calls++
			return storedRecords(), nil
		},
	}
	svc := newTestAnalytics(t, store)

	res, err := svc.Baseline(context.Background(), "ds1", emissions.FilterOptions{})
	if err != nil {
		t.Fatalf("Baseline returned error: %v", err)
	}
	if res.TotalFlights != 2 {
		t.Errorf("TotalFlights = %d, want 2", res.TotalFlights)
	}

	// Second call must come from cache.
	if _, err := svc.Baseline(context.Background(), "ds1", emissions.FilterOptions{}); err != nil {
		t.Fatalf("second Baseline: %v", err)
	}
	if calls != 1 {
		t.Errorf("store hit %d times, want 1", calls)
	}
}

func TestAnalyticsBaselineFilteredToNothing(t *testing.T) {
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			return storedRecords(), nil
		},
	}
	svc := newTestAnalytics(t, store)

	res, err := svc.Baseline(context.Background(), "ds1", emissions.FilterOptions{AircraftType: "A380"})
	if err != nil {
		t.Fatalf("filtered Baseline returned error: %v", err)
	}
	if res.TotalFlights != 0 || res.TotalCO2Kg != 0 {
		t.Errorf("expected zero result, got %+v", res)
	}
}

func TestAnalyticsUnknownDataset(t *testing.T) {
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			return nil, nil
		},
	}
	svc := newTestAnalytics(t, store)

	_, err := svc.Baseline(context.Background(), "missing", emissions.FilterOptions{})
	if !errors.Is(err, ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestAnalyticsCompare(t *testing.T) {
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			return storedRecords(), nil
		},
	}
	svc := newTestAnalytics(t, store)

	resp, err := svc.Compare(context.Background(), "ds1", emissions.ScenarioEngineWash, emissions.FilterOptions{})
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if resp.Comparison.DeltaFuelKg <= 0 {
		t.Errorf("DeltaFuelKg = %f, want > 0", resp.Comparison.DeltaFuelKg)
	}
	if resp.Impact.TotalSavingsEUR <= 0 {
		t.Errorf("TotalSavingsEUR = %f, want > 0", resp.Impact.TotalSavingsEUR)
	}
}

func TestAnalyticsCompareUnknownScenario(t *testing.T) {
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			return storedRecords(), nil
		},
	}
	svc := newTestAnalytics(t, store)

	_, err := svc.Compare(context.Background(), "ds1", "cold-fusion", emissions.FilterOptions{})
	var invErr *emissions.InvalidScenarioError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected InvalidScenarioError, got %v", err)
	}
}

func TestAnalyticsCompareAll(t *testing.T) {
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			return storedRecords(), nil
		},
	}
	svc := newTestAnalytics(t, store)

	sweep, err := svc.CompareAll(context.Background(), "ds1", emissions.FilterOptions{})
	if err != nil {
		t.Fatalf("CompareAll returned error: %v", err)
	}
	if len(sweep.Comparisons) != len(emissions.DefaultScenarios()) {
		t.Fatalf("got %d comparisons, want %d", len(sweep.Comparisons), len(emissions.DefaultScenarios()))
	}
	for i := 1; i < len(sweep.Comparisons); i++ {
		if sweep.Comparisons[i].Comparison.DeltaCO2Kg > sweep.Comparisons[i-1].Comparison.DeltaCO2Kg {
			t.Errorf("sweep not sorted descending at %d", i)
		}
	}
}

func TestAnalyticsRankRoutes(t *testing.T) {
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			return storedRecords(), nil
		},
	}
	svc := newTestAnalytics(t, store)

	ranking, err := svc.RankRoutes(context.Background(), "ds1", emissions.ScenarioImprovedRouting)
	if err != nil {
		t.Fatalf("RankRoutes returned error: %v", err)
	}
	if len(ranking) != 2 {
		t.Fatalf("got %d routes, want 2", len(ranking))
	}
	if ranking[0].Route != "Paris - Dubai" {
		t.Errorf("top route = %s, want Paris - Dubai", ranking[0].Route)
	}
}

func TestAnalyticsFleetReplacementDefaults(t *testing.T) {
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			return storedRecords(), nil
		},
	}
	svc := newTestAnalytics(t, store)

	result, err := svc.FleetReplacement(context.Background(), "ds1", nil)
	if err != nil {
		t.Fatalf("FleetReplacement returned error: %v", err)
	}
	// Defaults replace both the A320 and B777 legs.
	if result.FlightsReplaced != 2 {
		t.Errorf("FlightsReplaced = %d, want 2", result.FlightsReplaced)
	}
	if result.EmissionDeltaKg <= 0 {
		t.Errorf("EmissionDeltaKg = %f, want > 0", result.EmissionDeltaKg)
	}
}

func TestAnalyticsBaselineServedFromResultCache(t *testing.T) {
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			return storedRecords(), nil
		},
	}
	svc := newTestAnalytics(t, store)

	first, err := svc.Baseline(context.Background(), "ds1", emissions.FilterOptions{})
	if err != nil {
		t.Fatalf("Baseline returned error: %v", err)
	}

	// With the result cached, losing the store must not matter.
	store.findByDatasetFunc = func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
		return nil, errors.New("store unavailable")
	}
	second, err := svc.Baseline(context.Background(), "ds1", emissions.FilterOptions{})
	if err != nil {
		t.Fatalf("cached Baseline returned error: %v", err)
	}
	if second.TotalCO2Kg != first.TotalCO2Kg {
		t.Errorf("cached TotalCO2Kg = %f, want %f", second.TotalCO2Kg, first.TotalCO2Kg)
	}
}

func TestAnalyticsResultCacheKeyedByFilter(t *testing.T) {
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			return storedRecords(), nil
		},
	}
	svc := newTestAnalytics(t, store)

	all, err := svc.Baseline(context.Background(), "ds1", emissions.FilterOptions{})
	if err != nil {
		t.Fatalf("unfiltered Baseline: %v", err)
	}
	narrowed, err := svc.Baseline(context.Background(), "ds1", emissions.FilterOptions{AircraftType: "A320"})
	if err != nil {
		t.Fatalf("filtered Baseline: %v", err)
	}
	if narrowed.TotalFlights == all.TotalFlights {
		t.Errorf("filtered result reused the unfiltered cache entry: %d flights", narrowed.TotalFlights)
	}
}

func TestAnalyticsCompareAllServedFromResultCache(t *testing.T) {
	store := &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			return storedRecords(), nil
		},
	}
	svc := newTestAnalytics(t, store)

	if _, err := svc.CompareAll(context.Background(), "ds1", emissions.FilterOptions{}); err != nil {
		t.Fatalf("CompareAll returned error: %v", err)
	}

	store.findByDatasetFunc = func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
		return nil, errors.New("store unavailable")
	}
	sweep, err := svc.CompareAll(context.Background(), "ds1", emissions.FilterOptions{})
	if err != nil {
		t.Fatalf("cached CompareAll returned error: %v", err)
	}
	if len(sweep.Comparisons) != len(emissions.DefaultScenarios()) {
		t.Fatalf("cached sweep has %d comparisons, want %d", len(sweep.Comparisons), len(emissions.DefaultScenarios()))
	}
}
