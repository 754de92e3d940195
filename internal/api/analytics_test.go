package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skylens/verdant/internal/common"
	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/models/dtos"
	"skylens/verdant/internal/models/entities"
	"skylens/verdant/internal/services"

	"github.com/go-chi/chi/v5"
)

// Mock FlightStore
type mockFlightStore struct {
	findByDatasetFunc func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error)
}

func (m *mockFlightStore) InsertBatch(ctx context.Context, datasetID string, records []entities.FlightRecord) error {
	return nil
}

func (m *mockFlightStore) FindByDataset(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
	return m.findByDatasetFunc(ctx, datasetID)
}

func (m *mockFlightStore) DeleteByDataset(ctx context.Context, datasetID string) error {
	return nil
}

func testAnalyticsRouter(t *testing.T, store services.FlightStore) chi.Router {
	t.Helper()

	scenarios, err := services.NewScenarioConfigService(emissions.DefaultScenarios())
	if err != nil {
		t.Fatalf("scenario config: %v", err)
	}
	svc := services.NewAnalyticsService(store, common.NewCacheService(60, 600), scenarios, nil, emissions.DefaultConfig())

	r := chi.NewRouter()
	r.Get("/datasets/{datasetID}/baseline", BaselineHandler(svc))
	r.Get("/datasets/{datasetID}/compare", CompareHandler(svc))
	return r
}

func storeWithRecords(records []entities.FlightRecord) *mockFlightStore {
	return &mockFlightStore{
		findByDatasetFunc: func(ctx context.Context, datasetID string) ([]entities.FlightRecord, error) {
			if datasetID == "ds-1" {
				return records, nil
			}
			return nil, nil
		},
	}
}

func sampleRecords() []entities.FlightRecord {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []entities.FlightRecord{
		{FlightID: "FL0001", Date: date, Origin: "Paris", Destination: "London", DistanceKm: 350, AircraftType: "A320", FlightLevel: 36000, FuelKg: 1000, CO2Kg: 3160},
		{FlightID: "FL0002", Date: date, Origin: "Paris", Destination: "Dubai", DistanceKm: 5200, AircraftType: "B777", FlightLevel: 39000, FuelKg: 42000, CO2Kg: 132720},
	}
}

func TestBaselineHandler_Success(t *testing.T) {
	router := testAnalyticsRouter(t, storeWithRecords(sampleRecords()))

	req := httptest.NewRequest("GET", "/datasets/ds-1/baseline", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var response dtos.APIResponse[emissions.Result]
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status ok, got %s", response.Status)
	}
	if response.Data == nil || response.Data.TotalFlights != 2 {
		t.Errorf("Expected 2 flights in baseline, got %+v", response.Data)
	}
}

func TestBaselineHandler_UnknownDataset(t *testing.T) {
	router := testAnalyticsRouter(t, storeWithRecords(sampleRecords()))

	req := httptest.NewRequest("GET", "/datasets/nope/baseline", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestBaselineHandler_BadDate(t *testing.T) {
	router := testAnalyticsRouter(t, storeWithRecords(sampleRecords()))

	req := httptest.NewRequest("GET", "/datasets/ds-1/baseline?from=01-03-2025", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestCompareHandler_UnknownScenario(t *testing.T) {
	router := testAnalyticsRouter(t, storeWithRecords(sampleRecords()))

	req := httptest.NewRequest("GET", "/datasets/ds-1/compare?scenario=cold-fusion", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", rr.Code)
	}
}

func TestCompareHandler_Sweep(t *testing.T) {
	router := testAnalyticsRouter(t, storeWithRecords(sampleRecords()))

	req := httptest.NewRequest("GET", "/datasets/ds-1/compare", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var response dtos.APIResponse[dtos.ScenarioSweepResponse]
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Data == nil || len(response.Data.Comparisons) != len(emissions.DefaultScenarios()) {
		t.Errorf("Expected one comparison per configured scenario, got %+v", response.Data)
	}
}
