package api

import (
	"encoding/json"
	"net/http"
	"time"

	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/models/dtos"
	"skylens/verdant/internal/services"

	"github.com/go-chi/chi/v5"
)

const filterDateLayout = "2006-01-02"

// filterFromQuery reads the shared record filters off the query string.
// Bad dates are reported back to the caller instead of silently ignored.
func filterFromQuery(r *http.Request) (emissions.FilterOptions, error) {
	q := r.URL.Query()
	opts := emissions.FilterOptions{
		AircraftType: q.Get("aircraft_type"),
		Route:        q.Get("route"),
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(filterDateLayout, raw)
		if err != nil {
			return opts, err
		}
		opts.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(filterDateLayout, raw)
		if err != nil {
			return opts, err
		}
		opts.To = t
	}
	return opts, nil
}

// BaselineHandler handles GET /datasets/{datasetID}/baseline
func BaselineHandler(svc *services.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		opts, err := filterFromQuery(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "dates must use the YYYY-MM-DD format", initTime)
			return
		}

		result, err := svc.Baseline(r.Context(), chi.URLParam(r, "datasetID"), opts)
		if err != nil {
			respondWithCalcError(w, err, initTime)
			return
		}
		respondWithSuccess(w, http.StatusOK, *result, initTime)
	}
}

// CompareHandler handles GET /datasets/{datasetID}/compare. With a
// scenario query parameter it compares that single scenario, otherwise
// it runs the full configured sweep.
func CompareHandler(svc *services.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		opts, err := filterFromQuery(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "dates must use the YYYY-MM-DD format", initTime)
			return
		}
		datasetID := chi.URLParam(r, "datasetID")

		if scenario := r.URL.Query().Get("scenario"); scenario != "" {
			comparison, err := svc.Compare(r.Context(), datasetID, scenario, opts)
			if err != nil {
				respondWithCalcError(w, err, initTime)
				return
			}
			respondWithSuccess(w, http.StatusOK, *comparison, initTime)
			return
		}

		sweep, err := svc.CompareAll(r.Context(), datasetID, opts)
		if err != nil {
			respondWithCalcError(w, err, initTime)
			return
		}
		respondWithSuccess(w, http.StatusOK, *sweep, initTime)
	}
}

// RankRoutesHandler handles GET /datasets/{datasetID}/routes/ranking
func RankRoutesHandler(svc *services.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		scenario := r.URL.Query().Get("scenario")
		if scenario == "" {
			scenario = emissions.ScenarioImprovedRouting
		}

		ranking, err := svc.RankRoutes(r.Context(), chi.URLParam(r, "datasetID"), scenario)
		if err != nil {
			respondWithCalcError(w, err, initTime)
			return
		}
		respondWithSuccess(w, http.StatusOK, ranking, initTime)
	}
}

// RouteStatsHandler handles GET /datasets/{datasetID}/routes/stats
func RouteStatsHandler(svc *services.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stats, err := svc.RouteStats(r.Context(), chi.URLParam(r, "datasetID"))
		if err != nil {
			respondWithCalcError(w, err, initTime)
			return
		}
		respondWithSuccess(w, http.StatusOK, *stats, initTime)
	}
}

// FlightLevelsHandler handles GET /datasets/{datasetID}/flight-levels
func FlightLevelsHandler(svc *services.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		levels, err := svc.FlightLevels(r.Context(), chi.URLParam(r, "datasetID"), r.URL.Query().Get("aircraft_type"))
		if err != nil {
			respondWithCalcError(w, err, initTime)
			return
		}
		respondWithSuccess(w, http.StatusOK, levels, initTime)
	}
}

// FleetReplacementHandler handles POST /datasets/{datasetID}/fleet-replacement
func FleetReplacementHandler(svc *services.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FleetReplacementRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondWithError(w, http.StatusBadRequest, "Invalid request body", initTime)
				return
			}
		}

		result, err := svc.FleetReplacement(r.Context(), chi.URLParam(r, "datasetID"), req.Replacements)
		if err != nil {
			respondWithCalcError(w, err, initTime)
			return
		}
		respondWithSuccess(w, http.StatusOK, *result, initTime)
	}
}
