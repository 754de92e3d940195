package api

import (
	"encoding/json"
	"net/http"
	"time"

	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/models/dtos"
	"skylens/verdant/internal/services"
)

// ListScenariosHandler handles GET /scenarios
func ListScenariosHandler(svc *services.ScenarioConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		respondWithSuccess(w, http.StatusOK, svc.All(), initTime)
	}
}

// EstimateHandler handles POST /estimate. It runs the parametric burn
// model without touching any stored dataset.
func EstimateHandler(cfg *emissions.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.EstimateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", initTime)
			return
		}

		estimate, err := emissions.EstimateFuelBurn(req.BurnParams, cfg)
		if err != nil {
			respondWithCalcError(w, err, initTime)
			return
		}
		respondWithSuccess(w, http.StatusOK, *estimate, initTime)
	}
}
