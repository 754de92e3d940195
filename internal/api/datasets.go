package api

import (
	"encoding/json"
	"net/http"
	"time"

	"skylens/verdant/internal/ingest"
	"skylens/verdant/internal/logging"
	"skylens/verdant/internal/middleware"
	"skylens/verdant/internal/models/dtos"
	"skylens/verdant/internal/services"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 32 << 20

// UploadDatasetHandler handles POST /datasets. The flight data comes in
// as a multipart form with a "file" part, or as a raw CSV body.
func UploadDatasetHandler(svc *services.DatasetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		name := r.URL.Query().Get("name")
		source := r.Body
		if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
			file, header, ferr := r.FormFile("file")
			if ferr != nil {
				respondWithError(w, http.StatusBadRequest, "multipart request is missing a file part", initTime)
				return
			}
			defer file.Close()
			source = file
			if name == "" {
				name = header.Filename
			}
		}
		if name == "" {
			name = "uploaded dataset"
		}

		summary, err := svc.IngestCSV(r.Context(), name, source)
		if err != nil {
			logging.Warn("Dataset upload failed", "name", name, "error", err.Error())
			respondWithCalcError(w, err, initTime)
			return
		}
		respondWithSuccess(w, http.StatusCreated, *summary, initTime)
	}
}

// GenerateDatasetHandler handles POST /datasets/generate
func GenerateDatasetHandler(svc *services.DatasetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.GenerateDatasetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", initTime)
			return
		}
		if req.Flights < 0 {
			respondWithError(w, http.StatusBadRequest, "flights must not be negative", initTime)
			return
		}

		seed := int64(ingest.DefaultSeed)
		if req.Seed != nil {
			seed = *req.Seed
		}
		summary, err := svc.GenerateSynthetic(r.Context(), req.Name, req.Flights, seed)
		if err != nil {
			respondWithCalcError(w, err, initTime)
			return
		}
		respondWithSuccess(w, http.StatusCreated, *summary, initTime)
	}
}

// ListDatasetsHandler handles GET /datasets
func ListDatasetsHandler(svc *services.DatasetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		summaries, err := svc.List(r.Context())
		if err != nil {
			respondWithCalcError(w, err, initTime)
			return
		}
		respondWithSuccess(w, http.StatusOK, summaries, initTime)
	}
}

// DeleteDatasetHandler handles DELETE /datasets/{datasetID}
func DeleteDatasetHandler(svc *services.DatasetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		datasetID := chi.URLParam(r, "datasetID")
		if err := svc.Delete(r.Context(), datasetID); err != nil {
			respondWithCalcError(w, err, initTime)
			return
		}
		logging.Info("Dataset deleted",
			"dataset_id", datasetID,
			"caller", string(middleware.RequestSourceFromContext(r.Context())),
		)
		respondWithSuccess(w, http.StatusOK, map[string]string{"deleted": datasetID}, initTime)
	}
}
