package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"skylens/verdant/internal/common"
	"skylens/verdant/internal/constants"
	"skylens/verdant/internal/emissions"
	"skylens/verdant/internal/models/dtos"
	"skylens/verdant/internal/services"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data T, initTime time.Time) {
	resp := dtos.APIResponse[T]{
		Status:       string(constants.APIStatusOk),
		Timestamp:    time.Now().UTC(),
		ResponseTime: common.GetResponseTime(initTime),
		Data:         &data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string, initTime time.Time) {
	resp := dtos.APIResponse[any]{
		Status:       string(constants.APIStatusError),
		Timestamp:    time.Now().UTC(),
		ResponseTime: common.GetResponseTime(initTime),
		Error:        message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithCalcError maps the calculator's typed failures onto HTTP
// status codes. All of them are recoverable at this boundary: the
// presentation layer shows the message and lets the user adjust input.
func respondWithCalcError(w http.ResponseWriter, err error, initTime time.Time) {
	var (
		invalidScenario *emissions.InvalidScenarioError
		emptyDataset    *emissions.EmptyDatasetError
		schema          *emissions.SchemaError
	)
	switch {
	case errors.As(err, &invalidScenario):
		respondWithError(w, http.StatusUnprocessableEntity, invalidScenario.Error(), initTime)
	case errors.As(err, &emptyDataset):
		respondWithError(w, http.StatusUnprocessableEntity, emptyDataset.Error(), initTime)
	case errors.As(err, &schema):
		respondWithError(w, http.StatusBadRequest, schema.Error(), initTime)
	case errors.Is(err, services.ErrDatasetNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), initTime)
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error(), initTime)
	}
}
