package api

import (
	"net/http"
	"time"

	"skylens/verdant/internal/middleware"
	"skylens/verdant/internal/models/dtos"
)

const dashboardTokenTTL = 12 * time.Hour

// DashboardTokenHandler handles POST /auth/dashboard-token. It issues a
// short lived read-only token so dashboards do not need the API key.
func DashboardTokenHandler(jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		token, err := middleware.NewDashboardToken(jwtSecret, dashboardTokenTTL)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "could not issue token", initTime)
			return
		}
		respondWithSuccess(w, http.StatusOK, dtos.DashboardTokenResponse{
			Token:     token,
			ExpiresAt: time.Now().Add(dashboardTokenTTL),
		}, initTime)
	}
}
