package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"skylens/verdant/internal/constants"
)

// RequestSourceKey is where the authenticated caller kind lives in the
// request context.
const RequestSourceKey contextKey = "request_source"

// RequestSourceFromContext reports which credential authenticated the
// request. Defaults to the API source for open development mode.
func RequestSourceFromContext(ctx context.Context) constants.RequestSource {
	if src, ok := ctx.Value(RequestSourceKey).(constants.RequestSource); ok {
		return src
	}
	return constants.RequestSourceAPI
}

// DashboardClaims is the payload of the short-lived read-only tokens the
// presentation layer uses.
type DashboardClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

const scopeReadOnly = "read"

// AuthMiddleware guards the API. An X-API-Key match grants full access; a
// Bearer dashboard token grants read-only access (GET only). When no API
// key is configured the server is in open development mode.
func AuthMiddleware(apiKey, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			headerKey := r.Header.Get("X-API-Key")
			source := constants.RequestSourceAPI

			switch {
			case headerKey != "":
				if headerKey != apiKey {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}

			case strings.HasPrefix(authHeader, "Bearer "):
				tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
				claims := &DashboardClaims{}
				token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
					return []byte(jwtSecret), nil
				}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
				if err != nil || !token.Valid {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				if claims.Scope == scopeReadOnly && r.Method != http.MethodGet {
					http.Error(w, "Forbidden. Token is read-only", http.StatusForbidden)
					return
				}
				source = constants.RequestSourceDashboard

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), RequestSourceKey, source)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewDashboardToken issues a read-only token the presentation layer can
// embed in chart requests.
func NewDashboardToken(jwtSecret string, ttl time.Duration) (string, error) {
	claims := DashboardClaims{
		Scope: scopeReadOnly,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "dashboard",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
