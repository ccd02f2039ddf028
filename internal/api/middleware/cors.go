package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/cors"
)

// AllowedMethods are the verbs the proxies answer cross-origin.
var AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}

// AllowedHeaders are the request headers browsers may send cross-origin.
var AllowedHeaders = []string{"Content-Type", "Authorization"}

// NewCORS creates a new CORS middleware with the given allowed origins.
// OPTIONS requests are passed through so PreflightHandler can answer them
// with 204.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:     allowedOrigins,
		AllowedMethods:     AllowedMethods,
		AllowedHeaders:     AllowedHeaders,
		ExposedHeaders:     []string{"Content-Type"},
		AllowCredentials:   false,
		MaxAge:             300,
		OptionsPassthrough: true,
	})
}

// PreflightHandler answers OPTIONS with an empty 204. Browser preflights
// arrive here already negotiated by the CORS middleware; plain OPTIONS requests
// without Access-Control-Request-Method get the static header set.
func PreflightHandler(allowedOrigins []string) http.HandlerFunc {
	wildcard := slices.Contains(allowedOrigins, "*")

	return func(w http.ResponseWriter, _ *http.Request) {
		h := w.Header()
		if wildcard && h.Get("Access-Control-Allow-Origin") == "" {
			h.Set("Access-Control-Allow-Origin", "*")
		}
		if h.Get("Access-Control-Allow-Methods") == "" {
			h.Set("Access-Control-Allow-Methods", strings.Join(AllowedMethods, ", "))
		}
		if h.Get("Access-Control-Allow-Headers") == "" {
			h.Set("Access-Control-Allow-Headers", strings.Join(AllowedHeaders, ", "))
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
