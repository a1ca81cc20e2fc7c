package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the configured frontend origins (e.g. http://localhost:8080)
// to call the API with a bearer token. Preflight requests are answered here
// with 200 and never reach the router.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:     allowedOrigins,
		AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:     []string{"X-Request-Id"},
		AllowCredentials:   false,
		MaxAge:             300,
		OptionsPassthrough: false,
	})
}
