package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CorsMiddleware allows the given origins ("*" allows any). It must wrap the
// router itself: mux only runs Use middleware on matched routes, so preflight
// OPTIONS requests would never reach it.
func CorsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
}
