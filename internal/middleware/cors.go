// Package middleware holds the HTTP middleware that cmd/api stacks in front
// of the Herdbook routes.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler lets the farm dashboard call the API from the origins in
// allowedOrigins (CORS_ORIGINS), each a bare scheme://host[:port].
// Content-Disposition is exposed so the dashboard can keep the file names of
// the CSV export and JSON backup downloads.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Disposition"},
	})
	return c.Handler
}
