package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORSConfig is the single cross-origin policy of the API
type CORSConfig struct {
	AllowedOrigin    string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// DefaultCORSConfig allows the given origin to call every API method with credentials
func DefaultCORSConfig(origin string) CORSConfig {
	return CORSConfig{
		AllowedOrigin:    origin,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
	}
}

// CORS builds the cross-origin middleware from cfg
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	opts := []handlers.CORSOption{
		handlers.AllowedOrigins([]string{cfg.AllowedOrigin}),
		handlers.AllowedMethods(cfg.AllowedMethods),
		handlers.AllowedHeaders(cfg.AllowedHeaders),
		handlers.ExposedHeaders([]string{"X-Request-Id"}),
	}
	if cfg.AllowCredentials {
		opts = append(opts, handlers.AllowCredentials())
	}
	return handlers.CORS(opts...)
}
