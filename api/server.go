// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"link-extractor-api/api/middleware"
	"link-extractor-api/core/interfaces"
	"link-extractor-api/pkg/featureflags"
)

const (
	apiTitle   = "Link Extractor API"
	apiVersion = "1.2.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger         interfaces.Logger
	Flags          featureflags.Manager
	RateLimitRPS   int // sustained requests per second per client
	RateLimitBurst int // burst allowance per client
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsHandler())

	api := humachi.New(router, apiConfig())

	// The OpenAPI spec is automatically available at /openapi.json
	// The Swagger UI is automatically available at /docs

	return api, router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so even rejected requests carry the headers
	router.Use(corsHandler())

	if cfg.Flags != nil {
		router.Use(middleware.FeatureFlagMiddleware(cfg.Flags))
	}

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < cfg.RateLimitRPS {
			burst = cfg.RateLimitRPS
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, burst)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	api := humachi.New(router, apiConfig())

	return api, router
}

func apiConfig() huma.Config {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "API for extracting the links from a single web page, " +
		"with optional headless-browser rendering for JavaScript-driven sites"
	return config
}

func corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}
