// Package api provides the HTTP API layer for the Link Extractor service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
// - ui/: embedded web front-ends served next to the API
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - JSON spec available at /openapi.json
// - Interactive documentation at /docs
//
// 2. Request/Response Validation
//
// Huma provides automatic validation based on struct tags:
//
//	type ExtractLinksRequest struct {
//	    URL     string `json:"url" format:"uri"`
//	    Timeout int    `json:"timeout,omitempty" minimum:"1" maximum:"120" default:"10"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Rate limiting per IP address
// - CORS handling
//
// # Usage Example
//
//	// Create API with middleware
//	cfg := api.APIConfig{
//	    Logger:         logger,
//	    RateLimitRPS:   5,
//	    RateLimitBurst: 10,
//	}
//	humaAPI, router := api.NewAPIWithMiddleware(cfg)
//
//	// Register handlers
//	extractHandler := handlers.NewExtractionHandler(extractionService)
//	extractHandler.RegisterRoutes(humaAPI)
//
//	// Start server
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// Endpoints outside the extraction contract use a consistent error format
// based on RFC 7807:
//
//	{
//	    "status": 422,
//	    "title": "Unprocessable Entity",
//	    "detail": "format must be txt or csv",
//	    "instance": "/api/export"
//	}
//
// The extraction endpoint itself always answers with the
// success/links/count/diagnostics envelope, on failures too, so clients get
// fetch diagnostics instead of a bare error page.
package api
