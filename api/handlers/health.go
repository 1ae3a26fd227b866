// ABOUTME: Health and service info handlers for the Huma API
// ABOUTME: Provides liveness checks and a root service description

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"link-extractor-api/api/dto/responses"
)

const (
	serviceName    = "link-extractor-api"
	serviceVersion = "1.2.0"
)

// HealthHandler handles health and service info requests
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// RegisterRoutes registers the health and info routes
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, h.HealthCheck)

	huma.Register(api, huma.Operation{
		OperationID: "serviceInfo",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Service description",
		Tags:        []string{"System"},
	}, h.ServiceInfo)
}

// HealthOutput defines the output for the health check
type HealthOutput struct {
	Body responses.HealthResponse
}

// HealthCheck handles the GET /api/health endpoint
func (h *HealthHandler) HealthCheck(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	return &HealthOutput{
		Body: responses.HealthResponse{
			Status:  "healthy",
			Service: serviceName,
		},
	}, nil
}

// ServiceInfoOutput defines the output for the service info endpoint
type ServiceInfoOutput struct {
	Body responses.ServiceInfoResponse
}

// ServiceInfo handles the GET / endpoint
func (h *HealthHandler) ServiceInfo(ctx context.Context, input *struct{}) (*ServiceInfoOutput, error) {
	return &ServiceInfoOutput{
		Body: responses.ServiceInfoResponse{
			Service: serviceName,
			Version: serviceVersion,
			Endpoints: map[string]string{
				"POST /api/extract": "Extract links from a web page",
				"POST /api/export":  "Download a link list as txt or csv",
				"GET /api/health":   "Health check",
				"GET /ui/":          "Browser front-end",
				"GET /app":          "Server-rendered front-end",
			},
			Docs: "/docs",
		},
	}, nil
}
