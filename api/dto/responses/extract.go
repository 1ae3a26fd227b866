// ABOUTME: Response DTOs for link extraction API endpoints
// ABOUTME: Provides the success/error envelope shared by all outcomes

package responses

// ExtractLinksResponse is the envelope returned by the extract endpoint.
// Failures use the same shape with success=false and an empty link list,
// so clients always parse one structure.
type ExtractLinksResponse struct {
	Success     bool                   `json:"success" doc:"Whether extraction completed"`
	URL         string                 `json:"url" doc:"The requested page URL"`
	Error       string                 `json:"error,omitempty" doc:"Human-readable failure description"`
	Links       []string               `json:"links" doc:"Normalized absolute links in document order"`
	Count       int                    `json:"count" doc:"Number of links returned"`
	Diagnostics map[string]interface{} `json:"diagnostics,omitempty" doc:"Fetch and parse details"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status" doc:"Service health state"`
	Service string `json:"service" doc:"Service identifier"`
}

// ServiceInfoResponse describes the service for clients hitting the root path
type ServiceInfoResponse struct {
	Service   string            `json:"service" doc:"Service identifier"`
	Version   string            `json:"version" doc:"Service version"`
	Endpoints map[string]string `json:"endpoints" doc:"Available endpoints"`
	Docs      string            `json:"docs" doc:"Path to interactive API documentation"`
}
