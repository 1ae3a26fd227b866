// ABOUTME: Extraction handler for the Huma API
// ABOUTME: Provides the HTTP endpoint for single-page link extraction

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"link-extractor-api/api/dto/mappers"
	"link-extractor-api/api/dto/requests"
	"link-extractor-api/api/dto/responses"
	"link-extractor-api/core/domain"
	"link-extractor-api/core/interfaces"
)

// ExtractionHandler handles link extraction HTTP requests
type ExtractionHandler struct {
	extractor interfaces.LinkExtractor
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(extractor interfaces.LinkExtractor) *ExtractionHandler {
	return &ExtractionHandler{extractor: extractor}
}

// RegisterRoutes registers the extraction routes
func (h *ExtractionHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractLinks",
		Method:      http.MethodPost,
		Path:        "/api/extract",
		Summary:     "Extract links from a web page",
		Description: "Fetches a single page and returns every unique outbound link in document order",
		Tags:        []string{"Extraction"},
	}, h.ExtractLinks)
}

// ExtractLinksInput defines the input for the ExtractLinks operation
type ExtractLinksInput struct {
	Body requests.ExtractLinksRequest `json:"body"`
}

// ExtractLinksOutput defines the output for the ExtractLinks operation.
// Status is set per response so failures keep the envelope shape.
type ExtractLinksOutput struct {
	Status int
	Body   responses.ExtractLinksResponse
}

// ExtractLinks handles the POST /api/extract endpoint. Extraction
// failures are part of the contract, not exceptions: they return the
// same envelope with success=false and HTTP 400.
func (h *ExtractionHandler) ExtractLinks(ctx context.Context, input *ExtractLinksInput) (*ExtractLinksOutput, error) {
	input.Body.ApplyDefaults()

	result, err := h.extractor.Extract(ctx, domain.ExtractionRequest{
		URL:             input.Body.URL,
		UseBrowser:      input.Body.UseBrowser,
		FilterDomain:    input.Body.FilterDomain,
		IncludeExternal: input.Body.External(),
		Timeout:         input.Body.Timeout,
		WaitTime:        input.Body.WaitTime,
	})

	status := http.StatusOK
	if err != nil {
		status = http.StatusBadRequest
	}

	return &ExtractLinksOutput{
		Status: status,
		Body:   mappers.ToExtractLinksResponse(result, err),
	}, nil
}
