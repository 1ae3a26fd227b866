// ABOUTME: Export handler for the Huma API
// ABOUTME: Streams extracted link lists as downloadable txt or csv files

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"link-extractor-api/api/dto/requests"
	"link-extractor-api/core/interfaces"
	"link-extractor-api/pkg/featureflags"
)

// ExportHandler handles link export HTTP requests
type ExportHandler struct {
	exporter interfaces.LinkExporter
}

// NewExportHandler creates a new export handler
func NewExportHandler(exporter interfaces.LinkExporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// RegisterRoutes registers the export routes
func (h *ExportHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "exportLinks",
		Method:      http.MethodPost,
		Path:        "/api/export",
		Summary:     "Download a link list as a file",
		Description: "Formats caller-supplied links as a plain-text or CSV download",
		Tags:        []string{"Extraction"},
	}, h.ExportLinks)
}

// ExportLinksInput defines the input for the ExportLinks operation
type ExportLinksInput struct {
	Body requests.ExportLinksRequest `json:"body"`
}

// ExportLinksOutput defines the output for the ExportLinks operation
type ExportLinksOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ExportLinks handles the POST /api/export endpoint
func (h *ExportHandler) ExportLinks(ctx context.Context, input *ExportLinksInput) (*ExportLinksOutput, error) {
	if !featureflags.IsEnabled(ctx, featureflags.ExportEnabled) {
		return nil, huma.Error404NotFound("Export is disabled on this deployment")
	}

	data, contentType, filename, err := h.exporter.Export(
		input.Body.Links, input.Body.SourceURL, input.Body.Format)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ExportLinksOutput{
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Body:               data,
	}, nil
}
