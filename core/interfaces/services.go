// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"link-extractor-api/core/domain"
)

// LinkExtractor extracts the links from a single page
type LinkExtractor interface {
	// Extract fetches the requested page, parses its links, and returns
	// the normalized result. On fetch or parse failures the returned
	// result still carries the diagnostics gathered before the failure.
	Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error)
}

// LinkExporter formats extracted links for download
type LinkExporter interface {
	// Export renders links in the named format ("txt" or "csv") and
	// returns the file body, its content type, and a suggested filename.
	Export(links []string, sourceURL, format string) ([]byte, string, string, error)
}
