// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Builds the extract response envelope from results and errors

package mappers

import (
	"link-extractor-api/api/dto/responses"
	"link-extractor-api/core/domain"
)

// ToExtractLinksResponse converts an extraction outcome into the response
// envelope. The result's diagnostics are carried even when err is non-nil,
// and the link list is never nil.
func ToExtractLinksResponse(result *domain.ExtractionResult, err error) responses.ExtractLinksResponse {
	resp := responses.ExtractLinksResponse{
		Success: err == nil,
		Links:   []string{},
	}

	if result != nil {
		resp.URL = result.SourceURL
		if result.Links != nil {
			resp.Links = result.Links
		}
		if len(result.Diagnostics) > 0 {
			resp.Diagnostics = result.Diagnostics
		}
	}
	resp.Count = len(resp.Links)

	if err != nil {
		resp.Error = err.Error()
		resp.Links = []string{}
		resp.Count = 0
	}

	return resp
}
