// ABOUTME: Extraction domain models for single-page link extraction requests and results
// ABOUTME: Defines the request options, result shape, and fetch/parse diagnostics

package domain

// Fetch method names reported in diagnostics and logs.
const (
	MethodHTTP    = "http"
	MethodBrowser = "browser"
)

// ExtractionRequest describes a single-page link extraction job
type ExtractionRequest struct {
	// URL is the page to extract links from (absolute http/https)
	URL string

	// UseBrowser selects headless-browser fetching for JS-rendered pages
	UseBrowser bool

	// FilterDomain restricts results to the source page's own host
	FilterDomain bool

	// IncludeExternal keeps links pointing at other hosts even when
	// FilterDomain is set
	IncludeExternal bool

	// Timeout is the fetch budget in seconds (0 means the configured default)
	Timeout int

	// WaitTime is the browser settle budget in seconds (0 means default)
	WaitTime int
}

// Method returns the fetch method name for the selected mode
func (r ExtractionRequest) Method() string {
	if r.UseBrowser {
		return MethodBrowser
	}
	return MethodHTTP
}

// ExtractionResult holds the extracted links and the diagnostics gathered
// along the way. Diagnostics are populated on failures too, so callers can
// report what went wrong (status code, final URL, partial-load warnings).
type ExtractionResult struct {
	// SourceURL is the URL the extraction was requested for
	SourceURL string

	// Links are the normalized, deduplicated links in first-occurrence
	// document order
	Links []string

	// Diagnostics carries scalar fetch/parse details
	Diagnostics Diagnostics
}

// Count returns the number of extracted links
func (r *ExtractionResult) Count() int {
	return len(r.Links)
}

// Diagnostics maps scalar details about a fetch/parse run. Values are
// strings, ints, bools or floats only; nothing nested.
type Diagnostics map[string]interface{}

// Diagnostics keys. Keys absent from a result were not applicable or not
// discoverable for that run.
const (
	DiagMethod          = "method"
	DiagStatusCode      = "status_code"
	DiagContentType     = "content_type"
	DiagContentLength   = "content_length"
	DiagFinalURL        = "final_url"
	DiagRedirected      = "redirected"
	DiagPageTitle       = "page_title"
	DiagAnchorTags      = "anchor_tags_found"
	DiagCandidates      = "candidates_found"
	DiagUniqueLinks     = "unique_links_found"
	DiagRejectedLinks   = "rejected_links"
	DiagDuplicateLinks  = "duplicate_links"
	DiagPageLoadWarning = "page_load_warning"
)
