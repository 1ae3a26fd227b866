// ABOUTME: Browser fetcher contract for rendering JS-heavy pages
// ABOUTME: Defines the rendered-page shape returned by headless automation

package interfaces

import "context"

// RenderedPage is the outcome of a headless-browser page load
type RenderedPage struct {
	// HTML is the serialized DOM after rendering
	HTML string

	// FinalURL is the location after any redirects or client navigation
	FinalURL string

	// Title is the document title
	Title string

	// Warning is set when only partial content could be recovered, for
	// example after a page-load timeout. Extraction should continue on
	// whatever markup is present.
	Warning string
}

// BrowserFetcher loads a page in a headless browser and returns the
// rendered markup. Implementations must release every browser resource on
// all paths: success, error, timeout and cancellation.
type BrowserFetcher interface {
	// FetchRendered navigates to the URL, waits up to waitTime seconds for
	// dynamic content to settle, and returns the rendered page.
	FetchRendered(ctx context.Context, url string, waitTime int) (*RenderedPage, error)
}
