// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as HTTP communication, browser automation, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - http/standard: Standard library HTTP client with browser-like headers
// - browser/chrome: Headless Chrome fetcher for JS-rendered pages
// - logger/structured: Structured logger with optional file rotation
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include timeouts, size caps, and error handling
//
// # HTTP Client
//
// The HTTP client sends browser-like headers and reports the post-redirect
// URL. A failed fetch is reported once, never retried:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Browser Fetcher
//
// The chrome fetcher renders JS-heavy pages and waits for the anchor
// count to settle before serializing the DOM:
//
//	fetcher := chrome.NewFetcher(chrome.Options{MaxSessions: 2})
//	page, err := fetcher.FetchRendered(ctx, "https://example.com", 10)
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := structured.NewStructuredLogger(structured.Options{Level: "info"})
//	logger.Info("Processing request", map[string]interface{}{
//	    "url":    "https://example.com",
//	    "method": "http",
//	})
package infrastructure
