// Package core contains the business logic for the Link Extractor API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (ExtractionRequest, ExtractionResult, Diagnostics)
// - extraction: Page fetching, link parsing and normalization service
// - export: TXT/CSV formatting of extracted links
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (HTTP, browser, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from transport concerns
//
// # Usage Example
//
//	import (
//	    "link-extractor-api/core/domain"
//	    "link-extractor-api/core/extraction"
//	    "link-extractor-api/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create service
//	svc := extraction.NewExtractionService(deps, extraction.Options{})
//
//	// Extract links
//	result, err := svc.Extract(ctx, domain.ExtractionRequest{
//	    URL: "https://example.com",
//	})
package core
