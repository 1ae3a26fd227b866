// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NetworkError represents a transport-level fetch failure: DNS, connect,
// TLS, timeout or redirect-loop problems. Message is user-facing.
type NetworkError struct {
	URL      string
	Message  string
	TimedOut bool
	Err      error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return e.Message
}

// Unwrap returns the underlying transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TimeoutMessage builds the user-facing message for a fetch timeout
func TimeoutMessage(seconds int) string {
	return fmt.Sprintf("Request timed out after %d seconds. The website may be slow or unresponsive.", seconds)
}

// ConnectionMessage is the user-facing message for connect failures
const ConnectionMessage = "Could not connect to the website. Please check the URL and your internet connection."

// RedirectLoopMessage is the user-facing message for redirect loops
const RedirectLoopMessage = "Too many redirects. The URL may be caught in a redirect loop."

// HTTPStatusError represents a fetch that completed with a non-2xx status
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

// Error returns a user-facing message for the status code
func (e *HTTPStatusError) Error() string {
	switch e.StatusCode {
	case 401:
		return "Authentication required (401). This page requires login credentials."
	case 403:
		return "Access forbidden (403). The website may be blocking automated requests."
	case 404:
		return "Page not found (404). Please check the URL is correct."
	default:
		return fmt.Sprintf("Failed to fetch page: HTTP %d", e.StatusCode)
	}
}

// Automation stages reported by AutomationError
const (
	StageLaunch   = "launch"
	StageNavigate = "navigate"
	StageExtract  = "extract"
)

// AutomationError represents a headless-browser failure
type AutomationError struct {
	URL     string
	Stage   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AutomationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying browser error
func (e *AutomationError) Unwrap() error {
	return e.Err
}

// ParseError represents markup that could not be parsed by any strategy
type ParseError struct {
	URL     string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return e.Message
}

// Unwrap returns the underlying parser error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsNetwork checks if an error is a NetworkError
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsHTTPStatus checks if an error is an HTTPStatusError
func IsHTTPStatus(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr)
}

// IsAutomation checks if an error is an AutomationError
func IsAutomation(err error) bool {
	var autoErr *AutomationError
	return errors.As(err, &autoErr)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
