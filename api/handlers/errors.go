// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate Huma HTTP errors

package handlers

import (
	"github.com/danielgtaylor/huma/v2"

	"link-extractor-api/core/errors"
)

// toHumaError converts domain errors to Huma HTTP errors. Only auxiliary
// endpoints use this; the extract endpoint reports failures inside its
// response envelope instead.
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsValidation(err) {
		return huma.Error422UnprocessableEntity(err.Error())
	}

	if errors.IsHTTPStatus(err) || errors.IsNetwork(err) || errors.IsParse(err) {
		return huma.Error502BadGateway(err.Error())
	}

	if errors.IsAutomation(err) {
		return huma.Error503ServiceUnavailable(err.Error())
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
