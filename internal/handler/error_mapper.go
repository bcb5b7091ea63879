package handler

import (
	"errors"

	"github.com/snapgala/api/internal/model"
	"github.com/snapgala/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")

	// ===== Admission Errors → 403 =====
	case errors.Is(err, service.ErrEventDisabled),
		errors.Is(err, service.ErrUploadsDisabled):
		return model.NewForbiddenError(err.Error())

	// ===== Quota Errors → 422 =====
	case errors.Is(err, service.ErrUploadQuota):
		return model.NewLimitExceededError(err.Error())

	// ===== Upstream Errors → 502 =====
	case errors.Is(err, service.ErrMediaUpload):
		return model.NewUpstreamError("media storage unavailable")

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("an unexpected error occurred")
	}
}
