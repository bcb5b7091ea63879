package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ============================================================================
// Error() Interface Tests
// ============================================================================

func TestProblemDetails_Error_ReturnsFormattedMessage(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{
		Status: http.StatusNotFound,
		Title:  "Not Found",
		Detail: "event not found",
	}

	errMsg := pd.Error()

	if !strings.Contains(errMsg, "404") {
		t.Errorf("error message should contain status code, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "Not Found") {
		t.Errorf("error message should contain title, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "event not found") {
		t.Errorf("error message should contain detail, got: %s", errMsg)
	}
}

// ============================================================================
// WriteJSON Tests
// ============================================================================

func TestProblemDetails_WriteJSON_SetsContentType(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("event")
	rr := httptest.NewRecorder()

	pd.WriteJSON(rr)

	contentType := rr.Header().Get("Content-Type")
	if contentType != "application/problem+json" {
		t.Errorf("expected Content-Type 'application/problem+json', got %q", contentType)
	}
}

func TestProblemDetails_WriteJSON_SetsStatusCode(t *testing.T) {
	t.Parallel()

	pd := NewForbiddenError("event is disabled")
	rr := httptest.NewRecorder()

	pd.WriteJSON(rr)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
}

func TestProblemDetails_WriteJSON_EncodesBody(t *testing.T) {
	t.Parallel()

	pd := NewBadRequestError("invalid input")
	rr := httptest.NewRecorder()

	pd.WriteJSON(rr)

	var result ProblemDetails
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}

	if result.Title != "Bad Request" {
		t.Errorf("expected title 'Bad Request', got %q", result.Title)
	}
	if result.Detail != "invalid input" {
		t.Errorf("expected detail 'invalid input', got %q", result.Detail)
	}
}

// ============================================================================
// Constructor Tests
// ============================================================================

func TestNewNotFoundError_ReturnsCorrectValues(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("event")

	if pd.Status != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, pd.Status)
	}
	if pd.Detail != "event not found" {
		t.Errorf("expected detail 'event not found', got %q", pd.Detail)
	}
	if pd.Code != ErrCodeNotFound {
		t.Errorf("expected code %d, got %d", ErrCodeNotFound, pd.Code)
	}
}

func TestNewValidationError_UsesFirstFieldInDetail(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{
		{Field: "welcome_text", Message: "too long"},
		{Field: "upload_limit", Message: "out of range"},
	})

	if pd.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, pd.Status)
	}
	if !strings.Contains(pd.Detail, "welcome_text") {
		t.Errorf("expected detail to mention first field, got %q", pd.Detail)
	}
	if !strings.Contains(pd.Detail, "1 more") {
		t.Errorf("expected detail to count remaining errors, got %q", pd.Detail)
	}
	if len(pd.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(pd.Errors))
	}
}

func TestNewLimitExceededError_Returns422(t *testing.T) {
	t.Parallel()

	pd := NewLimitExceededError("upload limit reached for this address")

	if pd.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, pd.Status)
	}
	if pd.Code != ErrCodeLimitExceeded {
		t.Errorf("expected code %d, got %d", ErrCodeLimitExceeded, pd.Code)
	}
}

func TestNewUpstreamError_Returns502(t *testing.T) {
	t.Parallel()

	pd := NewUpstreamError("media storage unavailable")

	if pd.Status != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, pd.Status)
	}
}

func TestNewInternalError_EmptyDetailGetsDefault(t *testing.T) {
	t.Parallel()

	pd := NewInternalError("")

	if pd.Detail == "" {
		t.Error("expected a default detail message")
	}
}

func TestNewRateLimitError_MentionsRetryAfter(t *testing.T) {
	t.Parallel()

	pd := NewRateLimitError(30)

	if pd.Status != http.StatusTooManyRequests {
		t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, pd.Status)
	}
	if !strings.Contains(pd.Detail, "30") {
		t.Errorf("expected retry delay in detail, got %q", pd.Detail)
	}
}
