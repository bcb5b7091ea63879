package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Event Errors =====
var (
	ErrEventNotFound = errors.New("event not found")
)

// ===== Admission Errors =====
var (
	ErrEventDisabled   = errors.New("event is disabled")
	ErrUploadsDisabled = errors.New("event does not accept guest uploads")
	ErrUploadQuota     = errors.New("upload limit reached for this address")
)

// ===== Upstream Errors =====
var (
	ErrMediaUpload = errors.New("media upload failed")
)
