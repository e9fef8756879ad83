package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrNoFileUploaded = &AppError{
		Code:       "NO_FILE_UPLOADED",
		Message:    "No media file was provided",
		StatusCode: 400,
	}

	ErrUnsupportedMediaType = &AppError{
		Code:       "UNSUPPORTED_MEDIA_TYPE",
		Message:    "Only image, audio and video files are accepted",
		StatusCode: 415,
	}

	ErrFileTooLarge = &AppError{
		Code:       "FILE_TOO_LARGE",
		Message:    "Uploaded file exceeds the size limit",
		StatusCode: 413,
	}

	// ErrDetectionUnavailable is fatal for image and video primary analysis
	// when nothing usable is cached. The message is stable and never carries
	// upstream response bodies; callers surface it as retryable.
	ErrDetectionUnavailable = &AppError{
		Code:       "DETECTION_UNAVAILABLE",
		Message:    "Detection service unreachable, please retry later",
		StatusCode: 503,
	}

	ErrScanNotFound = &AppError{
		Code:       "SCAN_NOT_FOUND",
		Message:    "Scan record not found",
		StatusCode: 404,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Rate limit exceeded, please try again later",
		StatusCode: 429,
	}
)
