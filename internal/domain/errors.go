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

// Is matches any AppError carrying the same code, so errors.Is keeps
// working after WithError produced a copy.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
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

	// ErrInvalidImage is the image load error: the buffer is empty,
	// undecodable or too large.
	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid image format or corrupted file",
		StatusCode: 422,
	}

	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face detected in the image",
		StatusCode: 422,
	}

	ErrDegenerateFace = &AppError{
		Code:       "DEGENERATE_FACE",
		Message:    "Detected face is too small to analyze",
		StatusCode: 422,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrDetectorUnavailable = &AppError{
		Code:       "DETECTOR_UNAVAILABLE",
		Message:    "Face detection backend is unavailable",
		StatusCode: 503,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Too many requests, please retry later",
		StatusCode: 429,
	}

	ErrAnalysisTimeout = &AppError{
		Code:       "ANALYSIS_TIMEOUT",
		Message:    "Analysis did not complete in time",
		StatusCode: 504,
	}

	// ErrRequestCanceled reports a client that went away mid-analysis.
	ErrRequestCanceled = &AppError{
		Code:       "REQUEST_CANCELED",
		Message:    "Request was canceled by the client",
		StatusCode: 499,
	}
)
