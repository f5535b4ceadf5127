// Package apperrors defines the error taxonomy shared by the services and the
// HTTP layer. Every error carries a stable code and the HTTP status it maps to.
package apperrors

import (
	"fmt"
	"net/http"
)

// AppError is an error with a stable code and an HTTP status mapping.
type AppError struct {
	Code    string
	Status  int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on the error code so sentinels created by the constructors below
// compare equal under errors.Is regardless of message or cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewRateLimitExceeded signals the member hit the daily image-analysis limit.
func NewRateLimitExceeded(limit int) *AppError {
	return &AppError{
		Code:    "RATE_LIMIT_EXCEEDED",
		Status:  http.StatusTooManyRequests,
		Message: fmt.Sprintf("daily request limit of %d reached", limit),
	}
}

// NewServiceUnavailable signals an unreachable counter or cache store.
func NewServiceUnavailable(cause error) *AppError {
	return &AppError{
		Code:    "SERVICE_UNAVAILABLE",
		Status:  http.StatusServiceUnavailable,
		Message: "a backing service is unreachable",
		Cause:   cause,
	}
}

// NewTemplateMissing signals an empty or unreadable prompt template.
func NewTemplateMissing(path string) *AppError {
	return &AppError{
		Code:    "TEMPLATE_MISSING",
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("prompt template missing or empty: %s", path),
	}
}

// NewIdentificationFailed signals the vision generator returned no food name.
func NewIdentificationFailed() *AppError {
	return &AppError{
		Code:    "IDENTIFICATION_FAILED",
		Status:  http.StatusBadGateway,
		Message: "image analysis returned no food name",
	}
}

// NewExternalServiceError signals a failed upstream call (generator,
// embedding service or vector index).
func NewExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code:    "EXTERNAL_SERVICE_ERROR",
		Status:  http.StatusBadGateway,
		Message: fmt.Sprintf("%s call failed", service),
		Cause:   cause,
	}
}

// NewUserDataError signals missing or insufficient member data. Not retryable
// until the member logs more data.
func NewUserDataError(message string) *AppError {
	return &AppError{
		Code:    "USER_DATA_ERROR",
		Status:  http.StatusUnprocessableEntity,
		Message: message,
	}
}

// NewAnalysisInProgress signals a background run is still writing. Expected
// transient state, not a fault.
func NewAnalysisInProgress() *AppError {
	return &AppError{
		Code:    "ANALYSIS_IN_PROGRESS",
		Status:  http.StatusAccepted,
		Message: "diet analysis is still in progress",
	}
}

// NewAnalysisNotCompleted signals no completed analysis exists yet.
func NewAnalysisNotCompleted() *AppError {
	return &AppError{
		Code:    "ANALYSIS_NOT_COMPLETED",
		Status:  http.StatusNotFound,
		Message: "diet analysis has not completed yet",
	}
}

// NewNoMembersFound signals the batch precondition failure: nothing to analyze.
func NewNoMembersFound() *AppError {
	return &AppError{
		Code:    "NO_MEMBERS_FOUND",
		Status:  http.StatusInternalServerError,
		Message: "no members registered for analysis",
	}
}

// NewDatabaseError wraps a persistence failure.
func NewDatabaseError(op string, cause error) *AppError {
	return &AppError{
		Code:    "DATABASE_ERROR",
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("database operation failed: %s", op),
		Cause:   cause,
	}
}
