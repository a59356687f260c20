// Package errors provides the error taxonomy shared by workers, stores and the API, and its
// mapping onto BPMN errors and job retries.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	ErrCodeNotAuthenticated ErrorCode = "NOT_AUTHENTICATED"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrCodeAuthUnavailable  ErrorCode = "AUTH_PROVIDER_UNAVAILABLE"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeRecommendationServiceFailed ErrorCode = "RECOMMENDATION_SERVICE_FAILED"
	ErrCodeSummaryServiceFailed        ErrorCode = "SUMMARY_SERVICE_FAILED"

	ErrCodeSchemeNotFound      ErrorCode = "SCHEME_NOT_FOUND"
	ErrCodeProfileRequired     ErrorCode = "PROFILE_REQUIRED"
	ErrCodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"

	ErrCodeDuplicateApplication    ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeInvalidStatusTransition ErrorCode = "INVALID_STATUS_TRANSITION"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseQueryFailed      ErrorCode = "DATABASE_QUERY_FAILED"
	ErrCodeDatabaseWriteFailed      ErrorCode = "DATABASE_WRITE_FAILED"
	ErrCodeCacheFailed              ErrorCode = "CACHE_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout            ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeWorkflowEngineFailed     ErrorCode = "WORKFLOW_ENGINE_FAILED"
	ErrCodeTimeout                  ErrorCode = "TIMEOUT_ERROR"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches another StandardError by code, so errors.Is(err, &StandardError{Code: X}) works.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the process variables set when the error is thrown.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotAuthenticatedError(details string) *StandardError {
	return newError(ErrCodeNotAuthenticated, "Sign in to continue", details, false)
}

func NewAuthUnavailableError(err error) *StandardError {
	return newError(ErrCodeAuthUnavailable, "Sign-in service unavailable", err.Error(), true)
}

// NewPermissionDeniedError records what was attempted so the failure can be diagnosed from logs.
// The message stays generic because it is shown to the user.
func NewPermissionDeniedError(path, operation string, payload interface{}, cause error) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	e := newError(ErrCodePermissionDenied, "Something went wrong. Please try again.", details, false)
	e.Metadata = map[string]interface{}{
		"path":      path,
		"operation": operation,
		"payload":   payload,
	}
	return e
}

func NewValidationError(details string) *StandardError {
	return newError(ErrCodeValidationFailed, "Input validation failed", details, false)
}

func NewRecommendationServiceError(err error) *StandardError {
	return newError(ErrCodeRecommendationServiceFailed, "Could not fetch AI recommendations", err.Error(), true)
}

func NewSummaryServiceError(err error) *StandardError {
	return newError(ErrCodeSummaryServiceFailed, "Could not summarize scheme", err.Error(), true)
}

func NewSchemeNotFoundError(schemeID string) *StandardError {
	return newError(ErrCodeSchemeNotFound, "Scheme not found", fmt.Sprintf("schemeId: %s", schemeID), false)
}

func NewProfileRequiredError(userID string) *StandardError {
	return newError(ErrCodeProfileRequired, "Complete your profile to see eligible schemes", fmt.Sprintf("userId: %s", userID), false)
}

func NewApplicationNotFoundError(applicationID string) *StandardError {
	return newError(ErrCodeApplicationNotFound, "Application not found", fmt.Sprintf("applicationId: %s", applicationID), false)
}

func NewDuplicateApplicationError(userID, schemeID string) *StandardError {
	return newError(ErrCodeDuplicateApplication, "Application already recorded",
		fmt.Sprintf("userId: %s, schemeId: %s", userID, schemeID), false)
}

func NewInvalidStatusTransitionError(from, to string) *StandardError {
	return newError(ErrCodeInvalidStatusTransition, "Status change not allowed",
		fmt.Sprintf("from: %s, to: %s", from, to), false)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewDatabaseQueryFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeDatabaseQueryFailed, "Database query failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

func NewDatabaseWriteFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeDatabaseWriteFailed, "Database write failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

func NewCacheError(operation string, err error) *StandardError {
	return newError(ErrCodeCacheFailed, "Cache operation failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

func NewSearchQueryFailedError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Scheme search failed", err.Error(), true)
}

func NewSearchTimeoutError() *StandardError {
	return newError(ErrCodeSearchTimeout, "Scheme search timeout", "search exceeded the configured timeout", true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewWorkflowEngineError(err error, retryable bool) *StandardError {
	return newError(ErrCodeWorkflowEngineFailed, "Workflow engine request failed", err.Error(), retryable)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// AsStandardError unwraps err to a StandardError, wrapping unknown errors as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// CodeOf returns the code of the StandardError in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// GetRetryCount returns how many job retries a code earns before it is thrown as a BPMN error.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseQueryFailed,
		ErrCodeDatabaseWriteFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed:
		return 3
	case ErrCodeCacheFailed,
		ErrCodeSearchTimeout,
		ErrCodeAuthUnavailable,
		ErrCodeWorkflowEngineFailed,
		ErrCodeTimeout:
		return 2
	case ErrCodeRecommendationServiceFailed,
		ErrCodeSummaryServiceFailed:
		return 1
	default:
		return 0
	}
}

// ConvertToBPMNError maps a StandardError onto the BPMN error thrown to the engine.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"timestamp": stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logs and metrics.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case code == ErrCodeNotAuthenticated || code == ErrCodePermissionDenied || code == ErrCodeAuthUnavailable:
		return "AUTH"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "CACHE"):
		return "STORAGE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "RECOMMENDATION") || strings.Contains(codeStr, "SUMMARY"):
		return "AI"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "NOT_FOUND") || code == ErrCodeProfileRequired:
		return "NOT_FOUND"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "DUPLICATE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
