package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewProviderAuthError wraps an authentication rejection from the provider.
func NewProviderAuthError(err error) error {
	return &DomainError{
		Code:       "PROVIDER_AUTH",
		Message:    "text-understanding provider rejected credentials",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewProviderRateLimited wraps a rate-limit rejection from the provider.
func NewProviderRateLimited(err error) error {
	return &DomainError{
		Code:       "PROVIDER_RATE_LIMITED",
		Message:    "text-understanding provider rate limited the request",
		HTTPStatus: http.StatusTooManyRequests,
		Err:        err,
	}
}

// NewProviderTimeout wraps a timed-out provider call.
func NewProviderTimeout(err error) error {
	return &DomainError{
		Code:       "PROVIDER_TIMEOUT",
		Message:    "text-understanding provider call timed out",
		HTTPStatus: http.StatusGatewayTimeout,
		Err:        err,
	}
}

// NewProviderBadResponse wraps an empty or malformed provider response.
func NewProviderBadResponse(err error) error {
	return &DomainError{
		Code:       "PROVIDER_BAD_RESPONSE",
		Message:    "text-understanding provider returned an unusable response",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewProviderNotConfigured signals a missing credential or unknown provider selection.
func NewProviderNotConfigured(message string) error {
	return NewDomainError("PROVIDER_NOT_CONFIGURED", message, http.StatusInternalServerError, nil)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
