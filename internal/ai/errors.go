package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of provider error
type ErrorType string

const (
	ErrTypeProvider       ErrorType = "provider"
	ErrTypeConfiguration  ErrorType = "configuration"
	ErrTypeAuthentication ErrorType = "authentication"
	ErrTypeRateLimit      ErrorType = "rate_limit"
	ErrTypeNetwork        ErrorType = "network"
	ErrTypeTimeout        ErrorType = "timeout"
	ErrTypeValidation     ErrorType = "validation"
	ErrTypeRegistration   ErrorType = "registration"
	ErrTypeNotFound       ErrorType = "not_found"
	ErrTypeInternal       ErrorType = "internal"
)

// ProviderError is returned by providers for failed completions
type ProviderError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Provider   string    `json:"provider,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Cause      error     `json:"-"`
	Retryable  bool      `json:"retryable"`
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	var parts []string

	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider=%s", e.Provider))
	}
	parts = append(parts, fmt.Sprintf("type=%s", e.Type))
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	parts = append(parts, e.Message)
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is matches provider errors of the same type
func (e *ProviderError) Is(target error) bool {
	if pe, ok := target.(*ProviderError); ok {
		return e.Type == pe.Type
	}
	return false
}

// ValidationError represents invalid request input
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ConfigurationError represents invalid provider configuration
type ConfigurationError struct {
	Provider string `json:"provider"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for provider '%s', field '%s': %s",
		e.Provider, e.Field, e.Message)
}

// NewProviderError creates a provider error with an optional cause
func NewProviderError(errType ErrorType, message, provider string, cause error) *ProviderError {
	return &ProviderError{
		Type:      errType,
		Message:   message,
		Provider:  provider,
		Cause:     cause,
		Retryable: isRetryableType(errType),
	}
}

// NewValidationError creates a validation error
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(provider, field, message string) *ConfigurationError {
	return &ConfigurationError{Provider: provider, Field: field, Message: message}
}

// ErrorTypeForStatus maps an HTTP status from the completion API
func ErrorTypeForStatus(status int) ErrorType {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrTypeAuthentication
	case status == http.StatusTooManyRequests:
		return ErrTypeRateLimit
	case status == http.StatusNotFound:
		return ErrTypeNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrTypeValidation
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrTypeTimeout
	default:
		return ErrTypeProvider
	}
}

func isRetryableType(errType ErrorType) bool {
	switch errType {
	case ErrTypeRateLimit, ErrTypeTimeout, ErrTypeNetwork:
		return true
	default:
		return false
	}
}

// IsRetryableError checks if an error is retryable
func IsRetryableError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return true
	}
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Type == ErrTypeConfiguration
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Type == ErrTypeValidation
}
