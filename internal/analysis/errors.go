package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of analysis-related error
type ErrorType string

const (
	// ErrTypeEmptyInput indicates the text was empty or whitespace only
	ErrTypeEmptyInput ErrorType = "empty_input"

	// ErrTypeService indicates the remote service explicitly rejected the request
	ErrTypeService ErrorType = "service"

	// ErrTypeTransport indicates the remote service could not be reached or answered garbage
	ErrTypeTransport ErrorType = "transport"

	// ErrTypeValidation indicates invalid input such as an unknown kind
	ErrTypeValidation ErrorType = "validation"
)

// EmptyInputMessage is shown when a submission has no text
const EmptyInputMessage = "Please enter some text to analyze"

var (
	// ErrBusy is returned when an operation is attempted while requests are outstanding
	ErrBusy = errors.New("an analysis is already in progress")

	// ErrMissingDiscriminator is returned when a payload lacks its kind's required field
	ErrMissingDiscriminator = errors.New("payload is missing its discriminator field")
)

// EmptyInputError is raised locally before any network call is made
type EmptyInputError struct{}

// Error implements the error interface
func (e *EmptyInputError) Error() string {
	return EmptyInputMessage
}

// Type returns the error category
func (e *EmptyInputError) Type() ErrorType {
	return ErrTypeEmptyInput
}

// ServiceError represents a non-success response from the analysis service
type ServiceError struct {
	// Kind is the analysis that failed
	Kind Kind `json:"kind"`

	// StatusCode is the HTTP status returned by the service
	StatusCode int `json:"status_code,omitempty"`

	// Message is the service-provided error text, possibly empty
	Message string `json:"message,omitempty"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	parts := []string{fmt.Sprintf("kind=%s", e.Kind), fmt.Sprintf("type=%s", ErrTypeService)}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	parts = append(parts, e.UserMessage())
	return strings.Join(parts, ": ")
}

// Type returns the error category
func (e *ServiceError) Type() ErrorType {
	return ErrTypeService
}

// UserMessage returns the text to show in the error banner
func (e *ServiceError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return FailureMessage(e.Kind)
}

// Is matches any *ServiceError
func (e *ServiceError) Is(target error) bool {
	_, ok := target.(*ServiceError)
	return ok
}

// TransportError represents a request that never produced a usable response
type TransportError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *TransportError) Error() string {
	parts := []string{fmt.Sprintf("kind=%s", e.Kind), fmt.Sprintf("type=%s", ErrTypeTransport), e.Message}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

// Type returns the error category
func (e *TransportError) Type() ErrorType {
	return ErrTypeTransport
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is matches any *TransportError
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewServiceError creates a service error
func NewServiceError(kind Kind, statusCode int, message string) *ServiceError {
	return &ServiceError{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewTransportError creates a transport error with an underlying cause
func NewTransportError(kind Kind, message string, cause error) *TransportError {
	return &TransportError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// FailureMessage is the generic banner text for a failed kind, e.g. "Sentiment analysis failed"
func FailureMessage(kind Kind) string {
	return kind.Label() + " analysis failed"
}

// UserMessage picks the banner text for err raised while analyzing kind.
// Service-provided messages win; everything else collapses to the generic text.
func UserMessage(kind Kind, err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.UserMessage()
	}
	if IsEmptyInputError(err) {
		return EmptyInputMessage
	}
	return FailureMessage(kind)
}

// IsEmptyInputError checks if an error is an empty input error
func IsEmptyInputError(err error) bool {
	var e *EmptyInputError
	return errors.As(err, &e)
}

// IsServiceError checks if an error is a service error
func IsServiceError(err error) bool {
	var e *ServiceError
	return errors.As(err, &e)
}

// IsTransportError checks if an error is a transport error
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
