package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of an analysis failure
type ErrorType string

const (
	// ErrTypeInvalidInput indicates the message was rejected before any request
	ErrTypeInvalidInput ErrorType = "invalid_input"

	// ErrTypeTransport indicates the endpoint was unreachable, timed out or
	// answered with a non-2xx status
	ErrTypeTransport ErrorType = "transport"

	// ErrTypeMalformedResponse indicates a 2xx answer that could not be parsed
	// into a result
	ErrTypeMalformedResponse ErrorType = "malformed_response"

	// ErrTypeConfiguration indicates invalid client or provider configuration
	ErrTypeConfiguration ErrorType = "configuration"

	// ErrTypeNotFound indicates an unknown provider name
	ErrTypeNotFound ErrorType = "not_found"

	// ErrTypeRegistration indicates a provider registration conflict
	ErrTypeRegistration ErrorType = "registration"
)

// User-facing messages. These never include causes, status codes or payloads.
const (
	msgInvalidInput      = "Please paste a message to scan."
	msgTransport         = "Cannot reach analysis service. Please try again."
	msgMalformedResponse = "The analysis service returned an unexpected answer. Please try again."
	msgConfiguration     = "The scanner is not configured correctly."
	msgUnknown           = "Something went wrong while scanning. Please try again."
)

// InvalidInputError is returned when the message is empty after trimming
type InvalidInputError struct {
	Reason string
}

// Error implements the error interface
func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// TransportError represents a failure to obtain a 2xx answer from the endpoint
type TransportError struct {
	// Provider that performed the request
	Provider string

	// StatusCode for non-2xx answers, zero when no response was received
	StatusCode int

	// Detail is the server's own error text, if it sent one
	Detail string

	// Timeout is set when the request exceeded its deadline
	Timeout bool

	// Cause is the underlying error, for logging only
	Cause error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	parts := []string{"cannot reach analysis service"}

	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider=%s", e.Provider))
	}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if e.Timeout {
		parts = append(parts, "timeout")
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError represents a 2xx answer that does not fit the
// expected shape
type MalformedResponseError struct {
	Provider string
	Field    string
	Message  string
	Cause    error
}

// Error implements the error interface
func (e *MalformedResponseError) Error() string {
	msg := "malformed response"
	if e.Provider != "" {
		msg += fmt.Sprintf(" from provider '%s'", e.Provider)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(", field '%s'", e.Field)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause=%s)", e.Cause.Error())
	}
	return msg
}

// Unwrap returns the underlying error
func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Provider string
	Field    string
	Message  string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for provider '%s', field '%s': %s",
		e.Provider, e.Field, e.Message)
}

// RegistryError represents provider lookup and registration failures
type RegistryError struct {
	Type     ErrorType
	Provider string
	Message  string
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	return fmt.Sprintf("provider '%s': %s", e.Provider, e.Message)
}

// Error constructors

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(reason string) *InvalidInputError {
	return &InvalidInputError{Reason: reason}
}

// NewTransportError creates a transport error with an underlying cause
func NewTransportError(provider string, cause error) *TransportError {
	return &TransportError{Provider: provider, Cause: cause}
}

// NewStatusError creates a transport error for a non-2xx answer
func NewStatusError(provider string, status int, detail string) *TransportError {
	return &TransportError{Provider: provider, StatusCode: status, Detail: detail}
}

// NewMalformedResponseError creates a malformed response error
func NewMalformedResponseError(provider, field, message string, cause error) *MalformedResponseError {
	return &MalformedResponseError{
		Provider: provider,
		Field:    field,
		Message:  message,
		Cause:    cause,
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(provider, field, message string) *ConfigurationError {
	return &ConfigurationError{
		Provider: provider,
		Field:    field,
		Message:  message,
	}
}

// Classification helpers

// TypeOf returns the category of err, or an empty ErrorType for errors outside
// the taxonomy
func TypeOf(err error) ErrorType {
	var (
		invalid   *InvalidInputError
		transport *TransportError
		malformed *MalformedResponseError
		cfgErr    *ConfigurationError
		regErr    *RegistryError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &invalid):
		return ErrTypeInvalidInput
	case errors.As(err, &transport):
		return ErrTypeTransport
	case errors.As(err, &malformed):
		return ErrTypeMalformedResponse
	case errors.As(err, &cfgErr):
		return ErrTypeConfiguration
	case errors.As(err, &regErr):
		return regErr.Type
	default:
		return ""
	}
}

// IsInvalidInputError checks if an error is an invalid input error
func IsInvalidInputError(err error) bool {
	return TypeOf(err) == ErrTypeInvalidInput
}

// IsTransportError checks if an error is a transport error
func IsTransportError(err error) bool {
	return TypeOf(err) == ErrTypeTransport
}

// IsMalformedResponseError checks if an error is a malformed response error
func IsMalformedResponseError(err error) bool {
	return TypeOf(err) == ErrTypeMalformedResponse
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	switch TypeOf(err) {
	case ErrTypeConfiguration, ErrTypeNotFound, ErrTypeRegistration:
		return true
	default:
		return false
	}
}

// UserMessage maps any error to a short non-technical sentence safe to show
// to the end user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch TypeOf(err) {
	case ErrTypeInvalidInput:
		return msgInvalidInput
	case ErrTypeTransport:
		return msgTransport
	case ErrTypeMalformedResponse:
		return msgMalformedResponse
	case ErrTypeConfiguration, ErrTypeNotFound, ErrTypeRegistration:
		return msgConfiguration
	default:
		return msgUnknown
	}
}
