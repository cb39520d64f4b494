// Package errors provides standardized error handling for capability execution.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Error Kinds
// ==========================

// Kind represents a standardized internal error kind.
type Kind string

const (
	// KindValidation marks bad or missing capability parameters. Recovered
	// locally and surfaced as a structured result, never as a panic.
	KindValidation Kind = "VALIDATION_ERROR"

	// KindNotFound marks an unknown capability or message recipient.
	KindNotFound Kind = "NOT_FOUND"

	// KindTimeout marks a capability or evaluator that exceeded its budget.
	// Treated as degraded data, not fatal.
	KindTimeout Kind = "TIMEOUT"

	// KindProviderUnavailable marks an unconfigured or unreachable external
	// dependency. Triggers graceful fallback to synthetic data.
	KindProviderUnavailable Kind = "PROVIDER_UNAVAILABLE"

	// KindDuplicateCapability marks a programming-contract violation at
	// registration time. The only kind allowed to fail fast.
	KindDuplicateCapability Kind = "DUPLICATE_CAPABILITY"

	// KindQueueEmpty marks a receive on a recipient queue with no pending
	// messages.
	KindQueueEmpty Kind = "QUEUE_EMPTY"

	// KindExecution marks an unexpected handler failure.
	KindExecution Kind = "EXECUTION_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Kind      Kind                   `json:"kind"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Kind, e.Message)
}

// ==========================
// 2. Constructors
// ==========================

// NewValidationError creates a non-retryable parameter validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Kind:      KindValidation,
		Message:   "Parameter validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a non-retryable lookup error.
func NewNotFoundError(what, name string) *StandardError {
	return &StandardError{
		Kind:      KindNotFound,
		Message:   fmt.Sprintf("Unknown %s", what),
		Details:   fmt.Sprintf("%s: %s", what, name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTimeoutError creates a retryable timeout error.
func NewTimeoutError(subject string, budget time.Duration) *StandardError {
	return &StandardError{
		Kind:      KindTimeout,
		Message:   fmt.Sprintf("'%s' exceeded its budget", subject),
		Details:   fmt.Sprintf("budget: %s", budget),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderUnavailableError creates an error marking a degraded provider.
// Callers must fall back to synthetic data instead of propagating it.
func NewProviderUnavailableError(provider string, err error) *StandardError {
	details := "not configured"
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Kind:      KindProviderUnavailable,
		Message:   fmt.Sprintf("Provider '%s' unavailable", provider),
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateCapabilityError creates the fail-fast registration error.
func NewDuplicateCapabilityError(name string) *StandardError {
	return &StandardError{
		Kind:      KindDuplicateCapability,
		Message:   "Capability already registered",
		Details:   fmt.Sprintf("name: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueueEmptyError creates the empty-queue receive error.
func NewQueueEmptyError(recipient string) *StandardError {
	return &StandardError{
		Kind:      KindQueueEmpty,
		Message:   "No pending messages",
		Details:   fmt.Sprintf("recipient: %s", recipient),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExecutionError creates an unexpected handler failure error.
func NewExecutionError(capability string, err error) *StandardError {
	return &StandardError{
		Kind:      KindExecution,
		Message:   fmt.Sprintf("Capability '%s' execution failed", capability),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification helpers
// ==========================

// KindOf extracts the Kind from any error, normalizing non-standard errors
// to KindExecution.
func KindOf(err error) Kind {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Kind
	}
	return KindExecution
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Normalize ensures an error is always a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Kind:      KindExecution,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
