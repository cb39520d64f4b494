// internal/capability/capability.go

// Package capability defines the unit of agent functionality: a named
// handler with a declared parameter schema and a structured result contract.
package capability

import (
	"context"

	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/validation"
)

// Params carries the extracted parameters for one invocation.
type Params map[string]interface{}

// String returns the named parameter as a string, or the fallback when the
// parameter is absent or not a string.
func (p Params) String(name, fallback string) string {
	if v, ok := p[name]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// Bool returns the named parameter as a bool, defaulting to false.
func (p Params) Bool(name string) bool {
	if v, ok := p[name]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Capability is a self-contained unit exposing one piece of functionality.
// Implementations must be safe for concurrent use; the registry shares one
// instance across all requests.
type Capability interface {
	Name() string
	Description() string
	Schema() validation.JSONSchema
	Execute(ctx context.Context, params Params) Result
}

// Result is the structured outcome of one capability invocation.
//
// Synthetic marks a result served from fallback data because the backing
// provider is unconfigured or unreachable. Such results still report
// Success=true; downstream scoring discounts them instead.
type Result struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Err       *errors.StandardError  `json:"error,omitempty"`
	Synthetic bool                   `json:"synthetic,omitempty"`
}

// OK builds a successful result.
func OK(message string, data map[string]interface{}) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Degraded builds a successful result backed by synthetic fallback data.
func Degraded(message string, data map[string]interface{}) Result {
	return Result{Success: true, Message: message, Data: data, Synthetic: true}
}

// Failure builds a failed result carrying a structured error.
func Failure(err *errors.StandardError) Result {
	return Result{Success: false, Message: err.Message, Err: err}
}
