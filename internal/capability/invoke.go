// internal/capability/invoke.go
package capability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/metrics"
	"assistant-agents/internal/common/validation"
)

// Invoker executes capabilities with parameter validation and a hard
// per-invocation timeout. It never returns a Go error: every failure mode is
// surfaced as a structured Result so the router can keep going.
type Invoker struct {
	logger logger.Logger
}

func NewInvoker(log logger.Logger) *Invoker {
	return &Invoker{logger: log}
}

// Invoke validates params against the capability's declared schema, then runs
// the handler with the given timeout. A missing required parameter reports a
// ValidationError result without invoking the handler. Exceeding the timeout
// reports a Timeout result; a late handler result is discarded.
func (i *Invoker) Invoke(ctx context.Context, cap Capability, params Params, timeout time.Duration) Result {
	start := time.Now()
	metrics.CapabilityInvocations.WithLabelValues(cap.Name()).Inc()

	schema := cap.Schema()
	merged := Params(validation.ApplyDefaults(params, schema))

	if vr := validation.ValidateInput(merged, schema); !vr.Valid {
		details := strings.Join(vr.GetErrorMessages(), "; ")
		i.logger.Warn("parameter validation failed", map[string]interface{}{
			"capability": cap.Name(),
			"errors":     details,
		})
		metrics.CapabilityFailures.WithLabelValues(cap.Name(), string(errors.KindValidation)).Inc()
		return Failure(errors.NewValidationError(details))
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so a late handler result is dropped without blocking the
	// goroutine.
	done := make(chan Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Failure(errors.NewExecutionError(cap.Name(), fmt.Errorf("panic: %v", r)))
			}
		}()
		done <- cap.Execute(execCtx, merged)
	}()

	var result Result
	select {
	case result = <-done:
	case <-execCtx.Done():
		result = Failure(errors.NewTimeoutError(cap.Name(), timeout))
	}

	metrics.CapabilityDuration.WithLabelValues(cap.Name()).Observe(time.Since(start).Seconds())
	if !result.Success && result.Err != nil {
		metrics.CapabilityFailures.WithLabelValues(cap.Name(), string(result.Err.Kind)).Inc()
	}
	if result.Synthetic {
		metrics.CapabilityDegraded.WithLabelValues(cap.Name()).Inc()
	}

	i.logger.Debug("capability invoked", map[string]interface{}{
		"capability": cap.Name(),
		"success":    result.Success,
		"synthetic":  result.Synthetic,
		"durationMs": time.Since(start).Milliseconds(),
	})

	return result
}
