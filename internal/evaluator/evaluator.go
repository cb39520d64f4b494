// internal/evaluator/evaluator.go

// Package evaluator contains the specialists consulted during a fusion
// cycle. Each one scores a single dimension of a request (weather fit,
// schedule load, channel readiness) and returns a bounded assessment.
package evaluator

import (
	"context"

	"assistant-agents/internal/models"
)

// Request is the shared subject every specialist assesses: the raw text, the
// resolved city, and the time window under consideration.
type Request struct {
	Text   string
	City   string
	Window models.TimeWindow
}

// Evaluator scores one dimension of a request. Assess must respect ctx and
// return promptly on cancellation; a specialist that cannot reach its data
// source returns a synthetic assessment rather than failing the cycle.
type Evaluator interface {
	Name() string
	Assess(ctx context.Context, req Request) models.Assessment
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
