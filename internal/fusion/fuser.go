// internal/fusion/fuser.go

// Package fusion combines specialist assessments into one recommendation.
// A cycle walks fixed stages: collect assessments concurrently, detect
// pairwise conflicts, then derive the recommendation and its confidence.
package fusion

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/metrics"
	"assistant-agents/internal/evaluator"
	"assistant-agents/internal/models"
)

// Stage names one step of the fusion pipeline, surfaced in logs.
type Stage string

const (
	StageCollect   Stage = "COLLECT"
	StageConflicts Stage = "CONFLICT_DETECT"
	StageRecommend Stage = "RECOMMEND"
	StageDone      Stage = "DONE"
)

const syntheticDiscount = 0.2

// Fuser runs fusion cycles over a fixed set of specialists.
type Fuser struct {
	evaluators []evaluator.Evaluator
	timeout    time.Duration
	logger     logger.Logger
}

func New(evaluators []evaluator.Evaluator, timeout time.Duration, log logger.Logger) *Fuser {
	return &Fuser{evaluators: evaluators, timeout: timeout, logger: log}
}

// Outcome is a finalized decision plus the conflicts that shaped it.
type Outcome struct {
	Decision  models.Decision
	Conflicts []Conflict
}

// Fuse runs one full cycle for the request. It never returns an error: a
// specialist that times out contributes a neutral synthetic assessment, and
// an empty specialist set yields a zero-confidence decision.
func (f *Fuser) Fuse(ctx context.Context, req evaluator.Request) Outcome {
	metrics.FusionCycles.Inc()
	start := time.Now()

	assessments := f.collect(ctx, req)

	f.logStage(StageConflicts, len(assessments))
	conflicts := DetectConflicts(assessments)
	for _, c := range conflicts {
		metrics.FusionConflicts.WithLabelValues(string(c.Severity)).Inc()
	}

	f.logStage(StageRecommend, len(conflicts))
	decision := recommend(assessments, conflicts)

	f.logger.Info("fusion cycle complete", map[string]interface{}{
		"stage":       string(StageDone),
		"decisionId":  decision.ID,
		"confidence":  decision.Confidence,
		"conflicts":   len(conflicts),
		"assessments": len(assessments),
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return Outcome{Decision: decision, Conflicts: conflicts}
}

// collect fans out to every specialist with a shared deadline. A specialist
// that misses the deadline is recorded as a neutral assessment; its late
// result is discarded.
func (f *Fuser) collect(ctx context.Context, req evaluator.Request) []models.Assessment {
	f.logStage(StageCollect, len(f.evaluators))

	collectCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	results := make([]models.Assessment, len(f.evaluators))
	var wg sync.WaitGroup
	for i, ev := range f.evaluators {
		wg.Add(1)
		go func(i int, ev evaluator.Evaluator) {
			defer wg.Done()

			done := make(chan models.Assessment, 1)
			go func() {
				done <- ev.Assess(collectCtx, req)
			}()

			select {
			case a := <-done:
				results[i] = a
			case <-collectCtx.Done():
				f.logger.Warn("specialist timed out", map[string]interface{}{
					"specialist": ev.Name(),
					"timeout":    f.timeout.String(),
				})
				results[i] = models.NeutralAssessment(ev.Name())
			}
		}(i, ev)
	}
	wg.Wait()

	return results
}

// recommend turns assessments and conflicts into a final decision.
//
// Confidence is the mean score minus 0.2 per synthetic assessment, floored
// at 0.1. With no assessments at all the decision carries confidence 0 and
// an explicit insufficient-information recommendation.
func recommend(assessments []models.Assessment, conflicts []Conflict) models.Decision {
	decision := models.Decision{
		ID:          uuid.NewString(),
		Assessments: assessments,
		CreatedAt:   time.Now().UTC(),
	}

	if len(assessments) == 0 {
		decision.Recommendation = "insufficient information to make a recommendation"
		decision.Confidence = 0
		return decision
	}

	var sum float64
	synthetic := 0
	for _, a := range assessments {
		sum += a.Score
		if a.Synthetic {
			synthetic++
		}
	}
	confidence := sum/float64(len(assessments)) - syntheticDiscount*float64(synthetic)
	if confidence < 0.1 {
		confidence = 0.1
	}
	decision.Confidence = confidence
	decision.Alternatives = Alternatives(conflicts)
	decision.Recommendation = recommendation(assessments, conflicts)

	return decision
}

func recommendation(assessments []models.Assessment, conflicts []Conflict) string {
	switch MaxSeverity(conflicts) {
	case SeverityHigh:
		return fmt.Sprintf("strong conflict detected: %s", describeConflicts(conflicts))
	case SeverityMedium:
		return fmt.Sprintf("potential conflict: %s", describeConflicts(conflicts))
	}

	low := lowestScore(assessments)
	if low.Score < 0.5 {
		return fmt.Sprintf("proceed with caution: %s", strings.Join(low.Findings, "; "))
	}
	return "conditions look good, proceed as planned"
}

func describeConflicts(conflicts []Conflict) string {
	var parts []string
	for _, c := range conflicts {
		if c.Severity == SeverityLow {
			continue
		}
		parts = append(parts, c.Mitigation)
	}
	return strings.Join(parts, "; ")
}

func lowestScore(assessments []models.Assessment) models.Assessment {
	low := assessments[0]
	for _, a := range assessments[1:] {
		if a.Score < low.Score {
			low = a
		}
	}
	return low
}

func (f *Fuser) logStage(stage Stage, count int) {
	f.logger.Debug("fusion stage", map[string]interface{}{
		"stage": string(stage),
		"count": count,
	})
}
