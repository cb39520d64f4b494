// internal/models/assessment.go
package models

import "time"

// Assessment is one specialist's scored evaluation of a request dimension.
// One is produced per specialist per fusion cycle.
//
// Synthetic marks an assessment built from degraded provider data (or a
// timed-out evaluator); the fuser discounts confidence for each one.
type Assessment struct {
	Source    string                 `json:"source"`
	Score     float64                `json:"score"` // suitability/impact in [0,1]
	Findings  []string               `json:"findings"`
	Raw       map[string]interface{} `json:"raw,omitempty"`
	Synthetic bool                   `json:"synthetic"`

	// Subject scoping for conflict detection. A zero Window means the
	// assessment has no temporal subject and never participates in
	// pairwise conflict checks.
	Window   TimeWindow `json:"window,omitempty"`
	Location string     `json:"location,omitempty"`
}

// NeutralAssessment is the stand-in recorded when a specialist times out:
// neutral score, flagged synthetic, so the cycle can proceed.
func NeutralAssessment(source string) Assessment {
	return Assessment{
		Source:    source,
		Score:     0.5,
		Findings:  []string{"specialist timed out; using neutral score"},
		Synthetic: true,
	}
}

// Decision is the fused, final recommendation combining all assessments for
// one request. Immutable once finalized.
type Decision struct {
	ID             string       `json:"id"`
	Recommendation string       `json:"recommendation"`
	Confidence     float64      `json:"confidence"`
	Assessments    []Assessment `json:"assessments"`
	Alternatives   []string     `json:"alternatives,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
}
