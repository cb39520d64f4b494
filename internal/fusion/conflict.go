// internal/fusion/conflict.go
package fusion

import (
	"fmt"

	"assistant-agents/internal/models"
)

// Severity grades how strongly two assessments disagree.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Conflict records a pairwise disagreement between two assessments whose
// subjects overlap in time.
type Conflict struct {
	Type       string    `json:"type"`
	Sources    [2]string `json:"sources"`
	Severity   Severity  `json:"severity"`
	ScoreDelta float64   `json:"scoreDelta"`
	Overlap    float64   `json:"overlap"` // proportion of the shorter subject window
	Mitigation string    `json:"mitigation"`
}

// alternativeTemplates maps a conflict type to the canned alternatives
// offered alongside the recommendation.
var alternativeTemplates = map[string][]string{
	"outdoor_weather": {
		"reschedule to a window with better weather",
		"move the activity indoors",
	},
	"travel_risk": {
		"switch to a virtual meeting",
	},
	"overcommitted": {
		"decline or shorten the lowest-priority commitment",
	},
}

// DetectConflicts runs the pairwise check over every assessment pair with a
// temporal subject. Assessments with a zero window never conflict.
func DetectConflicts(assessments []models.Assessment) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(assessments); i++ {
		for j := i + 1; j < len(assessments); j++ {
			if c, ok := checkPair(assessments[i], assessments[j]); ok {
				conflicts = append(conflicts, c)
			}
		}
	}
	return conflicts
}

func checkPair(a, b models.Assessment) (Conflict, bool) {
	if a.Window.IsZero() || b.Window.IsZero() {
		return Conflict{}, false
	}
	if !a.Window.Overlaps(b.Window) {
		return Conflict{}, false
	}

	delta := a.Score - b.Score
	if delta < 0 {
		delta = -delta
	}
	if delta < 0.3 {
		return Conflict{}, false
	}

	shorter := a.Window.Duration()
	if d := b.Window.Duration(); d < shorter {
		shorter = d
	}
	overlap := 1.0
	if shorter > 0 {
		overlap = float64(a.Window.Overlap(b.Window)) / float64(shorter)
	}

	kind := classify(a, b)
	return Conflict{
		Type:       kind,
		Sources:    [2]string{a.Source, b.Source},
		Severity:   severity(delta, overlap),
		ScoreDelta: delta,
		Overlap:    overlap,
		Mitigation: mitigation(kind, a, b),
	}, true
}

// severity grades a conflicting pair. The delta >= 0.3 gate in checkPair
// already holds, so low means a real disagreement with a thin overlap.
func severity(delta, overlap float64) Severity {
	switch {
	case delta >= 0.5 && overlap >= 0.5:
		return SeverityHigh
	case delta >= 0.5 || overlap >= 0.5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func classify(a, b models.Assessment) string {
	pair := a.Source + "/" + b.Source
	switch pair {
	case "weather/schedule", "schedule/weather":
		return "outdoor_weather"
	default:
		return "overcommitted"
	}
}

func mitigation(kind string, a, b models.Assessment) string {
	switch kind {
	case "outdoor_weather":
		low := a
		if b.Score < low.Score {
			low = b
		}
		return fmt.Sprintf("conditions score %.2f against a committed window, consider a backup plan", low.Score)
	default:
		return "competing commitments overlap, review the window"
	}
}

// Alternatives collects the templated alternatives for every conflict at or
// above medium severity, deduplicated in order.
func Alternatives(conflicts []Conflict) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range conflicts {
		if c.Severity == SeverityLow {
			continue
		}
		for _, alt := range alternativeTemplates[c.Type] {
			if !seen[alt] {
				seen[alt] = true
				out = append(out, alt)
			}
		}
	}
	return out
}

// MaxSeverity returns the highest severity present, or "" when the slice is
// empty.
func MaxSeverity(conflicts []Conflict) Severity {
	var max Severity
	rank := map[Severity]int{SeverityLow: 1, SeverityMedium: 2, SeverityHigh: 3}
	for _, c := range conflicts {
		if rank[c.Severity] > rank[max] {
			max = c.Severity
		}
	}
	return max
}
