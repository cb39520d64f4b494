// internal/evaluator/schedule.go
package evaluator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistant-agents/internal/capability"
	"assistant-agents/internal/models"
)

const (
	perEventPenalty    = 0.1
	outdoorExtraWeight = 0.1
	calendarCapTimeout = 8 * time.Second
)

// outdoorKeywords flag events whose success depends on conditions outside.
var outdoorKeywords = []string{"picnic", "hike", "outdoor", "park", "bbq", "barbecue", "beach", "run", "bike"}

// ScheduleEvaluator scores how free the request window is. A clear calendar
// scores 1.0; each committed event lowers the score, outdoor ones more.
type ScheduleEvaluator struct {
	invoker  *capability.Invoker
	calendar capability.Capability
}

func NewScheduleEvaluator(invoker *capability.Invoker, calendar capability.Capability) *ScheduleEvaluator {
	return &ScheduleEvaluator{invoker: invoker, calendar: calendar}
}

func (e *ScheduleEvaluator) Name() string { return "schedule" }

func (e *ScheduleEvaluator) Assess(ctx context.Context, req Request) models.Assessment {
	params := capability.Params{"action": "list"}
	if !req.Window.IsZero() {
		params["from"] = req.Window.Start.Format(time.RFC3339)
		params["to"] = req.Window.End.Format(time.RFC3339)
	}

	result := e.invoker.Invoke(ctx, e.calendar, params, calendarCapTimeout)
	if !result.Success {
		a := models.NeutralAssessment(e.Name())
		a.Findings = []string{fmt.Sprintf("calendar lookup failed: %s", result.Message)}
		a.Window = req.Window
		return a
	}

	events, _ := result.Data["events"].([]models.Event)
	score, findings := ScoreSchedule(events, req.Window)

	return models.Assessment{
		Source:    e.Name(),
		Score:     score,
		Findings:  findings,
		Raw:       map[string]interface{}{"eventCount": len(events)},
		Synthetic: result.Synthetic,
		Window:    subjectWindow(events, req.Window),
		Location:  req.City,
	}
}

// ScoreSchedule reduces commitments to availability in [0,1]. Each event in
// the window costs 0.1, outdoor-keyword events cost 0.1 extra.
func ScoreSchedule(events []models.Event, window models.TimeWindow) (float64, []string) {
	score := 1.0
	var findings []string

	for _, ev := range events {
		if !window.IsZero() && !ev.Window().Overlaps(window) {
			continue
		}
		score -= perEventPenalty
		if IsOutdoorEvent(ev) {
			score -= outdoorExtraWeight
			findings = append(findings, fmt.Sprintf("%q is weather-sensitive", ev.Title))
		} else {
			findings = append(findings, fmt.Sprintf("%q occupies the window", ev.Title))
		}
	}

	if len(findings) == 0 {
		findings = append(findings, "no commitments in the window")
	}

	return clampScore(score), findings
}

// IsOutdoorEvent reports whether an event's title or location names an
// outdoor activity.
func IsOutdoorEvent(ev models.Event) bool {
	haystack := strings.ToLower(ev.Title + " " + ev.Location + " " + ev.Description)
	for _, kw := range outdoorKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// subjectWindow narrows the assessment subject to the first in-window
// outdoor event, so conflict detection compares like against like. Falls
// back to the request window.
func subjectWindow(events []models.Event, window models.TimeWindow) models.TimeWindow {
	for _, ev := range events {
		if !IsOutdoorEvent(ev) {
			continue
		}
		if window.IsZero() || ev.Window().Overlaps(window) {
			return ev.Window()
		}
	}
	return window
}
