// internal/models/event.go
package models

import "time"

// Event is one calendar entry.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Window returns the event's time window.
func (e Event) Window() TimeWindow {
	return TimeWindow{Start: e.Start, End: e.End}
}

// TimeWindow is a half-open [Start, End) interval.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the window length, never negative.
func (w TimeWindow) Duration() time.Duration {
	if w.End.Before(w.Start) {
		return 0
	}
	return w.End.Sub(w.Start)
}

// Overlaps reports whether two windows intersect.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Overlap returns the intersection duration of two windows.
func (w TimeWindow) Overlap(other TimeWindow) time.Duration {
	start := w.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := w.End
	if other.End.Before(end) {
		end = other.End
	}
	if end.Before(start) {
		return 0
	}
	return end.Sub(start)
}

// IsZero reports whether the window is unset.
func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}
