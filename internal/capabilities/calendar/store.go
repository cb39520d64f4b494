package calendar

import (
	"context"
	"sort"
	"strings"
	"sync"

	"assistant-agents/internal/models"
)

// EventStore persists calendar events. Implementations must be safe for
// concurrent use.
type EventStore interface {
	Create(ctx context.Context, event models.Event) error
	List(ctx context.Context, window models.TimeWindow) ([]models.Event, error)
	Search(ctx context.Context, query string) ([]models.Event, error)
}

// MemoryStore is the default store when no database is configured. Events
// live only for the process lifetime.
type MemoryStore struct {
	mu     sync.RWMutex
	events []models.Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(ctx context.Context, event models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, window models.TimeWindow) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Event
	for _, ev := range s.events {
		if window.IsZero() || ev.Window().Overlaps(window) {
			out = append(out, ev)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *MemoryStore) Search(ctx context.Context, query string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	var out []models.Event
	for _, ev := range s.events {
		haystack := strings.ToLower(ev.Title + " " + ev.Location + " " + ev.Description)
		if strings.Contains(haystack, needle) {
			out = append(out, ev)
		}
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(events []models.Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
}
