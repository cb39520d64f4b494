package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
	"assistant-agents/internal/router"
)

type ServiceDependencies struct {
	Logger logger.Logger
	Store  EventStore
	Clock  func() time.Time // defaults to time.Now
}

type Service struct {
	store  EventStore
	logger logger.Logger
	clock  func() time.Time
}

func NewService(deps ServiceDependencies) *Service {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	store := deps.Store
	if store == nil {
		store = NewMemoryStore()
	}
	return &Service{store: store, logger: deps.Logger, clock: clock}
}

// CreateFromPhrase builds an event from a title and a natural time phrase.
func (s *Service) CreateFromPhrase(ctx context.Context, title, when string) (models.Event, error) {
	start := router.ParseWhen(when, s.clock())
	event := models.Event{
		ID:    uuid.NewString(),
		Title: title,
		Start: start,
		End:   start.Add(defaultEventDurationHours * time.Hour),
	}
	if err := s.store.Create(ctx, event); err != nil {
		return models.Event{}, err
	}

	s.logger.Info("event created", map[string]interface{}{
		"eventId": event.ID,
		"title":   event.Title,
		"start":   event.Start.Format(time.RFC3339),
	})
	return event, nil
}

// CreateReminder stores a zero-length reminder entry.
func (s *Service) CreateReminder(ctx context.Context, title string) (models.Event, error) {
	start := s.clock().Add(time.Hour)
	event := models.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Start:       start,
		End:         start.Add(15 * time.Minute),
		Description: "reminder",
	}
	if err := s.store.Create(ctx, event); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// ImportSpec validates a JSON event document against the published schema
// and stores it.
func (s *Service) ImportSpec(ctx context.Context, doc string) (models.Event, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(eventSpecSchema),
		gojsonschema.NewStringLoader(doc),
	)
	if err != nil {
		return models.Event{}, errors.NewValidationError(fmt.Sprintf("event document is not valid JSON: %v", err))
	}
	if !result.Valid() {
		var details []string
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return models.Event{}, errors.NewValidationError(strings.Join(details, "; "))
	}

	var spec struct {
		Title       string    `json:"title"`
		Start       time.Time `json:"start"`
		End         time.Time `json:"end"`
		Location    string    `json:"location"`
		Description string    `json:"description"`
	}
	if err := json.Unmarshal([]byte(doc), &spec); err != nil {
		return models.Event{}, errors.NewValidationError(err.Error())
	}

	end := spec.End
	if end.IsZero() {
		end = spec.Start.Add(defaultEventDurationHours * time.Hour)
	}
	event := models.Event{
		ID:          uuid.NewString(),
		Title:       spec.Title,
		Start:       spec.Start,
		End:         end,
		Location:    spec.Location,
		Description: spec.Description,
	}
	if err := s.store.Create(ctx, event); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// List returns events overlapping the window; a zero window lists all.
func (s *Service) List(ctx context.Context, window models.TimeWindow) ([]models.Event, error) {
	return s.store.List(ctx, window)
}

// Search returns events whose text matches the query.
func (s *Service) Search(ctx context.Context, query string) ([]models.Event, error) {
	return s.store.Search(ctx, query)
}
