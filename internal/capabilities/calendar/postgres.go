package calendar

import (
	"context"
	"database/sql"
	"fmt"

	"assistant-agents/internal/common/database"
	"assistant-agents/internal/models"
)

// PostgresStore persists events in the assistant_events table.
type PostgresStore struct {
	db *database.PostgresClient
}

func NewPostgresStore(db *database.PostgresClient) *PostgresStore {
	return &PostgresStore{db: db}
}

const createEventQuery = `
	INSERT INTO assistant_events (id, title, start_at, end_at, location, description)
	VALUES ($1, $2, $3, $4, $5, $6)`

const listEventsQuery = `
	SELECT id, title, start_at, end_at, location, description
	FROM assistant_events
	WHERE start_at < $2 AND end_at > $1
	ORDER BY start_at`

const listAllEventsQuery = `
	SELECT id, title, start_at, end_at, location, description
	FROM assistant_events
	ORDER BY start_at`

const searchEventsQuery = `
	SELECT id, title, start_at, end_at, location, description
	FROM assistant_events
	WHERE title ILIKE $1 OR location ILIKE $1 OR description ILIKE $1
	ORDER BY start_at`

func (s *PostgresStore) Create(ctx context.Context, event models.Event) error {
	_, err := s.db.Exec(ctx, createEventQuery,
		event.ID, event.Title, event.Start, event.End, event.Location, event.Description)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, window models.TimeWindow) ([]models.Event, error) {
	var rows *sql.Rows
	var err error
	if window.IsZero() {
		rows, err = s.db.Query(ctx, listAllEventsQuery)
	} else {
		rows, err = s.db.Query(ctx, listEventsQuery, window.Start, window.End)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *PostgresStore) Search(ctx context.Context, query string) ([]models.Event, error) {
	rows, err := s.db.Query(ctx, searchEventsQuery, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]models.Event, error) {
	var out []models.Event
	for rows.Next() {
		var ev models.Event
		var location, description sql.NullString
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Start, &ev.End, &location, &description); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		ev.Location = location.String
		ev.Description = description.String
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event row iteration failed: %w", err)
	}
	return out, nil
}
