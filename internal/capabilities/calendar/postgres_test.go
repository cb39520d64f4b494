package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/common/database"
	"assistant-agents/internal/models"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(&database.PostgresClient{DB: db}), mock
}

func TestPostgresStore_Create(t *testing.T) {
	store, mock := newMockStore(t)

	event := models.Event{
		ID:       "ev-1",
		Title:    "Team picnic",
		Start:    time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC),
		Location: "Riverside Park",
	}

	mock.ExpectExec("INSERT INTO assistant_events").
		WithArgs(event.ID, event.Title, event.Start, event.End, event.Location, event.Description).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListWindow(t *testing.T) {
	store, mock := newMockStore(t)

	window := models.TimeWindow{
		Start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	}

	rows := sqlmock.NewRows([]string{"id", "title", "start_at", "end_at", "location", "description"}).
		AddRow("ev-1", "Team picnic",
			time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC),
			"Riverside Park", nil)

	mock.ExpectQuery("SELECT id, title, start_at, end_at, location, description").
		WithArgs(window.Start, window.End).
		WillReturnRows(rows)

	events, err := store.List(context.Background(), window)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Team picnic", events[0].Title)
	assert.Equal(t, "Riverside Park", events[0].Location)
	assert.Empty(t, events[0].Description, "NULL description scans to empty string")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Search(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "title", "start_at", "end_at", "location", "description"}).
		AddRow("ev-2", "Budget review",
			time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
			nil, nil)

	mock.ExpectQuery("SELECT id, title, start_at, end_at, location, description").
		WithArgs("%budget%").
		WillReturnRows(rows)

	events, err := store.Search(context.Background(), "budget")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Budget review", events[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, title, start_at, end_at, location, description").
		WillReturnError(assert.AnError)

	_, err := store.List(context.Background(), models.TimeWindow{})
	assert.Error(t, err)
}
