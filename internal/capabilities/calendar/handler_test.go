package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/capability"
	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
)

var testNow = time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(ServiceDependencies{
		Logger: logger.NewTestLogger(t),
		Store:  NewMemoryStore(),
		Clock:  func() time.Time { return testNow },
	})
}

func TestExecute_Create(t *testing.T) {
	h := newTestHandler(t)

	result := h.Execute(context.Background(), capability.Params{
		"action": "create",
		"title":  "dentist appointment",
		"when":   "2pm tomorrow",
	})

	require.True(t, result.Success)
	event, ok := result.Data["event"].(models.Event)
	require.True(t, ok)
	assert.Equal(t, "dentist appointment", event.Title)
	assert.Equal(t, time.Date(2024, 3, 11, 14, 0, 0, 0, time.UTC), event.Start)
	assert.Equal(t, event.Start.Add(time.Hour), event.End)
	assert.NotEmpty(t, event.ID)
}

func TestExecute_CreateRequiresTitle(t *testing.T) {
	h := newTestHandler(t)

	result := h.Execute(context.Background(), capability.Params{"action": "create"})
	require.False(t, result.Success)
	assert.Equal(t, errors.KindValidation, result.Err.Kind)
}

func TestExecute_ListWindow(t *testing.T) {
	h := newTestHandler(t)

	for _, spec := range []struct{ title, when string }{
		{"standup", "today at 4pm"},
		{"team picnic", "tomorrow at 1pm"},
		{"dinner", "tomorrow at 7pm"},
	} {
		res := h.Execute(context.Background(), capability.Params{
			"action": "create", "title": spec.title, "when": spec.when,
		})
		require.True(t, res.Success)
	}

	result := h.Execute(context.Background(), capability.Params{
		"action": "list",
		"from":   "2024-03-11T00:00:00Z",
		"to":     "2024-03-11T18:00:00Z",
	})

	require.True(t, result.Success)
	events := result.Data["events"].([]models.Event)
	require.Len(t, events, 1)
	assert.Equal(t, "team picnic", events[0].Title)
}

func TestExecute_ListAllWithoutWindow(t *testing.T) {
	h := newTestHandler(t)
	require.True(t, h.Execute(context.Background(), capability.Params{
		"action": "create", "title": "a", "when": "today at 9am",
	}).Success)
	require.True(t, h.Execute(context.Background(), capability.Params{
		"action": "create", "title": "b", "when": "tomorrow at 9am",
	}).Success)

	result := h.Execute(context.Background(), capability.Params{"action": "list"})
	require.True(t, result.Success)
	assert.Len(t, result.Data["events"].([]models.Event), 2)
}

func TestExecute_Remind(t *testing.T) {
	h := newTestHandler(t)

	result := h.Execute(context.Background(), capability.Params{
		"action": "remind",
		"title":  "water the plants",
	})

	require.True(t, result.Success)
	event := result.Data["event"].(models.Event)
	assert.Equal(t, "water the plants", event.Title)
	assert.Equal(t, testNow.Add(time.Hour), event.Start)
}

func TestExecute_Search(t *testing.T) {
	h := newTestHandler(t)
	require.True(t, h.Execute(context.Background(), capability.Params{
		"action": "create", "title": "Team picnic", "when": "tomorrow",
	}).Success)
	require.True(t, h.Execute(context.Background(), capability.Params{
		"action": "create", "title": "Budget review", "when": "tomorrow",
	}).Success)

	result := h.Execute(context.Background(), capability.Params{
		"action": "search", "query": "picnic",
	})

	require.True(t, result.Success)
	events := result.Data["events"].([]models.Event)
	require.Len(t, events, 1)
	assert.Equal(t, "Team picnic", events[0].Title)
}

func TestExecute_ImportValidDocument(t *testing.T) {
	h := newTestHandler(t)

	result := h.Execute(context.Background(), capability.Params{
		"action": "import",
		"document": `{
			"title": "Offsite",
			"start": "2024-04-01T10:00:00Z",
			"end": "2024-04-01T16:00:00Z",
			"location": "Riverside Park"
		}`,
	})

	require.True(t, result.Success)
	event := result.Data["event"].(models.Event)
	assert.Equal(t, "Offsite", event.Title)
	assert.Equal(t, "Riverside Park", event.Location)
}

func TestExecute_ImportRejectsBadDocuments(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		doc  string
	}{
		{"missing title", `{"start": "2024-04-01T10:00:00Z"}`},
		{"missing start", `{"title": "Offsite"}`},
		{"extra field", `{"title": "Offsite", "start": "2024-04-01T10:00:00Z", "priority": 1}`},
		{"not json", `not json at all`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := h.Execute(context.Background(), capability.Params{
				"action": "import", "document": tt.doc,
			})
			require.False(t, result.Success)
			assert.Equal(t, errors.KindValidation, result.Err.Kind)
		})
	}
}

func TestExecute_UnknownAction(t *testing.T) {
	h := newTestHandler(t)

	result := h.Execute(context.Background(), capability.Params{"action": "destroy"})
	require.False(t, result.Success)
	assert.Equal(t, errors.KindValidation, result.Err.Kind)
}

func TestExecute_InvalidWindow(t *testing.T) {
	h := newTestHandler(t)

	result := h.Execute(context.Background(), capability.Params{
		"action": "list", "from": "not-a-time", "to": "2024-03-11T18:00:00Z",
	})
	require.False(t, result.Success)
	assert.Equal(t, errors.KindValidation, result.Err.Kind)
}
