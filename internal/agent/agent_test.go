// internal/agent/agent_test.go
package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/bus"
	"assistant-agents/internal/capabilities/calendar"
	"assistant-agents/internal/capabilities/conversational"
	"assistant-agents/internal/capability"
	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/validation"
	"assistant-agents/internal/evaluator"
	"assistant-agents/internal/fusion"
	"assistant-agents/internal/history"
	"assistant-agents/internal/models"
	"assistant-agents/internal/router"
)

// fixedWeather serves one canned report so fusion outcomes are predictable.
type fixedWeather struct {
	report models.WeatherReport
}

func (f *fixedWeather) Name() string        { return "weather" }
func (f *fixedWeather) Description() string { return "fixed weather for tests" }
func (f *fixedWeather) Schema() validation.JSONSchema {
	return validation.JSONSchema{Type: "object", Properties: map[string]validation.Property{
		"city": {Type: "string", Default: "Boston"},
	}}
}
func (f *fixedWeather) Execute(ctx context.Context, params capability.Params) capability.Result {
	return capability.OK("forecast", map[string]interface{}{"report": f.report})
}

// recordingIndexer captures indexed decisions.
type recordingIndexer struct {
	decisions []models.Decision
}

func (r *recordingIndexer) Index(ctx context.Context, d models.Decision) {
	r.decisions = append(r.decisions, d)
}

func newTestAgent(t *testing.T, report models.WeatherReport, indexer DecisionIndexer) *Agent {
	t.Helper()
	log := logger.NewTestLogger(t)

	registry := capability.NewRegistry()
	invoker := capability.NewInvoker(log)

	weatherCap := &fixedWeather{report: report}
	calendarCap := calendar.NewHandler(calendar.ServiceDependencies{
		Logger: log,
		Store:  calendar.NewMemoryStore(),
		Clock:  func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) },
	})

	require.NoError(t, registry.Register(weatherCap))
	require.NoError(t, registry.Register(calendarCap))
	require.NoError(t, registry.Register(conversational.NewHandler(log)))

	evaluators := []evaluator.Evaluator{
		evaluator.NewWeatherEvaluator(invoker, weatherCap),
		evaluator.NewScheduleEvaluator(invoker, calendarCap),
	}
	fuser := fusion.New(evaluators, 2*time.Second, log)

	return New(
		Options{Name: "assistant", DefaultCity: "Boston", Lookahead: 48 * time.Hour, Indexer: indexer},
		registry,
		invoker,
		router.New(router.DefaultRules(), log),
		fuser,
		bus.New(log),
		history.New(10),
		log,
	)
}

func clearWeather() models.WeatherReport {
	return models.WeatherReport{City: "Boston", Temperature: 22, Condition: "clear"}
}

func rainyWeather() models.WeatherReport {
	return models.WeatherReport{City: "Boston", Temperature: 10, Condition: "rain", Precipitation: true}
}

func TestHandleRequest_WeatherQuestionProducesDecision(t *testing.T) {
	a := newTestAgent(t, clearWeather(), nil)
	conv := models.NewConversation()

	resp := a.HandleRequest(context.Background(), "what's the weather in Boston?", conv)

	assert.Equal(t, "weather", resp.Intent.Capability)
	require.True(t, resp.Result.Success)
	require.NotNil(t, resp.Decision)
	assert.Equal(t, "conditions look good, proceed as planned", resp.Decision.Recommendation)
	assert.Empty(t, resp.Conflicts)
	assert.Len(t, conv.Decisions, 1)
	assert.Equal(t, 1, len(a.History(0)))
}

func TestHandleRequest_OutdoorEventInRainEscalates(t *testing.T) {
	indexer := &recordingIndexer{}
	a := newTestAgent(t, rainyWeather(), indexer)
	conv := models.NewConversation()

	resp := a.HandleRequest(context.Background(), "schedule team picnic at 1pm tomorrow", conv)

	assert.Equal(t, "calendar", resp.Intent.Capability)
	require.True(t, resp.Result.Success)
	require.NotNil(t, resp.Decision)

	require.NotEmpty(t, resp.Conflicts, "rain against an outdoor commitment must conflict")
	assert.Equal(t, "outdoor_weather", resp.Conflicts[0].Type)
	assert.Contains(t, resp.Decision.Alternatives, "move the activity indoors")

	notifications := a.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, models.MessageNotification, notifications[0].Type)
	assert.Contains(t, notifications[0].Content, resp.Decision.Recommendation)

	require.Len(t, indexer.decisions, 1)
	assert.Equal(t, resp.Decision.ID, indexer.decisions[0].ID)
}

func TestHandleRequest_ClearWeatherEventDoesNotEscalate(t *testing.T) {
	a := newTestAgent(t, clearWeather(), nil)

	resp := a.HandleRequest(context.Background(), "schedule team picnic at 1pm tomorrow", models.NewConversation())

	require.NotNil(t, resp.Decision)
	assert.Empty(t, a.Notifications())
}

func TestHandleRequest_ConversationalSkipsFusion(t *testing.T) {
	a := newTestAgent(t, clearWeather(), nil)

	resp := a.HandleRequest(context.Background(), "hello", models.NewConversation())

	assert.Equal(t, "conversational", resp.Intent.Capability)
	assert.True(t, resp.Result.Success)
	assert.Nil(t, resp.Decision)
	assert.Empty(t, a.History(0))
}

func TestHandleRequest_UnregisteredCapabilityKeepsErrorKind(t *testing.T) {
	// The test agent registers no email capability, so the routed intent
	// cannot be satisfied.
	a := newTestAgent(t, clearWeather(), nil)

	resp := a.HandleRequest(context.Background(), "send email to bob@example.com", models.NewConversation())

	assert.Equal(t, "email", resp.Intent.Capability)
	assert.False(t, resp.Result.Success)
	require.NotNil(t, resp.Result.Err)
	assert.Equal(t, errors.KindNotFound, resp.Result.Err.Kind)
	assert.NotEmpty(t, resp.Text)
}

func TestHandleRequest_UnmatchedTextStillAnswers(t *testing.T) {
	a := newTestAgent(t, clearWeather(), nil)

	resp := a.HandleRequest(context.Background(), "zorp blarg", models.NewConversation())

	assert.Equal(t, models.FallbackCapability, resp.Intent.Capability)
	assert.Zero(t, resp.Intent.Confidence)
	assert.True(t, resp.Result.Success)
	assert.NotEmpty(t, resp.Text)
}

func TestHandleRequest_ListActionSkipsFusion(t *testing.T) {
	a := newTestAgent(t, rainyWeather(), nil)

	resp := a.HandleRequest(context.Background(), "what's on my calendar", models.NewConversation())

	assert.Equal(t, "calendar", resp.Intent.Capability)
	assert.Nil(t, resp.Decision, "only new commitments trigger fusion")
}

func TestHandleRequest_CityCarriesAcrossTurns(t *testing.T) {
	a := newTestAgent(t, clearWeather(), nil)
	conv := models.NewConversation()

	first := a.HandleRequest(context.Background(), "weather in Chicago?", conv)
	require.Equal(t, "Chicago", first.Intent.Params["city"])

	second := a.HandleRequest(context.Background(), "what about the forecast?", conv)
	assert.Equal(t, "Chicago", second.Intent.Params["city"])
}
