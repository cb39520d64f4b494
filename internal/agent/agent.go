// internal/agent/agent.go

// Package agent is the assistant's front door. It routes free text to a
// capability, invokes it, and for planning-sensitive requests runs a fusion
// cycle whose decision is recorded, indexed, and escalated over the bus.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistant-agents/internal/bus"
	"assistant-agents/internal/capability"
	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/evaluator"
	"assistant-agents/internal/fusion"
	"assistant-agents/internal/history"
	"assistant-agents/internal/models"
	"assistant-agents/internal/router"
)

// NotifierAgent receives escalation messages for conflicted decisions.
const NotifierAgent = "notifier"

// DecisionIndexer mirrors decisions to an external index. Optional.
type DecisionIndexer interface {
	Index(ctx context.Context, d models.Decision)
}

// Options configures an Agent.
type Options struct {
	Name              string
	DefaultCity       string
	Lookahead         time.Duration
	CapabilityTimeout func(name string) time.Duration
	Indexer           DecisionIndexer // may be nil
}

// Agent coordinates one assistant identity end to end.
type Agent struct {
	opts     Options
	registry *capability.Registry
	invoker  *capability.Invoker
	router   *router.Router
	fuser    *fusion.Fuser
	bus      *bus.Bus
	history  *history.History
	logger   logger.Logger
}

func New(
	opts Options,
	registry *capability.Registry,
	invoker *capability.Invoker,
	rt *router.Router,
	fuser *fusion.Fuser,
	msgBus *bus.Bus,
	hist *history.History,
	log logger.Logger,
) *Agent {
	if opts.Lookahead <= 0 {
		opts.Lookahead = 48 * time.Hour
	}
	if opts.CapabilityTimeout == nil {
		opts.CapabilityTimeout = func(string) time.Duration { return 15 * time.Second }
	}
	msgBus.Register(opts.Name)
	msgBus.Register(NotifierAgent)

	return &Agent{
		opts:     opts,
		registry: registry,
		invoker:  invoker,
		router:   rt,
		fuser:    fuser,
		bus:      msgBus,
		history:  hist,
		logger:   log,
	}
}

// Response is the full outcome of one request cycle.
type Response struct {
	Text      string
	Intent    models.Intent
	Result    capability.Result
	Decision  *models.Decision
	Conflicts []fusion.Conflict
}

// HandleRequest runs one full request cycle: route, invoke, and for
// planning-sensitive intents fuse specialist assessments into a decision.
// It never returns an error; failures surface inside the Response.
func (a *Agent) HandleRequest(ctx context.Context, text string, conv *models.Conversation) Response {
	intent := a.router.Route(text, conv)
	if conv != nil {
		conv.RecordIntent(intent)
	}

	resp := Response{Intent: intent}

	cap, err := a.registry.Get(intent.Capability)
	if err != nil {
		resp.Result = capability.Failure(errors.Normalize(err))
		resp.Text = "I don't have that capability right now."
		return resp
	}

	resp.Result = a.invoker.Invoke(ctx, cap, capability.Params(intent.Params), a.opts.CapabilityTimeout(cap.Name()))
	resp.Text = resp.Result.Message

	if a.fuser != nil && shouldFuse(intent, resp.Result) {
		a.fuse(ctx, intent, conv, &resp)
	}

	return resp
}

// shouldFuse gates the expensive fusion cycle to intents where a decision
// adds value: weather questions and new calendar commitments.
func shouldFuse(intent models.Intent, result capability.Result) bool {
	if !result.Success {
		return false
	}
	switch intent.Capability {
	case "weather":
		return true
	case "calendar":
		action, _ := intent.Params["action"].(string)
		return action == "create"
	default:
		return false
	}
}

func (a *Agent) fuse(ctx context.Context, intent models.Intent, conv *models.Conversation, resp *Response) {
	req := a.fusionRequest(intent, conv, resp.Result)

	outcome := a.fuser.Fuse(ctx, req)
	resp.Decision = &outcome.Decision
	resp.Conflicts = outcome.Conflicts

	a.history.Record(outcome.Decision)
	if conv != nil {
		conv.RecordDecision(outcome.Decision)
	}
	if a.opts.Indexer != nil {
		a.opts.Indexer.Index(ctx, outcome.Decision)
	}

	resp.Text = fmt.Sprintf("%s\n%s (confidence %.0f%%)",
		resp.Result.Message, outcome.Decision.Recommendation, outcome.Decision.Confidence*100)
	if len(outcome.Decision.Alternatives) > 0 {
		resp.Text += "\nAlternatives: " + strings.Join(outcome.Decision.Alternatives, "; ")
	}

	a.escalate(outcome)
}

// fusionRequest derives the specialist subject from the intent: the created
// event's window when one exists, otherwise the configured lookahead from
// now.
func (a *Agent) fusionRequest(intent models.Intent, conv *models.Conversation, result capability.Result) evaluator.Request {
	city := a.opts.DefaultCity
	if c, ok := intent.Params["city"].(string); ok && c != "" {
		city = c
	} else if conv != nil {
		if c := conv.LastCity(); c != "" {
			city = c
		}
	}

	now := time.Now().UTC()
	window := models.TimeWindow{Start: now, End: now.Add(a.opts.Lookahead)}
	if event, ok := result.Data["event"].(models.Event); ok {
		window = event.Window()
	}

	return evaluator.Request{City: city, Window: window}
}

// escalate notifies the notifier agent when a decision carries a conflict at
// medium severity or above. The message carries the composed notification
// draft so a delivery agent can forward it through the email capability
// unchanged.
func (a *Agent) escalate(outcome fusion.Outcome) {
	draft, ok := fusion.ComposeConflictEmail(outcome.Decision, outcome.Conflicts)
	if !ok {
		return
	}

	content := draft.Subject + "\n" + draft.Body
	if err := a.bus.Send(models.NewMessage(a.opts.Name, NotifierAgent, content, models.MessageNotification)); err != nil {
		a.logger.Warn("failed to escalate conflict", map[string]interface{}{
			"decisionId": outcome.Decision.ID,
			"error":      err.Error(),
		})
		return
	}

	a.logger.Info("conflict escalated", map[string]interface{}{
		"decisionId": outcome.Decision.ID,
		"severity":   string(fusion.MaxSeverity(outcome.Conflicts)),
	})
}

// History exposes the recorded decisions, newest first.
func (a *Agent) History(n int) []models.Decision {
	return a.history.Recent(n)
}

// Notifications drains pending escalations for the notifier agent.
func (a *Agent) Notifications() []models.Message {
	msgs, err := a.bus.Drain(NotifierAgent)
	if err != nil {
		return nil
	}
	return msgs
}
