// Package calendar manages the assistant's events: creation from natural
// phrasing, reminders, window listings, text search, and validated JSON
// import. Events live in memory by default, in Postgres when configured.
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistant-agents/internal/capability"
	commonerrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/validation"
	"assistant-agents/internal/models"
)

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(deps ServiceDependencies) *Handler {
	return &Handler{
		service: NewService(deps),
		logger:  deps.Logger,
	}
}

func (h *Handler) Name() string { return "calendar" }

func (h *Handler) Description() string {
	return "Create, list, and search calendar events and reminders"
}

func (h *Handler) Schema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"action": {
				Type:        "string",
				Description: "One of create, list, remind, search, import",
				Default:     ActionList,
				Enum:        []string{ActionCreate, ActionList, ActionRemind, ActionSearch, ActionImport},
			},
			"title":    {Type: "string", Description: "Event or reminder title"},
			"when":     {Type: "string", Description: "Natural time phrase, e.g. 2pm tomorrow"},
			"query":    {Type: "string", Description: "Search text"},
			"document": {Type: "string", Description: "JSON event document for import"},
			"from":     {Type: "string", Description: "RFC3339 window start for list"},
			"to":       {Type: "string", Description: "RFC3339 window end for list"},
		},
		Required: []string{"action"},
	}
}

func (h *Handler) Execute(ctx context.Context, params capability.Params) capability.Result {
	action := params.String("action", ActionList)

	switch action {
	case ActionCreate:
		return h.create(ctx, params)
	case ActionRemind:
		return h.remind(ctx, params)
	case ActionList:
		return h.list(ctx, params)
	case ActionSearch:
		return h.search(ctx, params)
	case ActionImport:
		return h.importSpec(ctx, params)
	default:
		return capability.Failure(commonerrors.NewValidationError(
			fmt.Sprintf("unknown action %q", action)))
	}
}

func (h *Handler) create(ctx context.Context, params capability.Params) capability.Result {
	title := params.String("title", "")
	if title == "" {
		return capability.Failure(commonerrors.NewValidationError("create requires a title"))
	}

	event, err := h.service.CreateFromPhrase(ctx, title, params.String("when", "tomorrow"))
	if err != nil {
		return capability.Failure(commonerrors.Normalize(err))
	}

	return capability.OK(
		fmt.Sprintf("Scheduled %q for %s", event.Title, event.Start.Format("Mon Jan 2 15:04")),
		map[string]interface{}{"event": event},
	)
}

func (h *Handler) remind(ctx context.Context, params capability.Params) capability.Result {
	title := params.String("title", "")
	if title == "" {
		return capability.Failure(commonerrors.NewValidationError("remind requires a title"))
	}

	event, err := h.service.CreateReminder(ctx, title)
	if err != nil {
		return capability.Failure(commonerrors.Normalize(err))
	}

	return capability.OK(
		fmt.Sprintf("Reminder set: %s", event.Title),
		map[string]interface{}{"event": event},
	)
}

func (h *Handler) list(ctx context.Context, params capability.Params) capability.Result {
	window, err := parseWindow(params)
	if err != nil {
		return capability.Failure(commonerrors.NewValidationError(err.Error()))
	}

	events, err := h.service.List(ctx, window)
	if err != nil {
		return capability.Failure(commonerrors.Normalize(err))
	}

	return capability.OK(summarize(events), map[string]interface{}{"events": events})
}

func (h *Handler) search(ctx context.Context, params capability.Params) capability.Result {
	query := params.String("query", "")
	if query == "" {
		return capability.Failure(commonerrors.NewValidationError("search requires a query"))
	}

	events, err := h.service.Search(ctx, query)
	if err != nil {
		return capability.Failure(commonerrors.Normalize(err))
	}

	return capability.OK(summarize(events), map[string]interface{}{"events": events})
}

func (h *Handler) importSpec(ctx context.Context, params capability.Params) capability.Result {
	doc := params.String("document", "")
	if doc == "" {
		return capability.Failure(commonerrors.NewValidationError("import requires a document"))
	}

	event, err := h.service.ImportSpec(ctx, doc)
	if err != nil {
		return capability.Failure(commonerrors.Normalize(err))
	}

	return capability.OK(
		fmt.Sprintf("Imported %q", event.Title),
		map[string]interface{}{"event": event},
	)
}

func parseWindow(params capability.Params) (models.TimeWindow, error) {
	from := params.String("from", "")
	to := params.String("to", "")
	if from == "" && to == "" {
		return models.TimeWindow{}, nil
	}

	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return models.TimeWindow{}, fmt.Errorf("invalid 'from' timestamp: %w", err)
	}
	end, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return models.TimeWindow{}, fmt.Errorf("invalid 'to' timestamp: %w", err)
	}
	return models.TimeWindow{Start: start, End: end}, nil
}

func summarize(events []models.Event) string {
	if len(events) == 0 {
		return "No events found"
	}
	var lines []string
	for _, ev := range events {
		lines = append(lines, fmt.Sprintf("%s (%s)", ev.Title, ev.Start.Format("Mon Jan 2 15:04")))
	}
	return fmt.Sprintf("%d event(s): %s", len(events), strings.Join(lines, ", "))
}
