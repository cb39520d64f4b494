// Package conversational is the fallback capability: it always succeeds and
// answers greetings, thanks, and help requests with canned responses, so the
// assistant has something to say for any input.
package conversational

import (
	"context"
	"strings"

	"assistant-agents/internal/capability"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/validation"
)

type Handler struct {
	logger logger.Logger
}

func NewHandler(log logger.Logger) *Handler {
	return &Handler{logger: log}
}

func (h *Handler) Name() string { return "conversational" }

func (h *Handler) Description() string {
	return "General conversation and fallback responses"
}

func (h *Handler) Schema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"text":    {Type: "string", Description: "The user's utterance"},
			"message": {Type: "string", Description: "Alias accepted from the fallback route"},
		},
	}
}

func (h *Handler) Execute(ctx context.Context, params capability.Params) capability.Result {
	text := params.String("text", params.String("message", ""))
	return capability.OK(respond(text), map[string]interface{}{"echo": text})
}

func respond(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case text == "":
		return "I'm listening. Ask me about weather, your calendar, email, or posting updates."
	case strings.Contains(lowered, "hello"), strings.Contains(lowered, "hi there"):
		return "Hello! How can I help you today?"
	case strings.Contains(lowered, "thank"):
		return "You're welcome!"
	case strings.Contains(lowered, "help"), strings.Contains(lowered, "what can you do"):
		return "I can check the weather, manage your calendar and reminders, send email, and post updates."
	default:
		return "I'm not sure how to help with that. Try asking about weather, events, email, or posts."
	}
}
