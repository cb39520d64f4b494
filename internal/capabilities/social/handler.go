// Package social publishes short announcements to an SNS topic. Without a
// configured topic it degrades to preview mode. A status action exposes
// channel readiness to specialists without posting anything.
package social

import (
	"context"
	"fmt"
	"unicode/utf8"

	"assistant-agents/internal/capability"
	commonerrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/validation"
)

const (
	ActionPost   = "post"
	ActionStatus = "status"
)

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(deps ServiceDependencies, config *Config) *Handler {
	return &Handler{
		service: NewService(deps, config),
		logger:  deps.Logger,
	}
}

func (h *Handler) Name() string { return "social" }

func (h *Handler) Description() string {
	return "Publish short announcements to the social channel"
}

func (h *Handler) Schema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"action": {
				Type:    "string",
				Default: ActionPost,
				Enum:    []string{ActionPost, ActionStatus},
			},
			"message": {Type: "string", Description: "Post content"},
		},
		Required: []string{"action"},
	}
}

func (h *Handler) Execute(ctx context.Context, params capability.Params) capability.Result {
	switch params.String("action", ActionPost) {
	case ActionStatus:
		return capability.OK("social channel status", map[string]interface{}{
			"configured": h.service.Ready(),
		})
	case ActionPost:
		return h.post(ctx, params)
	default:
		return capability.Failure(commonerrors.NewValidationError("unknown action"))
	}
}

func (h *Handler) post(ctx context.Context, params capability.Params) capability.Result {
	message := params.String("message", "")
	if message == "" {
		return capability.Failure(commonerrors.NewValidationError("post requires a message"))
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return capability.Failure(commonerrors.NewValidationError(
			fmt.Sprintf("message exceeds %d characters", MaxMessageLength)))
	}

	messageID, err := h.service.Publish(ctx, message)
	if err != nil {
		if commonerrors.IsKind(err, commonerrors.KindProviderUnavailable) {
			h.logger.Info("social channel unavailable, returning preview", nil)
			return capability.Degraded(
				"Post prepared but not published (no channel configured)",
				map[string]interface{}{
					"message": message,
					"preview": true,
				},
			)
		}
		return capability.Failure(commonerrors.Normalize(err))
	}

	return capability.OK("Post published", map[string]interface{}{
		"message":   message,
		"messageId": messageID,
	})
}
