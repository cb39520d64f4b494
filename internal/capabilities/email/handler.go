// Package email sends plain-text email through SES. Without a configured
// region and sender address it degrades to preview mode: the composed email
// is returned instead of delivered.
package email

import (
	"context"
	"fmt"

	"assistant-agents/internal/capability"
	commonerrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/validation"
)

type Handler struct {
	service *Service
	config  *Config
	logger  logger.Logger
}

func NewHandler(deps ServiceDependencies, config *Config) *Handler {
	return &Handler{
		service: NewService(deps, config),
		config:  config,
		logger:  deps.Logger,
	}
}

func (h *Handler) Name() string { return "email" }

func (h *Handler) Description() string {
	return "Compose and send plain-text email"
}

func (h *Handler) Schema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"to":      {Type: "string", Description: "Recipient address"},
			"subject": {Type: "string", Description: "Subject line", Default: "A note from your assistant"},
			"body":    {Type: "string", Description: "Message body"},
		},
		Required: []string{"to"},
	}
}

func (h *Handler) Execute(ctx context.Context, params capability.Params) capability.Result {
	to := params.String("to", "")
	if !validation.ValidateEmail(to) {
		return capability.Failure(commonerrors.NewValidationError(
			fmt.Sprintf("invalid recipient address %q", to)))
	}

	subject := params.String("subject", "A note from your assistant")
	body := ComposeBody(subject, params.String("body", ""))

	messageID, err := h.service.Send(ctx, to, subject, body)
	if err != nil {
		if commonerrors.IsKind(err, commonerrors.KindProviderUnavailable) {
			h.logger.Info("email provider unavailable, returning preview", map[string]interface{}{
				"to": to,
			})
			return capability.Degraded(
				fmt.Sprintf("Email to %s prepared but not sent (no provider configured)", to),
				map[string]interface{}{
					"to":      to,
					"subject": subject,
					"body":    body,
					"preview": true,
				},
			)
		}
		return capability.Failure(commonerrors.Normalize(err))
	}

	return capability.OK(
		fmt.Sprintf("Email sent to %s", to),
		map[string]interface{}{
			"to":        to,
			"subject":   subject,
			"messageId": messageID,
		},
	)
}
