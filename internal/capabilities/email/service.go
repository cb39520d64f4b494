package email

import (
	"context"
	"fmt"

	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
)

// Sender delivers one plain-text email and returns a provider message id.
// Satisfied by the SES client wrapper.
type Sender interface {
	SendSimpleEmail(ctx context.Context, from, to, subject, body string) (string, error)
}

type ServiceDependencies struct {
	Logger logger.Logger
	Sender Sender // nil switches the capability to preview mode
}

type Service struct {
	config *Config
	sender Sender
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{config: config, sender: deps.Sender, logger: deps.Logger}
}

// Send delivers the email or returns a ProviderUnavailable error when no
// sender is wired; the handler downgrades that to a preview.
func (s *Service) Send(ctx context.Context, to, subject, body string) (string, error) {
	if s.sender == nil || !s.config.Configured() {
		return "", errors.NewProviderUnavailableError("email", nil)
	}

	messageID, err := s.sender.SendSimpleEmail(ctx, s.config.FromAddress, to, subject, body)
	if err != nil {
		return "", errors.NewProviderUnavailableError("email", err)
	}

	s.logger.Info("email sent", map[string]interface{}{
		"to":        to,
		"subject":   subject,
		"messageId": messageID,
	})
	return messageID, nil
}

// ComposeBody fills in a body when the user only gave a subject.
func ComposeBody(subject, body string) string {
	if body != "" {
		return body
	}
	return fmt.Sprintf("Hi,\n\nRegarding: %s.\n\nSent by your assistant.", subject)
}
