package social

import (
	"context"

	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
)

// Publisher posts one message to a topic and returns a provider message id.
// Satisfied by the SNS client wrapper.
type Publisher interface {
	PublishToTopic(ctx context.Context, topicARN, message string) (string, error)
}

type ServiceDependencies struct {
	Logger    logger.Logger
	Publisher Publisher // nil switches the capability to preview mode
}

type Service struct {
	config    *Config
	publisher Publisher
	logger    logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{config: config, publisher: deps.Publisher, logger: deps.Logger}
}

// Publish posts the message or returns ProviderUnavailable when no publisher
// is wired; the handler downgrades that to a preview.
func (s *Service) Publish(ctx context.Context, message string) (string, error) {
	if s.publisher == nil || !s.config.Configured() {
		return "", errors.NewProviderUnavailableError("social", nil)
	}

	messageID, err := s.publisher.PublishToTopic(ctx, s.config.TopicARN, message)
	if err != nil {
		return "", errors.NewProviderUnavailableError("social", err)
	}

	s.logger.Info("post published", map[string]interface{}{
		"messageId": messageID,
		"length":    len(message),
	})
	return messageID, nil
}

// Ready reports whether the channel can deliver real posts.
func (s *Service) Ready() bool {
	return s.publisher != nil && s.config.Configured()
}
