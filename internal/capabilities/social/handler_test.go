package social

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/capability"
	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
)

type fakePublisher struct {
	topicARN, message string
	err               error
}

func (f *fakePublisher) PublishToTopic(ctx context.Context, topicARN, message string) (string, error) {
	f.topicARN, f.message = topicARN, message
	if f.err != nil {
		return "", f.err
	}
	return "sns-456", nil
}

func newConfiguredHandler(t *testing.T, pub Publisher) *Handler {
	t.Helper()
	return NewHandler(
		ServiceDependencies{Logger: logger.NewTestLogger(t), Publisher: pub},
		&Config{Region: "us-east-1", TopicARN: "arn:aws:sns:us-east-1:123456789012:posts"},
	)
}

func TestExecute_Post(t *testing.T) {
	pub := &fakePublisher{}
	h := newConfiguredHandler(t, pub)

	result := h.Execute(context.Background(), capability.Params{
		"action":  "post",
		"message": "shipping today!",
	})

	require.True(t, result.Success)
	assert.Equal(t, "sns-456", result.Data["messageId"])
	assert.Equal(t, "shipping today!", pub.message)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:posts", pub.topicARN)
}

func TestExecute_PostTooLong(t *testing.T) {
	h := newConfiguredHandler(t, &fakePublisher{})

	result := h.Execute(context.Background(), capability.Params{
		"action":  "post",
		"message": strings.Repeat("x", MaxMessageLength+1),
	})

	require.False(t, result.Success)
	assert.Equal(t, errors.KindValidation, result.Err.Kind)
}

func TestExecute_PostAtLimitSucceeds(t *testing.T) {
	h := newConfiguredHandler(t, &fakePublisher{})

	result := h.Execute(context.Background(), capability.Params{
		"action":  "post",
		"message": strings.Repeat("x", MaxMessageLength),
	})
	assert.True(t, result.Success)
}

func TestExecute_PostRequiresMessage(t *testing.T) {
	h := newConfiguredHandler(t, &fakePublisher{})

	result := h.Execute(context.Background(), capability.Params{"action": "post"})
	require.False(t, result.Success)
	assert.Equal(t, errors.KindValidation, result.Err.Kind)
}

func TestExecute_UnconfiguredReturnsPreview(t *testing.T) {
	h := NewHandler(ServiceDependencies{Logger: logger.NewTestLogger(t)}, &Config{})

	result := h.Execute(context.Background(), capability.Params{
		"action":  "post",
		"message": "hello",
	})

	require.True(t, result.Success)
	assert.True(t, result.Synthetic)
	assert.Equal(t, true, result.Data["preview"])
}

func TestExecute_Status(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		h := newConfiguredHandler(t, &fakePublisher{})
		result := h.Execute(context.Background(), capability.Params{"action": "status"})
		require.True(t, result.Success)
		assert.Equal(t, true, result.Data["configured"])
	})

	t.Run("unconfigured", func(t *testing.T) {
		h := NewHandler(ServiceDependencies{Logger: logger.NewTestLogger(t)}, &Config{})
		result := h.Execute(context.Background(), capability.Params{"action": "status"})
		require.True(t, result.Success)
		assert.Equal(t, false, result.Data["configured"])
	})
}
