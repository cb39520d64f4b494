package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/capability"
	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
)

// fakeSender records the last delivery.
type fakeSender struct {
	from, to, subject, body string
	err                     error
}

func (f *fakeSender) SendSimpleEmail(ctx context.Context, from, to, subject, body string) (string, error) {
	f.from, f.to, f.subject, f.body = from, to, subject, body
	if f.err != nil {
		return "", f.err
	}
	return "msg-123", nil
}

func newConfiguredHandler(t *testing.T, sender Sender) *Handler {
	t.Helper()
	return NewHandler(
		ServiceDependencies{Logger: logger.NewTestLogger(t), Sender: sender},
		&Config{Region: "us-east-1", FromAddress: "assistant@example.com"},
	)
}

func TestExecute_SendsThroughProvider(t *testing.T) {
	sender := &fakeSender{}
	h := newConfiguredHandler(t, sender)

	result := h.Execute(context.Background(), capability.Params{
		"to":      "alice@example.com",
		"subject": "Quarterly results",
		"body":    "Numbers attached.",
	})

	require.True(t, result.Success)
	assert.False(t, result.Synthetic)
	assert.Equal(t, "msg-123", result.Data["messageId"])
	assert.Equal(t, "assistant@example.com", sender.from)
	assert.Equal(t, "alice@example.com", sender.to)
	assert.Equal(t, "Numbers attached.", sender.body)
}

func TestExecute_ComposesBodyFromSubject(t *testing.T) {
	sender := &fakeSender{}
	h := newConfiguredHandler(t, sender)

	result := h.Execute(context.Background(), capability.Params{
		"to":      "alice@example.com",
		"subject": "lunch",
	})

	require.True(t, result.Success)
	assert.Contains(t, sender.body, "lunch")
}

func TestExecute_UnconfiguredReturnsPreview(t *testing.T) {
	h := NewHandler(
		ServiceDependencies{Logger: logger.NewTestLogger(t)},
		&Config{},
	)

	result := h.Execute(context.Background(), capability.Params{
		"to":      "alice@example.com",
		"subject": "hello",
	})

	require.True(t, result.Success, "missing provider degrades, never fails")
	assert.True(t, result.Synthetic)
	assert.Equal(t, true, result.Data["preview"])
	assert.Equal(t, "hello", result.Data["subject"])
}

func TestExecute_ProviderErrorReturnsPreview(t *testing.T) {
	h := newConfiguredHandler(t, &fakeSender{err: assert.AnError})

	result := h.Execute(context.Background(), capability.Params{
		"to": "alice@example.com",
	})

	require.True(t, result.Success)
	assert.True(t, result.Synthetic)
}

func TestExecute_InvalidRecipient(t *testing.T) {
	h := newConfiguredHandler(t, &fakeSender{})

	for _, to := range []string{"", "not-an-address", "missing@domain"} {
		result := h.Execute(context.Background(), capability.Params{"to": to})
		require.False(t, result.Success, "address %q", to)
		assert.Equal(t, errors.KindValidation, result.Err.Kind)
	}
}
