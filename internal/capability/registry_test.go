// internal/capability/registry_test.go
package capability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/validation"
)

// ==========================
// Test Helper Functions
// ==========================

type stubCapability struct {
	name    string
	schema  validation.JSONSchema
	execute func(ctx context.Context, params Params) Result
}

func (s *stubCapability) Name() string        { return s.name }
func (s *stubCapability) Description() string { return "stub capability for tests" }

func (s *stubCapability) Schema() validation.JSONSchema {
	return s.schema
}

func (s *stubCapability) Execute(ctx context.Context, params Params) Result {
	if s.execute != nil {
		return s.execute(ctx, params)
	}
	return OK("ok", nil)
}

func newStub(name string) *stubCapability {
	return &stubCapability{
		name: name,
		schema: validation.JSONSchema{
			Type:                 "object",
			Properties:           map[string]validation.Property{},
			AdditionalProperties: true,
		},
	}
}

func noopLogger(t *testing.T) logger.Logger {
	t.Helper()
	return logger.NewTestLogger(t)
}

// ==========================
// Registry Tests
// ==========================

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	weather := newStub("weather")

	require.NoError(t, reg.Register(weather))

	got, err := reg.Get("weather")
	require.NoError(t, err)
	assert.Same(t, Capability(weather), got, "Get must return the instance used at registration")
}

func TestRegistry_DuplicateName(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(newStub("weather")))

	err := reg.Register(newStub("weather"))
	require.Error(t, err)
	assert.Equal(t, errors.KindDuplicateCapability, errors.KindOf(err))
}

func TestRegistry_InvalidName(t *testing.T) {
	tests := []struct {
		name    string
		capName string
	}{
		{name: "uppercase", capName: "Weather"},
		{name: "leading digit", capName: "1weather"},
		{name: "dash", capName: "weather-lookup"},
		{name: "empty", capName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Register(newStub(tt.capName))
			require.Error(t, err)
			assert.Equal(t, errors.KindValidation, errors.KindOf(err))
		})
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("calendar")
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}

func TestRegistry_NamesInRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"weather", "calendar", "email"} {
		require.NoError(t, reg.Register(newStub(name)))
	}

	var names []string
	for name := range reg.Names() {
		names = append(names, name)
	}
	assert.Equal(t, []string{"weather", "calendar", "email"}, names)

	// Restartable: a second iteration yields the same sequence.
	var again []string
	for name := range reg.Names() {
		again = append(again, name)
		if len(again) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"weather", "calendar"}, again)

	assert.Equal(t, 3, reg.Len())
}

// ==========================
// Invoker Tests
// ==========================

func requiredStringSchema(field string) validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			field: {Type: "string"},
		},
		Required:             []string{field},
		AdditionalProperties: true,
	}
}

func TestInvoker_ValidationErrorSkipsHandler(t *testing.T) {
	invoked := false
	cap := newStub("weather")
	cap.schema = requiredStringSchema("city")
	cap.execute = func(ctx context.Context, params Params) Result {
		invoked = true
		return OK("ok", nil)
	}

	inv := NewInvoker(noopLogger(t))
	result := inv.Invoke(context.Background(), cap, Params{}, time.Second)

	assert.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, errors.KindValidation, result.Err.Kind)
	assert.False(t, invoked, "handler must not run on validation failure")
}

func TestInvoker_AppliesSchemaDefaults(t *testing.T) {
	var seen Params
	cap := newStub("weather")
	cap.schema = validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"city": {Type: "string", Default: "New York"},
		},
		AdditionalProperties: true,
	}
	cap.execute = func(ctx context.Context, params Params) Result {
		seen = params
		return OK("ok", nil)
	}

	inv := NewInvoker(noopLogger(t))
	result := inv.Invoke(context.Background(), cap, Params{}, time.Second)

	require.True(t, result.Success)
	assert.Equal(t, "New York", seen.String("city", ""))
}

func TestInvoker_Timeout(t *testing.T) {
	cap := newStub("slow")
	cap.execute = func(ctx context.Context, params Params) Result {
		select {
		case <-time.After(5 * time.Second):
			return OK("too late", nil)
		case <-ctx.Done():
			<-time.After(50 * time.Millisecond)
			return OK("late after cancel", nil)
		}
	}

	inv := NewInvoker(noopLogger(t))
	result := inv.Invoke(context.Background(), cap, Params{}, 20*time.Millisecond)

	assert.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, errors.KindTimeout, result.Err.Kind)
}

func TestInvoker_PanicBecomesExecutionError(t *testing.T) {
	cap := newStub("panicky")
	cap.execute = func(ctx context.Context, params Params) Result {
		panic("boom")
	}

	inv := NewInvoker(noopLogger(t))
	result := inv.Invoke(context.Background(), cap, Params{}, time.Second)

	assert.False(t, result.Success)
	require.NotNil(t, result.Err)
	assert.Equal(t, errors.KindExecution, result.Err.Kind)
}

func TestInvoker_Idempotence(t *testing.T) {
	cap := newStub("echo")
	cap.execute = func(ctx context.Context, params Params) Result {
		return OK("echo: "+params.String("message", ""), nil)
	}

	inv := NewInvoker(noopLogger(t))
	first := inv.Invoke(context.Background(), cap, Params{"message": "hi"}, time.Second)
	second := inv.Invoke(context.Background(), cap, Params{"message": "hi"}, time.Second)

	assert.Equal(t, first.Success, second.Success)
	assert.Equal(t, first.Message, second.Message)
}
