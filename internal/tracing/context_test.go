package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTraceID(t *testing.T) {
	first := NewTraceID()
	second := NewTraceID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestTraceIDRoundtrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-123")
	assert.Equal(t, "trace-123", GetTraceID(ctx))
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestSessionIDRoundtrip(t *testing.T) {
	ctx := WithSessionID(context.Background(), "sess-abc")
	assert.Equal(t, "sess-abc", GetSessionID(ctx))
	assert.Empty(t, GetSessionID(context.Background()))
}

func TestLoggerFromContext(t *testing.T) {
	t.Run("should attach tracing fields", func(t *testing.T) {
		var buf bytes.Buffer
		base := zerolog.New(&buf)

		ctx := WithSessionID(WithTraceID(context.Background(), "trace-123"), "sess-abc")
		lg := LoggerFromContext(ctx, base)
		lg.Info().Msg("hello")

		out := buf.String()
		require.NotEmpty(t, out)
		assert.Contains(t, out, `"trace_id":"trace-123"`)
		assert.Contains(t, out, `"session_id":"sess-abc"`)
	})

	t.Run("should leave logger untouched without tracing", func(t *testing.T) {
		var buf bytes.Buffer
		base := zerolog.New(&buf)

		lg := LoggerFromContext(context.Background(), base)
		lg.Info().Msg("hello")

		out := buf.String()
		assert.NotContains(t, out, "trace_id")
		assert.NotContains(t, out, "session_id")
	})
}
