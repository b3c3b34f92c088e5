package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wwwzhouhui/jimeng-mcp-server/internal/observability"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/tool"
)

// Invoker issues one normalized request against the backend, returning
// every outcome as an envelope value.
type Invoker interface {
	Invoke(ctx context.Context, req *tool.NormalizedRequest) tool.Envelope
}

// Dispatcher is the transport-agnostic entry point for tool calls.
// Every binding goes through the same instance, so tool behavior cannot
// differ by transport.
type Dispatcher struct {
	registry *tool.Registry
	invoker  Invoker
	logger   zerolog.Logger
}

// New creates a dispatcher.
func New(registry *tool.Registry, invoker Invoker, logger zerolog.Logger) (*Dispatcher, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if invoker == nil {
		return nil, fmt.Errorf("invoker is required")
	}
	return &Dispatcher{
		registry: registry,
		invoker:  invoker,
		logger:   logger,
	}, nil
}

// ListTools returns the tool catalog in stable registration order.
func (d *Dispatcher) ListTools() []tool.ToolSpec {
	return d.registry.List()
}

// Dispatch normalizes the raw arguments and invokes the backend. It
// never panics and never returns partial results: validation failures
// short-circuit before any network I/O, and every outcome arrives as an
// envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]interface{}) (env tool.Envelope) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str("tool", name).
				Interface("panic", r).
				Msg("Recovered panic during dispatch")
			env = tool.Failure(tool.ErrTransport, "internal error executing %s: %v", name, r)
		}
		observability.RecordToolInvocation(name, time.Since(start), env.OK)
	}()

	req, detail := d.registry.Normalize(name, args)
	if detail != nil {
		d.logger.Warn().
			Str("tool", name).
			Str("kind", string(detail.Kind)).
			Str("reason", detail.Message).
			Msg("Tool call rejected before dispatch")
		return tool.FailureDetail(detail)
	}

	env = d.invoker.Invoke(ctx, req)

	d.logger.Info().
		Str("tool", name).
		Bool("ok", env.OK).
		Dur("duration", time.Since(start)).
		Msg("Tool call completed")

	return env
}
