// Package stdio serves the MCP protocol over a single long-lived
// stdin/stdout channel: one process, one client, strictly sequential
// frames.
package stdio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/mcp"
)

// maxFrameSize bounds a single request line. Tool arguments carry image
// URLs, not image bytes, so 10MB is generous.
const maxFrameSize = 10 * 1024 * 1024

// Server reads line-delimited JSON-RPC frames from in and writes one
// response line per request to out.
type Server struct {
	handler *mcp.Handler
	in      io.Reader
	out     io.Writer
	logger  zerolog.Logger
}

// NewServer creates a stdio server bound to os.Stdin/os.Stdout. Logging
// in this mode must go to stderr; stdout belongs to the protocol.
func NewServer(handler *mcp.Handler, logger zerolog.Logger) (*Server, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	return &Server{
		handler: handler,
		in:      os.Stdin,
		out:     os.Stdout,
		logger:  logger,
	}, nil
}

// Run processes frames until EOF or context cancellation. Each frame is
// handled to completion before the next is read: request N's response is
// fully written before request N+1 is consumed.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info().Msg("MCP server started (stdio mode)")

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.handler.Handle(ctx, line)
		if resp == nil {
			continue
		}

		if _, err := s.out.Write(append(resp, '\n')); err != nil {
			return fmt.Errorf("failed to write response frame: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request frame: %w", err)
	}

	// EOF: the client closed the channel.
	s.logger.Info().Msg("stdio channel closed")
	return nil
}
