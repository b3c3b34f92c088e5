// Package sse serves the MCP protocol over Server-Sent Events: a GET
// establishes the server-push channel, a POST side channel carries
// client-to-server messages, and responses arrive as stream events.
package sse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/wwwzhouhui/jimeng-mcp-server/internal/observability"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/mcp"
)

const (
	streamPath  = "/sse"
	messagePath = "/messages"

	maxMessageSize = 10 * 1024 * 1024
)

// Server hosts the event-stream binding. Each connected client gets an
// independent session; concurrent sessions share only the stateless
// dispatcher beneath the protocol handler.
type Server struct {
	host    string
	port    int
	handler *mcp.Handler

	server   *http.Server
	sessions *sessionRegistry
	logger   zerolog.Logger
}

// NewServer creates an SSE server.
func NewServer(handler *mcp.Handler, host string, port int, logger zerolog.Logger) (*Server, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	if port <= 0 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}
	if host == "" {
		host = "0.0.0.0"
	}

	return &Server{
		host:     host,
		port:     port,
		handler:  handler,
		sessions: newSessionRegistry(),
		logger:   logger,
	}, nil
}

// Start starts the server without blocking.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc(streamPath, s.handleStream)
	mux.HandleFunc(messagePath, s.handleMessage)
	mux.Handle("/metrics", observability.MetricsHandler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.host, s.port),
		Handler: withCORS(mux),
		// No write timeout: streams stay open indefinitely and tool
		// responses can take minutes.
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info().
		Str("host", s.host).
		Int("port", s.port).
		Str("stream", streamPath).
		Str("messages", messagePath).
		Msg("Starting MCP server (SSE mode)")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("SSE server error")
		}
	}()

	return nil
}

// Stop gracefully stops the server and ends all live sessions.
func (s *Server) Stop() error {
	s.logger.Info().Int("sessions", s.sessions.count()).Msg("Shutting down SSE server")
	s.sessions.closeAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// handleStream establishes one push channel. The first event names the
// side-channel endpoint for this session; subsequent message events
// carry JSON-RPC responses.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	sess := newSession(context.Background())
	s.sessions.add(sess)
	defer s.sessions.remove(sess.id)

	s.logger.Info().Str("sessionId", sess.id).Str("ip", r.RemoteAddr).Msg("SSE client connected")
	defer s.logger.Info().Str("sessionId", sess.id).Msg("SSE client disconnected")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: endpoint\ndata: %s?session_id=%s\n\n", messagePath, sess.id)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sess.ctx.Done():
			return
		case msg := <-sess.ch:
			if _, err := fmt.Fprintf(w, "event: message\ndata: %s\n\n", msg); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// handleMessage accepts one client-to-server JSON-RPC message and
// delivers the eventual response over the session's stream. The POST
// returns immediately; long-running tool calls must not pin the side
// channel.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "missing session_id", http.StatusBadRequest)
		return
	}

	sess, ok := s.sessions.get(sessionID)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxMessageSize))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().
					Str("sessionId", sess.id).
					Interface("panic", rec).
					Msg("Recovered panic handling SSE message")
			}
		}()

		resp := s.handler.Handle(sess.ctx, body)
		if resp == nil {
			return
		}
		if !sess.push(resp) {
			s.logger.Warn().Str("sessionId", sess.id).Msg("Dropping response for closed session")
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}

// withCORS applies the permissive CORS policy: all origins, methods and
// headers.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
