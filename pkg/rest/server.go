// Package rest exposes the tool dispatcher as a stateless JSON REST
// surface: one HTTP request, one dispatch, one response body.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wwwzhouhui/jimeng-mcp-server/internal/observability"
	"github.com/wwwzhouhui/jimeng-mcp-server/internal/tracing"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/tool"
)

// Dispatcher is the tool-invocation core the REST binding exposes.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args map[string]interface{}) tool.Envelope
	ListTools() []tool.ToolSpec
}

// toolRoutes maps REST paths to tool names. The binding adds no tool
// behavior of its own; everything below the path mapping is the shared
// dispatcher.
var toolRoutes = map[string]string{
	"/text-to-image":     "text_to_image",
	"/image-composition": "image_composition",
	"/text-to-video":     "text_to_video",
	"/image-to-video":    "image_to_video",
}

// Server hosts the REST binding.
type Server struct {
	host       string
	port       int
	dispatcher Dispatcher

	server         *http.Server
	logger         zerolog.Logger
	isShuttingDown bool
	shutdownMu     sync.RWMutex
	inFlightReqs   sync.WaitGroup
}

// NewServer creates a REST server.
func NewServer(dispatcher Dispatcher, host string, port int, logger zerolog.Logger) (*Server, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if port <= 0 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}
	if host == "" {
		host = "0.0.0.0"
	}

	return &Server{
		host:       host,
		port:       port,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

// Start starts the server without blocking.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/tools", s.handleTools)
	mux.Handle("/metrics", observability.MetricsHandler())
	for path, toolName := range toolRoutes {
		mux.HandleFunc(path, s.toolHandler(toolName))
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.host, s.port),
		Handler: withCORS(mux),
		// Tool calls block for up to 15 minutes; only the header read
		// gets a deadline.
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info().
		Str("host", s.host).
		Int("port", s.port).
		Msg("Starting MCP server (HTTP mode)")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("REST server error")
		}
	}()

	return nil
}

// Stop gracefully stops the server, waiting for in-flight requests.
func (s *Server) Stop() error {
	s.shutdownMu.Lock()
	s.isShuttingDown = true
	s.shutdownMu.Unlock()

	s.logger.Info().Msg("Shutting down REST server")

	done := make(chan struct{})
	go func() {
		s.inFlightReqs.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		s.logger.Warn().Msg("Shutdown timeout reached, forcing close")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"server":  "jimeng-mcp",
		"version": "0.1.0",
		"mode":    "http",
	})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	specs := s.dispatcher.ListTools()
	descriptors := make([]map[string]interface{}, 0, len(specs))
	for _, spec := range specs {
		descriptors = append(descriptors, map[string]interface{}{
			"name":        spec.Name,
			"description": spec.Description,
			"inputSchema": spec.InputSchema(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tools": descriptors})
}

// toolHandler builds the handler for one tool endpoint. Business
// failures keep HTTP 200 with success:false; 500 is reserved for
// failures that escape the envelope model entirely.
func (s *Server) toolHandler(toolName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().
					Str("tool", toolName).
					Interface("panic", rec).
					Msg("Recovered panic in REST handler")
				writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
					"success": false,
					"error":   fmt.Sprintf("internal error: %v", rec),
				})
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		s.shutdownMu.RLock()
		if s.isShuttingDown {
			s.shutdownMu.RUnlock()
			http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
			return
		}
		s.shutdownMu.RUnlock()

		s.inFlightReqs.Add(1)
		defer s.inFlightReqs.Done()

		var args map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   fmt.Sprintf("invalid JSON body: %v", err),
			})
			return
		}

		traceID := r.Header.Get("X-Trace-Id")
		if traceID == "" {
			traceID = tracing.NewTraceID()
		}
		ctx := tracing.WithTraceID(r.Context(), traceID)
		logger := tracing.LoggerFromContext(ctx, s.logger)
		logger.Info().Str("tool", toolName).Msg("REST tool call received")

		env := s.dispatcher.Dispatch(ctx, toolName, args)

		if env.OK {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"result":  env.Text(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"error":   env.Text(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// withCORS applies the permissive CORS policy shared by the serving
// modes: all origins, methods and headers.
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
