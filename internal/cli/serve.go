package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wwwzhouhui/jimeng-mcp-server/internal/config"
	"github.com/wwwzhouhui/jimeng-mcp-server/internal/logger"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/backend"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/dispatcher"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/mcp"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/rest"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/sse"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/stdio"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/tool"
)

var (
	serveMode string
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Jimeng MCP server",
	Long: `Start the Jimeng MCP server in one of three modes:

  stdio  line-framed MCP over stdin/stdout (default, for Claude Desktop)
  sse    MCP over Server-Sent Events (for web clients)
  http   plain REST API (for integrations)`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveMode, "mode", "stdio", "server mode (stdio, sse, http)")
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "host address for sse/http modes")
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "port for sse/http modes")
	rootCmd.AddCommand(serveCmd)
}

// binding runs one transport for the shared dispatcher until the
// context ends. Modes register here; an unavailable binding is simply
// absent from the table rather than a startup failure elsewhere.
type binding func(ctx context.Context, d *dispatcher.Dispatcher, cfg *config.Config, log zerolog.Logger) error

var bindings = map[string]binding{
	"stdio": runStdio,
	"sse":   runSSE,
	"http":  runREST,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("mode") || cfg.Server.Mode == "" {
		cfg.Server.Mode = serveMode
	}
	if cmd.Flags().Changed("host") || cfg.Server.Host == "" {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") || cfg.Server.Port == 0 {
		cfg.Server.Port = servePort
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	lg, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: true,
		// stdout is the protocol channel in stdio mode; pretty output
		// is for humans watching a terminal server.
		Stderr:    cfg.Server.Mode == "stdio",
		Pretty:    cfg.Server.Mode != "stdio",
		Redaction: cfg.Logging.Redaction,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = lg.Close() }()
	log := lg.GetZerolog()

	registry, err := tool.NewRegistry(tool.Catalog(cfg.API.Model, cfg.API.VideoModel))
	if err != nil {
		return fmt.Errorf("failed to build tool registry: %w", err)
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.APIKey,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	disp, err := dispatcher.New(registry, client, log)
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	run, ok := bindings[cfg.Server.Mode]
	if !ok {
		return fmt.Errorf("unknown server mode: %s", cfg.Server.Mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, disp, cfg, log)
}

func runStdio(ctx context.Context, d *dispatcher.Dispatcher, _ *config.Config, log zerolog.Logger) error {
	handler, err := mcp.NewHandler(d, log)
	if err != nil {
		return err
	}
	srv, err := stdio.NewServer(handler, log)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func runSSE(ctx context.Context, d *dispatcher.Dispatcher, cfg *config.Config, log zerolog.Logger) error {
	handler, err := mcp.NewHandler(d, log)
	if err != nil {
		return err
	}
	srv, err := sse.NewServer(handler, cfg.Server.Host, cfg.Server.Port, log)
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return srv.Stop()
}

func runREST(ctx context.Context, d *dispatcher.Dispatcher, cfg *config.Config, log zerolog.Logger) error {
	srv, err := rest.NewServer(d, cfg.Server.Host, cfg.Server.Port, log)
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return srv.Stop()
}
