package cli

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jimeng-mcp",
	Short: "Jimeng MCP server - generative image and video tools",
	Long: `Jimeng MCP server exposes the Jimeng AI generation API as MCP tools:
text_to_image, image_composition, text_to_video and image_to_video.

The same tools are reachable over three transports: stdio (for MCP
clients such as Claude Desktop), SSE (for web clients), and a plain
HTTP REST API (for integrations).`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jimeng-mcp/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
