package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-regions/internal/config"
	"github.com/ironsheep/pixel-regions/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Long: `Serve starts a Model Context Protocol server that speaks JSON-RPC 2.0
over stdin and stdout. Configure it as a command in your MCP client.

The configured rule, thresholds and top-N are the defaults for tool calls
that omit them. Logs always go to stderr or a file.

Example:
  pixel-regions serve --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(func(cfg *config.Config) {
		// stdout carries the protocol
		if cfg.Logging.Output == "stdout" {
			cfg.Logging.Output = "stderr"
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	server.Version = Version
	log.Infow("starting MCP server",
		"version", Version,
		"commit", Commit,
		"rule", cfg.Classify.Rule,
		"upper", cfg.Classify.UpperThreshold,
		"lower", cfg.Classify.LowerThreshold,
	)

	if err := server.New(cfg, log).Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
