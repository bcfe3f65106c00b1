// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/glucolog/glucolog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout; diagnostics go to stderr.

AVAILABLE TOOLS:

  get_glucose_data       Glucose readings, most recent first
  get_sleep_data         Nightly sleep records
  get_exercise_data      Exercise sessions
  detect_patterns        Hourly/weekday patterns and time in range
  find_correlations      Pearson correlations between daily aggregates
  get_monitoring_status  CGM ingestion freshness

AVAILABLE RESOURCES:

  glucolog://summary     Counts and date span per domain
  glucolog://latest      Most recent record per domain`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, analyzer)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
