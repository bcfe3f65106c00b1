// ABOUTME: Root Cobra command for glucolog CLI.
// ABOUTME: Handles config loading and repository lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/glucolog/glucolog/internal/analysis"
	"github.com/glucolog/glucolog/internal/config"
	"github.com/glucolog/glucolog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	repo     storage.Repository
	analyzer *analysis.Analyzer

	dbPathFlag string
)

var rootCmd = &cobra.Command{
	Use:   "glucolog",
	Short: "Diabetes health metrics store and analyzer",
	Long: `Glucolog stores CGM glucose readings, sleep records, and exercise
sessions, and answers questions about them: temporal patterns, time in
range, and correlations between daily exercise, sleep, and glucose.

QUICK START:

  $ glucolog seed                         # Generate 30 days of demo data
  $ glucolog list glucose -n 10           # Most recent readings
  $ glucolog report patterns              # Hourly/weekday glucose patterns
  $ glucolog report correlations          # Exercise/sleep/glucose correlations
  $ glucolog status                       # Store counts and CGM freshness

LIVE INGESTION:

  Run 'glucolog serve' to accept Health Auto Export payloads on
  POST /health-data. Replayed exports are deduplicated.

MCP INTEGRATION:

  Run 'glucolog mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "glucolog": { "command": "glucolog", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Readings live in SQLite at ~/.local/share/glucolog/glucolog.db.
  Override with --db, GLUCOLOG_DB, or the config file at
  ~/.config/glucolog/config.json.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if dbPathFlag != "" {
			cfg.DatabasePath = dbPathFlag
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		analyzer = cfg.NewAnalyzer(repo)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "path to SQLite database (overrides config)")
}
