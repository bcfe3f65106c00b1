// ABOUTME: CLI command importing a Health Auto Export JSON file.
// ABOUTME: Shares the ingest endpoint's parser, so duplicates are skipped.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/glucolog/glucolog/internal/ingest"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a Health Auto Export JSON file",
	Args:  cobra.ExactArgs(1),
	Long: `Import readings from a Health Auto Export JSON file.

The file goes through the same parser as the POST /health-data endpoint,
so importing a file that was already ingested only skips duplicates.

EXAMPLE:

  glucolog import HealthAutoExport-2025-03.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		items, err := ingest.ParsePayload(body)
		if err != nil {
			return err
		}

		result, err := ingest.NewProcessor(repo).Process(items)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d glucose, %d sleep, %d exercise (skipped %d duplicates, ignored %d items)",
			result.Glucose.Inserted, result.Sleep.Inserted, result.Exercise.Inserted,
			result.Glucose.Skipped+result.Sleep.Skipped+result.Exercise.Skipped,
			result.Ignored)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
