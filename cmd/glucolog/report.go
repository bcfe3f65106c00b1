// ABOUTME: CLI commands running the pattern and correlation analyzers.
// ABOUTME: Same options as the MCP tools; reports print as indented JSON.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/glucolog/glucolog/internal/analysis"
	"github.com/glucolog/glucolog/internal/models"
	"github.com/spf13/cobra"
)

var (
	reportStart string
	reportEnd   string
	reportType  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run descriptive analytics from the terminal",
	Long: `Run the pattern or correlation analyzers and print the report as JSON.

EXAMPLES:

  glucolog report patterns                          # All pattern sections
  glucolog report patterns --type glucose           # Glucose only
  glucolog report patterns --type temporal          # Time-bucketed views
  glucolog report correlations                      # All pairings
  glucolog report correlations --type sleep_glucose
  glucolog report patterns --start 2025-03-01 --end 2025-03-31`,
}

var reportPatternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Detect temporal patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := models.ParseDateRange(reportStart, reportEnd)
		if err != nil {
			return err
		}
		patternType, err := analysis.ParsePatternType(reportType)
		if err != nil {
			return err
		}

		report, err := analyzer.DetectPatterns(r, patternType)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var reportCorrelationsCmd = &cobra.Command{
	Use:   "correlations",
	Short: "Compute Pearson correlations",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := models.ParseDateRange(reportStart, reportEnd)
		if err != nil {
			return err
		}
		corrType, err := analysis.ParseCorrelationType(reportType)
		if err != nil {
			return err
		}

		report, err := analyzer.FindCorrelations(r, corrType)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportStart, "start", "", "range start (YYYY-MM-DD)")
	reportCmd.PersistentFlags().StringVar(&reportEnd, "end", "", "range end (YYYY-MM-DD), inclusive")
	reportCmd.PersistentFlags().StringVarP(&reportType, "type", "t", "", "report type filter (default all)")
	reportCmd.AddCommand(reportPatternsCmd)
	reportCmd.AddCommand(reportCorrelationsCmd)
	rootCmd.AddCommand(reportCmd)
}
