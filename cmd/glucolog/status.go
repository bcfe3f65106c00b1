// ABOUTME: CLI command showing store counts and CGM freshness.
// ABOUTME: Summarizes each domain's rows, span, and the monitoring window.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/glucolog/glucolog/internal/models"
	"github.com/spf13/cobra"
)

var statusHours int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store counts and CGM freshness",
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)

		for _, domain := range models.AllDomains {
			stats, err := repo.Stats(domain)
			if err != nil {
				return fmt.Errorf("stats for %s: %w", domain, err)
			}

			if stats.Count == 0 {
				fmt.Printf("%s: no records\n", padRight(string(domain), 9))
				continue
			}
			fmt.Printf("%s %6d records  %s\n",
				padRight(string(domain), 9),
				stats.Count,
				faint.Sprintf("%s to %s",
					stats.Oldest.Format("2006-01-02"),
					stats.Newest.Format("2006-01-02")))
		}

		monitoring, err := analyzer.MonitoringStatus(statusHours)
		if err != nil {
			return fmt.Errorf("monitoring status: %w", err)
		}

		fmt.Println()
		if monitoring.LatestReading == nil {
			fmt.Println("CGM: no readings stored")
			return nil
		}
		fmt.Printf("CGM: last reading %.0f min ago (%.0f mg/dL)\n",
			*monitoring.MinutesSinceLatest, monitoring.LatestReading.Value)
		fmt.Printf("     %d/%d readings in last %dh (%.0f%% complete)\n",
			monitoring.ReadingsInWindow, monitoring.ExpectedReadings,
			monitoring.WindowHours, monitoring.CompletenessPct)

		return nil
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusHours, "hours", 0, "monitoring lookback window in hours (default 24)")
	rootCmd.AddCommand(statusCmd)
}
