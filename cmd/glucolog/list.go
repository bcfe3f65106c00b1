// ABOUTME: CLI command for listing stored records by domain.
// ABOUTME: Supports date-range filtering and result limits.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/glucolog/glucolog/internal/models"
	"github.com/glucolog/glucolog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	listStart string
	listEnd   string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:       "list <domain>",
	Aliases:   []string{"ls", "l"},
	Short:     "List stored records",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"glucose", "sleep", "exercise"},
	Long: `List stored records for one domain, most recent first.

DOMAINS:

  glucose    Timestamped CGM/meter readings in mg/dL
  sleep      Nightly sleep records with efficiency
  exercise   Workout sessions with duration

FILTERING:

  --start and --end (YYYY-MM-DD) bound the range; both or neither.
  -n caps the number of rows.

EXAMPLES:

  glucolog list glucose -n 20
  glucolog list sleep --start 2025-03-01 --end 2025-03-31
  glucolog list exercise`,
	RunE: func(cmd *cobra.Command, args []string) error {
		domain := args[0]
		if !models.IsValidDomain(domain) {
			return fmt.Errorf("unknown domain: %s (use glucose, sleep, or exercise)", domain)
		}

		r, err := models.ParseDateRange(listStart, listEnd)
		if err != nil {
			return err
		}
		q := storage.Query{Range: r, Limit: listLimit}

		switch models.Domain(domain) {
		case models.DomainGlucose:
			return listGlucose(q)
		case models.DomainSleep:
			return listSleep(q)
		case models.DomainExercise:
			return listExercise(q)
		}
		return nil
	},
}

func listGlucose(q storage.Query) error {
	readings, err := repo.GlucoseReadings(q)
	if err != nil {
		return fmt.Errorf("list glucose: %w", err)
	}
	if len(readings) == 0 {
		fmt.Println("No glucose readings found.")
		return nil
	}

	faint := color.New(color.Faint)
	for _, g := range readings {
		fmt.Printf("%s %s %6.0f mg/dL %s\n",
			faint.Sprint(g.ID.String()[:8]),
			faint.Sprint(g.Timestamp.Format("2006-01-02 15:04")),
			g.Value,
			faint.Sprint(g.Source))
	}
	return nil
}

func listSleep(q storage.Query) error {
	records, err := repo.SleepRecords(q)
	if err != nil {
		return fmt.Errorf("list sleep: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No sleep records found.")
		return nil
	}

	faint := color.New(color.Faint)
	for _, s := range records {
		fmt.Printf("%s %s  %s → %s  %5.1fh asleep  eff %.0f%%\n",
			faint.Sprint(s.ID.String()[:8]),
			s.Date,
			s.Bedtime.Format("15:04"),
			s.WakeTime.Format("15:04"),
			s.DurationMinutes/60,
			s.Efficiency*100)
	}
	return nil
}

func listExercise(q storage.Query) error {
	records, err := repo.ExerciseRecords(q)
	if err != nil {
		return fmt.Errorf("list exercise: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No exercise records found.")
		return nil
	}

	faint := color.New(color.Faint)
	for _, e := range records {
		extras := ""
		if e.DistanceKm != nil {
			extras += fmt.Sprintf("  %.1f km", *e.DistanceKm)
		}
		if e.EnergyKcal != nil {
			extras += fmt.Sprintf("  %.0f kcal", *e.EnergyKcal)
		}
		fmt.Printf("%s %s %s %4.0f min%s\n",
			faint.Sprint(e.ID.String()[:8]),
			faint.Sprint(e.StartedAt.Format("2006-01-02 15:04")),
			padRight(e.WorkoutType, 12),
			e.DurationMinutes,
			extras)
	}
	return nil
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringVar(&listStart, "start", "", "range start (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listEnd, "end", "", "range end (YYYY-MM-DD), inclusive")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "max number of results (0 = all)")
	rootCmd.AddCommand(listCmd)
}
