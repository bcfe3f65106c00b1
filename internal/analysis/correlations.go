// ABOUTME: Pairwise Pearson correlations between daily-aggregated metrics.
// ABOUTME: Fewer than the minimum overlapping days reports insufficient data.
package analysis

import (
	"fmt"

	"github.com/glucolog/glucolog/internal/models"
	"github.com/glucolog/glucolog/internal/storage"
)

// CorrelationType selects which metric pairings to compute.
type CorrelationType string

const (
	CorrelationAll             CorrelationType = "all"
	CorrelationExerciseGlucose CorrelationType = "exercise_glucose"
	CorrelationSleepGlucose    CorrelationType = "sleep_glucose"
	CorrelationSleepExercise   CorrelationType = "sleep_exercise"
)

// ParseCorrelationType validates a correlation_type argument. Empty means all.
func ParseCorrelationType(s string) (CorrelationType, error) {
	switch CorrelationType(s) {
	case "", CorrelationAll:
		return CorrelationAll, nil
	case CorrelationExerciseGlucose, CorrelationSleepGlucose, CorrelationSleepExercise:
		return CorrelationType(s), nil
	}
	return "", fmt.Errorf("unknown correlation_type %q: expected all, exercise_glucose, sleep_glucose, or sleep_exercise", s)
}

// CorrelationResult is one metric pairing's outcome. Coefficient is nil when
// the overlap is below the minimum day floor.
type CorrelationResult struct {
	Pair         string   `json:"pair"`
	MetricX      string   `json:"metric_x"`
	MetricY      string   `json:"metric_y"`
	SampleDays   int      `json:"sample_days"`
	Coefficient  *float64 `json:"coefficient,omitempty"`
	Strength     string   `json:"strength,omitempty"`
	Direction    string   `json:"direction,omitempty"`
	Insufficient bool     `json:"insufficient_data,omitempty"`
	Note         string   `json:"note,omitempty"`
}

// CorrelationReport is the full output of FindCorrelations.
type CorrelationReport struct {
	CorrelationType CorrelationType     `json:"correlation_type"`
	DateRange       string              `json:"date_range"`
	MinOverlapDays  int                 `json:"min_overlap_days"`
	Results         []CorrelationResult `json:"results"`
}

// Label maps a coefficient to its qualitative strength by magnitude.
func (c StrengthCutoffs) Label(r float64) string {
	abs := r
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < c.Negligible:
		return "negligible"
	case abs < c.Weak:
		return "weak"
	case abs < c.Moderate:
		return "moderate"
	case abs < c.Strong:
		return "strong"
	default:
		return "very strong"
	}
}

func direction(r float64) string {
	switch {
	case r > 0:
		return "positive"
	case r < 0:
		return "negative"
	default:
		return "none"
	}
}

// FindCorrelations computes the requested pairings over the optional date
// range. A nil range correlates the full history.
func (a *Analyzer) FindCorrelations(r *models.DateRange, corrType CorrelationType) (*CorrelationReport, error) {
	report := &CorrelationReport{
		CorrelationType: corrType,
		DateRange:       rangeLabel(r),
		MinOverlapDays:  a.MinOverlapDays,
	}

	q := storage.Query{Range: r}

	needGlucose := corrType == CorrelationAll || corrType == CorrelationExerciseGlucose || corrType == CorrelationSleepGlucose
	needSleep := corrType == CorrelationAll || corrType == CorrelationSleepGlucose || corrType == CorrelationSleepExercise
	needExercise := corrType == CorrelationAll || corrType == CorrelationExerciseGlucose || corrType == CorrelationSleepExercise

	var glucoseMean, glucoseMax, glucoseMin dailySeries
	if needGlucose {
		readings, err := a.repo.GlucoseReadings(q)
		if err != nil {
			return nil, fmt.Errorf("find correlations: %w", err)
		}
		glucoseMean, glucoseMax, glucoseMin = glucoseDaily(readings)
	}

	var sleepMinutes, sleepEfficiency dailySeries
	if needSleep {
		records, err := a.repo.SleepRecords(q)
		if err != nil {
			return nil, fmt.Errorf("find correlations: %w", err)
		}
		sleepMinutes, sleepEfficiency = sleepDaily(records)
	}

	var exerciseMinutes dailySeries
	if needExercise {
		records, err := a.repo.ExerciseRecords(q)
		if err != nil {
			return nil, fmt.Errorf("find correlations: %w", err)
		}
		exerciseMinutes = exerciseDaily(records)
	}

	if corrType == CorrelationAll || corrType == CorrelationExerciseGlucose {
		report.Results = append(report.Results,
			a.correlate("exercise_glucose", "exercise_total_minutes", "glucose_mean_mgdl", exerciseMinutes, glucoseMean),
			a.correlate("exercise_glucose", "exercise_total_minutes", "glucose_max_mgdl", exerciseMinutes, glucoseMax),
			a.correlate("exercise_glucose", "exercise_total_minutes", "glucose_min_mgdl", exerciseMinutes, glucoseMin),
		)
	}
	if corrType == CorrelationAll || corrType == CorrelationSleepGlucose {
		report.Results = append(report.Results,
			a.correlate("sleep_glucose", "sleep_total_minutes", "glucose_mean_mgdl", sleepMinutes, glucoseMean),
			a.correlate("sleep_glucose", "sleep_efficiency", "glucose_mean_mgdl", sleepEfficiency, glucoseMean),
		)
	}
	if corrType == CorrelationAll || corrType == CorrelationSleepExercise {
		report.Results = append(report.Results,
			a.correlate("sleep_exercise", "sleep_total_minutes", "exercise_total_minutes", sleepMinutes, exerciseMinutes),
		)
	}

	return report, nil
}

func (a *Analyzer) correlate(pair, metricX, metricY string, x, y dailySeries) CorrelationResult {
	xs, ys := alignDays(x, y)

	result := CorrelationResult{
		Pair:       pair,
		MetricX:    metricX,
		MetricY:    metricY,
		SampleDays: len(xs),
	}

	if len(xs) < a.MinOverlapDays {
		result.Insufficient = true
		result.Note = fmt.Sprintf("insufficient data: %d overlapping days, need at least %d", len(xs), a.MinOverlapDays)
		return result
	}

	r, ok := pearson(xs, ys)
	if !ok {
		zero := 0.0
		result.Coefficient = &zero
		result.Strength = "negligible"
		result.Direction = "none"
		result.Note = "one series has no day-to-day variance; no linear signal"
		return result
	}

	result.Coefficient = &r
	result.Strength = a.Cutoffs.Label(r)
	result.Direction = direction(r)
	return result
}
