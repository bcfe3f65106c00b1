// ABOUTME: Health Auto Export payload parsing and domain routing.
// ABOUTME: Items route to glucose, sleep, or exercise by metric name and shape.
package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/glucolog/glucolog/internal/models"
	"github.com/glucolog/glucolog/internal/storage"
)

// Item is one metric entry from a Health Auto Export payload. Exports vary
// between app versions, so most fields are optional.
type Item struct {
	Name       string   `json:"name,omitempty"`
	Type       string   `json:"type,omitempty"`
	Qty        *float64 `json:"qty,omitempty"`
	Units      string   `json:"units,omitempty"`
	Date       string   `json:"date,omitempty"`
	Source     string   `json:"source,omitempty"`
	SourceName string   `json:"sourceName,omitempty"`

	// Sleep sessions
	SleepStart string   `json:"sleepStart,omitempty"`
	SleepEnd   string   `json:"sleepEnd,omitempty"`
	Deep       *float64 `json:"deep,omitempty"`  // hours
	Core       *float64 `json:"core,omitempty"`  // hours
	REM        *float64 `json:"rem,omitempty"`   // hours
	Awake      *float64 `json:"awake,omitempty"` // hours

	// Workouts
	WorkoutActivityType string   `json:"workoutActivityType,omitempty"`
	Start               string   `json:"start,omitempty"`
	End                 string   `json:"end,omitempty"`
	Duration            *float64 `json:"duration,omitempty"` // minutes
	TotalDistance       *float64 `json:"totalDistance,omitempty"`
	TotalEnergyBurned   *float64 `json:"totalEnergyBurned,omitempty"`
}

// payloadEnvelope covers the envelope shapes the exporter emits:
// {"data": {"metrics": [...], "workouts": [...]}} and flat {"metrics": [...]}.
type payloadEnvelope struct {
	Data *struct {
		Metrics  []Item `json:"metrics"`
		Workouts []Item `json:"workouts"`
	} `json:"data"`
	Metrics  []Item `json:"metrics"`
	Workouts []Item `json:"workouts"`
}

// ParsePayload extracts metric items from a Health Auto Export JSON body.
func ParsePayload(body []byte) ([]Item, error) {
	var envelope payloadEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}

	var items []Item
	if envelope.Data != nil {
		items = append(items, envelope.Data.Metrics...)
		items = append(items, envelope.Data.Workouts...)
	}
	items = append(items, envelope.Metrics...)
	items = append(items, envelope.Workouts...)

	if len(items) == 0 {
		return nil, fmt.Errorf("parse payload: no metric items found")
	}
	return items, nil
}

// DomainResult counts inserted and duplicate-skipped rows for one domain.
type DomainResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Result is the per-domain outcome of processing one payload.
type Result struct {
	Glucose  DomainResult `json:"glucose"`
	Sleep    DomainResult `json:"sleep"`
	Exercise DomainResult `json:"exercise"`
	Ignored  int          `json:"ignored"`
}

// Processor routes parsed items into the metric store.
type Processor struct {
	repo storage.Repository
}

// NewProcessor creates a Processor writing to the given repository.
func NewProcessor(repo storage.Repository) *Processor {
	return &Processor{repo: repo}
}

// Process inserts every routable item, skipping duplicates. Items that match
// no domain are counted as ignored, not failed: exports mix in metrics this
// system does not track.
func (p *Processor) Process(items []Item) (*Result, error) {
	result := &Result{}

	for _, item := range items {
		switch {
		case item.isSleep():
			if err := p.processSleep(item, result); err != nil {
				return result, err
			}
		case item.isExercise():
			if err := p.processExercise(item, result); err != nil {
				return result, err
			}
		case item.isGlucose():
			if err := p.processGlucose(item, result); err != nil {
				return result, err
			}
		default:
			result.Ignored++
		}
	}

	return result, nil
}

func (i Item) metricName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Type
}

func (i Item) sourceName() string {
	if i.Source != "" {
		return i.Source
	}
	if i.SourceName != "" {
		return i.SourceName
	}
	return "Health Auto Export"
}

func (i Item) isGlucose() bool {
	name := strings.ToLower(i.metricName())
	for _, term := range []string{"glucose", "blood", "bg"} {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

func (i Item) isSleep() bool {
	if i.SleepStart != "" && i.SleepEnd != "" {
		return true
	}
	name := strings.ToLower(i.metricName())
	return strings.Contains(name, "sleep")
}

func (i Item) isExercise() bool {
	if i.WorkoutActivityType != "" {
		return true
	}
	name := strings.ToLower(i.metricName())
	for _, term := range []string{"workout", "exercise", "activity", "fitness"} {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

func (p *Processor) processGlucose(item Item, result *Result) error {
	if item.Qty == nil {
		return fmt.Errorf("glucose item %q: missing qty", item.metricName())
	}
	if *item.Qty < 0 {
		return fmt.Errorf("glucose item %q: negative value %.2f", item.metricName(), *item.Qty)
	}

	timestamp, err := parseTimestamp(item.Date)
	if err != nil {
		return fmt.Errorf("glucose item %q: %w", item.metricName(), err)
	}

	g := models.NewGlucoseReading(timestamp, models.MgdlFromUnit(*item.Qty, item.Units)).
		WithUnit(item.Units).
		WithSource(item.sourceName())

	inserted, err := p.repo.CreateGlucoseReading(g)
	if err != nil {
		return err
	}
	countInsert(&result.Glucose, inserted)
	return nil
}

func (p *Processor) processSleep(item Item, result *Result) error {
	startStr, endStr := item.SleepStart, item.SleepEnd
	if startStr == "" {
		startStr = item.Date
	}
	if startStr == "" || endStr == "" {
		return fmt.Errorf("sleep item %q: missing sleepStart/sleepEnd", item.metricName())
	}

	start, err := parseTimestamp(startStr)
	if err != nil {
		return fmt.Errorf("sleep item %q: %w", item.metricName(), err)
	}
	end, err := parseTimestamp(endStr)
	if err != nil {
		return fmt.Errorf("sleep item %q: %w", item.metricName(), err)
	}
	if end.Before(start) {
		return fmt.Errorf("sleep item %q: sleepEnd before sleepStart", item.metricName())
	}

	s := models.NewSleepRecord(start, end).WithSource(item.sourceName())
	if item.Deep != nil || item.Core != nil || item.REM != nil || item.Awake != nil {
		// Stage fields arrive in hours.
		s.WithStages(
			hoursToMinutes(item.Deep),
			hoursToMinutes(item.Core),
			hoursToMinutes(item.REM),
			hoursToMinutes(item.Awake),
		)
	}

	inserted, err := p.repo.CreateSleepRecord(s)
	if err != nil {
		return err
	}
	countInsert(&result.Sleep, inserted)
	return nil
}

func (p *Processor) processExercise(item Item, result *Result) error {
	startStr := item.Start
	if startStr == "" {
		startStr = item.Date
	}
	if startStr == "" {
		return fmt.Errorf("workout item %q: missing start time", item.metricName())
	}

	start, err := parseTimestamp(startStr)
	if err != nil {
		return fmt.Errorf("workout item %q: %w", item.metricName(), err)
	}

	duration := 0.0
	switch {
	case item.Duration != nil:
		duration = *item.Duration
	case item.End != "":
		end, err := parseTimestamp(item.End)
		if err != nil {
			return fmt.Errorf("workout item %q: %w", item.metricName(), err)
		}
		duration = end.Sub(start).Minutes()
	}
	if duration < 0 {
		return fmt.Errorf("workout item %q: negative duration %.2f", item.metricName(), duration)
	}

	workoutType := item.WorkoutActivityType
	if workoutType == "" {
		workoutType = item.metricName()
	}

	e := models.NewExerciseRecord(start, duration).
		WithWorkoutType(workoutType).
		WithSource(item.sourceName())
	if item.TotalDistance != nil {
		e.WithDistance(*item.TotalDistance)
	}
	if item.TotalEnergyBurned != nil {
		e.WithEnergy(*item.TotalEnergyBurned)
	}

	inserted, err := p.repo.CreateExerciseRecord(e)
	if err != nil {
		return err
	}
	countInsert(&result.Exercise, inserted)
	return nil
}

func countInsert(dr *DomainResult, inserted bool) {
	if inserted {
		dr.Inserted++
	} else {
		dr.Skipped++
	}
}

func hoursToMinutes(hours *float64) float64 {
	if hours == nil {
		return 0
	}
	return *hours * 60
}

// timestampLayouts are the formats the exporter emits, most common first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
