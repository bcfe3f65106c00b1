// ABOUTME: SleepRecord model for nightly sleep sessions.
// ABOUTME: One record per night, attributed to the calendar date of bedtime.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SleepRecord is one night of sleep with stage breakdown and efficiency.
type SleepRecord struct {
	ID              uuid.UUID `json:"id" yaml:"id"`
	Date            string    `json:"date" yaml:"date"` // calendar date of bedtime, YYYY-MM-DD
	Bedtime         time.Time `json:"bedtime" yaml:"bedtime"`
	WakeTime        time.Time `json:"wake_time" yaml:"wake_time"`
	DurationMinutes float64   `json:"duration_minutes" yaml:"duration_minutes"` // minutes asleep
	DeepMinutes     float64   `json:"deep_minutes,omitempty" yaml:"deep_minutes,omitempty"`
	CoreMinutes     float64   `json:"core_minutes,omitempty" yaml:"core_minutes,omitempty"`
	REMMinutes      float64   `json:"rem_minutes,omitempty" yaml:"rem_minutes,omitempty"`
	AwakeMinutes    float64   `json:"awake_minutes,omitempty" yaml:"awake_minutes,omitempty"`
	Efficiency      float64   `json:"efficiency" yaml:"efficiency"` // asleep / in-bed, 0..1
	AvgHeartRate    *float64  `json:"avg_heart_rate,omitempty" yaml:"avg_heart_rate,omitempty"`
	MinHeartRate    *float64  `json:"min_heart_rate,omitempty" yaml:"min_heart_rate,omitempty"`
	MaxHeartRate    *float64  `json:"max_heart_rate,omitempty" yaml:"max_heart_rate,omitempty"`
	Source          string    `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
}

// NewSleepRecord creates a record spanning bedtime to wake. Until stages are
// set, the whole in-bed span counts as sleep and efficiency is 1.
func NewSleepRecord(bedtime, wakeTime time.Time) *SleepRecord {
	return &SleepRecord{
		ID:              uuid.New(),
		Date:            bedtime.Local().Format(DateLayout),
		Bedtime:         bedtime,
		WakeTime:        wakeTime,
		DurationMinutes: wakeTime.Sub(bedtime).Minutes(),
		Efficiency:      1.0,
		CreatedAt:       time.Now(),
	}
}

// WithStages sets the stage breakdown in minutes and recomputes the asleep
// duration and efficiency against the in-bed span.
func (s *SleepRecord) WithStages(deep, core, rem, awake float64) *SleepRecord {
	s.DeepMinutes = deep
	s.CoreMinutes = core
	s.REMMinutes = rem
	s.AwakeMinutes = awake
	s.DurationMinutes = deep + core + rem

	inBed := s.WakeTime.Sub(s.Bedtime).Minutes()
	if inBed > 0 {
		s.Efficiency = s.DurationMinutes / inBed
		if s.Efficiency > 1 {
			s.Efficiency = 1
		}
	}
	return s
}

// WithHeartRate sets heart-rate stats observed during the night.
func (s *SleepRecord) WithHeartRate(avg, min, max float64) *SleepRecord {
	s.AvgHeartRate = &avg
	s.MinHeartRate = &min
	s.MaxHeartRate = &max
	return s
}

// WithSource records the originating device or app.
func (s *SleepRecord) WithSource(source string) *SleepRecord {
	s.Source = source
	return s
}
