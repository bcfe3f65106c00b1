// ABOUTME: ExerciseRecord model for workout sessions.
// ABOUTME: Distance and energy are optional; duration is the analytic contract.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseRecord is a single workout session.
type ExerciseRecord struct {
	ID              uuid.UUID `json:"id" yaml:"id"`
	StartedAt       time.Time `json:"started_at" yaml:"started_at"`
	WorkoutType     string    `json:"workout_type" yaml:"workout_type"`
	DurationMinutes float64   `json:"duration_minutes" yaml:"duration_minutes"`
	DistanceKm      *float64  `json:"distance_km,omitempty" yaml:"distance_km,omitempty"`
	EnergyKcal      *float64  `json:"energy_kcal,omitempty" yaml:"energy_kcal,omitempty"`
	Source          string    `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
}

// NewExerciseRecord creates a session with a generated UUID.
func NewExerciseRecord(startedAt time.Time, durationMinutes float64) *ExerciseRecord {
	return &ExerciseRecord{
		ID:              uuid.New(),
		StartedAt:       startedAt,
		WorkoutType:     "workout",
		DurationMinutes: durationMinutes,
		CreatedAt:       time.Now(),
	}
}

// WithWorkoutType sets the activity type (run, walk, cycle, ...).
func (e *ExerciseRecord) WithWorkoutType(workoutType string) *ExerciseRecord {
	if workoutType != "" {
		e.WorkoutType = workoutType
	}
	return e
}

// WithDistance sets the distance covered in kilometers.
func (e *ExerciseRecord) WithDistance(km float64) *ExerciseRecord {
	e.DistanceKm = &km
	return e
}

// WithEnergy sets the active energy burned in kilocalories.
func (e *ExerciseRecord) WithEnergy(kcal float64) *ExerciseRecord {
	e.EnergyKcal = &kcal
	return e
}

// WithSource records the originating device or app.
func (e *ExerciseRecord) WithSource(source string) *ExerciseRecord {
	e.Source = source
	return e
}
