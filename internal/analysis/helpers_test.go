// ABOUTME: Shared test helpers for analysis tests.
// ABOUTME: Provides an analyzer backed by a temp-dir SQLite store.
package analysis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glucolog/glucolog/internal/models"
	"github.com/glucolog/glucolog/internal/storage"
)

func setupTestAnalyzer(t *testing.T) (*Analyzer, *storage.DB) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "glucolog-analysis-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.Open(filepath.Join(tmpDir, "glucolog.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return New(db), db
}

func addGlucose(t *testing.T, db *storage.DB, ts time.Time, value float64) {
	t.Helper()
	g := models.NewGlucoseReading(ts, value).WithSource("test")
	if _, err := db.CreateGlucoseReading(g); err != nil {
		t.Fatalf("CreateGlucoseReading failed: %v", err)
	}
}

func addSleep(t *testing.T, db *storage.DB, bedtime, wake time.Time) {
	t.Helper()
	s := models.NewSleepRecord(bedtime, wake).WithSource("test")
	if _, err := db.CreateSleepRecord(s); err != nil {
		t.Fatalf("CreateSleepRecord failed: %v", err)
	}
}

// addSleepForDay writes a night attributed to the given date with the given
// asleep minutes, using stages so efficiency is below 1.
func addSleepForDay(t *testing.T, db *storage.DB, date time.Time, asleepMinutes float64) {
	t.Helper()
	wake := date.Add(7 * time.Hour)
	bedtime := wake.Add(-time.Duration(asleepMinutes+30) * time.Minute)
	s := models.NewSleepRecord(bedtime, wake).WithSource("test")
	s.WithStages(asleepMinutes*0.2, asleepMinutes*0.6, asleepMinutes*0.2, 30)
	s.Date = date.Format(models.DateLayout)
	if _, err := db.CreateSleepRecord(s); err != nil {
		t.Fatalf("CreateSleepRecord failed: %v", err)
	}
}

func addExercise(t *testing.T, db *storage.DB, start time.Time, minutes float64, workoutType string) {
	t.Helper()
	e := models.NewExerciseRecord(start, minutes).WithWorkoutType(workoutType).WithSource("test")
	if _, err := db.CreateExerciseRecord(e); err != nil {
		t.Fatalf("CreateExerciseRecord failed: %v", err)
	}
}

func day(dayOfMonth int) time.Time {
	return time.Date(2025, 3, dayOfMonth, 0, 0, 0, 0, time.Local)
}
