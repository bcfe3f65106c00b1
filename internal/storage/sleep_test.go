// ABOUTME: Tests for sleep record storage.
// ABOUTME: Covers date filtering, stage roundtrip, and bedtime dedupe.
package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/glucolog/glucolog/internal/models"
)

func mustCreateSleep(t *testing.T, db *DB, bedtime, wake time.Time) *models.SleepRecord {
	t.Helper()
	s := models.NewSleepRecord(bedtime, wake).WithSource("test")
	inserted, err := db.CreateSleepRecord(s)
	if err != nil {
		t.Fatalf("CreateSleepRecord failed: %v", err)
	}
	if !inserted {
		t.Fatalf("CreateSleepRecord skipped unexpected duplicate at %v", bedtime)
	}
	return s
}

func TestCreateAndFetchSleepRecord(t *testing.T) {
	db := setupTestDB(t)

	bedtime := time.Date(2025, 3, 9, 23, 15, 0, 0, time.Local)
	wake := time.Date(2025, 3, 10, 6, 45, 0, 0, time.Local)
	s := models.NewSleepRecord(bedtime, wake).
		WithStages(80, 240, 90, 20).
		WithHeartRate(58, 51, 88).
		WithSource("test")

	inserted, err := db.CreateSleepRecord(s)
	if err != nil {
		t.Fatalf("CreateSleepRecord failed: %v", err)
	}
	if !inserted {
		t.Fatal("Expected insert")
	}

	records, err := db.SleepRecords(Query{})
	if err != nil {
		t.Fatalf("SleepRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.Date != "2025-03-09" {
		t.Errorf("Date mismatch: got %q, want 2025-03-09", got.Date)
	}
	if got.DurationMinutes != 410 {
		t.Errorf("DurationMinutes mismatch: got %v, want 410", got.DurationMinutes)
	}
	if got.DeepMinutes != 80 || got.CoreMinutes != 240 || got.REMMinutes != 90 || got.AwakeMinutes != 20 {
		t.Errorf("Stage breakdown mismatch: got %v/%v/%v/%v",
			got.DeepMinutes, got.CoreMinutes, got.REMMinutes, got.AwakeMinutes)
	}
	if got.AvgHeartRate == nil || *got.AvgHeartRate != 58 {
		t.Errorf("AvgHeartRate mismatch: got %v, want 58", got.AvgHeartRate)
	}
	if got.Efficiency <= 0 || got.Efficiency > 1 {
		t.Errorf("Efficiency out of bounds: %v", got.Efficiency)
	}
}

func TestSleepRecordsDateFilterAndOrder(t *testing.T) {
	db := setupTestDB(t)

	for day := 8; day <= 12; day++ {
		bedtime := time.Date(2025, 3, day, 23, 0, 0, 0, time.Local)
		mustCreateSleep(t, db, bedtime, bedtime.Add(7*time.Hour))
	}

	r, err := models.ParseDateRange("2025-03-09", "2025-03-11")
	if err != nil {
		t.Fatalf("ParseDateRange failed: %v", err)
	}

	records, err := db.SleepRecords(Query{Range: r})
	if err != nil {
		t.Fatalf("SleepRecords failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records in range, got %d", len(records))
	}
	if records[0].Date != "2025-03-11" || records[2].Date != "2025-03-09" {
		t.Errorf("Expected descending order 03-11..03-09, got %s..%s",
			records[0].Date, records[2].Date)
	}

	limited, err := db.SleepRecords(Query{Limit: 2})
	if err != nil {
		t.Fatalf("SleepRecords failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 records with limit, got %d", len(limited))
	}
}

func TestCreateSleepRecordDuplicateBedtimeSkipped(t *testing.T) {
	db := setupTestDB(t)

	bedtime := time.Date(2025, 3, 9, 23, 0, 0, 0, time.Local)
	mustCreateSleep(t, db, bedtime, bedtime.Add(7*time.Hour))

	dup := models.NewSleepRecord(bedtime, bedtime.Add(8*time.Hour))
	inserted, err := db.CreateSleepRecord(dup)
	if err != nil {
		t.Fatalf("CreateSleepRecord failed: %v", err)
	}
	if inserted {
		t.Error("Expected duplicate bedtime to be skipped")
	}
}

func TestLatestSleepRecord(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.LatestSleepRecord(); !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData on empty table, got %v", err)
	}

	first := time.Date(2025, 3, 8, 23, 0, 0, 0, time.Local)
	second := time.Date(2025, 3, 9, 23, 30, 0, 0, time.Local)
	mustCreateSleep(t, db, first, first.Add(7*time.Hour))
	mustCreateSleep(t, db, second, second.Add(7*time.Hour))

	latest, err := db.LatestSleepRecord()
	if err != nil {
		t.Fatalf("LatestSleepRecord failed: %v", err)
	}
	if !latest.Bedtime.Equal(second) {
		t.Errorf("Expected latest bedtime %v, got %v", second, latest.Bedtime)
	}
}
