// ABOUTME: Tests for per-domain stats.
// ABOUTME: Covers counts, timestamp spans, and unknown domains.
package storage

import (
	"testing"
	"time"

	"github.com/glucolog/glucolog/internal/models"
)

func TestStatsEmptyDomain(t *testing.T) {
	db := setupTestDB(t)

	for _, domain := range models.AllDomains {
		stats, err := db.Stats(domain)
		if err != nil {
			t.Fatalf("Stats(%s) failed: %v", domain, err)
		}
		if stats.Count != 0 {
			t.Errorf("Expected count 0 for empty %s, got %d", domain, stats.Count)
		}
		if !stats.Oldest.IsZero() || !stats.Newest.IsZero() {
			t.Errorf("Expected zero span for empty %s", domain)
		}
	}
}

func TestStatsCountsAndSpan(t *testing.T) {
	db := setupTestDB(t)

	oldest := time.Date(2025, 3, 8, 7, 0, 0, 0, time.Local)
	newest := time.Date(2025, 3, 12, 19, 0, 0, 0, time.Local)
	mustCreateGlucose(t, db, oldest, 100)
	mustCreateGlucose(t, db, time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local), 120)
	mustCreateGlucose(t, db, newest, 140)

	stats, err := db.Stats(models.DomainGlucose)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Count != 3 {
		t.Errorf("Expected count 3, got %d", stats.Count)
	}
	if !stats.Oldest.Equal(oldest) {
		t.Errorf("Oldest mismatch: got %v, want %v", stats.Oldest, oldest)
	}
	if !stats.Newest.Equal(newest) {
		t.Errorf("Newest mismatch: got %v, want %v", stats.Newest, newest)
	}
}

func TestStatsUnknownDomain(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.Stats(models.Domain("bogus")); err == nil {
		t.Error("Expected error for unknown domain")
	}
}
