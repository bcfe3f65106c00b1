// ABOUTME: Repository interface for diabetes metric storage.
// ABOUTME: Read side serves the analyzers and tools; write side serves ingestion.
package storage

import (
	"errors"
	"time"

	"github.com/glucolog/glucolog/internal/models"
)

// ErrNoData is returned by latest-record lookups on an empty table.
var ErrNoData = errors.New("no data")

// Query bounds a fetch. A nil Range means all rows; Limit <= 0 means no cap.
// Results are always ordered most-recent-first by the domain's primary timestamp.
type Query struct {
	Range *models.DateRange
	Limit int
}

// DomainStats summarizes one record family for status reporting.
type DomainStats struct {
	Count  int       `json:"count"`
	Oldest time.Time `json:"oldest,omitempty"`
	Newest time.Time `json:"newest,omitempty"`
}

// Repository defines the storage interface for diabetes metrics.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Fetch operations, descending by primary timestamp
	GlucoseReadings(q Query) ([]*models.GlucoseReading, error)
	SleepRecords(q Query) ([]*models.SleepRecord, error)
	ExerciseRecords(q Query) ([]*models.ExerciseRecord, error)

	// Latest-record lookups (ErrNoData when empty)
	LatestGlucoseReading() (*models.GlucoseReading, error)
	LatestSleepRecord() (*models.SleepRecord, error)
	LatestExerciseRecord() (*models.ExerciseRecord, error)

	// Status queries
	Stats(domain models.Domain) (*DomainStats, error)
	GlucoseCountSince(since time.Time) (int, error)

	// Ingestion path. The boolean reports whether a row was inserted;
	// false means an identical record already existed and was skipped.
	CreateGlucoseReading(g *models.GlucoseReading) (bool, error)
	CreateSleepRecord(s *models.SleepRecord) (bool, error)
	CreateExerciseRecord(e *models.ExerciseRecord) (bool, error)

	// Export
	GetAllData() (*ExportData, error)

	// Lifecycle
	Ping() error
	Close() error
}
