// ABOUTME: Glucose reading queries and inserts for SQLite storage.
// ABOUTME: Fetches are ordered most-recent-first; inserts dedupe on (timestamp, source).
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glucolog/glucolog/internal/models"
	"github.com/google/uuid"
)

// GlucoseReadings retrieves readings matching the query, most recent first.
func (d *DB) GlucoseReadings(q Query) ([]*models.GlucoseReading, error) {
	query := `
		SELECT id, timestamp, value_mgdl, unit, source, created_at
		FROM glucose_readings
	`
	var args []interface{}

	if q.Range != nil {
		query += " WHERE timestamp >= ? AND timestamp < ?"
		args = append(args,
			q.Range.Start.Format(time.RFC3339),
			q.Range.CutoffEnd().Format(time.RFC3339),
		)
	}

	query += " ORDER BY timestamp DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query glucose readings: %w", err)
	}
	defer rows.Close()

	var readings []*models.GlucoseReading
	for rows.Next() {
		g, err := scanGlucoseReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, g)
	}
	return readings, rows.Err()
}

// LatestGlucoseReading returns the most recent reading, or ErrNoData.
func (d *DB) LatestGlucoseReading() (*models.GlucoseReading, error) {
	query := `
		SELECT id, timestamp, value_mgdl, unit, source, created_at
		FROM glucose_readings
		ORDER BY timestamp DESC
		LIMIT 1
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query latest glucose reading: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoData
	}
	return scanGlucoseReading(rows)
}

// CreateGlucoseReading stores a reading. Returns false when an identical
// (timestamp, source) row already exists and the insert was skipped.
func (d *DB) CreateGlucoseReading(g *models.GlucoseReading) (bool, error) {
	if g.Value < 0 {
		return false, fmt.Errorf("create glucose reading: negative value %.2f", g.Value)
	}

	query := `
		INSERT OR IGNORE INTO glucose_readings (id, timestamp, value_mgdl, unit, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := d.db.Exec(query,
		g.ID.String(),
		g.Timestamp.Format(time.RFC3339),
		g.Value,
		g.Unit,
		g.Source,
		g.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("create glucose reading: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create glucose reading: %w", err)
	}
	return affected > 0, nil
}

// GlucoseCountSince counts readings with a timestamp at or after the cutoff.
func (d *DB) GlucoseCountSince(since time.Time) (int, error) {
	var count int
	err := d.db.QueryRow(
		"SELECT COUNT(*) FROM glucose_readings WHERE timestamp >= ?",
		since.Format(time.RFC3339),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count glucose readings: %w", err)
	}
	return count, nil
}

func scanGlucoseReading(rows *sql.Rows) (*models.GlucoseReading, error) {
	var g models.GlucoseReading
	var idStr, timestamp, createdAt string
	var source sql.NullString

	err := rows.Scan(&idStr, &timestamp, &g.Value, &g.Unit, &source, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("scan glucose reading: %w", err)
	}

	g.ID, _ = uuid.Parse(idStr)
	g.Timestamp, _ = time.Parse(time.RFC3339, timestamp)
	g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if source.Valid {
		g.Source = source.String
	}

	return &g, nil
}
