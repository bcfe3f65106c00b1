// ABOUTME: Sleep record queries and inserts for SQLite storage.
// ABOUTME: Range filters apply to the record's calendar date; ordering is by bedtime.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glucolog/glucolog/internal/models"
	"github.com/google/uuid"
)

const sleepColumns = `
	id, date, bedtime, wake_time, duration_minutes,
	deep_minutes, core_minutes, rem_minutes, awake_minutes,
	efficiency, avg_heart_rate, min_heart_rate, max_heart_rate,
	source, created_at
`

// SleepRecords retrieves records matching the query, most recent first.
func (d *DB) SleepRecords(q Query) ([]*models.SleepRecord, error) {
	query := "SELECT " + sleepColumns + " FROM sleep_records"
	var args []interface{}

	if q.Range != nil {
		query += " WHERE date >= ? AND date <= ?"
		args = append(args,
			q.Range.Start.Format(models.DateLayout),
			q.Range.End.Format(models.DateLayout),
		)
	}

	query += " ORDER BY bedtime DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sleep records: %w", err)
	}
	defer rows.Close()

	var records []*models.SleepRecord
	for rows.Next() {
		s, err := scanSleepRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, s)
	}
	return records, rows.Err()
}

// LatestSleepRecord returns the most recent record, or ErrNoData.
func (d *DB) LatestSleepRecord() (*models.SleepRecord, error) {
	query := "SELECT " + sleepColumns + " FROM sleep_records ORDER BY bedtime DESC LIMIT 1"
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query latest sleep record: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoData
	}
	return scanSleepRecord(rows)
}

// CreateSleepRecord stores a record. Returns false when a record with the
// same bedtime already exists and the insert was skipped.
func (d *DB) CreateSleepRecord(s *models.SleepRecord) (bool, error) {
	if s.DurationMinutes < 0 {
		return false, fmt.Errorf("create sleep record: negative duration %.2f", s.DurationMinutes)
	}

	query := `
		INSERT OR IGNORE INTO sleep_records (` + sleepColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := d.db.Exec(query,
		s.ID.String(),
		s.Date,
		s.Bedtime.Format(time.RFC3339),
		s.WakeTime.Format(time.RFC3339),
		s.DurationMinutes,
		s.DeepMinutes,
		s.CoreMinutes,
		s.REMMinutes,
		s.AwakeMinutes,
		s.Efficiency,
		nullableFloat(s.AvgHeartRate),
		nullableFloat(s.MinHeartRate),
		nullableFloat(s.MaxHeartRate),
		s.Source,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("create sleep record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create sleep record: %w", err)
	}
	return affected > 0, nil
}

func nullableFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func scanSleepRecord(rows *sql.Rows) (*models.SleepRecord, error) {
	var s models.SleepRecord
	var idStr, bedtime, wakeTime, createdAt string
	var avgHR, minHR, maxHR sql.NullFloat64
	var source sql.NullString

	err := rows.Scan(
		&idStr, &s.Date, &bedtime, &wakeTime, &s.DurationMinutes,
		&s.DeepMinutes, &s.CoreMinutes, &s.REMMinutes, &s.AwakeMinutes,
		&s.Efficiency, &avgHR, &minHR, &maxHR,
		&source, &createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan sleep record: %w", err)
	}

	s.ID, _ = uuid.Parse(idStr)
	s.Bedtime, _ = time.Parse(time.RFC3339, bedtime)
	s.WakeTime, _ = time.Parse(time.RFC3339, wakeTime)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if avgHR.Valid {
		s.AvgHeartRate = &avgHR.Float64
	}
	if minHR.Valid {
		s.MinHeartRate = &minHR.Float64
	}
	if maxHR.Valid {
		s.MaxHeartRate = &maxHR.Float64
	}
	if source.Valid {
		s.Source = source.String
	}

	return &s, nil
}
