// ABOUTME: Exercise record queries and inserts for SQLite storage.
// ABOUTME: Dedupe key is (started_at, workout_type); ordering is by start time.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glucolog/glucolog/internal/models"
	"github.com/google/uuid"
)

// ExerciseRecords retrieves sessions matching the query, most recent first.
func (d *DB) ExerciseRecords(q Query) ([]*models.ExerciseRecord, error) {
	query := `
		SELECT id, started_at, workout_type, duration_minutes, distance_km, energy_kcal, source, created_at
		FROM exercise_records
	`
	var args []interface{}

	if q.Range != nil {
		query += " WHERE started_at >= ? AND started_at < ?"
		args = append(args,
			q.Range.Start.Format(time.RFC3339),
			q.Range.CutoffEnd().Format(time.RFC3339),
		)
	}

	query += " ORDER BY started_at DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query exercise records: %w", err)
	}
	defer rows.Close()

	var records []*models.ExerciseRecord
	for rows.Next() {
		e, err := scanExerciseRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

// LatestExerciseRecord returns the most recent session, or ErrNoData.
func (d *DB) LatestExerciseRecord() (*models.ExerciseRecord, error) {
	query := `
		SELECT id, started_at, workout_type, duration_minutes, distance_km, energy_kcal, source, created_at
		FROM exercise_records
		ORDER BY started_at DESC
		LIMIT 1
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query latest exercise record: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoData
	}
	return scanExerciseRecord(rows)
}

// CreateExerciseRecord stores a session. Returns false when a session with
// the same (started_at, workout_type) already exists and was skipped.
func (d *DB) CreateExerciseRecord(e *models.ExerciseRecord) (bool, error) {
	if e.DurationMinutes < 0 {
		return false, fmt.Errorf("create exercise record: negative duration %.2f", e.DurationMinutes)
	}

	query := `
		INSERT OR IGNORE INTO exercise_records (id, started_at, workout_type, duration_minutes, distance_km, energy_kcal, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := d.db.Exec(query,
		e.ID.String(),
		e.StartedAt.Format(time.RFC3339),
		e.WorkoutType,
		e.DurationMinutes,
		nullableFloat(e.DistanceKm),
		nullableFloat(e.EnergyKcal),
		e.Source,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("create exercise record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create exercise record: %w", err)
	}
	return affected > 0, nil
}

func scanExerciseRecord(rows *sql.Rows) (*models.ExerciseRecord, error) {
	var e models.ExerciseRecord
	var idStr, startedAt, createdAt string
	var distance, energy sql.NullFloat64
	var source sql.NullString

	err := rows.Scan(&idStr, &startedAt, &e.WorkoutType, &e.DurationMinutes, &distance, &energy, &source, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan exercise record: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if distance.Valid {
		e.DistanceKm = &distance.Float64
	}
	if energy.Valid {
		e.EnergyKcal = &energy.Float64
	}
	if source.Valid {
		e.Source = source.String
	}

	return &e, nil
}
