// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for glucose readings, sleep records, and exercise records.
package storage

// initSchema creates or updates the database schema.
// Unique indexes make ingestion idempotent: replayed exports are skipped.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS glucose_readings (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		value_mgdl REAL NOT NULL,
		unit TEXT NOT NULL,
		source TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (timestamp, source)
	);

	CREATE TABLE IF NOT EXISTS sleep_records (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		bedtime DATETIME NOT NULL,
		wake_time DATETIME NOT NULL,
		duration_minutes REAL NOT NULL,
		deep_minutes REAL NOT NULL DEFAULT 0,
		core_minutes REAL NOT NULL DEFAULT 0,
		rem_minutes REAL NOT NULL DEFAULT 0,
		awake_minutes REAL NOT NULL DEFAULT 0,
		efficiency REAL NOT NULL DEFAULT 1,
		avg_heart_rate REAL,
		min_heart_rate REAL,
		max_heart_rate REAL,
		source TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (bedtime)
	);

	CREATE TABLE IF NOT EXISTS exercise_records (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		workout_type TEXT NOT NULL,
		duration_minutes REAL NOT NULL,
		distance_km REAL,
		energy_kcal REAL,
		source TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (started_at, workout_type)
	);

	CREATE INDEX IF NOT EXISTS idx_glucose_timestamp ON glucose_readings(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_sleep_bedtime ON sleep_records(bedtime DESC);
	CREATE INDEX IF NOT EXISTS idx_sleep_date ON sleep_records(date);
	CREATE INDEX IF NOT EXISTS idx_exercise_started ON exercise_records(started_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
