// ABOUTME: Per-domain row counts and timestamp spans for status reporting.
// ABOUTME: Backs the status CLI, MCP resources, and the ingest /status endpoint.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glucolog/glucolog/internal/models"
)

// Stats reports the row count and primary-timestamp span for one domain.
func (d *DB) Stats(domain models.Domain) (*DomainStats, error) {
	col, err := primaryTimestampColumn(domain)
	if err != nil {
		return nil, err
	}

	// Table and column names come from the Domain enum, never from input.
	query := fmt.Sprintf("SELECT COUNT(*), MIN(%s), MAX(%s) FROM %s", col, col, domain.Table())

	var count int
	var oldest, newest sql.NullString
	if err := d.db.QueryRow(query).Scan(&count, &oldest, &newest); err != nil {
		return nil, fmt.Errorf("stats for %s: %w", domain, err)
	}

	stats := &DomainStats{Count: count}
	if oldest.Valid {
		stats.Oldest, _ = time.Parse(time.RFC3339, oldest.String)
	}
	if newest.Valid {
		stats.Newest, _ = time.Parse(time.RFC3339, newest.String)
	}
	return stats, nil
}

func primaryTimestampColumn(domain models.Domain) (string, error) {
	switch domain {
	case models.DomainGlucose:
		return "timestamp", nil
	case models.DomainSleep:
		return "bedtime", nil
	case models.DomainExercise:
		return "started_at", nil
	}
	return "", fmt.Errorf("unknown domain: %q", domain)
}
