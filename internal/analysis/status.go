// ABOUTME: CGM ingestion freshness reporting.
// ABOUTME: Compares readings received against the expected 5-minute cadence.
package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/glucolog/glucolog/internal/models"
	"github.com/glucolog/glucolog/internal/storage"
)

// CGMIntervalMinutes is the expected cadence of a CGM: one reading per 5 minutes.
const CGMIntervalMinutes = 5

// DefaultStatusWindowHours is the lookback window when none is given.
const DefaultStatusWindowHours = 24

// MonitoringStatus reports how fresh and complete recent CGM ingestion is.
type MonitoringStatus struct {
	WindowHours        int                    `json:"window_hours"`
	LatestReading      *models.GlucoseReading `json:"latest_reading,omitempty"`
	MinutesSinceLatest *float64               `json:"minutes_since_latest,omitempty"`
	ReadingsInWindow   int                    `json:"readings_in_window"`
	ExpectedReadings   int                    `json:"expected_readings"`
	CompletenessPct    float64                `json:"completeness_pct"`
	Note               string                 `json:"note,omitempty"`
}

// MonitoringStatus reports ingestion freshness over the lookback window.
// hoursBack <= 0 uses the default 24-hour window.
func (a *Analyzer) MonitoringStatus(hoursBack int) (*MonitoringStatus, error) {
	if hoursBack <= 0 {
		hoursBack = DefaultStatusWindowHours
	}

	status := &MonitoringStatus{
		WindowHours:      hoursBack,
		ExpectedReadings: hoursBack * 60 / CGMIntervalMinutes,
	}

	latest, err := a.repo.LatestGlucoseReading()
	if err != nil {
		if errors.Is(err, storage.ErrNoData) {
			status.Note = "no glucose readings stored"
			return status, nil
		}
		return nil, fmt.Errorf("monitoring status: %w", err)
	}

	status.LatestReading = latest
	age := time.Since(latest.Timestamp).Minutes()
	status.MinutesSinceLatest = &age

	count, err := a.repo.GlucoseCountSince(time.Now().Add(-time.Duration(hoursBack) * time.Hour))
	if err != nil {
		return nil, fmt.Errorf("monitoring status: %w", err)
	}
	status.ReadingsInWindow = count

	if status.ExpectedReadings > 0 {
		pct := 100 * float64(count) / float64(status.ExpectedReadings)
		if pct > 100 {
			pct = 100
		}
		status.CompletenessPct = pct
	}

	return status, nil
}
