// ABOUTME: Export functionality for the full metric store.
// ABOUTME: Supports JSON and YAML output of all three record families.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/glucolog/glucolog/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData is the full export format for the metric store.
type ExportData struct {
	Version    string                   `json:"version" yaml:"version"`
	ExportedAt time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool       string                   `json:"tool" yaml:"tool"`
	Glucose    []*models.GlucoseReading `json:"glucose" yaml:"glucose"`
	Sleep      []*models.SleepRecord    `json:"sleep" yaml:"sleep"`
	Exercise   []*models.ExerciseRecord `json:"exercise" yaml:"exercise"`
}

// GetAllData retrieves every record for export, each family most recent first.
func (d *DB) GetAllData() (*ExportData, error) {
	glucose, err := d.GlucoseReadings(Query{})
	if err != nil {
		return nil, fmt.Errorf("export glucose: %w", err)
	}

	sleep, err := d.SleepRecords(Query{})
	if err != nil {
		return nil, fmt.Errorf("export sleep: %w", err)
	}

	exercise, err := d.ExerciseRecords(Query{})
	if err != nil {
		return nil, fmt.Errorf("export exercise: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "glucolog",
		Glucose:    glucose,
		Sleep:      sleep,
		Exercise:   exercise,
	}, nil
}

// ExportJSON exports all data as indented JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}
