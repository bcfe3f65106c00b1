// ABOUTME: GlucoseReading model and unit conversion for CGM data.
// ABOUTME: Values are stored canonically in mg/dL regardless of source unit.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MgdlPerMmoll converts mmol/L glucose concentrations to mg/dL.
const MgdlPerMmoll = 18.0182

// UnitMgdl is the canonical storage unit for glucose values.
const UnitMgdl = "mg/dL"

// GlucoseReading is a single timestamped CGM or meter reading.
// Readings are immutable once stored.
type GlucoseReading struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Value     float64   `json:"value_mgdl" yaml:"value_mgdl"`
	Unit      string    `json:"unit" yaml:"unit"` // unit reported by the source
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewGlucoseReading creates a reading with a generated UUID. The value is
// taken to be mg/dL; use MgdlFromUnit first for other units.
func NewGlucoseReading(timestamp time.Time, valueMgdl float64) *GlucoseReading {
	return &GlucoseReading{
		ID:        uuid.New(),
		Timestamp: timestamp,
		Value:     valueMgdl,
		Unit:      UnitMgdl,
		CreatedAt: time.Now(),
	}
}

// WithUnit records the unit the source reported.
func (g *GlucoseReading) WithUnit(unit string) *GlucoseReading {
	if unit != "" {
		g.Unit = unit
	}
	return g
}

// WithSource records the originating device or app.
func (g *GlucoseReading) WithSource(source string) *GlucoseReading {
	g.Source = source
	return g
}

// IsMmolUnit reports whether a unit string denotes mmol/L.
func IsMmolUnit(unit string) bool {
	u := strings.ToLower(strings.TrimSpace(unit))
	return u == "mmol/l" || u == "mmol"
}

// MgdlFromUnit converts a glucose value in the given unit to mg/dL.
// Unknown units are assumed to already be mg/dL.
func MgdlFromUnit(value float64, unit string) float64 {
	if IsMmolUnit(unit) {
		return value * MgdlPerMmoll
	}
	return value
}
