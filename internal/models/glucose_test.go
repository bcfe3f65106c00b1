// ABOUTME: Tests for GlucoseReading model and unit conversion.
// ABOUTME: Validates constructor defaults and mmol/L handling.
package models

import (
	"math"
	"testing"
	"time"
)

func TestNewGlucoseReading(t *testing.T) {
	ts := time.Date(2025, 3, 10, 7, 30, 0, 0, time.Local)
	g := NewGlucoseReading(ts, 104)

	if g.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if !g.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", g.Timestamp, ts)
	}
	if g.Value != 104 {
		t.Errorf("Value = %f, want 104", g.Value)
	}
	if g.Unit != UnitMgdl {
		t.Errorf("Unit = %s, want %s", g.Unit, UnitMgdl)
	}

	g.WithUnit("mmol/L").WithSource("dexcom")
	if g.Unit != "mmol/L" {
		t.Errorf("Unit = %s, want mmol/L", g.Unit)
	}
	if g.Source != "dexcom" {
		t.Errorf("Source = %s, want dexcom", g.Source)
	}
}

func TestMgdlFromUnit(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  string
		want  float64
	}{
		{"mgdl passthrough", 120, "mg/dL", 120},
		{"unknown unit passthrough", 120, "", 120},
		{"mmol converted", 5.5, "mmol/L", 5.5 * MgdlPerMmoll},
		{"mmol lowercase", 10, "mmol/l", 10 * MgdlPerMmoll},
		{"bare mmol", 4, "mmol", 4 * MgdlPerMmoll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MgdlFromUnit(tt.value, tt.unit)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MgdlFromUnit(%f, %q) = %f, want %f", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}

func TestIsValidDomain(t *testing.T) {
	for _, d := range AllDomains {
		if !IsValidDomain(string(d)) {
			t.Errorf("expected %s to be valid", d)
		}
		if d.Table() == "" {
			t.Errorf("expected table name for %s", d)
		}
	}
	if IsValidDomain("heart_rate") {
		t.Error("expected heart_rate to be invalid")
	}
}
