// ABOUTME: Analyzer construction and the clinical constants it runs with.
// ABOUTME: The target range and label cutoffs are conventions, overridable via config.
package analysis

import (
	"github.com/glucolog/glucolog/internal/storage"
)

// Thresholds are the clinical constants used by the pattern analyzer. The
// 70-180 mg/dL target range is the consensus CGM band, not an invariant of
// the data.
type Thresholds struct {
	LowMgdl       float64 // bottom of the target range
	HighMgdl      float64 // top of the target range
	VeryLowMgdl   float64 // urgent-low band edge
	VeryHighMgdl  float64 // urgent-high band edge
	AnomalyZScore float64 // |z| above which a reading is reported as an anomaly
	DawnRiseMgdl  float64 // early-morning rise that flags the dawn phenomenon
}

// DefaultThresholds returns the conventional clinical constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowMgdl:       70,
		HighMgdl:      180,
		VeryLowMgdl:   54,
		VeryHighMgdl:  250,
		AnomalyZScore: 2.5,
		DawnRiseMgdl:  20,
	}
}

// StrengthCutoffs map |r| to a qualitative correlation label.
type StrengthCutoffs struct {
	Negligible float64 // below: "negligible"
	Weak       float64 // below: "weak"
	Moderate   float64 // below: "moderate"
	Strong     float64 // below: "strong", at or above: "very strong"
}

// DefaultStrengthCutoffs returns the conventional label boundaries.
func DefaultStrengthCutoffs() StrengthCutoffs {
	return StrengthCutoffs{Negligible: 0.1, Weak: 0.3, Moderate: 0.5, Strong: 0.7}
}

// DefaultMinOverlapDays is the floor below which a correlation is reported
// as insufficient data instead of a coefficient.
const DefaultMinOverlapDays = 3

// Analyzer computes descriptive analytics over the metric store. It holds
// no state between calls; every method fetches fresh from the repository.
type Analyzer struct {
	repo storage.Repository

	Thresholds     Thresholds
	Cutoffs        StrengthCutoffs
	MinOverlapDays int
}

// New creates an Analyzer with the default clinical constants.
func New(repo storage.Repository) *Analyzer {
	return &Analyzer{
		repo:           repo,
		Thresholds:     DefaultThresholds(),
		Cutoffs:        DefaultStrengthCutoffs(),
		MinOverlapDays: DefaultMinOverlapDays,
	}
}
