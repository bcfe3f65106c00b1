// ABOUTME: Domain enum naming the three record families.
// ABOUTME: Used wherever a tool or CLI argument selects glucose, sleep, or exercise.
package models

// Domain identifies one of the record families in the store.
type Domain string

const (
	DomainGlucose  Domain = "glucose"
	DomainSleep    Domain = "sleep"
	DomainExercise Domain = "exercise"
)

// AllDomains returns all valid domains.
var AllDomains = []Domain{DomainGlucose, DomainSleep, DomainExercise}

// IsValidDomain checks if a string names a known domain.
func IsValidDomain(s string) bool {
	for _, d := range AllDomains {
		if string(d) == s {
			return true
		}
	}
	return false
}

// Table returns the storage table backing the domain.
func (d Domain) Table() string {
	switch d {
	case DomainGlucose:
		return "glucose_readings"
	case DomainSleep:
		return "sleep_records"
	case DomainExercise:
		return "exercise_records"
	}
	return ""
}
