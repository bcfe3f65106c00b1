// ABOUTME: Inclusive calendar date range shared by queries and analyzers.
// ABOUTME: Both bounds are required together; partial or inverted ranges are usage errors.
package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for date arguments.
const DateLayout = "2006-01-02"

var (
	// ErrPartialRange is returned when only one of start_date/end_date is given.
	ErrPartialRange = errors.New("start_date and end_date must be provided together")

	// ErrInvertedRange is returned when start_date is after end_date.
	ErrInvertedRange = errors.New("start_date must not be after end_date")
)

// DateRange is an inclusive range of calendar days in the local timezone.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange validates and parses a pair of YYYY-MM-DD strings.
// Returns (nil, nil) when both are empty: an unbounded query.
func ParseDateRange(start, end string) (*DateRange, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, ErrPartialRange
	}

	s, err := time.ParseInLocation(DateLayout, start, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", start)
	}
	e, err := time.ParseInLocation(DateLayout, end, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date %q: expected YYYY-MM-DD", end)
	}
	if s.After(e) {
		return nil, ErrInvertedRange
	}

	return &DateRange{Start: s, End: e}, nil
}

// CutoffEnd returns the exclusive upper bound: midnight after the end date.
func (r *DateRange) CutoffEnd() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// Days returns the number of calendar days covered, inclusive.
func (r *DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// String renders the range for report envelopes.
func (r *DateRange) String() string {
	return r.Start.Format(DateLayout) + " to " + r.End.Format(DateLayout)
}

// Contains reports whether t falls inside the range.
func (r *DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.CutoffEnd())
}
