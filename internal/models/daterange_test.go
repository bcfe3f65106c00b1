// ABOUTME: Tests for DateRange parsing and validation.
// ABOUTME: Covers partial ranges, inverted ranges, and malformed dates.
package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantNil bool
		wantErr error
	}{
		{
			name:    "both empty means unbounded",
			start:   "",
			end:     "",
			wantNil: true,
		},
		{
			name:  "valid range",
			start: "2025-03-01",
			end:   "2025-03-31",
		},
		{
			name:  "single day range",
			start: "2025-03-15",
			end:   "2025-03-15",
		},
		{
			name:    "start without end",
			start:   "2025-03-01",
			end:     "",
			wantErr: ErrPartialRange,
		},
		{
			name:    "end without start",
			start:   "",
			end:     "2025-03-31",
			wantErr: ErrPartialRange,
		},
		{
			name:    "inverted range",
			start:   "2025-03-31",
			end:     "2025-03-01",
			wantErr: ErrInvertedRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseDateRange(tt.start, tt.end)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseDateRange(%q, %q) error = %v, want %v", tt.start, tt.end, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateRange(%q, %q) unexpected error: %v", tt.start, tt.end, err)
			}
			if tt.wantNil {
				if r != nil {
					t.Errorf("expected nil range, got %v", r)
				}
				return
			}
			if r == nil {
				t.Fatal("expected non-nil range")
			}
		})
	}
}

func TestParseDateRangeMalformed(t *testing.T) {
	cases := [][2]string{
		{"03/01/2025", "03/31/2025"},
		{"2025-3-1", "2025-03-31"},
		{"2025-03-01", "not a date"},
	}

	for _, c := range cases {
		if _, err := ParseDateRange(c[0], c[1]); err == nil {
			t.Errorf("ParseDateRange(%q, %q) expected error, got nil", c[0], c[1])
		}
	}
}

func TestDateRangeBounds(t *testing.T) {
	r, err := ParseDateRange("2025-03-01", "2025-03-03")
	if err != nil {
		t.Fatalf("ParseDateRange failed: %v", err)
	}

	if got := r.Days(); got != 3 {
		t.Errorf("Days() = %d, want 3", got)
	}
	if got := r.String(); got != "2025-03-01 to 2025-03-03" {
		t.Errorf("String() = %q", got)
	}

	// End date is inclusive: anything before the following midnight is in range.
	lastMoment := time.Date(2025, 3, 3, 23, 59, 59, 0, time.Local)
	if !r.Contains(lastMoment) {
		t.Error("expected end-of-range timestamp to be contained")
	}
	nextDay := time.Date(2025, 3, 4, 0, 0, 0, 0, time.Local)
	if r.Contains(nextDay) {
		t.Error("expected day after range to be excluded")
	}
	if !r.CutoffEnd().Equal(nextDay) {
		t.Errorf("CutoffEnd() = %v, want %v", r.CutoffEnd(), nextDay)
	}
}
