/*
Package interval provides clock-time parsing and span overlap math.

PURPOSE:
  All "HH:MM" parsing and minute-offset arithmetic lives here, so that
  conflict detection, rest calculation, and compliance rules never touch
  raw time strings themselves. One parser, one overlap predicate.

KEY CONCEPTS IN THIS FILE:
  - ToMinutes: "HH:MM" -> minute offset in [0, 1439]
  - TimeSpan: a half-open [Start, End) span in minutes from midnight
  - Overlaps: the overlap predicate shared by every caller
  - Overnight shifts: a nominal end at or before the start means the span
    crosses midnight, and a full day is added to the end for duration math

CONVENTIONS:
  Spans are half-open. A shift ending at 16:00 does not overlap a shift
  starting at 16:00. Full-day spans cover [0, 1440).

SEE ALSO:
  - roster/conflict.go: Uses Overlaps for same-day conflict detection
  - roster/rest.go: Combines days and clock labels into rest durations
  - compliance/engine.go: Hour thresholds built on span durations
*/
package interval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidTimeFormat is returned when a clock label is not "HH:MM".
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

	// ErrInvalidInterval is returned when a shift has zero length.
	// Shifts whose nominal end precedes the start are overnight, not invalid.
	ErrInvalidInterval = errors.New("invalid interval: end equals start")
)

// ParseError reports which label failed to parse.
type ParseError struct {
	Label string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as HH:MM", e.Label)
}

func (e *ParseError) Unwrap() error { return ErrInvalidTimeFormat }

// =============================================================================
// PARSING
// =============================================================================

// ToMinutes parses an "HH:MM" clock label into minutes from midnight.
// Hours must be 00-23 and minutes 00-59, so the result is in [0, 1439].
func ToMinutes(label string) (int, error) {
	parts := strings.Split(label, ":")
	if len(parts) != 2 {
		return 0, &ParseError{Label: label}
	}

	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &ParseError{Label: label}
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &ParseError{Label: label}
	}

	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, &ParseError{Label: label}
	}
	return hh*MinutesPerHour + mm, nil
}

// HourOf returns the hour component of an "HH:MM" label, or -1 when the
// label does not parse. Compliance rules compare whole hours only.
func HourOf(label string) int {
	minutes, err := ToMinutes(label)
	if err != nil {
		return -1
	}
	return minutes / MinutesPerHour
}

// =============================================================================
// TIME SPAN
// =============================================================================

// TimeSpan is a half-open [Start, End) span in minutes from midnight.
// End may exceed MinutesPerDay for overnight shifts.
type TimeSpan struct {
	Start int
	End   int
}

// FullDay returns the span covering an entire calendar day.
// Leave, sick, off and holiday records occupy the whole day.
func FullDay() TimeSpan {
	return TimeSpan{Start: 0, End: MinutesPerDay}
}

// ShiftSpan parses a shift's clock labels into a span. A nominal end at or
// before the start is treated as crossing midnight: a full day is added to
// the end so duration math stays positive.
func ShiftSpan(startLabel, endLabel string) (TimeSpan, error) {
	start, err := ToMinutes(startLabel)
	if err != nil {
		return TimeSpan{}, err
	}
	end, err := ToMinutes(endLabel)
	if err != nil {
		return TimeSpan{}, err
	}
	if end <= start {
		end += MinutesPerDay
	}
	return TimeSpan{Start: start, End: end}, nil
}

// Minutes returns the span length in minutes.
func (s TimeSpan) Minutes() int { return s.End - s.Start }

// Hours returns the span length in hours.
func (s TimeSpan) Hours() float64 { return float64(s.Minutes()) / MinutesPerHour }

// =============================================================================
// OVERLAP
// =============================================================================

// Overlaps reports whether two half-open spans intersect:
// max(a.Start, b.Start) < min(a.End, b.End).
func Overlaps(a, b TimeSpan) bool {
	lo := a.Start
	if b.Start > lo {
		lo = b.Start
	}
	hi := a.End
	if b.End < hi {
		hi = b.End
	}
	return lo < hi
}

// OverlapMinutes returns how many minutes two spans share, zero when disjoint.
func OverlapMinutes(a, b TimeSpan) int {
	lo := a.Start
	if b.Start > lo {
		lo = b.Start
	}
	hi := a.End
	if b.End < hi {
		hi = b.End
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// =============================================================================
// BOUNDARY VALIDATION
// =============================================================================

// ValidateShiftTimes checks a shift's clock labels the way the API boundary
// must before any core logic runs: both labels parse, and the shift is not
// zero-length. An end before the start is accepted as an overnight shift.
func ValidateShiftTimes(startLabel, endLabel string) error {
	start, err := ToMinutes(startLabel)
	if err != nil {
		return err
	}
	end, err := ToMinutes(endLabel)
	if err != nil {
		return err
	}
	if start == end {
		return fmt.Errorf("%w (%s)", ErrInvalidInterval, startLabel)
	}
	return nil
}
