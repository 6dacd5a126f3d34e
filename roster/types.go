/*
Package roster holds the schedule data model and the pure calendar
algorithms that operate on it.

PURPOSE:
  This package contains the in-memory shapes a schedule is made of
  (assignments, employees, calendar days) plus the read-only algorithms
  the compliance layer builds on: same-day conflict detection, calendar
  grouping, and rest-period arithmetic.

KEY CONCEPTS IN THIS FILE (types.go):
  - Day: a calendar day with no time-of-day component
  - Kind: what an assignment occupies (a worked shift or a full day)
  - Assignment: one employee-day record, caller-owned and never mutated
  - Employee: identity only, used to label reports

DESIGN PRINCIPLES:
  1. Purity: nothing in this package performs I/O or keeps state
  2. Ownership: inputs are caller-owned; functions never retain them
  3. Single parser: all clock-label math goes through the interval package

SEE ALSO:
  - conflict.go: Same-day overlap detection
  - calendar.go: Date, ISO-week and rolling-Sunday grouping
  - rest.go: Rest duration between work intervals
*/
package roster

import (
	"errors"
	"fmt"
	"time"

	"github.com/warp/roster-engine/interval"
)

// =============================================================================
// DAY - Calendar day, no time-of-day
// =============================================================================

// Day is a calendar day. All constructors normalize to midnight UTC so
// values are directly comparable and usable as map keys.
type Day struct {
	Time time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates any timestamp to its calendar day.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// ParseDay parses a "YYYY-MM-DD" date label.
func ParseDay(label string) (Day, error) {
	t, err := time.Parse("2006-01-02", label)
	if err != nil {
		return Day{}, fmt.Errorf("cannot parse %q as YYYY-MM-DD: %w", label, err)
	}
	return DayOf(t), nil
}

// Comparison
func (d Day) Before(other Day) bool { return d.Time.Before(other.Time) }
func (d Day) After(other Day) bool  { return d.Time.After(other.Time) }
func (d Day) Equal(other Day) bool  { return d.Time.Equal(other.Time) }

// Arithmetic
func (d Day) AddDays(n int) Day { return DayOf(d.Time.AddDate(0, 0, n)) }

// DaysBetween returns the whole calendar days from d to other.
func (d Day) DaysBetween(other Day) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

// Properties
func (d Day) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Day) IsSunday() bool        { return d.Time.Weekday() == time.Sunday }
func (d Day) IsZero() bool          { return d.Time.IsZero() }

// At combines the day with a clock offset in minutes from midnight.
func (d Day) At(minutes int) time.Time {
	return d.Time.Add(time.Duration(minutes) * time.Minute)
}

func (d Day) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// ASSIGNMENT KIND
// =============================================================================

// Kind classifies what an assignment occupies on its day.
type Kind string

const (
	KindShift   Kind = "shift"
	KindLeave   Kind = "leave"
	KindSick    Kind = "sick"
	KindOff     Kind = "off"
	KindHoliday Kind = "holiday"
)

// FullDay reports whether the kind occupies the entire calendar day for
// conflict purposes. Everything except a worked shift does.
func (k Kind) FullDay() bool { return k != KindShift }

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindShift, KindLeave, KindSick, KindOff, KindHoliday:
		return true
	}
	return false
}

// =============================================================================
// ASSIGNMENT - One employee-day schedule record
// =============================================================================

// Assignment is a single schedule record: either a worked shift with clock
// times, or a full-day record (leave, sick, off, holiday) without them.
// Assignments are caller-owned; nothing in this module retains or mutates one.
type Assignment struct {
	ID           string
	EmployeeID   string
	Date         Day
	Kind         Kind
	StartTime    string // "HH:MM", shifts only
	EndTime      string // "HH:MM", shifts only
	BreakMinutes int
}

// Span returns the assignment's effective span on its day. Full-day kinds
// occupy [0, 1440); shifts use their clock times, with overnight shifts
// extended past midnight.
func (a Assignment) Span() (interval.TimeSpan, error) {
	if a.Kind.FullDay() {
		return interval.FullDay(), nil
	}
	return interval.ShiftSpan(a.StartTime, a.EndTime)
}

// WorkedMinutes returns the gross shift length in minutes. Full-day kinds
// contribute no worked time. Break minutes are not subtracted here: the
// statutory hour checks count gross time (see compliance package).
func (a Assignment) WorkedMinutes() int {
	if a.Kind.FullDay() {
		return 0
	}
	span, err := interval.ShiftSpan(a.StartTime, a.EndTime)
	if err != nil {
		return 0
	}
	return span.Minutes()
}

// WorkedHours returns the gross shift length in hours.
func (a Assignment) WorkedHours() float64 {
	return float64(a.WorkedMinutes()) / interval.MinutesPerHour
}

// StartHour and EndHour expose the whole-hour clock components used by the
// night-shift rule, -1 when the label is absent or malformed.
func (a Assignment) StartHour() int { return interval.HourOf(a.StartTime) }
func (a Assignment) EndHour() int   { return interval.HourOf(a.EndTime) }

// =============================================================================
// EMPLOYEE - Identity for report labeling
// =============================================================================

type Employee struct {
	ID        string
	FirstName string
	LastName  string
}

// Label returns the display name used in violations and warnings.
func (e Employee) Label() string {
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrAssignmentNotFound is returned when a referenced assignment doesn't exist.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrScheduleConflict is returned when a candidate assignment overlaps an
	// existing one for the same employee and day.
	ErrScheduleConflict = errors.New("schedule conflict")
)

// ConflictError carries the records involved in a detected conflict so the
// boundary layer can surface them to the client.
type ConflictError struct {
	Candidate   Assignment
	Conflicting Assignment
	SameDay     []Assignment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflict: employee %s already has %s on %s",
		e.Candidate.EmployeeID, e.Conflicting.Kind, e.Candidate.Date)
}

func (e *ConflictError) Unwrap() error { return ErrScheduleConflict }

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrAssignmentNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, interval.ErrInvalidTimeFormat) ||
		errors.Is(err, interval.ErrInvalidInterval) ||
		errors.Is(err, ErrScheduleConflict)
}
