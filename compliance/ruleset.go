/*
Package compliance evaluates a roster against statutory work-time rules.

PURPOSE:
  Batch validation of a schedule: per-employee daily/weekly hour caps,
  rest periods, Sunday-off quotas and night-shift runs, producing a
  structured report with violations, warnings and a 0-100 score.

KEY CONCEPTS:
  - RuleSet: the immutable statutory thresholds for one validation run
  - Engine: the orchestrator walking each employee's assignments
  - Report: violations, warnings, score and summary, always best-effort

DESIGN PRINCIPLES:
  1. Rules never throw: non-compliance is business data, not an error
  2. Determinism: identical input yields an identical report
  3. Purity: no clocks, no I/O, no state carried across calls

SEE ALSO:
  - engine.go: Rule evaluation
  - report.go: Report, Violation and Warning shapes
  - holidays.go: Fixed public-holiday calendar
*/
package compliance

// =============================================================================
// RULE SET - Statutory thresholds
// =============================================================================

// RuleSet holds the statutory thresholds a validation run evaluates
// against. A RuleSet is immutable for the duration of a run; organizations
// may carry their own copy, but an Engine never mutates the one it holds.
type RuleSet struct {
	// Daily working time: above MaxDailyHours requires an equivalent
	// working-time system (warning); above the extended cap is a hard
	// violation.
	MaxDailyHours         float64
	MaxDailyHoursExtended float64

	// Weekly working time: above MaxWeeklyHours warns; above the averaged
	// cap violates.
	MaxWeeklyHours        float64
	MaxWeeklyHoursAverage float64

	// Minimum uninterrupted rest.
	MinDailyRestHours  float64
	MinWeeklyRestHours float64

	// Night work window, whole hours: [NightShiftStartHour, NightShiftEndHour)
	// wrapping midnight.
	NightShiftStartHour       int
	NightShiftEndHour         int
	MaxConsecutiveNightShifts int

	// Minimum free Sundays per rolling block of four.
	MinSundaysOffPer4Weeks int
}

// PolishLaborLaw returns the default rule set matching the Polish labor
// code thresholds. Callers get a fresh copy each time; there is no shared
// mutable instance.
func PolishLaborLaw() RuleSet {
	return RuleSet{
		MaxDailyHours:             8,
		MaxDailyHoursExtended:     12,
		MaxWeeklyHours:            40,
		MaxWeeklyHoursAverage:     48,
		MinDailyRestHours:         11,
		MinWeeklyRestHours:        35,
		NightShiftStartHour:       21,
		NightShiftEndHour:         7,
		MaxConsecutiveNightShifts: 3,
		MinSundaysOffPer4Weeks:    2,
	}
}
