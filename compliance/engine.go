/*
engine.go - Rule evaluation over a full roster

PURPOSE:
  Walks each employee's assignments and evaluates the five statutory
  checks: daily hours, daily rest, weekly hours and rest, Sunday-off
  quota, and consecutive night shifts.

ALGORITHM:
  One linear pass per employee, five independent checks, no shared state
  across employees. Employees with zero assignments are skipped. Findings
  accumulate into a Report; the score starts at 100 and is reduced per
  finding severity, clamped to [0,100].

DETERMINISM:
  Dates and week keys are iterated in sorted order so two runs over the
  same input produce identical reports.

FAILURE SEMANTICS:
  The engine never errors on well-formed input. Reversed or out-of-range
  times surface as larger or negative measurements that trip the
  thresholds naturally - a negative rest always violates minimum rest.

SEE ALSO:
  - roster/calendar.go: Grouping the checks are built on
  - roster/rest.go: Rest arithmetic
  - report.go: Output shapes
*/
package compliance

import (
	"fmt"

	"github.com/warp/roster-engine/interval"
	"github.com/warp/roster-engine/roster"
)

// Score deductions per finding.
const (
	penaltyCriticalViolation = 20
	penaltyHighViolation     = 10
	penaltyMediumViolation   = 5
	penaltyMediumWarning     = 3
	penaltyLowWarning        = 1
)

// Engine evaluates rosters against one immutable rule set. An Engine is
// stateless between calls and safe for concurrent use.
type Engine struct {
	rules RuleSet
}

func NewEngine(rules RuleSet) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the rule set this engine evaluates against.
func (e *Engine) Rules() RuleSet { return e.rules }

// =============================================================================
// VALIDATE - Whole-schedule batch validation
// =============================================================================

// Validate evaluates every employee's assignments against the rule set and
// returns the full report. Inputs are read-only and never retained.
func (e *Engine) Validate(assignments []roster.Assignment, employees []roster.Employee) Report {
	var violations []Violation
	var warnings []Warning

	for _, emp := range employees {
		own := assignmentsFor(emp.ID, assignments)
		if len(own) == 0 {
			continue
		}

		v, w := e.checkDailyHours(emp, own)
		violations, warnings = append(violations, v...), append(warnings, w...)

		violations = append(violations, e.checkDailyRest(emp, own)...)

		v, w = e.checkWeekly(emp, own)
		violations, warnings = append(violations, v...), append(warnings, w...)

		violations = append(violations, e.checkSundaysOff(emp, own)...)

		warnings = append(warnings, e.checkNightShifts(emp, own)...)
	}

	return Report{
		IsValid:         len(violations) == 0,
		Violations:      violations,
		Warnings:        warnings,
		ComplianceScore: e.score(violations, warnings),
		Summary:         summarize(violations, warnings),
	}
}

// ValidateSingleAssignment is the cheap pre-check used before persisting
// one new assignment: it sums the day's hours including the candidate and
// flags only the hard extended daily cap. It is a narrow fast path, not a
// substitute for Validate.
func (e *Engine) ValidateSingleAssignment(candidate roster.Assignment, employee roster.Employee, existing []roster.Assignment) (bool, []Violation) {
	total := candidate.WorkedHours()
	for _, a := range existing {
		total += a.WorkedHours()
	}

	var violations []Violation
	if total > e.rules.MaxDailyHoursExtended {
		date := candidate.Date
		violations = append(violations, Violation{
			Type:          RuleDailyHours,
			Severity:      SeverityCritical,
			EmployeeID:    employee.ID,
			EmployeeLabel: employee.Label(),
			Date:          &date,
			MeasuredValue: total,
			LimitValue:    e.rules.MaxDailyHoursExtended,
			Message: fmt.Sprintf("adding this shift brings %s to %.1fh on %s, above the %.0fh daily limit",
				employee.Label(), total, date, e.rules.MaxDailyHoursExtended),
			Suggestion: "shorten the shift or move it to another day",
		})
	}
	return len(violations) == 0, violations
}

// =============================================================================
// RULE 1 - Daily hours
// =============================================================================

func (e *Engine) checkDailyHours(emp roster.Employee, own []roster.Assignment) ([]Violation, []Warning) {
	var violations []Violation
	var warnings []Warning

	byDate := roster.GroupByDate(own)
	for _, date := range roster.SortedDates(byDate) {
		hours := 0.0
		for _, a := range byDate[date] {
			hours += a.WorkedHours()
		}
		if hours <= e.rules.MaxDailyHours {
			continue
		}

		d := date
		if hours > e.rules.MaxDailyHoursExtended {
			violations = append(violations, Violation{
				Type:          RuleDailyHours,
				Severity:      SeverityCritical,
				EmployeeID:    emp.ID,
				EmployeeLabel: emp.Label(),
				Date:          &d,
				MeasuredValue: hours,
				LimitValue:    e.rules.MaxDailyHoursExtended,
				Message: fmt.Sprintf("%s worked %.1fh on %s, above the %.0fh extended daily limit",
					emp.Label(), hours, date, e.rules.MaxDailyHoursExtended),
				Suggestion: "split the day's work across more employees or days",
			})
		} else {
			warnings = append(warnings, Warning{
				Type:          RuleDailyHours,
				Severity:      SeverityMedium,
				EmployeeID:    emp.ID,
				EmployeeLabel: emp.Label(),
				Date:          &d,
				MeasuredValue: hours,
				LimitValue:    e.rules.MaxDailyHours,
				Message: fmt.Sprintf("%s worked %.1fh on %s, above the %.0fh daily norm; requires an equivalent working time system",
					emp.Label(), hours, date, e.rules.MaxDailyHours),
				Suggestion: "confirm an equivalent working time system applies",
			})
		}
	}
	return violations, warnings
}

// =============================================================================
// RULE 2 - Daily rest between consecutive days
// =============================================================================

func (e *Engine) checkDailyRest(emp roster.Employee, own []roster.Assignment) []Violation {
	var violations []Violation

	shifts := roster.ShiftsByTime(own)
	byDate := roster.GroupByDate(shifts)
	dates := roster.SortedDates(byDate)

	for i := 1; i < len(dates); i++ {
		prev, cur := dates[i-1], dates[i]
		// Only consecutive dates in the sorted list are rest-checked; a
		// gap day in between means the rest is trivially long enough.
		if prev.DaysBetween(cur) != 1 {
			continue
		}

		latestEnd := latestEndTime(byDate[prev])
		earliestStart := earliestStartTime(byDate[cur])
		rest := roster.RestHours(prev, latestEnd, cur, earliestStart)

		if rest < e.rules.MinDailyRestHours {
			d := cur
			violations = append(violations, Violation{
				Type:          RuleDailyRest,
				Severity:      SeverityCritical,
				EmployeeID:    emp.ID,
				EmployeeLabel: emp.Label(),
				Date:          &d,
				MeasuredValue: rest,
				LimitValue:    e.rules.MinDailyRestHours,
				Message: fmt.Sprintf("%s has only %.1fh of rest before %s, below the required %.0fh",
					emp.Label(), rest, cur, e.rules.MinDailyRestHours),
				Suggestion: "delay the next day's start or bring forward the previous day's end",
			})
		}
	}
	return violations
}

// latestEndTime returns the day's latest shift end label, comparing the
// labels as clock offsets. Overnight ends are read at face value, the same
// way RestHours reads them.
func latestEndTime(shifts []roster.Assignment) string {
	latest, latestMinutes := "", -1
	for _, a := range shifts {
		m, err := interval.ToMinutes(a.EndTime)
		if err != nil {
			continue
		}
		if m > latestMinutes {
			latest, latestMinutes = a.EndTime, m
		}
	}
	return latest
}

// earliestStartTime returns the day's earliest shift start label.
func earliestStartTime(shifts []roster.Assignment) string {
	earliest, earliestMinutes := "", interval.MinutesPerDay+1
	for _, a := range shifts {
		m, err := interval.ToMinutes(a.StartTime)
		if err != nil {
			continue
		}
		if m < earliestMinutes {
			earliest, earliestMinutes = a.StartTime, m
		}
	}
	return earliest
}

// =============================================================================
// RULE 3 - Weekly hours and weekly rest per ISO week
// =============================================================================

func (e *Engine) checkWeekly(emp roster.Employee, own []roster.Assignment) ([]Violation, []Warning) {
	var violations []Violation
	var warnings []Warning

	byWeek := roster.GroupByISOWeek(own)
	for _, week := range roster.SortedWeekKeys(byWeek) {
		entries := byWeek[week]

		hours := 0.0
		for _, a := range entries {
			hours += a.WorkedHours()
		}
		if hours > e.rules.MaxWeeklyHours {
			if hours > e.rules.MaxWeeklyHoursAverage {
				violations = append(violations, Violation{
					Type:          RuleWeeklyHours,
					Severity:      SeverityHigh,
					EmployeeID:    emp.ID,
					EmployeeLabel: emp.Label(),
					Week:          week,
					MeasuredValue: hours,
					LimitValue:    e.rules.MaxWeeklyHoursAverage,
					Message: fmt.Sprintf("%s worked %.1fh in %s, above the %.0fh averaged weekly cap",
						emp.Label(), hours, week, e.rules.MaxWeeklyHoursAverage),
					Suggestion: "redistribute hours to adjacent weeks",
				})
			} else {
				warnings = append(warnings, Warning{
					Type:          RuleWeeklyHours,
					Severity:      SeverityMedium,
					EmployeeID:    emp.ID,
					EmployeeLabel: emp.Label(),
					Week:          week,
					MeasuredValue: hours,
					LimitValue:    e.rules.MaxWeeklyHours,
					Message: fmt.Sprintf("%s worked %.1fh in %s, above the %.0fh weekly norm",
						emp.Label(), hours, week, e.rules.MaxWeeklyHours),
					Suggestion: "verify overtime is compensated within the settlement period",
				})
			}
		}

		if rest, ok := roster.LongestRestHours(entries); ok && rest < e.rules.MinWeeklyRestHours {
			violations = append(violations, Violation{
				Type:          RuleWeeklyRest,
				Severity:      SeverityCritical,
				EmployeeID:    emp.ID,
				EmployeeLabel: emp.Label(),
				Week:          week,
				MeasuredValue: rest,
				LimitValue:    e.rules.MinWeeklyRestHours,
				Message: fmt.Sprintf("%s's longest rest in %s is %.1fh, below the required %.0fh weekly rest",
					emp.Label(), week, rest, e.rules.MinWeeklyRestHours),
				Suggestion: "schedule one uninterrupted free period in the week",
			})
		}
	}
	return violations, warnings
}

// =============================================================================
// RULE 4 - Sunday-off quota over rolling 4-Sunday blocks
// =============================================================================

func (e *Engine) checkSundaysOff(emp roster.Employee, own []roster.Assignment) []Violation {
	var violations []Violation

	sundays := roster.SundaysOnly(own)
	for _, block := range roster.GroupByRollingFourWeeks(sundays) {
		worked := 0
		for _, a := range block.Sundays {
			if a.Kind == roster.KindShift {
				worked++
			}
		}
		sundaysOff := 4 - worked
		if sundaysOff < e.rules.MinSundaysOffPer4Weeks {
			violations = append(violations, Violation{
				Type:          RuleSundaysOff,
				Severity:      SeverityHigh,
				EmployeeID:    emp.ID,
				EmployeeLabel: emp.Label(),
				Period:        block.Range,
				MeasuredValue: float64(sundaysOff),
				LimitValue:    float64(e.rules.MinSundaysOffPer4Weeks),
				Message: fmt.Sprintf("%s has only %d Sundays off in %s, minimum is %d per 4 weeks",
					emp.Label(), sundaysOff, block.Range, e.rules.MinSundaysOffPer4Weeks),
				Suggestion: "rotate Sunday shifts to other employees",
			})
		}
	}
	return violations
}

// =============================================================================
// RULE 5 - Consecutive night shifts
// =============================================================================

// isNightShift reproduces the inherited predicate verbatim, including its
// redundant third clause. Shifts like 05:00-09:00 are NOT night work here
// (end hour 9 fails every clause); see the intake notes before changing it.
func (e *Engine) isNightShift(a roster.Assignment) bool {
	if a.Kind != roster.KindShift {
		return false
	}
	startHour, endHour := a.StartHour(), a.EndHour()
	return startHour >= e.rules.NightShiftStartHour ||
		endHour <= e.rules.NightShiftEndHour ||
		(startHour < e.rules.NightShiftEndHour && endHour <= e.rules.NightShiftEndHour)
}

func (e *Engine) checkNightShifts(emp roster.Employee, own []roster.Assignment) []Warning {
	var nights []roster.Assignment
	for _, a := range own {
		if e.isNightShift(a) {
			nights = append(nights, a)
		}
	}
	if len(nights) == 0 {
		return nil
	}

	byDate := roster.GroupByDate(nights)
	dates := roster.SortedDates(byDate)

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].DaysBetween(dates[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	if longest <= e.rules.MaxConsecutiveNightShifts {
		return nil
	}
	return []Warning{{
		Type:          RuleNightShifts,
		Severity:      SeverityMedium,
		EmployeeID:    emp.ID,
		EmployeeLabel: emp.Label(),
		MeasuredValue: float64(longest),
		LimitValue:    float64(e.rules.MaxConsecutiveNightShifts),
		Message: fmt.Sprintf("%s has %d consecutive night shifts, above the limit of %d",
			emp.Label(), longest, e.rules.MaxConsecutiveNightShifts),
		Suggestion: "insert a non-night day into the run",
	}}
}

// =============================================================================
// SCORING
// =============================================================================

func (e *Engine) score(violations []Violation, warnings []Warning) int {
	score := 100
	for _, v := range violations {
		switch v.Severity {
		case SeverityCritical:
			score -= penaltyCriticalViolation
		case SeverityHigh:
			score -= penaltyHighViolation
		default:
			score -= penaltyMediumViolation
		}
	}
	for _, w := range warnings {
		switch w.Severity {
		case SeverityMedium:
			score -= penaltyMediumWarning
		default:
			score -= penaltyLowWarning
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func assignmentsFor(employeeID string, assignments []roster.Assignment) []roster.Assignment {
	var own []roster.Assignment
	for _, a := range assignments {
		if a.EmployeeID == employeeID {
			own = append(own, a)
		}
	}
	return own
}
