/*
Package payroll aggregates worked time per employee for payroll handoff.

PURPOSE:
  Turns a period's assignments into per-employee hour totals: gross,
  break, net, night, Sunday and public-holiday hours. Downstream payroll
  takes these totals; tax and pay calculation stay outside this module.

PRECISION:
  Totals use decimal arithmetic. Minutes are summed as integers and only
  converted to decimal hours at the edge, so no floating-point drift
  accumulates over a month of shifts.

NOTE:
  The compliance rules deliberately count gross hours (breaks included);
  this package reports net hours alongside gross so the difference stays
  visible without changing rule behavior.

SEE ALSO:
  - roster/types.go: Assignment shapes and span math
  - compliance/holidays.go: The public-holiday calendar used here
*/
package payroll

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/warp/roster-engine/compliance"
	"github.com/warp/roster-engine/interval"
	"github.com/warp/roster-engine/roster"
)

// EmployeeSummary is one employee's hour totals for a period.
type EmployeeSummary struct {
	EmployeeID    string
	EmployeeLabel string
	ShiftCount    int

	GrossHours   decimal.Decimal
	BreakHours   decimal.Decimal
	NetHours     decimal.Decimal
	NightHours   decimal.Decimal
	SundayHours  decimal.Decimal
	HolidayHours decimal.Decimal
}

// Summarizer aggregates hours against a rule set's night window and a
// holiday calendar.
type Summarizer struct {
	Rules    compliance.RuleSet
	Holidays compliance.HolidayCalendar
}

func NewSummarizer(rules compliance.RuleSet, holidays compliance.HolidayCalendar) *Summarizer {
	return &Summarizer{Rules: rules, Holidays: holidays}
}

// Summarize totals each listed employee's shifts. Employees without
// assignments are included with zero totals so payroll sees the full
// roster. Results are ordered by employee ID.
func (s *Summarizer) Summarize(assignments []roster.Assignment, employees []roster.Employee) []EmployeeSummary {
	summaries := make([]EmployeeSummary, 0, len(employees))

	for _, emp := range employees {
		sum := EmployeeSummary{
			EmployeeID:    emp.ID,
			EmployeeLabel: emp.Label(),
		}

		var grossMin, breakMin, nightMin, sundayMin, holidayMin int
		for _, a := range assignments {
			if a.EmployeeID != emp.ID || a.Kind != roster.KindShift {
				continue
			}
			span, err := a.Span()
			if err != nil {
				continue
			}

			sum.ShiftCount++
			grossMin += span.Minutes()
			breakMin += a.BreakMinutes
			nightMin += s.nightMinutes(span)
			if a.Date.IsSunday() {
				sundayMin += span.Minutes()
			}
			if s.Holidays != nil && s.Holidays.IsPublicHoliday(a.Date) {
				holidayMin += span.Minutes()
			}
		}

		sum.GrossHours = minutesToHours(grossMin)
		sum.BreakHours = minutesToHours(breakMin)
		sum.NetHours = minutesToHours(grossMin - breakMin)
		sum.NightHours = minutesToHours(nightMin)
		sum.SundayHours = minutesToHours(sundayMin)
		sum.HolidayHours = minutesToHours(holidayMin)
		summaries = append(summaries, sum)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].EmployeeID < summaries[j].EmployeeID
	})
	return summaries
}

// nightMinutes counts the minutes of a span falling inside the night
// window. Shift spans live in [0, 2880) once overnight normalization has
// run, so the window is tested on both the shift's first and second day.
func (s *Summarizer) nightMinutes(span interval.TimeSpan) int {
	nightStart := s.Rules.NightShiftStartHour * interval.MinutesPerHour
	nightEnd := s.Rules.NightShiftEndHour * interval.MinutesPerHour

	windows := []interval.TimeSpan{
		{Start: 0, End: nightEnd},
		{Start: nightStart, End: interval.MinutesPerDay + nightEnd},
		{Start: interval.MinutesPerDay + nightStart, End: 2 * interval.MinutesPerDay},
	}

	total := 0
	for _, w := range windows {
		total += interval.OverlapMinutes(span, w)
	}
	return total
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(interval.MinutesPerHour)).
		Round(2)
}
