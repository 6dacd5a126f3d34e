package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/roster-engine/compliance"
	"github.com/warp/roster-engine/payroll"
	"github.com/warp/roster-engine/roster"
)

var anna = roster.Employee{ID: "emp-1", FirstName: "Anna", LastName: "Kowalska"}

func newSummarizer() *payroll.Summarizer {
	return payroll.NewSummarizer(compliance.PolishLaborLaw(), compliance.PolishHolidays{})
}

func shift(employeeID string, date roster.Day, start, end string, breakMin int) roster.Assignment {
	return roster.Assignment{
		EmployeeID:   employeeID,
		Date:         date,
		Kind:         roster.KindShift,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakMin,
	}
}

func wantHours(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestSummarize_GrossBreakNet(t *testing.T) {
	// GIVEN: Two 8h shifts with 30-minute breaks
	// THEN: Gross counts the full span; net subtracts the breaks

	summaries := newSummarizer().Summarize([]roster.Assignment{
		shift("emp-1", roster.NewDay(2025, time.June, 10), "08:00", "16:00", 30),
		shift("emp-1", roster.NewDay(2025, time.June, 11), "08:00", "16:00", 30),
	}, []roster.Employee{anna})

	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	s := summaries[0]
	if s.ShiftCount != 2 {
		t.Errorf("shift count = %d, want 2", s.ShiftCount)
	}
	wantHours(t, "gross", s.GrossHours, "16")
	wantHours(t, "break", s.BreakHours, "1")
	wantHours(t, "net", s.NetHours, "15")
}

func TestSummarize_NightHours(t *testing.T) {
	// A 22:00-06:00 shift sits entirely inside the 21:00-07:00 window.
	summaries := newSummarizer().Summarize([]roster.Assignment{
		shift("emp-1", roster.NewDay(2025, time.June, 10), "22:00", "06:00", 0),
	}, []roster.Employee{anna})

	wantHours(t, "night", summaries[0].NightHours, "8")

	// An 18:00-23:00 evening shift overlaps it by two hours.
	summaries = newSummarizer().Summarize([]roster.Assignment{
		shift("emp-1", roster.NewDay(2025, time.June, 10), "18:00", "23:00", 0),
	}, []roster.Employee{anna})

	wantHours(t, "night", summaries[0].NightHours, "2")
}

func TestSummarize_SundayAndHolidayHours(t *testing.T) {
	summaries := newSummarizer().Summarize([]roster.Assignment{
		shift("emp-1", roster.NewDay(2025, time.June, 8), "08:00", "16:00", 0), // Sunday
		shift("emp-1", roster.NewDay(2025, time.May, 1), "08:00", "12:00", 0),  // Labour Day
	}, []roster.Employee{anna})

	s := summaries[0]
	wantHours(t, "sunday", s.SundayHours, "8")
	wantHours(t, "holiday", s.HolidayHours, "4")
	wantHours(t, "gross", s.GrossHours, "12")
}

func TestSummarize_FullDayKindsContributeNothing(t *testing.T) {
	summaries := newSummarizer().Summarize([]roster.Assignment{
		{EmployeeID: "emp-1", Date: roster.NewDay(2025, time.June, 10), Kind: roster.KindLeave},
	}, []roster.Employee{anna})

	s := summaries[0]
	if s.ShiftCount != 0 {
		t.Errorf("leave must not count as a shift, got %d", s.ShiftCount)
	}
	wantHours(t, "gross", s.GrossHours, "0")
}

func TestSummarize_IncludesIdleEmployees(t *testing.T) {
	// Payroll sees the whole roster, zero totals included, ordered by ID.
	ewa := roster.Employee{ID: "emp-0", FirstName: "Ewa", LastName: "Lis"}

	summaries := newSummarizer().Summarize([]roster.Assignment{
		shift("emp-1", roster.NewDay(2025, time.June, 10), "08:00", "16:00", 0),
	}, []roster.Employee{anna, ewa})

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].EmployeeID != "emp-0" {
		t.Errorf("summaries must be ordered by employee ID, got %s first", summaries[0].EmployeeID)
	}
	wantHours(t, "idle gross", summaries[0].GrossHours, "0")
}
