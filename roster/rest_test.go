package roster_test

import (
	"testing"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// REST PERIODS
// =============================================================================

func TestRestHours_AcrossMidnight(t *testing.T) {
	// GIVEN: Work ends 22:00 and resumes 08:00 the next day
	// THEN: 10 hours of rest

	rest := roster.RestHours(june(10), "22:00", june(11), "08:00")
	if rest != 10 {
		t.Errorf("rest = %v, want 10", rest)
	}

	// Starting one hour later reaches the 11h daily minimum
	rest = roster.RestHours(june(10), "22:00", june(11), "09:00")
	if rest != 11 {
		t.Errorf("rest = %v, want 11", rest)
	}
}

func TestRestHours_SameDay(t *testing.T) {
	rest := roster.RestHours(june(10), "12:00", june(10), "18:00")
	if rest != 6 {
		t.Errorf("rest = %v, want 6", rest)
	}
}

func TestRestHours_NegativeWhenMisordered(t *testing.T) {
	// Misordered inputs yield a negative rest, not an error; threshold
	// checks treat it as a violation.
	rest := roster.RestHours(june(11), "08:00", june(10), "22:00")
	if rest != -10 {
		t.Errorf("rest = %v, want -10", rest)
	}
}

func TestShiftsByTime_ExcludesFullDayKinds(t *testing.T) {
	assignments := []roster.Assignment{
		fullDay("l1", "emp-1", june(10), roster.KindLeave),
		shift("a2", "emp-1", june(11), "14:00", "22:00"),
		shift("a1", "emp-1", june(11), "06:00", "12:00"),
	}

	shifts := roster.ShiftsByTime(assignments)
	if len(shifts) != 2 {
		t.Fatalf("expected 2 shifts, got %d", len(shifts))
	}
	if shifts[0].ID != "a1" || shifts[1].ID != "a2" {
		t.Errorf("shifts not in chronological order: %s, %s", shifts[0].ID, shifts[1].ID)
	}
}

func TestLongestRestHours(t *testing.T) {
	// Three shifts across a week: the longest gap is the weekly rest.
	assignments := []roster.Assignment{
		shift("a1", "emp-1", june(9), "08:00", "16:00"),
		shift("a2", "emp-1", june(10), "08:00", "16:00"), // 16h gap after a1
		shift("a3", "emp-1", june(13), "08:00", "16:00"), // 64h gap after a2
	}

	rest, ok := roster.LongestRestHours(assignments)
	if !ok {
		t.Fatal("expected a measurable rest")
	}
	if rest != 64 {
		t.Errorf("longest rest = %v, want 64", rest)
	}
}

func TestLongestRestHours_SingleShift(t *testing.T) {
	assignments := []roster.Assignment{shift("a1", "emp-1", june(9), "08:00", "16:00")}
	if _, ok := roster.LongestRestHours(assignments); ok {
		t.Error("a single shift has no measurable gap")
	}
}
