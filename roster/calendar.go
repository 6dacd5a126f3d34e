package roster

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// CALENDAR GROUPING - By date, ISO week, and rolling Sunday blocks
// =============================================================================

// GroupByDate groups assignments by exact calendar day. Day values are
// normalized on construction, so the key is always YYYY-MM-DD precision.
func GroupByDate(assignments []Assignment) map[Day][]Assignment {
	byDate := make(map[Day][]Assignment)
	for _, a := range assignments {
		byDate[a.Date] = append(byDate[a.Date], a)
	}
	return byDate
}

// ISOWeek returns the ISO-8601 year and week number for a day.
//
// The Thursday-anchored form is implemented directly because week
// boundaries feed the weekly-hours and weekly-rest rules: shift the date
// to the Thursday of its week, then count weeks from that ISO year's
// January 1st.
func ISOWeek(d Day) (year, week int) {
	// Monday=0 .. Sunday=6
	weekday := (int(d.Weekday()) + 6) % 7
	thursday := d.Time.AddDate(0, 0, 3-weekday)

	year = thursday.Year()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	week = int(thursday.Sub(jan1).Hours()/24)/7 + 1
	return year, week
}

// WeekKey formats a day's ISO week as "{isoYear}-W{2-digit week}".
func WeekKey(d Day) string {
	year, week := ISOWeek(d)
	return fmt.Sprintf("%d-W%02d", year, week)
}

// GroupByISOWeek groups assignments by their ISO week key.
// ISO years can differ from calendar years at year boundaries: 2024-12-30
// (a Monday) belongs to "2025-W01".
func GroupByISOWeek(assignments []Assignment) map[string][]Assignment {
	byWeek := make(map[string][]Assignment)
	for _, a := range assignments {
		key := WeekKey(a.Date)
		byWeek[key] = append(byWeek[key], a)
	}
	return byWeek
}

// SundaysOnly returns the assignments dated on a Sunday, in input order.
func SundaysOnly(assignments []Assignment) []Assignment {
	var sundays []Assignment
	for _, a := range assignments {
		if a.Date.IsSunday() {
			sundays = append(sundays, a)
		}
	}
	return sundays
}

// SundayBlock is one rolling block of up to four Sunday records.
type SundayBlock struct {
	Range   string
	Sundays []Assignment
}

// GroupByRollingFourWeeks chunks Sunday-dated assignments into consecutive
// groups of four by sorted position. This is positional, not calendar-window
// based: the fifth Sunday record starts a new block, and a trailing partial
// block is still reported. The Sunday-off quota evaluates each block.
func GroupByRollingFourWeeks(sundayAssignments []Assignment) []SundayBlock {
	sorted := make([]Assignment, len(sundayAssignments))
	copy(sorted, sundayAssignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var blocks []SundayBlock
	for start := 0; start < len(sorted); start += 4 {
		end := start + 4
		if end > len(sorted) {
			end = len(sorted)
		}
		chunk := sorted[start:end]
		blocks = append(blocks, SundayBlock{
			Range:   fmt.Sprintf("%s to %s", chunk[0].Date, chunk[len(chunk)-1].Date),
			Sundays: chunk,
		})
	}
	return blocks
}

// SortedDates returns the distinct assignment dates in ascending order.
// Rule checks iterate dates through this to keep report output deterministic.
func SortedDates(byDate map[Day][]Assignment) []Day {
	dates := make([]Day, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// SortedWeekKeys returns the ISO week keys in ascending order.
// The "{year}-W{2-digit}" format sorts correctly as a plain string.
func SortedWeekKeys(byWeek map[string][]Assignment) []string {
	keys := make([]string, 0, len(byWeek))
	for k := range byWeek {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
