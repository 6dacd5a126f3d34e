package roster

import (
	"sort"

	"github.com/warp/roster-engine/interval"
)

// =============================================================================
// REST PERIODS - Elapsed rest between work intervals
// =============================================================================

// RestHours returns the elapsed time in hours between the end of one work
// interval and the start of the next, across date boundaries. Both
// timestamps are wall-clock in the same zone; no conversion happens.
//
// The result can be negative when the inputs are misordered. Callers treat
// a negative rest as a violation, never as an error: the minimum-rest
// thresholds trip on it naturally.
func RestHours(day1 Day, endTime string, day2 Day, startTime string) float64 {
	endMinutes, err := interval.ToMinutes(endTime)
	if err != nil {
		endMinutes = 0
	}
	startMinutes, err := interval.ToMinutes(startTime)
	if err != nil {
		startMinutes = 0
	}

	end1 := day1.At(endMinutes)
	start2 := day2.At(startMinutes)
	return start2.Sub(end1).Hours()
}

// ShiftsByTime returns the shift-kind assignments sorted chronologically by
// date, then start time. Full-day kinds carry no clock times and are
// excluded; rest is only measured between worked intervals.
func ShiftsByTime(assignments []Assignment) []Assignment {
	var shifts []Assignment
	for _, a := range assignments {
		if a.Kind == KindShift {
			shifts = append(shifts, a)
		}
	}
	sort.SliceStable(shifts, func(i, j int) bool {
		if !shifts[i].Date.Equal(shifts[j].Date) {
			return shifts[i].Date.Before(shifts[j].Date)
		}
		si, _ := interval.ToMinutes(shifts[i].StartTime)
		sj, _ := interval.ToMinutes(shifts[j].StartTime)
		return si < sj
	})
	return shifts
}

// LongestRestHours returns the maximum rest between chronologically adjacent
// shifts in the given set, which the weekly-rest rule reads as the
// employee's weekly rest. The boolean is false when fewer than two shifts
// exist, in which case there is no gap to measure.
func LongestRestHours(assignments []Assignment) (float64, bool) {
	shifts := ShiftsByTime(assignments)
	if len(shifts) < 2 {
		return 0, false
	}

	longest := 0.0
	for i := 1; i < len(shifts); i++ {
		prev, cur := shifts[i-1], shifts[i]
		rest := RestHours(prev.Date, prev.EndTime, cur.Date, cur.StartTime)
		if i == 1 || rest > longest {
			longest = rest
		}
	}
	return longest, true
}
