package roster

import "github.com/warp/roster-engine/interval"

// =============================================================================
// CONFLICT DETECTION - Same employee, same day
// =============================================================================

// FindConflict decides whether a candidate assignment collides with the
// existing assignments for the same employee and day.
//
// The caller is responsible for the pre-filter: every element of
// sameDayExisting must already share EmployeeID and Date with the candidate
// (on update, the record being updated must be excluded). Clock labels are
// assumed well-formed; boundary validation happens before this is called.
//
// The first overlapping record in input order is returned, along with the
// full same-day list regardless of outcome, so callers can always show
// what is already scheduled.
func FindConflict(candidate Assignment, sameDayExisting []Assignment) (*Assignment, []Assignment) {
	candidateSpan, err := candidate.Span()
	if err != nil {
		return nil, sameDayExisting
	}

	for i := range sameDayExisting {
		existingSpan, err := sameDayExisting[i].Span()
		if err != nil {
			continue
		}
		if interval.Overlaps(candidateSpan, existingSpan) {
			return &sameDayExisting[i], sameDayExisting
		}
	}
	return nil, sameDayExisting
}

// HasConflict is the boolean form of FindConflict.
func HasConflict(candidate Assignment, sameDayExisting []Assignment) bool {
	conflict, _ := FindConflict(candidate, sameDayExisting)
	return conflict != nil
}
