package compliance

import "github.com/warp/roster-engine/roster"

// =============================================================================
// SEVERITIES AND RULE TYPES
// =============================================================================

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// RuleType identifies which statutory rule produced a finding.
type RuleType string

const (
	RuleDailyHours  RuleType = "daily_hours"
	RuleDailyRest   RuleType = "daily_rest"
	RuleWeeklyHours RuleType = "weekly_hours"
	RuleWeeklyRest  RuleType = "weekly_rest"
	RuleSundaysOff  RuleType = "sundays_off"
	RuleNightShifts RuleType = "night_shifts"
)

// =============================================================================
// FINDINGS - Violations and warnings
// =============================================================================

// Violation is a hard breach of a statutory rule. Violations block a
// schedule from being considered valid.
type Violation struct {
	Type          RuleType
	Severity      Severity
	EmployeeID    string
	EmployeeLabel string

	// Exactly one of Date, Week or Period locates the finding, depending
	// on the rule's granularity.
	Date   *roster.Day
	Week   string
	Period string

	MeasuredValue float64
	LimitValue    float64
	Message       string
	Suggestion    string
}

// Warning is a soft finding: the roster is still publishable, but the
// condition needs attention (for example an equivalent working-time system).
type Warning struct {
	Type          RuleType
	Severity      Severity
	EmployeeID    string
	EmployeeLabel string

	Date   *roster.Day
	Week   string
	Period string

	MeasuredValue float64
	LimitValue    float64
	Message       string
	Suggestion    string
}

// =============================================================================
// REPORT
// =============================================================================

// Summary tallies findings by severity across all employees.
type Summary struct {
	TotalViolations    int
	CriticalViolations int
	HighViolations     int
	TotalWarnings      int
}

// Report is the outcome of one validation run. It is always best-effort:
// a heavily non-compliant roster still produces a full report rather than
// an error.
type Report struct {
	IsValid         bool
	Violations      []Violation
	Warnings        []Warning
	ComplianceScore int // 0..100
	Summary         Summary
}

func summarize(violations []Violation, warnings []Warning) Summary {
	s := Summary{
		TotalViolations: len(violations),
		TotalWarnings:   len(warnings),
	}
	for _, v := range violations {
		switch v.Severity {
		case SeverityCritical:
			s.CriticalViolations++
		case SeverityHigh:
			s.HighViolations++
		}
	}
	return s
}
