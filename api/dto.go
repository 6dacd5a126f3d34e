/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Request types carry go-playground/validator struct tags. The "clock"
  tag is a custom HH:MM check registered in handlers.go; format errors
  are rejected here at the boundary, before any core logic runs.

SEE ALSO:
  - handlers.go: Uses these types
  - compliance/report.go: The domain report these DTOs mirror
*/
package api

import (
	"github.com/warp/roster-engine/compliance"
	"github.com/warp/roster-engine/payroll"
	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CreateEmployeeRequest struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

func toEmployeeDTO(e roster.Employee) EmployeeDTO {
	return EmployeeDTO{ID: e.ID, FirstName: e.FirstName, LastName: e.LastName}
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

type AssignmentDTO struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	Date         string `json:"date"`
	Kind         string `json:"kind"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	BreakMinutes int    `json:"break_minutes"`
}

// AssignmentRequest creates or replaces one schedule record. Clock times
// are required for shifts only; full-day kinds ignore them.
type AssignmentRequest struct {
	EmployeeID   string `json:"employee_id" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Kind         string `json:"kind" validate:"required,oneof=shift leave sick off holiday"`
	StartTime    string `json:"start_time" validate:"required_if=Kind shift,omitempty,clock"`
	EndTime      string `json:"end_time" validate:"required_if=Kind shift,omitempty,clock"`
	BreakMinutes int    `json:"break_minutes" validate:"gte=0"`
}

func toAssignmentDTO(a roster.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		Date:         a.Date.String(),
		Kind:         string(a.Kind),
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		BreakMinutes: a.BreakMinutes,
	}
}

func toAssignmentDTOs(assignments []roster.Assignment) []AssignmentDTO {
	dtos := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		dtos = append(dtos, toAssignmentDTO(a))
	}
	return dtos
}

// ConflictResponse is the 409 body carrying the conflicting record and the
// full same-day list for client display.
type ConflictResponse struct {
	Error    string          `json:"error"`
	Conflict AssignmentDTO   `json:"conflict"`
	SameDay  []AssignmentDTO `json:"same_day"`
}

// =============================================================================
// COMPLIANCE
// =============================================================================

// ValidateScheduleRequest bounds a validation run. Empty bounds validate
// the whole stored schedule.
type ValidateScheduleRequest struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

type FindingDTO struct {
	Type          string  `json:"type"`
	Severity      string  `json:"severity"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeLabel string  `json:"employee_label"`
	Date          string  `json:"date,omitempty"`
	Week          string  `json:"week,omitempty"`
	Period        string  `json:"period,omitempty"`
	MeasuredValue float64 `json:"measured_value"`
	LimitValue    float64 `json:"limit_value"`
	Message       string  `json:"message"`
	Suggestion    string  `json:"suggestion"`
}

type SummaryDTO struct {
	TotalViolations    int `json:"total_violations"`
	CriticalViolations int `json:"critical_violations"`
	HighViolations     int `json:"high_violations"`
	TotalWarnings      int `json:"total_warnings"`
}

type ReportDTO struct {
	IsValid         bool         `json:"is_valid"`
	Violations      []FindingDTO `json:"violations"`
	Warnings        []FindingDTO `json:"warnings"`
	ComplianceScore int          `json:"compliance_score"`
	Summary         SummaryDTO   `json:"summary"`
}

func toViolationDTO(v compliance.Violation) FindingDTO {
	dto := FindingDTO{
		Type:          string(v.Type),
		Severity:      string(v.Severity),
		EmployeeID:    v.EmployeeID,
		EmployeeLabel: v.EmployeeLabel,
		Week:          v.Week,
		Period:        v.Period,
		MeasuredValue: v.MeasuredValue,
		LimitValue:    v.LimitValue,
		Message:       v.Message,
		Suggestion:    v.Suggestion,
	}
	if v.Date != nil {
		dto.Date = v.Date.String()
	}
	return dto
}

func toWarningDTO(w compliance.Warning) FindingDTO {
	dto := FindingDTO{
		Type:          string(w.Type),
		Severity:      string(w.Severity),
		EmployeeID:    w.EmployeeID,
		EmployeeLabel: w.EmployeeLabel,
		Week:          w.Week,
		Period:        w.Period,
		MeasuredValue: w.MeasuredValue,
		LimitValue:    w.LimitValue,
		Message:       w.Message,
		Suggestion:    w.Suggestion,
	}
	if w.Date != nil {
		dto.Date = w.Date.String()
	}
	return dto
}

func toReportDTO(r compliance.Report) ReportDTO {
	dto := ReportDTO{
		IsValid:         r.IsValid,
		Violations:      make([]FindingDTO, 0, len(r.Violations)),
		Warnings:        make([]FindingDTO, 0, len(r.Warnings)),
		ComplianceScore: r.ComplianceScore,
		Summary: SummaryDTO{
			TotalViolations:    r.Summary.TotalViolations,
			CriticalViolations: r.Summary.CriticalViolations,
			HighViolations:     r.Summary.HighViolations,
			TotalWarnings:      r.Summary.TotalWarnings,
		},
	}
	for _, v := range r.Violations {
		dto.Violations = append(dto.Violations, toViolationDTO(v))
	}
	for _, w := range r.Warnings {
		dto.Warnings = append(dto.Warnings, toWarningDTO(w))
	}
	return dto
}

// AuditReportDTO wraps a background sweep result with its completion time.
type AuditReportDTO struct {
	RanAt  string    `json:"ran_at"`
	Report ReportDTO `json:"report"`
}

// PrecheckResponse is the fast-path answer before persisting one assignment.
type PrecheckResponse struct {
	IsValid    bool         `json:"is_valid"`
	Violations []FindingDTO `json:"violations"`
}

// =============================================================================
// PAYROLL AND HOLIDAYS
// =============================================================================

type HoursSummaryDTO struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeLabel string `json:"employee_label"`
	ShiftCount    int    `json:"shift_count"`
	GrossHours    string `json:"gross_hours"`
	BreakHours    string `json:"break_hours"`
	NetHours      string `json:"net_hours"`
	NightHours    string `json:"night_hours"`
	SundayHours   string `json:"sunday_hours"`
	HolidayHours  string `json:"holiday_hours"`
}

func toHoursSummaryDTO(s payroll.EmployeeSummary) HoursSummaryDTO {
	return HoursSummaryDTO{
		EmployeeID:    s.EmployeeID,
		EmployeeLabel: s.EmployeeLabel,
		ShiftCount:    s.ShiftCount,
		GrossHours:    s.GrossHours.String(),
		BreakHours:    s.BreakHours.String(),
		NetHours:      s.NetHours.String(),
		NightHours:    s.NightHours.String(),
		SundayHours:   s.SundayHours.String(),
		HolidayHours:  s.HolidayHours.String(),
	}
}

type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}
