/*
handlers.go - HTTP API handlers for the scheduling service

PURPOSE:
  Exposes the conflict detector and compliance engine via REST. Handles
  HTTP request/response, JSON serialization, boundary validation, and
  delegates every decision to the pure core packages.

ENDPOINTS:
  Employees:
    GET    /api/employees                    List employees
    POST   /api/employees                    Create employee
    GET    /api/employees/{id}               Get employee
    GET    /api/employees/{id}/assignments   Employee's assignments in a range
    GET    /api/employees/{id}/hours         Payroll hour summary

  Assignments:
    POST   /api/assignments                  Create (409 on conflict)
    PUT    /api/assignments/{id}             Update (409 on conflict)
    DELETE /api/assignments/{id}             Delete
    POST   /api/assignments/precheck         Fast daily-cap pre-check

  Compliance:
    POST   /api/schedules/validate           Full-schedule validation report

  Reference data:
    GET    /api/holidays                     Public holidays for a year
    GET    /api/payroll/summary              All employees' hour summaries

REQUEST FLOW:
  1. Decode and validate the DTO (validator/v10, custom "clock" tag)
  2. Load the pre-filtered records from the store
  3. Call core logic (roster.FindConflict, compliance.Engine)
  4. Serialize the result; conflicts map to 409 with the records attached

ERROR HANDLING:
  - 400: Validation errors, malformed clock labels, invalid intervals
  - 404: Unknown employee or assignment
  - 409: Schedule conflict, with conflicting records for client display
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/warp/roster-engine/compliance"
	"github.com/warp/roster-engine/interval"
	"github.com/warp/roster-engine/obs"
	"github.com/warp/roster-engine/payroll"
	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      *sqlite.Store
	Engine     *compliance.Engine
	Summarizer *payroll.Summarizer

	validate *validator.Validate

	// Auditor is optional; set it to expose the background audit report.
	Auditor *ComplianceAuditor

	currentScenario string
}

// NewHandler creates a handler backed by the given store and rule set.
func NewHandler(store *sqlite.Store, rules compliance.RuleSet) *Handler {
	v := validator.New()
	// "clock" accepts strict HH:MM labels only.
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := interval.ToMinutes(fl.Field().String())
		return err == nil
	})

	return &Handler{
		Store:      store,
		Engine:     compliance.NewEngine(rules),
		Summarizer: payroll.NewSummarizer(rules, compliance.PolishHolidays{}),
		validate:   v,
	}
}

// =============================================================================
// JSON HELPERS
// =============================================================================

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// mapError translates domain errors into HTTP responses.
func (h *Handler) mapError(w http.ResponseWriter, err error) {
	switch {
	case roster.IsNotFound(err):
		h.writeError(w, http.StatusNotFound, err.Error())
	case roster.IsClientError(err):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.mapError(w, err)
		return
	}
	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, toEmployeeDTO(e))
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := h.readJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	emp := roster.Employee{ID: req.ID, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.Store.CreateEmployee(r.Context(), emp); err != nil {
		h.mapError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.mapError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

func (h *Handler) GetEmployeeAssignments(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.rangeParams(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.Store.GetEmployee(r.Context(), id); err != nil {
		h.mapError(w, err)
		return
	}

	assignments, err := h.Store.ListForEmployee(r.Context(), id, from, to)
	if err != nil {
		h.mapError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAssignmentDTOs(assignments))
}

func (h *Handler) GetEmployeeHours(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.rangeParams(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		h.mapError(w, err)
		return
	}

	assignments, err := h.Store.ListForEmployee(r.Context(), id, from, to)
	if err != nil {
		h.mapError(w, err)
		return
	}
	summaries := h.Summarizer.Summarize(assignments, []roster.Employee{emp})
	h.writeJSON(w, http.StatusOK, toHoursSummaryDTO(summaries[0]))
}

// =============================================================================
// ASSIGNMENT HANDLERS
// =============================================================================

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.assignmentFromRequest(w, r, "")
	if !ok {
		return
	}

	existing, err := h.Store.ListForEmployeeDay(r.Context(), candidate.EmployeeID, candidate.Date)
	if err != nil {
		h.mapError(w, err)
		return
	}

	if h.rejectOnConflict(w, candidate, existing) {
		return
	}

	candidate.ID = uuid.NewString()
	if err := h.Store.CreateAssignment(r.Context(), candidate); err != nil {
		h.mapError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toAssignmentDTO(candidate))
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Store.GetAssignment(r.Context(), id); err != nil {
		h.mapError(w, err)
		return
	}

	candidate, ok := h.assignmentFromRequest(w, r, id)
	if !ok {
		return
	}

	sameDay, err := h.Store.ListForEmployeeDay(r.Context(), candidate.EmployeeID, candidate.Date)
	if err != nil {
		h.mapError(w, err)
		return
	}
	// The record being updated must not conflict with itself.
	existing := make([]roster.Assignment, 0, len(sameDay))
	for _, a := range sameDay {
		if a.ID != id {
			existing = append(existing, a)
		}
	}

	if h.rejectOnConflict(w, candidate, existing) {
		return
	}

	if err := h.Store.UpdateAssignment(r.Context(), candidate); err != nil {
		h.mapError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAssignmentDTO(candidate))
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAssignment(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PrecheckAssignment runs the cheap daily-cap check before a client commits
// to creating an assignment. It does not persist anything.
func (h *Handler) PrecheckAssignment(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.assignmentFromRequest(w, r, "")
	if !ok {
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), candidate.EmployeeID)
	if err != nil {
		h.mapError(w, err)
		return
	}
	existing, err := h.Store.ListForEmployeeDay(r.Context(), candidate.EmployeeID, candidate.Date)
	if err != nil {
		h.mapError(w, err)
		return
	}

	isValid, violations := h.Engine.ValidateSingleAssignment(candidate, emp, existing)
	resp := PrecheckResponse{IsValid: isValid, Violations: make([]FindingDTO, 0, len(violations))}
	for _, v := range violations {
		resp.Violations = append(resp.Violations, toViolationDTO(v))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// assignmentFromRequest decodes, validates and maps an AssignmentRequest.
// Boundary validation happens here: the core may assume well-formed spans.
func (h *Handler) assignmentFromRequest(w http.ResponseWriter, r *http.Request, id string) (roster.Assignment, bool) {
	var req AssignmentRequest
	if err := h.readJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return roster.Assignment{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return roster.Assignment{}, false
	}

	kind := roster.Kind(req.Kind)
	if kind == roster.KindShift {
		if err := interval.ValidateShiftTimes(req.StartTime, req.EndTime); err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return roster.Assignment{}, false
		}
	}

	date, err := roster.ParseDay(req.Date)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return roster.Assignment{}, false
	}

	if _, err := h.Store.GetEmployee(r.Context(), req.EmployeeID); err != nil {
		h.mapError(w, err)
		return roster.Assignment{}, false
	}

	a := roster.Assignment{
		ID:           id,
		EmployeeID:   req.EmployeeID,
		Date:         date,
		Kind:         kind,
		BreakMinutes: req.BreakMinutes,
	}
	if kind == roster.KindShift {
		a.StartTime = req.StartTime
		a.EndTime = req.EndTime
	}
	return a, true
}

// rejectOnConflict runs the conflict check and writes the 409 response when
// the candidate overlaps an existing record. Returns true when rejected.
func (h *Handler) rejectOnConflict(w http.ResponseWriter, candidate roster.Assignment, existing []roster.Assignment) bool {
	conflict, sameDay := roster.FindConflict(candidate, existing)
	obs.ObserveConflictCheck(conflict != nil)
	if conflict == nil {
		return false
	}

	conflictErr := &roster.ConflictError{
		Candidate:   candidate,
		Conflicting: *conflict,
		SameDay:     sameDay,
	}
	h.writeJSON(w, http.StatusConflict, ConflictResponse{
		Error:    conflictErr.Error(),
		Conflict: toAssignmentDTO(*conflict),
		SameDay:  toAssignmentDTOs(sameDay),
	})
	return true
}

// =============================================================================
// COMPLIANCE HANDLERS
// =============================================================================

func (h *Handler) ValidateSchedule(w http.ResponseWriter, r *http.Request) {
	// An empty body validates the whole stored schedule.
	var req ValidateScheduleRequest
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	assignments, err := h.Store.ListAssignments(r.Context(), from, to)
	if err != nil {
		h.mapError(w, err)
		return
	}
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.mapError(w, err)
		return
	}

	start := time.Now()
	report := h.Engine.Validate(assignments, employees)
	obs.ObserveValidation(time.Since(start),
		countBySeverity(report.Violations), warningsBySeverity(report.Warnings))

	h.writeJSON(w, http.StatusOK, toReportDTO(report))
}

// GetAuditReport returns the latest background sweep result.
func (h *Handler) GetAuditReport(w http.ResponseWriter, r *http.Request) {
	if h.Auditor == nil {
		h.writeError(w, http.StatusServiceUnavailable, "background audit is not enabled")
		return
	}
	report, ranAt, ok := h.Auditor.LastReport()
	if !ok {
		h.writeError(w, http.StatusNotFound, "no audit sweep has completed yet")
		return
	}
	h.writeJSON(w, http.StatusOK, AuditReportDTO{
		RanAt:  ranAt.Format(time.RFC3339),
		Report: toReportDTO(report),
	})
}

// =============================================================================
// REFERENCE DATA HANDLERS
// =============================================================================

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if q := r.URL.Query().Get("year"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		year = parsed
	}

	holidays := compliance.PolishHolidays{}.Holidays(year)
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, HolidayDTO{Date: hol.Date.String(), Name: hol.Name})
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) PayrollSummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.rangeParams(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	assignments, err := h.Store.ListAssignments(r.Context(), from, to)
	if err != nil {
		h.mapError(w, err)
		return
	}
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.mapError(w, err)
		return
	}

	summaries := h.Summarizer.Summarize(assignments, employees)
	dtos := make([]HoursSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		dtos = append(dtos, toHoursSummaryDTO(s))
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// PARAMETER HELPERS
// =============================================================================

func (h *Handler) rangeParams(r *http.Request) (roster.Day, roster.Day, error) {
	return parseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
}

func parseRange(fromLabel, toLabel string) (from, to roster.Day, err error) {
	if fromLabel != "" {
		from, err = roster.ParseDay(fromLabel)
		if err != nil {
			return roster.Day{}, roster.Day{}, err
		}
	}
	if toLabel != "" {
		to, err = roster.ParseDay(toLabel)
		if err != nil {
			return roster.Day{}, roster.Day{}, err
		}
	}
	return from, to, nil
}

func countBySeverity(violations []compliance.Violation) map[string]int {
	counts := make(map[string]int)
	for _, v := range violations {
		counts[string(v.Severity)]++
	}
	return counts
}

func warningsBySeverity(warnings []compliance.Warning) map[string]int {
	counts := make(map[string]int)
	for _, w := range warnings {
		counts[string(w.Severity)]++
	}
	return counts
}
