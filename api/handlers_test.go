/*
handlers_test.go - HTTP-level tests for the scheduling API

Tests for:
- Employee creation and validation errors
- Assignment creation with conflict rejection (409 + conflict payload)
- Updates excluding the updated record from the conflict set
- The precheck endpoint
- Full-schedule validation reports
- Payroll hour summaries and the holiday calendar
*/
package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/roster-engine/api"
	"github.com/warp/roster-engine/compliance"
	"github.com/warp/roster-engine/store/sqlite"
)

// =============================================================================
// TEST HARNESS
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err, "create store")
	t.Cleanup(func() { store.Close() })

	h := api.NewHandler(store, compliance.PolishLaborLaw())
	srv := httptest.NewServer(api.NewRouter(h, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createEmployee(t *testing.T, srv *httptest.Server, id, first, last string) {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", api.CreateEmployeeRequest{
		ID: id, FirstName: first, LastName: last,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create employee %s", id)
}

func createShift(t *testing.T, srv *httptest.Server, employeeID, date, start, end string) api.AssignmentDTO {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/assignments", api.AssignmentRequest{
		EmployeeID: employeeID, Date: date, Kind: "shift",
		StartTime: start, EndTime: end,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create shift %s %s-%s", date, start, end)
	return decode[api.AssignmentDTO](t, resp)
}

// =============================================================================
// EMPLOYEE TESTS
// =============================================================================

func TestCreateEmployee(t *testing.T) {
	srv := newTestServer(t)

	// WHEN: Creating an employee
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", api.CreateEmployeeRequest{
		ID: "emp-1", FirstName: "Anna", LastName: "Kowalska",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	got := decode[api.EmployeeDTO](t, resp)

	// THEN: The record is echoed back and listed
	assert.Equal(t, "emp-1", got.ID)
	assert.Equal(t, "Anna", got.FirstName)

	listResp := doJSON(t, http.MethodGet, srv.URL+"/api/employees", nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	list := decode[[]api.EmployeeDTO](t, listResp)
	require.Len(t, list, 1)
	assert.Equal(t, "Kowalska", list[0].LastName)
}

func TestCreateEmployee_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", api.CreateEmployeeRequest{
		ID: "emp-1",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetEmployee_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/employees/nobody", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// ASSIGNMENT TESTS
// =============================================================================

func TestCreateAssignment(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")

	got := createShift(t, srv, "emp-1", "2025-06-09", "08:00", "16:00")

	assert.NotEmpty(t, got.ID, "server assigns the ID")
	assert.Equal(t, "2025-06-09", got.Date)
	assert.Equal(t, "shift", got.Kind)
}

func TestCreateAssignment_Conflict(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")

	// GIVEN: An existing morning shift
	existing := createShift(t, srv, "emp-1", "2025-06-09", "08:00", "16:00")

	// WHEN: Adding an overlapping shift for the same employee and day
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/assignments", api.AssignmentRequest{
		EmployeeID: "emp-1", Date: "2025-06-09", Kind: "shift",
		StartTime: "15:00", EndTime: "23:00",
	})

	// THEN: 409 with the conflicting record and the same-day list attached
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	conflict := decode[api.ConflictResponse](t, resp)
	assert.Equal(t, existing.ID, conflict.Conflict.ID)
	assert.NotEmpty(t, conflict.Error)
	require.Len(t, conflict.SameDay, 1)
	assert.Equal(t, existing.ID, conflict.SameDay[0].ID)
}

func TestCreateAssignment_BackToBack(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")

	createShift(t, srv, "emp-1", "2025-06-09", "08:00", "16:00")

	// A shift starting exactly when the previous one ends is not a conflict.
	createShift(t, srv, "emp-1", "2025-06-09", "16:00", "20:00")
}

func TestCreateAssignment_FullDayBlocks(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")

	// GIVEN: A vacation day
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/assignments", api.AssignmentRequest{
		EmployeeID: "emp-1", Date: "2025-06-09", Kind: "leave",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// THEN: Any shift on the same day conflicts
	shiftResp := doJSON(t, http.MethodPost, srv.URL+"/api/assignments", api.AssignmentRequest{
		EmployeeID: "emp-1", Date: "2025-06-09", Kind: "shift",
		StartTime: "08:00", EndTime: "16:00",
	})
	defer shiftResp.Body.Close()
	assert.Equal(t, http.StatusConflict, shiftResp.StatusCode)
}

func TestCreateAssignment_UnknownEmployee(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/assignments", api.AssignmentRequest{
		EmployeeID: "nobody", Date: "2025-06-09", Kind: "shift",
		StartTime: "08:00", EndTime: "16:00",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateAssignment_BadClockLabel(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")

	for _, label := range []string{"8:00", "25:00", "08:60", "0800"} {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/assignments", api.AssignmentRequest{
			EmployeeID: "emp-1", Date: "2025-06-09", Kind: "shift",
			StartTime: label, EndTime: "16:00",
		})
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "label %q", label)
	}
}

func TestUpdateAssignment_ExcludesSelf(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")

	// GIVEN: An existing shift
	existing := createShift(t, srv, "emp-1", "2025-06-09", "08:00", "16:00")

	// WHEN: Moving it to a window that overlaps its own old position
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/assignments/"+existing.ID, api.AssignmentRequest{
		EmployeeID: "emp-1", Date: "2025-06-09", Kind: "shift",
		StartTime: "09:00", EndTime: "17:00",
	})

	// THEN: The record does not conflict with itself
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.AssignmentDTO](t, resp)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, "09:00", got.StartTime)
}

func TestUpdateAssignment_ConflictsWithOther(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")

	morning := createShift(t, srv, "emp-1", "2025-06-09", "08:00", "12:00")
	evening := createShift(t, srv, "emp-1", "2025-06-09", "16:00", "20:00")

	// Moving the evening shift onto the morning one is rejected.
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/assignments/"+evening.ID, api.AssignmentRequest{
		EmployeeID: "emp-1", Date: "2025-06-09", Kind: "shift",
		StartTime: "10:00", EndTime: "14:00",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	conflict := decode[api.ConflictResponse](t, resp)
	assert.Equal(t, morning.ID, conflict.Conflict.ID)
}

func TestDeleteAssignment(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")
	existing := createShift(t, srv, "emp-1", "2025-06-09", "08:00", "16:00")

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/assignments/"+existing.ID, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	again := doJSON(t, http.MethodDelete, srv.URL+"/api/assignments/"+existing.ID, nil)
	again.Body.Close()
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

// =============================================================================
// PRECHECK TESTS
// =============================================================================

func TestPrecheckAssignment(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")
	createShift(t, srv, "emp-1", "2025-06-09", "08:00", "16:00")

	// GIVEN: 8 hours already scheduled; WHEN: prechecking 6 more
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/assignments/precheck", api.AssignmentRequest{
		EmployeeID: "emp-1", Date: "2025-06-09", Kind: "shift",
		StartTime: "17:00", EndTime: "23:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.PrecheckResponse](t, resp)

	// THEN: 14 hours total breaches the absolute daily cap
	assert.False(t, got.IsValid)
	require.Len(t, got.Violations, 1)
	assert.Equal(t, "daily_hours", got.Violations[0].Type)
	assert.Equal(t, 14.0, got.Violations[0].MeasuredValue)

	// Nothing was persisted by the precheck.
	listResp := doJSON(t, http.MethodGet,
		srv.URL+"/api/employees/emp-1/assignments?from=2025-06-09&to=2025-06-09", nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	assert.Len(t, decode[[]api.AssignmentDTO](t, listResp), 1)
}

func TestPrecheckAssignment_WithinLimits(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")
	createShift(t, srv, "emp-1", "2025-06-09", "08:00", "16:00")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/assignments/precheck", api.AssignmentRequest{
		EmployeeID: "emp-1", Date: "2025-06-09", Kind: "shift",
		StartTime: "17:00", EndTime: "18:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.PrecheckResponse](t, resp)

	assert.True(t, got.IsValid)
	assert.Empty(t, got.Violations)
}

// =============================================================================
// SCHEDULE VALIDATION TESTS
// =============================================================================

func TestValidateSchedule(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")

	// GIVEN: A 13-hour shift in the store
	createShift(t, srv, "emp-1", "2025-06-09", "07:00", "20:00")

	// WHEN: Validating the whole schedule
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/schedules/validate", api.ValidateScheduleRequest{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[api.ReportDTO](t, resp)

	// THEN: The daily-hours breach is reported with the score applied
	assert.False(t, report.IsValid)
	assert.Equal(t, 80, report.ComplianceScore)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "daily_hours", report.Violations[0].Type)
	assert.Equal(t, "critical", report.Violations[0].Severity)
	assert.Equal(t, "Anna Kowalska", report.Violations[0].EmployeeLabel)
	assert.Equal(t, 1, report.Summary.CriticalViolations)
}

func TestValidateSchedule_Clean(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")
	createShift(t, srv, "emp-1", "2025-06-09", "08:00", "16:00")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/schedules/validate", api.ValidateScheduleRequest{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[api.ReportDTO](t, resp)

	assert.True(t, report.IsValid)
	assert.Equal(t, 100, report.ComplianceScore)
	assert.Empty(t, report.Violations)
	assert.Empty(t, report.Warnings)
}

func TestValidateSchedule_Range(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")

	// A 13-hour shift outside the validated window is ignored.
	createShift(t, srv, "emp-1", "2025-05-05", "07:00", "20:00")
	createShift(t, srv, "emp-1", "2025-06-09", "08:00", "16:00")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/schedules/validate", api.ValidateScheduleRequest{
		From: "2025-06-01", To: "2025-06-30",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[api.ReportDTO](t, resp)
	assert.True(t, report.IsValid)
}

// =============================================================================
// PAYROLL AND HOLIDAY TESTS
// =============================================================================

func TestGetEmployeeHours(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")

	// GIVEN: One 8-hour shift with a 30-minute break
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/assignments", api.AssignmentRequest{
		EmployeeID: "emp-1", Date: "2025-06-09", Kind: "shift",
		StartTime: "08:00", EndTime: "16:00", BreakMinutes: 30,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	hoursResp := doJSON(t, http.MethodGet, srv.URL+"/api/employees/emp-1/hours", nil)
	require.Equal(t, http.StatusOK, hoursResp.StatusCode)
	got := decode[api.HoursSummaryDTO](t, hoursResp)

	assert.Equal(t, "Anna Kowalska", got.EmployeeLabel)
	assert.Equal(t, 1, got.ShiftCount)
	assert.Equal(t, "8", got.GrossHours)
	assert.Equal(t, "0.5", got.BreakHours)
	assert.Equal(t, "7.5", got.NetHours)
	assert.Equal(t, "0", got.NightHours)
}

func TestListHolidays(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/holidays?year=2025", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	holidays := decode[[]api.HolidayDTO](t, resp)

	require.Len(t, holidays, 13)
	byDate := make(map[string]string, len(holidays))
	for _, h := range holidays {
		byDate[h.Date] = h.Name
	}
	assert.Contains(t, byDate, "2025-05-01")
	assert.Contains(t, byDate, "2025-04-20", "Easter Sunday")
}

func TestListHolidays_BadYear(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/holidays?year=abc", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPayrollSummary(t *testing.T) {
	srv := newTestServer(t)
	createEmployee(t, srv, "emp-1", "Anna", "Kowalska")
	createEmployee(t, srv, "emp-2", "Piotr", "Nowak")
	createShift(t, srv, "emp-1", "2025-06-09", "08:00", "16:00")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/payroll/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[[]api.HoursSummaryDTO](t, resp)

	// Idle employees still appear with zero totals, ordered by ID.
	require.Len(t, got, 2)
	assert.Equal(t, "emp-1", got[0].EmployeeID)
	assert.Equal(t, "8", got[0].GrossHours)
	assert.Equal(t, "emp-2", got[1].EmployeeID)
	assert.Equal(t, "0", got[1].GrossHours)
}
