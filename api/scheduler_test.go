/*
scheduler_test.go - Tests for the background compliance auditor
*/
package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/roster-engine/api"
	"github.com/warp/roster-engine/compliance"
	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/store/sqlite"
)

func TestComplianceAuditor_Sweep(t *testing.T) {
	// GIVEN: A store holding a 13-hour shift
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.CreateEmployee(ctx, roster.Employee{
		ID: "emp-1", FirstName: "Anna", LastName: "Kowalska",
	}))
	require.NoError(t, store.CreateAssignment(ctx, roster.Assignment{
		ID:         "a1",
		EmployeeID: "emp-1",
		Date:       roster.NewDay(2025, 6, 9),
		Kind:       roster.KindShift,
		StartTime:  "07:00",
		EndTime:    "20:00",
	}))

	// WHEN: The auditor starts
	auditor := api.NewComplianceAuditor(store, compliance.NewEngine(compliance.PolishLaborLaw()))
	auditor.Interval = 10 * time.Millisecond
	auditor.Start()
	defer auditor.Stop()

	// THEN: A sweep completes and reports the breach
	require.Eventually(t, func() bool {
		_, _, ok := auditor.LastReport()
		return ok
	}, 2*time.Second, 10*time.Millisecond, "sweep never completed")

	report, ranAt, ok := auditor.LastReport()
	require.True(t, ok)
	assert.False(t, ranAt.IsZero())
	assert.False(t, report.IsValid)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, compliance.RuleDailyHours, report.Violations[0].Type)
}

func TestComplianceAuditor_Disabled(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	auditor := api.NewComplianceAuditor(store, compliance.NewEngine(compliance.PolishLaborLaw()))
	auditor.Enabled = false
	auditor.Start()
	auditor.Stop()

	_, _, ok := auditor.LastReport()
	assert.False(t, ok, "disabled auditor must not sweep")
}

func TestGetAuditReport_NotEnabled(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/schedules/audit", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
