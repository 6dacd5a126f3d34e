/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	schedule data for testing and demos. Each scenario creates employees
	and assignments that demonstrate specific compliance behavior.

AVAILABLE SCENARIOS:

	clean-week:      Fully compliant week for a small team
	overtime-breach: Daily-cap and rest-period violations
	night-rotation:  A night-shift run exceeding the consecutive limit
	sunday-heavy:    Four worked Sundays in a four-week window

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create employees
 3. Insert the scenario's assignments

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "overtime-breach"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shared handler context and JSON helpers
  - compliance/engine.go: The rules each scenario exercises
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// ScenarioDTO describes one loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var scenarios = []ScenarioDTO{
	{
		ID:          "clean-week",
		Name:        "Clean Week",
		Description: "Fully compliant week for a small team",
		Category:    "compliance",
	},
	{
		ID:          "overtime-breach",
		Name:        "Overtime Breach",
		Description: "Daily-cap violations and a broken rest period",
		Category:    "compliance",
	},
	{
		ID:          "night-rotation",
		Name:        "Night Rotation",
		Description: "Four consecutive night shifts for one employee",
		Category:    "compliance",
	},
	{
		ID:          "sunday-heavy",
		Name:        "Sunday Heavy",
		Description: "All four Sundays worked in a four-week window",
		Category:    "compliance",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		h.writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			h.writeJSON(w, http.StatusOK, s)
			return
		}
	}
	h.writeJSON(w, http.StatusOK, ScenarioDTO{ID: h.currentScenario, Name: h.currentScenario})
}

// LoadScenario resets the database and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		h.mapError(w, err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "clean-week":
		err = h.loadCleanWeekScenario(ctx)
	case "overtime-breach":
		err = h.loadOvertimeBreachScenario(ctx)
	case "night-rotation":
		err = h.loadNightRotationScenario(ctx)
	case "sunday-heavy":
		err = h.loadSundayHeavyScenario(ctx)
	default:
		h.writeError(w, http.StatusBadRequest, "unknown scenario")
		return
	}
	if err != nil {
		h.mapError(w, err)
		return
	}

	h.currentScenario = req.ScenarioID
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) seedEmployees(ctx context.Context, employees ...roster.Employee) error {
	for _, e := range employees {
		if err := h.Store.CreateEmployee(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) seedShift(ctx context.Context, employeeID string, date roster.Day, start, end string, breakMinutes int) error {
	return h.Store.CreateAssignment(ctx, roster.Assignment{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		Date:         date,
		Kind:         roster.KindShift,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakMinutes,
	})
}

func (h *Handler) seedFullDay(ctx context.Context, employeeID string, date roster.Day, kind roster.Kind) error {
	return h.Store.CreateAssignment(ctx, roster.Assignment{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
		Kind:       kind,
	})
}

// loadCleanWeekScenario seeds a Monday-Friday week of 8-hour shifts that
// passes validation with a perfect score.
func (h *Handler) loadCleanWeekScenario(ctx context.Context) error {
	if err := h.seedEmployees(ctx,
		roster.Employee{ID: "emp-001", FirstName: "Anna", LastName: "Kowalska"},
		roster.Employee{ID: "emp-002", FirstName: "Piotr", LastName: "Nowak"},
	); err != nil {
		return err
	}

	monday := roster.NewDay(2025, 6, 9)
	for i := 0; i < 5; i++ {
		day := monday.AddDays(i)
		if err := h.seedShift(ctx, "emp-001", day, "08:00", "16:00", 30); err != nil {
			return err
		}
		if err := h.seedShift(ctx, "emp-002", day, "12:00", "20:00", 30); err != nil {
			return err
		}
	}
	return h.seedFullDay(ctx, "emp-002", monday.AddDays(5), roster.KindOff)
}

// loadOvertimeBreachScenario seeds a 13-hour day followed by an early start,
// producing a daily-cap violation and a broken rest period.
func (h *Handler) loadOvertimeBreachScenario(ctx context.Context) error {
	if err := h.seedEmployees(ctx,
		roster.Employee{ID: "emp-001", FirstName: "Anna", LastName: "Kowalska"},
	); err != nil {
		return err
	}

	monday := roster.NewDay(2025, 6, 9)
	if err := h.seedShift(ctx, "emp-001", monday, "07:00", "20:00", 45); err != nil {
		return err
	}
	// 10 hours of rest before the next start.
	return h.seedShift(ctx, "emp-001", monday.AddDays(1), "06:00", "14:00", 30)
}

// loadNightRotationScenario seeds four consecutive 22:00-06:00 shifts,
// one past the consecutive-night limit.
func (h *Handler) loadNightRotationScenario(ctx context.Context) error {
	if err := h.seedEmployees(ctx,
		roster.Employee{ID: "emp-001", FirstName: "Anna", LastName: "Kowalska"},
	); err != nil {
		return err
	}

	monday := roster.NewDay(2025, 6, 9)
	for i := 0; i < 4; i++ {
		if err := h.seedShift(ctx, "emp-001", monday.AddDays(i), "22:00", "06:00", 30); err != nil {
			return err
		}
	}
	return nil
}

// loadSundayHeavyScenario seeds a shift on every Sunday of a four-week
// window, leaving none free.
func (h *Handler) loadSundayHeavyScenario(ctx context.Context) error {
	if err := h.seedEmployees(ctx,
		roster.Employee{ID: "emp-001", FirstName: "Anna", LastName: "Kowalska"},
	); err != nil {
		return err
	}

	firstSunday := roster.NewDay(2025, 6, 1)
	for i := 0; i < 4; i++ {
		if err := h.seedShift(ctx, "emp-001", firstSunday.AddDays(7*i), "10:00", "18:00", 30); err != nil {
			return err
		}
	}
	return nil
}
