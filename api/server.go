/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. Instrument: Prometheus RPS/latency/in-flight accounting
  5. CORS:       Cross-origin requests for the scheduling frontend

ROUTE GROUPS:
  /api/employees/*    Employee records, assignments, hour summaries
  /api/assignments/*  Assignment writes with conflict checking
  /api/schedules/*    Compliance validation and background audit results
  /api/scenarios/*    Demo data loaders (development only)
  /api/holidays       Public-holiday calendar
  /api/payroll/*      Hour summaries for payroll handoff
  /metrics            Prometheus scrape endpoint

SECURITY NOTE:
  No authentication middleware; the surrounding platform terminates auth
  and tenant scoping before requests reach this service.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/warp/roster-engine/obs"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(obs.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/assignments", h.GetEmployeeAssignments)
			r.Get("/{id}/hours", h.GetEmployeeHours)
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Post("/", h.CreateAssignment)
			r.Post("/precheck", h.PrecheckAssignment)
			r.Put("/{id}", h.UpdateAssignment)
			r.Delete("/{id}", h.DeleteAssignment)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Post("/validate", h.ValidateSchedule)
			r.Get("/audit", h.GetAuditReport)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})

		r.Get("/holidays", h.ListHolidays)
		r.Get("/payroll/summary", h.PayrollSummary)
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", obs.Handler())

	return r
}
