/*
scheduler.go - Background compliance audit scheduler

PURPOSE:
  Periodically validates the full stored schedule against the labor-law
  rule set and records the result. Planners see violations the moment
  they open the dashboard instead of waiting for an on-demand run.

DESIGN:
  - Runs a background goroutine with a configurable sweep interval
  - Each sweep loads every assignment and employee, runs the engine,
    and keeps the latest report for the audit endpoint
  - Sweep results feed the validation metrics and the structured log

CONFIGURATION:
  - Interval: How often to sweep (default: 1 hour)
  - Enabled:  Whether the auditor is active (default: true)

USAGE:
  auditor := NewComplianceAuditor(store, engine)
  auditor.Start()
  // ... later
  auditor.Stop()

SEE ALSO:
  - handlers.go: GetAuditReport endpoint (latest sweep result)
  - compliance/engine.go: The validation the sweep runs
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/warp/roster-engine/compliance"
	"github.com/warp/roster-engine/obs"
	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/store/sqlite"
)

// ComplianceAuditor runs periodic full-schedule validation sweeps.
type ComplianceAuditor struct {
	Store    *sqlite.Store
	Engine   *compliance.Engine
	Interval time.Duration
	Enabled  bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex

	// reportMu guards the sweep results separately from the lifecycle
	// lock; a sweep may finish while Stop is waiting on the WaitGroup.
	reportMu   sync.Mutex
	lastReport *compliance.Report
	lastRun    time.Time
}

// NewComplianceAuditor creates an auditor with the default hourly sweep.
func NewComplianceAuditor(store *sqlite.Store, engine *compliance.Engine) *ComplianceAuditor {
	return &ComplianceAuditor{
		Store:    store,
		Engine:   engine,
		Interval: 1 * time.Hour,
		Enabled:  true,
		stop:     make(chan struct{}),
	}
}

// Start begins the background sweeps.
func (a *ComplianceAuditor) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.Enabled {
		obs.LogEvent(map[string]any{"event": "audit_disabled"})
		return
	}

	a.ticker = time.NewTicker(a.Interval)
	a.wg.Add(1)
	go a.run()

	obs.LogEvent(map[string]any{
		"event":    "audit_started",
		"interval": a.Interval.String(),
	})
}

// Stop halts the sweeps and waits for an in-flight sweep to finish.
func (a *ComplianceAuditor) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ticker != nil {
		a.ticker.Stop()
		close(a.stop)
		a.wg.Wait()
		a.ticker = nil
		obs.LogEvent(map[string]any{"event": "audit_stopped"})
	}
}

// LastReport returns the most recent sweep result, if any sweep has run.
func (a *ComplianceAuditor) LastReport() (compliance.Report, time.Time, bool) {
	a.reportMu.Lock()
	defer a.reportMu.Unlock()

	if a.lastReport == nil {
		return compliance.Report{}, time.Time{}, false
	}
	return *a.lastReport, a.lastRun, true
}

func (a *ComplianceAuditor) run() {
	defer a.wg.Done()

	// Sweep immediately on start.
	a.sweep()

	for {
		select {
		case <-a.ticker.C:
			a.sweep()
		case <-a.stop:
			return
		}
	}
}

func (a *ComplianceAuditor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	assignments, err := a.Store.ListAssignments(ctx, roster.Day{}, roster.Day{})
	if err != nil {
		obs.LogEvent(map[string]any{"event": "audit_error", "error": err.Error()})
		return
	}
	employees, err := a.Store.ListEmployees(ctx)
	if err != nil {
		obs.LogEvent(map[string]any{"event": "audit_error", "error": err.Error()})
		return
	}

	start := time.Now()
	report := a.Engine.Validate(assignments, employees)
	obs.ObserveValidation(time.Since(start),
		countBySeverity(report.Violations), warningsBySeverity(report.Warnings))

	a.reportMu.Lock()
	a.lastReport = &report
	a.lastRun = time.Now().UTC()
	a.reportMu.Unlock()

	obs.LogEvent(map[string]any{
		"event":      "audit_sweep",
		"is_valid":   report.IsValid,
		"violations": len(report.Violations),
		"warnings":   len(report.Warnings),
		"score":      report.ComplianceScore,
	})
}
