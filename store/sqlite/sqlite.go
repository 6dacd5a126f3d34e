/*
Package sqlite provides the SQLite-backed schedule store.

PURPOSE:
  Persists employees and schedule assignments for the HTTP service. The
  core packages (interval, roster, compliance) never touch this store;
  handlers load records here and hand plain slices to the engine.

KEY TABLES:
  employees:   Identity records
  assignments: One row per employee-day schedule record

INDEXES:
  idx_assignments_employee_date backs the conflict-check pre-filter
  ("same employee, same date"), the hot path on every write.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery improves.

USAGE:
  store, err := sqlite.New("./data/roster.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool with versioned migrations.

SEE ALSO:
  - api/handlers.go: The only consumer
  - roster/types.go: The shapes stored here
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/roster-engine/roster"
)

// Store persists employees and assignments using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reset clears all data. Used by the demo scenario loaders; never call
// this outside development environments.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM assignments; DELETE FROM employees;`)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id         TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS assignments (
		id            TEXT PRIMARY KEY,
		employee_id   TEXT NOT NULL REFERENCES employees(id),
		date          TEXT NOT NULL,
		kind          TEXT NOT NULL,
		start_time    TEXT,
		end_time      TEXT,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_employee_date
		ON assignments(employee_id, date);
	CREATE INDEX IF NOT EXISTS idx_assignments_date
		ON assignments(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) CreateEmployee(ctx context.Context, e roster.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, first_name, last_name, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.FirstName, e.LastName, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e roster.Employee
	err := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.FirstName, &e.LastName)
	if err == sql.ErrNoRows {
		return roster.Employee{}, roster.ErrEmployeeNotFound
	}
	if err != nil {
		return roster.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []roster.Employee
	for rows.Next() {
		var e roster.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

func (s *Store) CreateAssignment(ctx context.Context, a roster.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (id, employee_id, date, kind, start_time, end_time, break_minutes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.EmployeeID, a.Date.String(), string(a.Kind),
		a.StartTime, a.EndTime, a.BreakMinutes, now, now)
	if err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

func (s *Store) UpdateAssignment(ctx context.Context, a roster.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE assignments
		 SET employee_id = ?, date = ?, kind = ?, start_time = ?, end_time = ?, break_minutes = ?, updated_at = ?
		 WHERE id = ?`,
		a.EmployeeID, a.Date.String(), string(a.Kind), a.StartTime, a.EndTime,
		a.BreakMinutes, time.Now().UTC().Format(time.RFC3339), a.ID)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return roster.ErrAssignmentNotFound
	}
	return nil
}

func (s *Store) GetAssignment(ctx context.Context, id string) (roster.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, employee_id, date, kind, start_time, end_time, break_minutes
		 FROM assignments WHERE id = ?`, id)

	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return roster.Assignment{}, roster.ErrAssignmentNotFound
	}
	if err != nil {
		return roster.Assignment{}, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

func (s *Store) DeleteAssignment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return roster.ErrAssignmentNotFound
	}
	return nil
}

// ListForEmployeeDay returns one employee's assignments on one date, the
// pre-filter the conflict check requires.
func (s *Store) ListForEmployeeDay(ctx context.Context, employeeID string, date roster.Day) ([]roster.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, date, kind, start_time, end_time, break_minutes
		 FROM assignments WHERE employee_id = ? AND date = ? ORDER BY created_at, id`,
		employeeID, date.String())
	if err != nil {
		return nil, fmt.Errorf("list employee day: %w", err)
	}
	defer rows.Close()
	return collectAssignments(rows)
}

// ListAssignments returns all assignments in [from, to], both inclusive.
// Zero Day values leave that side of the range open.
func (s *Store) ListAssignments(ctx context.Context, from, to roster.Day) ([]roster.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, employee_id, date, kind, start_time, end_time, break_minutes FROM assignments`
	var clauses []string
	var args []any
	if !from.IsZero() {
		clauses = append(clauses, `date >= ?`)
		args = append(args, from.String())
	}
	if !to.IsZero() {
		clauses = append(clauses, `date <= ?`)
		args = append(args, to.String())
	}
	for i, c := range clauses {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	query += ` ORDER BY date, employee_id, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	return collectAssignments(rows)
}

// ListForEmployee returns one employee's assignments in [from, to].
func (s *Store) ListForEmployee(ctx context.Context, employeeID string, from, to roster.Day) ([]roster.Assignment, error) {
	all, err := s.ListAssignments(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var own []roster.Assignment
	for _, a := range all {
		if a.EmployeeID == employeeID {
			own = append(own, a)
		}
	}
	return own, nil
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (roster.Assignment, error) {
	var a roster.Assignment
	var date string
	var kind string
	var start, end sql.NullString

	if err := row.Scan(&a.ID, &a.EmployeeID, &date, &kind, &start, &end, &a.BreakMinutes); err != nil {
		return roster.Assignment{}, err
	}

	day, err := roster.ParseDay(date)
	if err != nil {
		return roster.Assignment{}, err
	}
	a.Date = day
	a.Kind = roster.Kind(kind)
	a.StartTime = start.String
	a.EndTime = end.String
	return a, nil
}

func collectAssignments(rows *sql.Rows) ([]roster.Assignment, error) {
	var assignments []roster.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
