// Package store persists named plans with their optimizer results.
//
// Backed by SQLite opened in WAL mode. The request and result payloads
// are stored as JSON blobs; only the fields used for listing and lookup
// are broken out into columns. Use ":memory:" as the path for tests.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fpgo/leave-planner/internal/domain"
)

// ErrNotFound is returned when no plan matches the lookup.
var ErrNotFound = errors.New("plan not found")

// Store is a SQLite-backed plan store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store at the given database path, creating the schema if
// needed. Use ":memory:" for an in-memory database.
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

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS plans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		request_json TEXT NOT NULL,
		results_json TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_plans_saved_at ON plans(saved_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SavePlan inserts a plan, or replaces the existing plan with the same
// name. The plan's ID and SavedAt are filled in on return.
func (s *Store) SavePlan(ctx context.Context, plan *domain.SavedPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if plan.Name == "" {
		return fmt.Errorf("plan name is required")
	}

	requestJSON, err := json.Marshal(plan.Request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	resultsJSON, err := json.Marshal(plan.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	savedAt := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO plans (name, request_json, results_json, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			request_json = excluded.request_json,
			results_json = excluded.results_json,
			saved_at = excluded.saved_at`,
		plan.Name, string(requestJSON), string(resultsJSON), savedAt)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	plan.SavedAt = savedAt
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		plan.ID = id
	} else {
		// Upserts do not always report the row id; look it up.
		row := s.db.QueryRowContext(ctx, `SELECT id FROM plans WHERE name = ?`, plan.Name)
		if err := row.Scan(&plan.ID); err != nil {
			return fmt.Errorf("failed to resolve plan id: %w", err)
		}
	}
	return nil
}

// GetPlan loads a plan by ID.
func (s *Store) GetPlan(ctx context.Context, id int64) (*domain.SavedPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, request_json, results_json, saved_at
		FROM plans WHERE id = ?`, id)
	return scanPlan(row)
}

// GetPlanByName loads a plan by its unique name.
func (s *Store) GetPlanByName(ctx context.Context, name string) (*domain.SavedPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, request_json, results_json, saved_at
		FROM plans WHERE name = ?`, name)
	return scanPlan(row)
}

// ListPlans returns all plans, most recently saved first. The result
// payloads are included; callers listing many plans should project what
// they need.
func (s *Store) ListPlans(ctx context.Context) ([]domain.SavedPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, request_json, results_json, saved_at
		FROM plans ORDER BY saved_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.SavedPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan by ID.
func (s *Store) DeletePlan(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*domain.SavedPlan, error) {
	var plan domain.SavedPlan
	var requestJSON, resultsJSON string
	err := row.Scan(&plan.ID, &plan.Name, &requestJSON, &resultsJSON, &plan.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan plan: %w", err)
	}

	if err := json.Unmarshal([]byte(requestJSON), &plan.Request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}
	if err := json.Unmarshal([]byte(resultsJSON), &plan.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	return &plan, nil
}
