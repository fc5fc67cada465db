package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout sorts lexically in UTC.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Run is one compiled solution in the database.
type Run struct {
	RunID            string    `json:"run_id"`
	CreatedAt        time.Time `json:"created_at"`
	SolutionText     string    `json:"solution"`
	CommandText      string    `json:"commands"`
	InstructionCount int       `json:"instruction_count"`
	PrimitiveCount   int       `json:"primitive_count"`
	FinalOrientation string    `json:"final_orientation"`
	FinalBottom      int       `json:"final_bottom"`
	FinalTop         string    `json:"final_top"`
	Notes            *string   `json:"notes,omitempty"`
}

// RunRepository provides CRUD operations for runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

const runColumns = `run_id, created_at, solution_text, command_text, instruction_count,
	primitive_count, final_orientation, final_bottom, final_top, notes`

// Create inserts run and returns its ID. An empty RunID is filled in.
func (r *RunRepository) Create(run *Run) (string, error) {
	return createRun(r.db.DB, run)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func createRun(ex execer, run *Run) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := ex.Exec(`
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.RunID, run.CreatedAt.UTC().Format(timeLayout), run.SolutionText, run.CommandText,
		run.InstructionCount, run.PrimitiveCount, run.FinalOrientation, run.FinalBottom,
		run.FinalTop, run.Notes)

	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	return run.RunID, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var createdAtStr string
	err := s.Scan(
		&run.RunID, &createdAtStr, &run.SolutionText, &run.CommandText,
		&run.InstructionCount, &run.PrimitiveCount, &run.FinalOrientation,
		&run.FinalBottom, &run.FinalTop, &run.Notes,
	)
	if err != nil {
		return nil, err
	}
	run.CreatedAt, _ = time.Parse(timeLayout, createdAtStr)
	return &run, nil
}

// Get retrieves a run by ID. It returns nil, nil if there is none.
func (r *RunRepository) Get(runID string) (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`
		SELECT `+runColumns+`
		FROM runs
		WHERE run_id = ?
	`, runID))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// GetLast retrieves the most recent run.
func (r *RunRepository) GetLast() (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`
		SELECT ` + runColumns + `
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}

	return run, nil
}

// List retrieves runs, newest first. A limit of 0 or less returns all.
func (r *RunRepository) List(limit int) ([]Run, error) {
	query := `
		SELECT ` + runColumns + `
		FROM runs
		ORDER BY created_at DESC, rowid DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// Delete removes a run and its steps.
func (r *RunRepository) Delete(runID string) error {
	res, err := r.db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}
