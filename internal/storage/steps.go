package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
)

// StepRecord is one compiled instruction in the database.
type StepRecord struct {
	StepID            int64  `json:"step_id"`
	RunID             string `json:"run_id"`
	StepIndex         int    `json:"index"`
	Token             string `json:"token"`
	Face              string `json:"face"`
	Twist             int    `json:"twist"`
	Commands          string `json:"commands"`
	OrientationBefore string `json:"orientation_before"`
	OrientationAfter  string `json:"orientation_after"`
	BottomAfter       int    `json:"bottom_after"`
}

// StepRepository provides CRUD operations for steps.
type StepRepository struct {
	db *DB
}

// NewStepRepository creates a new step repository.
func NewStepRepository(db *DB) *StepRepository {
	return &StepRepository{db: db}
}

// CreateBatch stores every step of a run in a single transaction.
func (r *StepRepository) CreateBatch(runID string, steps []compiler.Step) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		return insertSteps(tx, runID, steps)
	})
}

func insertSteps(ex execer, runID string, steps []compiler.Step) error {
	for _, s := range steps {
		_, err := ex.Exec(`
			INSERT INTO steps (run_id, step_index, token, face, twist, commands,
				orientation_before, orientation_after, bottom_after)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, s.Index, s.Instruction.Token(), s.Instruction.Face.String(), s.Instruction.Twist,
			s.Commands(), s.Start.Orientation.String(), s.End.Orientation.String(), int(s.End.Bottom))
		if err != nil {
			return fmt.Errorf("failed to create step %d: %w", s.Index, err)
		}
	}
	return nil
}

// GetByRun retrieves all steps for a run in order.
func (r *StepRepository) GetByRun(runID string) ([]StepRecord, error) {
	rows, err := r.db.Query(`
		SELECT step_id, run_id, step_index, token, face, twist, commands,
			orientation_before, orientation_after, bottom_after
		FROM steps
		WHERE run_id = ?
		ORDER BY step_index
	`, runID)

	if err != nil {
		return nil, fmt.Errorf("failed to get steps: %w", err)
	}
	defer rows.Close()

	var steps []StepRecord
	for rows.Next() {
		var s StepRecord
		err := rows.Scan(&s.StepID, &s.RunID, &s.StepIndex, &s.Token, &s.Face, &s.Twist,
			&s.Commands, &s.OrientationBefore, &s.OrientationAfter, &s.BottomAfter)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, s)
	}

	return steps, rows.Err()
}

// Count returns the number of steps stored for a run.
func (r *StepRepository) Count(runID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM steps WHERE run_id = ?", runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count steps: %w", err)
	}
	return count, nil
}

// SaveProgram stores prog as a new run with all of its steps.
func SaveProgram(db *DB, prog *compiler.Program, notes string) (*Run, error) {
	run := &Run{
		SolutionText:     prog.Solution.String(),
		CommandText:      prog.Commands(),
		InstructionCount: len(prog.Steps),
		PrimitiveCount:   prog.PrimitiveCount(),
		FinalOrientation: prog.Final.Orientation.String(),
		FinalBottom:      int(prog.Final.Bottom),
		FinalTop:         prog.Final.Top.String(),
	}
	if notes != "" {
		run.Notes = &notes
	}

	err := db.Transaction(func(tx *sql.Tx) error {
		if _, err := createRun(tx, run); err != nil {
			return err
		}
		return insertSteps(tx, run.RunID, prog.Steps)
	})
	if err != nil {
		return nil, err
	}

	return run, nil
}
