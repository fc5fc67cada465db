package storage

import (
	"path/filepath"
	"testing"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	return db
}

func compileProgram(t *testing.T, text string) *compiler.Program {
	t.Helper()
	sol, err := compiler.ParseSolution(text)
	if err != nil {
		t.Fatal(err)
	}
	prog, err := compiler.Run(sol, robot.Initial)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestMigrateUp(t *testing.T) {
	db := openTestDB(t)

	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("version = %d, want 1", v)
	}

	// A second run is a no-op.
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}
	v, _ = db.CurrentVersion()
	if v != 1 {
		t.Errorf("version after rerun = %d, want 1", v)
	}
}

func TestSaveProgram(t *testing.T) {
	db := openTestDB(t)
	prog := compileProgram(t, "D1 L1")

	run, err := SaveProgram(db, prog, "first")
	if err != nil {
		t.Fatalf("SaveProgram: %v", err)
	}
	if run.RunID == "" {
		t.Fatal("empty run ID")
	}

	got, err := NewRunRepository(db).Get(run.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("run not found")
	}
	if got.SolutionText != "D1 L1" || got.CommandText != "cro hfofofocro" {
		t.Errorf("run = %+v", got)
	}
	if got.InstructionCount != 2 || got.PrimitiveCount != 10 {
		t.Errorf("counts = %d/%d", got.InstructionCount, got.PrimitiveCount)
	}
	if got.FinalOrientation != "LD" || got.FinalBottom != 1 || got.FinalTop != "open" {
		t.Errorf("final = %s %d %s", got.FinalOrientation, got.FinalBottom, got.FinalTop)
	}
	if got.Notes == nil || *got.Notes != "first" {
		t.Errorf("notes = %v", got.Notes)
	}

	steps, err := NewStepRepository(db).GetByRun(run.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 2 {
		t.Fatalf("got %d steps", len(steps))
	}
	if steps[0].Token != "D1" || steps[0].Commands != "cro" || steps[0].OrientationAfter != "DF" {
		t.Errorf("step 0 = %+v", steps[0])
	}
	if steps[1].Token != "L1" || steps[1].Face != "L" || steps[1].Twist != 1 ||
		steps[1].Commands != "hfofofocro" || steps[1].OrientationBefore != "DF" || steps[1].OrientationAfter != "LD" {
		t.Errorf("step 1 = %+v", steps[1])
	}
}

func TestRunRepositoryGetMissing(t *testing.T) {
	db := openTestDB(t)
	run, err := NewRunRepository(db).Get("nope")
	if err != nil {
		t.Fatal(err)
	}
	if run != nil {
		t.Errorf("got %+v, want nil", run)
	}

	last, err := NewRunRepository(db).GetLast()
	if err != nil || last != nil {
		t.Errorf("GetLast on empty db = %v, %v", last, err)
	}
}

func TestRunRepositoryListAndLast(t *testing.T) {
	db := openTestDB(t)
	var ids []string
	for _, text := range []string{"U1", "D2", "R1 R1"} {
		run, err := SaveProgram(db, compileProgram(t, text), "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, run.RunID)
	}

	repo := NewRunRepository(db)
	runs, err := repo.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs", len(runs))
	}
	if runs[0].RunID != ids[2] || runs[2].RunID != ids[0] {
		t.Errorf("list order = %s %s %s", runs[0].RunID, runs[1].RunID, runs[2].RunID)
	}
	if runs[0].Notes != nil {
		t.Errorf("notes = %v, want nil", *runs[0].Notes)
	}

	limited, err := repo.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d", len(limited))
	}

	last, err := repo.GetLast()
	if err != nil {
		t.Fatal(err)
	}
	if last == nil || last.RunID != ids[2] || last.CommandText != "lfocho cro" {
		t.Errorf("last = %+v", last)
	}
}

func TestRunRepositoryDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	run, err := SaveProgram(db, compileProgram(t, "U1 R3"), "")
	if err != nil {
		t.Fatal(err)
	}

	steps := NewStepRepository(db)
	if n, _ := steps.Count(run.RunID); n != 2 {
		t.Fatalf("step count = %d, want 2", n)
	}

	if err := NewRunRepository(db).Delete(run.RunID); err != nil {
		t.Fatal(err)
	}
	if n, _ := steps.Count(run.RunID); n != 0 {
		t.Errorf("step count after delete = %d, want 0", n)
	}
	if err := NewRunRepository(db).Delete(run.RunID); err == nil {
		t.Error("deleting a missing run succeeded")
	}
}

func TestStepRepositoryCreateBatch(t *testing.T) {
	db := openTestDB(t)
	prog := compileProgram(t, "F1 B1")

	id, err := NewRunRepository(db).Create(&Run{
		SolutionText: prog.Solution.String(),
		CommandText:  prog.Commands(),
	})
	if err != nil {
		t.Fatal(err)
	}

	steps := NewStepRepository(db)
	if err := steps.CreateBatch(id, prog.Steps); err != nil {
		t.Fatal(err)
	}
	// Duplicate indexes roll the whole batch back.
	if err := steps.CreateBatch(id, prog.Steps); err == nil {
		t.Error("duplicate batch succeeded")
	}
	if n, _ := steps.Count(id); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestLoadMigrations(t *testing.T) {
	ms, err := loadMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) == 0 || ms[0].version != 1 || ms[0].name != "001_initial.sql" {
		t.Fatalf("migrations = %+v", ms)
	}
	for i := 1; i < len(ms); i++ {
		if ms[i].version <= ms[i-1].version {
			t.Errorf("migrations out of order at %d", i)
		}
	}
}
