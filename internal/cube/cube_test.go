package cube

import (
	"testing"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/orientation"
)

func TestNewCubeIsSolved(t *testing.T) {
	c := New()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
}

func TestSingleTurnBreaksSolved(t *testing.T) {
	for _, f := range orientation.Faces {
		c := New()
		c.Turn(f, 1)
		if c.IsSolved() {
			t.Errorf("cube should not be solved after %s", f)
		}
	}
}

func TestFourQuarterTurnsIsIdentity(t *testing.T) {
	for _, f := range orientation.Faces {
		c := New()
		for i := 0; i < 4; i++ {
			c.Turn(f, 1)
		}
		if !c.IsSolved() {
			t.Errorf("%s x 4 should return to solved", f)
			t.Log(c.String())
		}
	}
}

func TestHalfTurnTwiceIsIdentity(t *testing.T) {
	c := New()
	c.Turn(orientation.R, 2)
	c.Turn(orientation.R, -2)
	if !c.IsSolved() {
		t.Error("R2 R2 should return to solved")
		t.Log(c.String())
	}
}

func TestSexyMoveSixTimesReturnsToSolved(t *testing.T) {
	// (R U R' U') x 6 = identity
	c := New()
	for i := 0; i < 6; i++ {
		c.Turn(orientation.R, 1)
		c.Turn(orientation.U, 1)
		c.Turn(orientation.R, -1)
		c.Turn(orientation.U, -1)
		if i < 5 && c.IsSolved() {
			t.Fatalf("solved after %d repetitions", i+1)
		}
	}
	if !c.IsSolved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestTurnRejectsUnknownInput(t *testing.T) {
	c := New()
	if c.Turn(orientation.Face('X'), 1) {
		t.Error("unknown face should be rejected")
	}
	if c.Turn(orientation.U, 3) {
		t.Error("turn 3 should be rejected")
	}
	if !c.IsSolved() {
		t.Error("rejected turns must not change the cube")
	}
}

func TestApplySolutionThenInverse(t *testing.T) {
	sol, err := compiler.ParseSolution("R2 U3 F2 B1 L3 D1")
	if err != nil {
		t.Fatal(err)
	}

	c := New()
	if err := c.ApplySolution(sol); err != nil {
		t.Fatal(err)
	}
	if c.IsSolved() {
		t.Fatal("scrambled cube reports solved")
	}
	if err := c.ApplySolution(Inverse(sol)); err != nil {
		t.Fatal(err)
	}
	if !c.IsSolved() {
		t.Error("solution followed by its inverse should be solved")
		t.Log(c.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	clone := c.Clone()
	clone.Turn(orientation.F, 1)
	if !c.IsSolved() {
		t.Error("turning the clone changed the original")
	}
}

func TestInverse(t *testing.T) {
	sol, _ := compiler.ParseSolution("U1 R3 F2")
	if got := Inverse(sol).String(); got != "F2 R1 U3" {
		t.Errorf("Inverse = %q, want %q", got, "F2 R1 U3")
	}
}
