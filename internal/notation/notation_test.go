package notation

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/orientation"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

func TestParseNotation(t *testing.T) {
	tests := []struct {
		in    string
		face  orientation.Face
		twist int
	}{
		{"R", orientation.R, 1},
		{"R'", orientation.R, -1},
		{"r2", orientation.R, 2},
		{"U2'", orientation.U, 2},
		{"F`", orientation.F, -1},
		{"B3", orientation.B, -1},
	}

	for _, tt := range tests {
		got, ok := ParseNotation(tt.in)
		if !ok {
			t.Errorf("ParseNotation(%q) failed", tt.in)
			continue
		}
		if got.Face != tt.face || got.Twist != tt.twist {
			t.Errorf("ParseNotation(%q) = %+v", tt.in, got)
		}
	}

	for _, bad := range []string{"", "X", "R4", "R''"} {
		if _, ok := ParseNotation(bad); ok {
			t.Errorf("ParseNotation(%q) should fail", bad)
		}
	}
}

func TestParseSequenceAsSolverTokens(t *testing.T) {
	sol, err := ParseSequence("R2 U' F2 B L'")
	if err != nil {
		t.Fatal(err)
	}
	if want := "R2 U3 F2 B1 L3"; sol.String() != want {
		t.Errorf("got %q, want %q", sol.String(), want)
	}

	if _, err := ParseSequence("R Q"); !errors.Is(err, compiler.ErrMalformedInstruction) {
		t.Errorf("err = %v, want ErrMalformedInstruction", err)
	}
}

func TestFormatSequenceRoundTrip(t *testing.T) {
	sol, err := compiler.ParseSolution("R2 U3 F1")
	if err != nil {
		t.Fatal(err)
	}
	text := FormatSequence(sol)
	if text != "R2 U' F" {
		t.Fatalf("FormatSequence = %q", text)
	}
	back, err := ParseSequence(text)
	if err != nil {
		t.Fatal(err)
	}
	if back.String() != sol.String() {
		t.Errorf("round trip gave %q, want %q", back, sol)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(compiler.Instruction{Face: orientation.R, Twist: -1}); got != "R down" {
		t.Errorf("Describe(R3) = %q", got)
	}
	if got := Describe(compiler.Instruction{Face: orientation.U, Twist: 2}); got != "T rotate right x 2" {
		t.Errorf("Describe(U2) = %q", got)
	}
}

func TestDescribePrimitive(t *testing.T) {
	if got := DescribePrimitive(robot.Flip{}, robot.Initial); got != "flip F face to the bottom" {
		t.Errorf("flip: %q", got)
	}

	closed := robot.Initial
	closed.Top = robot.GripperClosed
	if got := DescribePrimitive(robot.Rotate{Turn: 1}, closed); got != "twist D layer, servo to CW" {
		t.Errorf("closed rotate: %q", got)
	}
	if got := DescribePrimitive(robot.Rotate{Turn: -1}, robot.Initial); got != "spin cube, servo to CCW" {
		t.Errorf("open rotate: %q", got)
	}
}

func TestParseByName(t *testing.T) {
	tests := []struct {
		text, name, want string
	}{
		{"R1 U3", "", "R1 U3"},
		{"R1U3", Solver, "R1 U3"},
		{"R U' F2", Standard, "R1 U3 F2"},
	}
	for _, tt := range tests {
		sol, err := Parse(tt.text, tt.name)
		if err != nil {
			t.Errorf("Parse(%q, %q): %v", tt.text, tt.name, err)
			continue
		}
		if sol.String() != tt.want {
			t.Errorf("Parse(%q, %q) = %s, want %s", tt.text, tt.name, sol, tt.want)
		}
	}

	if _, err := Parse("R1", "morse"); err == nil {
		t.Error("unknown notation accepted")
	}
	if _, err := Parse("R'", Solver); !errors.Is(err, compiler.ErrMalformedInstruction) {
		t.Errorf("standard move as solver token: %v", err)
	}
}
