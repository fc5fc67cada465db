package simulate

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/cube"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

var solutions = []string{
	"U1",
	"D1 D1 D1",
	"D2 D2",
	"D1 L1",
	"R2 U3 F2 B1 L3",
	"F2 R2 B2 L2 U2 D2",
	"U1 R3 F2 D1 L2 B3",
	"L1 L1 L1 R3 R3 B2 F1 U3 D2 R1",
}

func TestDecompileRecoversSolution(t *testing.T) {
	for _, text := range solutions {
		sol, err := compiler.ParseSolution(text)
		if err != nil {
			t.Fatal(err)
		}
		prog, err := compiler.Run(sol, robot.Initial)
		if err != nil {
			t.Fatalf("Run(%q): %v", text, err)
		}

		rep, err := Decompile(prog.Commands())
		if err != nil {
			t.Fatalf("Decompile(%q): %v", prog.Commands(), err)
		}
		if rep.Solution.String() != sol.String() {
			t.Errorf("%q: decompiled %q", text, rep.Solution)
		}
		if rep.Final != prog.Final {
			t.Errorf("%q: replay ended at %s, compiler at %s", text, rep.Final, prog.Final)
		}
		if rep.Primitives != prog.PrimitiveCount() {
			t.Errorf("%q: replay ran %d primitives, compiler emitted %d", text, rep.Primitives, prog.PrimitiveCount())
		}
	}
}

func TestVerifySolvesScramble(t *testing.T) {
	for _, text := range solutions {
		sol, _ := compiler.ParseSolution(text)
		commands, err := compiler.Translate(text)
		if err != nil {
			t.Fatal(err)
		}

		v, err := Verify(cube.Inverse(sol), commands)
		if err != nil {
			t.Fatalf("Verify(%q): %v", text, err)
		}
		if !v.Solved {
			t.Errorf("%q: cube not solved\n%s", text, v.Net)
		}
	}
}

func TestVerifyDetectsWrongScramble(t *testing.T) {
	scramble, _ := compiler.ParseSolution("R1")
	v, err := Verify(scramble, "cro")
	if err != nil {
		t.Fatal(err)
	}
	if v.Solved {
		t.Error("D1 should not undo R1")
	}
	if v.Net == "" {
		t.Error("expected a cube net for an unsolved result")
	}
}

func TestDecompileErrors(t *testing.T) {
	tests := []struct {
		commands string
		want     error
	}{
		{"x", ErrMalformedCommand},
		{"f", ErrMalformedCommand},
		{"fc", ErrMalformedCommand},
		{"h", ErrMalformedCommand},      // servo already at HOME
		{"rr", ErrMalformedCommand},     // second r does not move
		{"cro cr", ErrMalformedCommand}, // still at CW
	}

	for _, tt := range tests {
		if _, err := Decompile(tt.commands); !errors.Is(err, tt.want) {
			t.Errorf("Decompile(%q): err = %v, want %v", tt.commands, err, tt.want)
		}
	}
}

func TestDecompileEmpty(t *testing.T) {
	rep, err := Decompile("")
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Solution) != 0 || rep.Final != robot.Initial {
		t.Errorf("empty replay: %+v", rep)
	}
}
