// Package notation converts between standard cube notation (R, U', F2) and
// the two-character solver tokens the compiler reads (R1, U3, F2).
package notation

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/orientation"
)

// ParseNotation parses a single move in standard notation.
// Examples: R, R', R2, U, U', U2
func ParseNotation(s string) (compiler.Instruction, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return compiler.Instruction{}, false
	}

	face, ok := orientation.ParseFace(s[0])
	if !ok {
		return compiler.Instruction{}, false
	}

	twist := 1
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`", "3":
			twist = -1
		case "2", "2'", "2`":
			twist = 2
		case "1":
		default:
			return compiler.Instruction{}, false
		}
	}

	return compiler.Instruction{Face: face, Twist: twist}, true
}

// ParseSequence parses a space-separated sequence of moves. The first move
// that does not parse fails the whole sequence.
func ParseSequence(s string) (compiler.Solution, error) {
	parts := strings.Fields(s)
	sol := make(compiler.Solution, 0, len(parts))

	for _, part := range parts {
		in, ok := ParseNotation(part)
		if !ok {
			return nil, fmt.Errorf("%w: %q", compiler.ErrMalformedInstruction, part)
		}
		sol = append(sol, in)
	}

	return sol, nil
}

// Format returns the standard notation for one instruction.
func Format(in compiler.Instruction) string {
	suffix := ""
	switch in.Twist {
	case -1:
		suffix = "'"
	case 2, -2:
		suffix = "2"
	}
	return in.Face.String() + suffix
}

// FormatSequence formats a solution as space-separated standard notation.
func FormatSequence(sol compiler.Solution) string {
	if len(sol) == 0 {
		return ""
	}

	parts := make([]string, len(sol))
	for i, in := range sol {
		parts[i] = Format(in)
	}

	return strings.Join(parts, " ")
}

// Notation names accepted by Parse.
const (
	Solver   = "solver"
	Standard = "standard"
)

// Parse decodes text written in the named notation. An empty name means
// solver tokens.
func Parse(text, name string) (compiler.Solution, error) {
	switch name {
	case "", Solver:
		return compiler.ParseSolution(text)
	case Standard:
		return ParseSequence(text)
	default:
		return nil, fmt.Errorf("unknown notation %q (use %s or %s)", name, Solver, Standard)
	}
}
