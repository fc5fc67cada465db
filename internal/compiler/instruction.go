// Package compiler turns solver output into robot command streams.
package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cuberobot/internal/orientation"
)

// ErrMalformedInstruction is returned when a solver token cannot be decoded.
var ErrMalformedInstruction = errors.New("cuberobot: malformed instruction")

// Instruction is one face twist from the solver, independent of how the
// robot will carry it out.
type Instruction struct {
	Face  orientation.Face `json:"face"`
	Twist int              `json:"twist"` // -1, +1 or +2
}

// Token returns the solver token for the instruction ("U1", "R3", "F2").
func (in Instruction) Token() string {
	digit := in.Twist
	if digit == -1 {
		digit = 3
	}
	return fmt.Sprintf("%s%d", in.Face, digit)
}

func (in Instruction) String() string {
	return in.Token()
}

// ParseInstruction decodes a two-character solver token: a face letter and a
// digit, where 3 means a quarter turn the other way.
func ParseInstruction(tok string) (Instruction, error) {
	if len(tok) != 2 {
		return Instruction{}, fmt.Errorf("%w: %q is not a two-character token", ErrMalformedInstruction, tok)
	}

	face, ok := orientation.ParseFace(tok[0])
	if !ok {
		return Instruction{}, fmt.Errorf("%w: %q has unknown face %q", ErrMalformedInstruction, tok, tok[0])
	}

	var twist int
	switch tok[1] {
	case '1':
		twist = 1
	case '2':
		twist = 2
	case '3':
		twist = -1
	default:
		return Instruction{}, fmt.Errorf("%w: %q has twist digit %q (want 1, 2 or 3)", ErrMalformedInstruction, tok, tok[1])
	}

	return Instruction{Face: face, Twist: twist}, nil
}

// Solution is an ordered list of instructions.
type Solution []Instruction

// String formats the solution as space-separated solver tokens.
func (s Solution) String() string {
	if len(s) == 0 {
		return ""
	}

	parts := make([]string, len(s))
	for i, in := range s {
		parts[i] = in.Token()
	}

	return strings.Join(parts, " ")
}

// ParseSolution decodes a flat string of solver tokens. Spaces, newlines and
// carriage returns between tokens are ignored.
func ParseSolution(text string) (Solution, error) {
	var sol Solution

	for i := 0; i < len(text); {
		switch text[i] {
		case ' ', '\n', '\r':
			i++
			continue
		}
		if i+1 >= len(text) {
			return nil, fmt.Errorf("%w: dangling %q at offset %d", ErrMalformedInstruction, text[i:], i)
		}
		in, err := ParseInstruction(text[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		sol = append(sol, in)
		i += 2
	}

	return sol, nil
}

// MarshalText encodes the solution as solver tokens.
func (s Solution) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Solution) UnmarshalText(text []byte) error {
	sol, err := ParseSolution(string(text))
	if err != nil {
		return err
	}
	*s = sol
	return nil
}
