// Package cuberobot compiles Rubik's cube solutions into command strings for
// a two-servo solving robot.
//
// The robot holds the cube on a platform turned by a bottom servo with three
// stops (CCW, HOME, CW). A top servo either grips the upper two layers, so a
// platform turn twists the bottom face, or swings across to tip the cube
// forward. A solver's face twists therefore have to be turned into a series
// of flips, platform spins and gripped twists that bring each face to the
// bottom first.
//
// # Quick Start
//
//	cmds, err := cuberobot.Translate("R2 U3 F2 B1 L3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cmds) // lfocro focho rfoclo fofocho lfohclo
//
// # Command Alphabet
//
//	f   flip the cube forward (always followed by o)
//	o   open the top gripper
//	c   close the top gripper
//	l   bottom servo to CCW
//	h   bottom servo to HOME
//	r   bottom servo to CW
//
// Each instruction compiles to one group of characters; groups are joined by
// single spaces.
//
// # Solver Tokens
//
// Solutions are written as a face letter (U, D, F, B, L, R) followed by a
// digit: 1 for a quarter turn clockwise, 2 for a half turn, 3 for a quarter
// turn anticlockwise. Spaces and line breaks between tokens are ignored.
//
// # Programs
//
// Compile keeps every primitive and robot state along the way:
//
//	sol, _ := cuberobot.ParseSolution("D1 L1")
//	prog, _ := cuberobot.Compile(sol, cuberobot.WithTrace(os.Stderr))
//	fmt.Println(prog.Final.Orientation) // LD
package cuberobot

import (
	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/orientation"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
	"github.com/SeamusWaldron/cuberobot/internal/simulate"
	"github.com/SeamusWaldron/cuberobot/internal/trace"
)

type (
	// Instruction is one face twist.
	Instruction = compiler.Instruction
	// Solution is an ordered list of instructions.
	Solution = compiler.Solution
	// Program is a compiled solution.
	Program = compiler.Program
	// Step is one compiled instruction.
	Step = compiler.Step
	// State is a snapshot of the robot.
	State = robot.State
	// Orientation is which faces are on the bottom and at the front.
	Orientation = orientation.Orientation
	// Replay is a decompiled command stream.
	Replay = simulate.Replay
)

// Initial is the robot state before the first instruction: cube bottom D,
// front F, servo at HOME, gripper open.
var Initial = robot.Initial

// ParseSolution decodes solver tokens.
func ParseSolution(text string) (Solution, error) {
	return compiler.ParseSolution(text)
}

// Translate parses text and returns the robot command stream for it.
func Translate(text string) (string, error) {
	return compiler.Translate(text)
}

// Compile compiles sol. Without options it starts from Initial.
func Compile(sol Solution, opts ...Option) (*Program, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	prog, err := compiler.Run(sol, cfg.start)
	if err != nil {
		return nil, err
	}

	if cfg.trace != nil {
		l := trace.NewLogger(cfg.trace)
		l.Program(prog)
		if err := l.Err(); err != nil {
			return prog, err
		}
	}

	return prog, nil
}

// Decompile recovers the solution a command stream performs.
func Decompile(commands string) (*Replay, error) {
	return simulate.Decompile(commands)
}
