package compiler

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

// Program is a whole compiled solution.
type Program struct {
	Solution Solution
	Steps    []Step
	Start    robot.State
	Final    robot.State
}

// Groups returns one command group per instruction.
func (p *Program) Groups() []string {
	groups := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		groups[i] = s.Commands()
	}
	return groups
}

// Commands returns the command stream: the groups separated by single
// spaces.
func (p *Program) Commands() string {
	return strings.Join(p.Groups(), " ")
}

// PrimitiveCount returns the number of primitives across all steps.
func (p *Program) PrimitiveCount() int {
	n := 0
	for _, s := range p.Steps {
		n += len(s.Actions)
	}
	return n
}

// Run compiles sol instruction by instruction, threading the robot state
// from start through every step. The first error aborts the run; no partial
// program is returned.
func Run(sol Solution, start robot.State) (*Program, error) {
	prog := &Program{
		Solution: sol,
		Steps:    make([]Step, 0, len(sol)),
		Start:    start,
	}

	state := start
	for i, in := range sol {
		step, err := Compile(in, state)
		if err != nil {
			return nil, fmt.Errorf("instruction %d (%s): %w", i, in.Token(), err)
		}
		step.Index = i
		prog.Steps = append(prog.Steps, step)
		state = step.End
	}
	prog.Final = state

	return prog, nil
}

// Translate parses text and compiles it from the robot's initial state,
// returning the command stream.
func Translate(text string) (string, error) {
	sol, err := ParseSolution(text)
	if err != nil {
		return "", err
	}
	prog, err := Run(sol, robot.Initial)
	if err != nil {
		return "", err
	}
	return prog.Commands(), nil
}
