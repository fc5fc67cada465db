// Package simulate replays robot command streams without hardware. It
// recovers the face twists a stream performs and checks them against a
// facelet cube.
package simulate

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/cube"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

// ErrMalformedCommand is returned for a command stream the robot could not
// execute.
var ErrMalformedCommand = errors.New("cuberobot: malformed command stream")

// Replay is the outcome of running a command stream.
type Replay struct {
	Solution   compiler.Solution `json:"solution"`
	Final      robot.State       `json:"final"`
	Primitives int               `json:"primitives"`
	Flips      int               `json:"flips"`
}

// Decompile runs commands from the robot's initial state and returns the
// twists performed, in order. A rotate with the gripper closed is a twist of
// whatever face is on the platform at the time.
func Decompile(commands string) (*Replay, error) {
	return DecompileFrom(commands, robot.Initial)
}

// DecompileFrom is Decompile starting from an arbitrary state.
func DecompileFrom(commands string, start robot.State) (*Replay, error) {
	r := &Replay{Final: start}
	state := start

	for i := 0; i < len(commands); i++ {
		var p robot.Primitive

		switch c := commands[i]; c {
		case ' ', '\n', '\r', '\t':
			continue
		case 'f':
			if i+1 >= len(commands) || commands[i+1] != 'o' {
				return nil, fmt.Errorf("%w: flip at offset %d not followed by open", ErrMalformedCommand, i)
			}
			i++
			p = robot.Flip{}
			r.Flips++
		case 'c':
			p = robot.Close{}
		case 'o':
			p = robot.Open{}
		case 'l', 'h', 'r':
			target, _ := robot.PositionForCommand(c)
			turn := int(target - state.Bottom)
			switch turn {
			case 1, -1:
			case 2, -2:
				turn = 2
			default:
				return nil, fmt.Errorf("%w: %q at offset %d does not move the servo from %s", ErrMalformedCommand, c, i, state.Bottom)
			}
			p = robot.Rotate{Turn: turn}
			if state.Top == robot.GripperClosed {
				r.Solution = append(r.Solution, compiler.Instruction{Face: state.Orientation.Bottom, Twist: turn})
			}
		default:
			return nil, fmt.Errorf("%w: unknown command %q at offset %d", ErrMalformedCommand, c, i)
		}

		next, err := p.Apply(state)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		state = next
		r.Primitives++
	}

	r.Final = state
	return r, nil
}

// Verification is the result of Verify.
type Verification struct {
	Replay
	Solved bool   `json:"solved"`
	Net    string `json:"net,omitempty"`
}

// Verify scrambles a solved cube, then applies the twists recovered from
// commands and reports whether the cube ends up solved.
func Verify(scramble compiler.Solution, commands string) (*Verification, error) {
	rep, err := Decompile(commands)
	if err != nil {
		return nil, err
	}

	c := cube.New()
	if err := c.ApplySolution(scramble); err != nil {
		return nil, fmt.Errorf("scramble: %w", err)
	}
	if err := c.ApplySolution(rep.Solution); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	v := &Verification{Replay: *rep, Solved: c.IsSolved()}
	if !v.Solved {
		v.Net = c.String()
	}
	return v, nil
}
