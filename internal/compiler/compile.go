package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cuberobot/internal/orientation"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

// ErrUnreachableFace is returned when no reorientation brings the wanted face
// to the bottom. It means the orientation table or the state is corrupt.
var ErrUnreachableFace = errors.New("cuberobot: face unreachable")

// Action is one primitive as it was executed: what ran, what it sent, and the
// state on either side.
type Action struct {
	Primitive robot.Primitive
	Command   string
	Before    robot.State
	After     robot.State
}

// Step is the compiled form of one instruction.
type Step struct {
	Index       int
	Instruction Instruction
	Actions     []Action
	Start       robot.State
	End         robot.State
}

// Commands returns the step's command group: every action's command with no
// separator.
func (s Step) Commands() string {
	var b strings.Builder
	for _, a := range s.Actions {
		b.WriteString(a.Command)
	}
	return b.String()
}

// Primitives returns the primitives in execution order.
func (s Step) Primitives() []robot.Primitive {
	out := make([]robot.Primitive, len(s.Actions))
	for i, a := range s.Actions {
		out[i] = a.Primitive
	}
	return out
}

// TwistStart returns the index of the Close that begins the solving twist.
func (s Step) TwistStart() int {
	return len(s.Actions) - 3
}

// builder accumulates actions for one instruction.
type builder struct {
	state   robot.State
	actions []Action
}

func (b *builder) add(p robot.Primitive) error {
	next, cmd, err := robot.Do(p, b.state)
	if err != nil {
		return err
	}
	b.actions = append(b.actions, Action{Primitive: p, Command: cmd, Before: b.state, After: next})
	b.state = next
	return nil
}

// moveToBottom brings the face that a pivot in direction dir would put at
// the front down onto the platform. When the servo is already at the dir
// stop, it pivots the other way instead (putting the face at the back) and
// flips three times.
func (b *builder) moveToBottom(dir int) error {
	if b.state.Bottom != robot.ServoPosition(dir) {
		if err := b.add(robot.Rotate{Turn: dir}); err != nil {
			return err
		}
		return b.add(robot.Flip{})
	}

	if err := b.add(robot.Rotate{Turn: -dir}); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		if err := b.add(robot.Flip{}); err != nil {
			return err
		}
	}
	return nil
}

// Compile emits the primitives that carry out in starting from state s.
func Compile(in Instruction, s robot.State) (Step, error) {
	step := Step{Instruction: in, Start: s}

	switch in.Twist {
	case 1, -1, 2, -2:
	default:
		return step, fmt.Errorf("%w: twist %d", ErrMalformedInstruction, in.Twist)
	}

	b := &builder{state: s}

	// First get the face onto the platform.
	if b.state.Orientation.Bottom != in.Face {
		o := b.state.Orientation
		var err error
		switch in.Face {
		case orientation.Transition(o, orientation.PivotP).Front:
			err = b.moveToBottom(1)
		case orientation.Transition(o, orientation.PivotN).Front:
			err = b.moveToBottom(-1)
		default:
			for i := 0; i < 3 && b.state.Orientation.Bottom != in.Face; i++ {
				err = b.add(robot.Flip{})
				if err != nil {
					break
				}
			}
		}
		if err != nil {
			return step, err
		}
	}

	if b.state.Orientation.Bottom != in.Face {
		return step, fmt.Errorf("%w: %s still on the bottom, wanted %s", ErrUnreachableFace, b.state.Orientation.Bottom, in.Face)
	}

	// Park the servo somewhere the twist can start from.
	switch in.Twist {
	case 2, -2:
		if b.state.Bottom == robot.Home {
			// Either direction works; -1 is what the robot has always done.
			if err := b.add(robot.Rotate{Turn: -1}); err != nil {
				return step, err
			}
		}
	default:
		if b.state.Bottom == robot.ServoPosition(in.Twist) {
			if err := b.add(robot.Rotate{Turn: -in.Twist}); err != nil {
				return step, err
			}
		}
	}

	for _, p := range []robot.Primitive{robot.Close{}, robot.Rotate{Turn: in.Twist}, robot.Open{}} {
		if err := b.add(p); err != nil {
			return step, err
		}
	}

	step.Actions = b.actions
	step.End = b.state
	return step, nil
}
