package robot

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cuberobot/internal/orientation"
)

// ErrIllegalServoTransition is returned when a rotate would drive the bottom
// servo past a stop, or asks for a half turn from HOME.
var ErrIllegalServoTransition = errors.New("cuberobot: illegal servo transition")

// Kind identifies a primitive.
type Kind string

const (
	KindFlip   Kind = "flip"
	KindOpen   Kind = "open"
	KindClose  Kind = "close"
	KindRotate Kind = "rotate"
)

// Primitive is one atomic robot action.
type Primitive interface {
	// Kind identifies the primitive.
	Kind() Kind
	// Apply returns the state after the action. The input is not modified.
	Apply(s State) (State, error)
	// Command returns the characters sent to the robot for this action in
	// state s, the state the action starts from.
	Command(s State) (string, error)
	String() string
}

// Flip tips the whole cube forward and returns the gripper to open.
type Flip struct{}

func (Flip) Kind() Kind     { return KindFlip }
func (Flip) String() string { return "Flip" }

func (Flip) Apply(s State) (State, error) {
	s.Orientation = orientation.Transition(s.Orientation, orientation.Flip)
	s.Top = GripperOpen
	return s, nil
}

// Command is the compound "raise to flip, return to open".
func (Flip) Command(State) (string, error) { return "fo", nil }

// Close grips the top two layers.
type Close struct{}

func (Close) Kind() Kind                    { return KindClose }
func (Close) String() string                { return "Close" }
func (Close) Command(State) (string, error) { return "c", nil }

func (Close) Apply(s State) (State, error) {
	s.Top = GripperClosed
	return s, nil
}

// Open releases the gripper.
type Open struct{}

func (Open) Kind() Kind                    { return KindOpen }
func (Open) String() string                { return "Open" }
func (Open) Command(State) (string, error) { return "o", nil }

func (Open) Apply(s State) (State, error) {
	s.Top = GripperOpen
	return s, nil
}

// Rotate moves the bottom servo. Turn is +1 or -1 for a quarter step, and 2
// or -2 for the half swing between the two stops (the sign carries no
// meaning: from CW the servo can only go to CCW and vice versa).
//
// With the gripper open the whole cube turns with the platform, so the
// orientation pivots. With the gripper closed only the bottom layer turns.
type Rotate struct {
	Turn int
}

func (r Rotate) Kind() Kind     { return KindRotate }
func (r Rotate) String() string { return fmt.Sprintf("Rotate(%+d)", r.Turn) }

func (r Rotate) Apply(s State) (State, error) {
	switch r.Turn {
	case 1:
		if s.Bottom == CW {
			return s, fmt.Errorf("%w: cannot move +1 from %s", ErrIllegalServoTransition, s.Bottom)
		}
		s.Bottom++
		if s.Top == GripperOpen {
			s.Orientation = orientation.Transition(s.Orientation, orientation.PivotP)
		}
	case -1:
		if s.Bottom == CCW {
			return s, fmt.Errorf("%w: cannot move -1 from %s", ErrIllegalServoTransition, s.Bottom)
		}
		s.Bottom--
		if s.Top == GripperOpen {
			s.Orientation = orientation.Transition(s.Orientation, orientation.PivotN)
		}
	case 2, -2:
		if s.Bottom == Home {
			return s, fmt.Errorf("%w: cannot move %+d from %s", ErrIllegalServoTransition, r.Turn, s.Bottom)
		}
		s.Bottom = -s.Bottom
		if s.Top == GripperOpen {
			// A half turn is two quarter pivots the same way round.
			s.Orientation = orientation.Transition(s.Orientation, orientation.PivotN)
			s.Orientation = orientation.Transition(s.Orientation, orientation.PivotN)
		}
	default:
		return s, fmt.Errorf("%w: invalid turn %d", ErrIllegalServoTransition, r.Turn)
	}
	if !s.Bottom.Valid() {
		return s, fmt.Errorf("%w: bottom servo at %d", ErrIllegalServoTransition, int(s.Bottom))
	}
	return s, nil
}

// Command names the stop the servo ends at.
func (r Rotate) Command(s State) (string, error) {
	next, err := r.Apply(s)
	if err != nil {
		return "", err
	}
	return next.Bottom.Command(), nil
}

// Do applies p to s and returns the new state together with the command.
func Do(p Primitive, s State) (State, string, error) {
	cmd, err := p.Command(s)
	if err != nil {
		return s, "", err
	}
	next, err := p.Apply(s)
	if err != nil {
		return s, "", err
	}
	return next, cmd, nil
}
