// Package robot models the two-servo cube robot: where the cube sits, where
// the bottom servo is parked and what the top gripper is doing.
package robot

import (
	"fmt"

	"github.com/SeamusWaldron/cuberobot/internal/orientation"
)

// ServoPosition is one of the three bottom-servo stops.
type ServoPosition int

const (
	CCW  ServoPosition = -1 // Counter-clockwise stop
	Home ServoPosition = 0  // Centre
	CW   ServoPosition = 1  // Clockwise stop
)

func (p ServoPosition) String() string {
	switch p {
	case CCW:
		return "CCW"
	case Home:
		return "HOME"
	case CW:
		return "CW"
	default:
		return fmt.Sprintf("ServoPosition(%d)", int(p))
	}
}

// Valid reports whether p is one of the three stops.
func (p ServoPosition) Valid() bool {
	return p >= CCW && p <= CW
}

// Command returns the bottom-servo command for arriving at p.
func (p ServoPosition) Command() string {
	switch p {
	case CCW:
		return "l"
	case Home:
		return "h"
	case CW:
		return "r"
	default:
		return ""
	}
}

// PositionForCommand maps a bottom-servo command back to its stop.
func PositionForCommand(c byte) (ServoPosition, bool) {
	switch c {
	case 'l':
		return CCW, true
	case 'h':
		return Home, true
	case 'r':
		return CW, true
	}
	return Home, false
}

// Gripper is the top-servo state.
type Gripper int

const (
	GripperOpen Gripper = iota
	GripperClosed
	GripperFlipping
)

func (g Gripper) String() string {
	switch g {
	case GripperOpen:
		return "open"
	case GripperClosed:
		return "closed"
	case GripperFlipping:
		return "flip"
	default:
		return fmt.Sprintf("Gripper(%d)", int(g))
	}
}

func (g Gripper) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Gripper) UnmarshalText(text []byte) error {
	for _, c := range []Gripper{GripperOpen, GripperClosed, GripperFlipping} {
		if c.String() == string(text) {
			*g = c
			return nil
		}
	}
	return fmt.Errorf("unknown gripper state %q", text)
}

// State is a snapshot of the robot. It is a plain value: primitives return a
// new State and never modify the one they were given.
type State struct {
	Orientation orientation.Orientation `json:"orientation"`
	Bottom      ServoPosition           `json:"bottom_servo"`
	Top         Gripper                 `json:"top_servo"`
}

// Initial is the state the robot is in before the first instruction.
var Initial = State{
	Orientation: orientation.Home,
	Bottom:      Home,
	Top:         GripperOpen,
}

func (s State) String() string {
	return fmt.Sprintf("orientation=%s bottom=%s top=%s", s.Orientation, s.Bottom, s.Top)
}
