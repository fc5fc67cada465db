package notation

import (
	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/orientation"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

// Reference frame: White on top, Green in front, facing the cube.
var faceWords = map[orientation.Face][3]string{
	// clockwise, anti-clockwise, half
	orientation.R: {"R up", "R down", "R up x 2"},
	orientation.L: {"L down", "L up", "L down x 2"},
	orientation.U: {"T rotate right", "T rotate left", "T rotate right x 2"},
	orientation.D: {"B rotate right", "B rotate left", "B rotate right x 2"},
	orientation.F: {"F rotate clockwise", "F rotate anti-clockwise", "F rotate x 2"},
	orientation.B: {"Back rotate clockwise", "Back rotate anti-clockwise", "Back rotate x 2"},
}

// Describe returns a plain-language description of an instruction.
func Describe(in compiler.Instruction) string {
	words, ok := faceWords[in.Face]
	if !ok {
		return Format(in)
	}
	switch in.Twist {
	case 1:
		return words[0]
	case -1:
		return words[1]
	case 2, -2:
		return words[2]
	}
	return Format(in)
}

// DescribePrimitive explains what a primitive does to the cube in state s.
func DescribePrimitive(p robot.Primitive, s robot.State) string {
	switch p := p.(type) {
	case robot.Flip:
		return "flip " + s.Orientation.Front.String() + " face to the bottom"
	case robot.Close:
		return "close gripper"
	case robot.Open:
		return "open gripper"
	case robot.Rotate:
		next, err := p.Apply(s)
		if err != nil {
			return "rotate (illegal)"
		}
		if s.Top == robot.GripperClosed {
			return "twist " + s.Orientation.Bottom.String() + " layer, servo to " + next.Bottom.String()
		}
		return "spin cube, servo to " + next.Bottom.String()
	}
	return p.String()
}
