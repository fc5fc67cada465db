// Package orientation models the 24 ways a cube can sit on the robot and the
// whole-cube moves (flip and the two pivots) that take one to another.
package orientation

import (
	"fmt"
	"strings"
)

// Face represents a cube face in standard notation.
type Face byte

const (
	U Face = 'U' // Up
	D Face = 'D' // Down
	F Face = 'F' // Front
	B Face = 'B' // Back
	L Face = 'L' // Left
	R Face = 'R' // Right
)

// Faces lists the six faces.
var Faces = []Face{U, D, F, B, L, R}

func (f Face) String() string {
	if !f.Valid() {
		return "?"
	}
	return string(rune(f))
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	switch f {
	case U, D, F, B, L, R:
		return true
	}
	return false
}

func (f Face) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid face %d", byte(f))
	}
	return []byte{byte(f)}, nil
}

func (f *Face) UnmarshalText(text []byte) error {
	if len(text) == 1 {
		if parsed, ok := ParseFace(text[0]); ok {
			*f = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid face %q", text)
}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face {
	switch f {
	case U:
		return D
	case D:
		return U
	case F:
		return B
	case B:
		return F
	case L:
		return R
	case R:
		return L
	default:
		return f
	}
}

// ParseFace decodes an uppercase face letter.
func ParseFace(c byte) (Face, bool) {
	f := Face(c)
	return f, f.Valid()
}

// Orientation records which face sits on the robot platform and which face
// points towards the front. The zero value is not a valid orientation.
type Orientation struct {
	Bottom Face
	Front  Face
}

// Home is the orientation the robot starts in: Down on the platform, Front
// facing forward.
var Home = Orientation{Bottom: D, Front: F}

// String returns the two-letter form, bottom first ("DF").
func (o Orientation) String() string {
	return o.Bottom.String() + o.Front.String()
}

// Valid reports whether o is mechanically realizable.
func (o Orientation) Valid() bool {
	return o.Bottom.Valid() && o.Front.Valid() &&
		o.Bottom != o.Front && o.Bottom.Opposite() != o.Front
}

// Parse decodes the two-letter form produced by String, in either case.
func Parse(s string) (Orientation, error) {
	if len(s) != 2 {
		return Orientation{}, fmt.Errorf("orientation %q: want two face letters", s)
	}
	up := strings.ToUpper(s)
	bottom, ok1 := ParseFace(up[0])
	front, ok2 := ParseFace(up[1])
	o := Orientation{Bottom: bottom, Front: front}
	if !ok1 || !ok2 || !o.Valid() {
		return Orientation{}, fmt.Errorf("orientation %q: not a realizable orientation", s)
	}
	return o, nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
