// Package cube provides a 3x3 facelet model used to check that a compiled
// command stream really performs the solver's twists.
package cube

import (
	"strings"

	"github.com/SeamusWaldron/cuberobot/internal/orientation"
)

// Color represents a face color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

var colorLetters = [6]string{"W", "Y", "G", "B", "R", "O"}

func (c Color) String() string {
	if int(c) < len(colorLetters) {
		return colorLetters[c]
	}
	return "?"
}

// slot is a face index in Facelets; order matches the solved colors.
type slot int

const (
	sU slot = iota
	sD
	sF
	sB
	sR
	sL
)

func slotOf(f orientation.Face) (slot, bool) {
	switch f {
	case orientation.U:
		return sU, true
	case orientation.D:
		return sD, true
	case orientation.F:
		return sF, true
	case orientation.B:
		return sB, true
	case orientation.R:
		return sR, true
	case orientation.L:
		return sL, true
	}
	return 0, false
}

// strip is three facelets on one face, listed in cycle order.
type strip struct {
	face slot
	idx  [3]int
}

// rings lists, for a clockwise turn of each face, the four neighbouring
// strips. Each strip receives the facelets of the strip before it.
var rings = map[slot][4]strip{
	sU: {{sF, [3]int{0, 1, 2}}, {sL, [3]int{0, 1, 2}}, {sB, [3]int{0, 1, 2}}, {sR, [3]int{0, 1, 2}}},
	sD: {{sF, [3]int{6, 7, 8}}, {sR, [3]int{6, 7, 8}}, {sB, [3]int{6, 7, 8}}, {sL, [3]int{6, 7, 8}}},
	sF: {{sU, [3]int{6, 7, 8}}, {sR, [3]int{0, 3, 6}}, {sD, [3]int{2, 1, 0}}, {sL, [3]int{8, 5, 2}}},
	sB: {{sU, [3]int{2, 1, 0}}, {sL, [3]int{0, 3, 6}}, {sD, [3]int{6, 7, 8}}, {sR, [3]int{8, 5, 2}}},
	sR: {{sU, [3]int{2, 5, 8}}, {sB, [3]int{6, 3, 0}}, {sD, [3]int{2, 5, 8}}, {sF, [3]int{2, 5, 8}}},
	sL: {{sU, [3]int{0, 3, 6}}, {sF, [3]int{0, 3, 6}}, {sD, [3]int{0, 3, 6}}, {sB, [3]int{8, 5, 2}}},
}

// Cube is a 3x3 cube. Each face has 9 facelets indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Cube struct {
	Facelets [6][9]Color
}

// New returns a solved cube: White up, Green front.
func New() *Cube {
	c := &Cube{}
	for f := range c.Facelets {
		for i := range c.Facelets[f] {
			c.Facelets[f][i] = Color(f)
		}
	}
	return c
}

// Clone returns a copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// IsSolved reports whether every face shows a single color.
func (c *Cube) IsSolved() bool {
	for f := range c.Facelets {
		for _, col := range c.Facelets[f] {
			if col != c.Facelets[f][4] {
				return false
			}
		}
	}
	return true
}

// Turn twists face f: 1 clockwise, -1 counter-clockwise, 2 or -2 half turn.
// Unknown faces or turn amounts leave the cube unchanged and return false.
func (c *Cube) Turn(f orientation.Face, turn int) bool {
	s, ok := slotOf(f)
	if !ok {
		return false
	}

	var quarters int
	switch turn {
	case 1:
		quarters = 1
	case 2, -2:
		quarters = 2
	case -1:
		quarters = 3
	default:
		return false
	}

	for i := 0; i < quarters; i++ {
		c.quarter(s)
	}
	return true
}

func (c *Cube) quarter(s slot) {
	// Corners 0->2->8->6, edges 1->5->7->3.
	f := &c.Facelets[s]
	f[0], f[2], f[8], f[6] = f[6], f[0], f[2], f[8]
	f[1], f[5], f[7], f[3] = f[3], f[1], f[5], f[7]

	ring := rings[s]
	var carry [3]Color
	last := ring[3]
	for i, idx := range last.idx {
		carry[i] = c.Facelets[last.face][idx]
	}
	for _, st := range ring {
		for i, idx := range st.idx {
			carry[i], c.Facelets[st.face][idx] = c.Facelets[st.face][idx], carry[i]
		}
	}
}

// String draws the cube as an unfolded net.
func (c *Cube) String() string {
	var b strings.Builder

	row := func(s slot, r int) {
		for col := 0; col < 3; col++ {
			b.WriteString(c.Facelets[s][r*3+col].String())
			b.WriteByte(' ')
		}
	}

	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(sU, r)
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		for _, s := range []slot{sL, sF, sR, sB} {
			row(s, r)
		}
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(sD, r)
		b.WriteByte('\n')
	}

	return b.String()
}
