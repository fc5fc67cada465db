package orientation

import "fmt"

// Operator is a whole-cube move that changes the orientation.
type Operator int

const (
	// Flip tips the cube forward over its top edge.
	Flip Operator = iota
	// PivotP spins the cube about the vertical axis in the direction the
	// bottom servo takes on a +1 step.
	PivotP
	// PivotN spins the cube the other way (bottom servo -1 step).
	PivotN
)

// Operators lists every operator.
var Operators = []Operator{Flip, PivotP, PivotN}

// Key returns the single-letter key the operator is known by ("f", "p", "n").
func (op Operator) Key() string {
	switch op {
	case Flip:
		return "f"
	case PivotP:
		return "p"
	case PivotN:
		return "n"
	default:
		return "?"
	}
}

func (op Operator) String() string {
	switch op {
	case Flip:
		return "flip"
	case PivotP:
		return "pivot+"
	case PivotN:
		return "pivot-"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

// Each row: orientation, then the result of f, p and n.
var rows = [24][4]string{
	{"DF", "FU", "DL", "DR"},
	{"DR", "RU", "DF", "DB"},
	{"DB", "BU", "DR", "DL"},
	{"DL", "LU", "DB", "DF"},

	{"FU", "UB", "FL", "FR"},
	{"FR", "RB", "FU", "FD"},
	{"FD", "DB", "FR", "FL"},
	{"FL", "LB", "FD", "FU"},

	{"UB", "BD", "UL", "UR"},
	{"UR", "RD", "UB", "UF"},
	{"UF", "FD", "UR", "UL"},
	{"UL", "LD", "UF", "UB"},

	{"BD", "DF", "BL", "BR"},
	{"BR", "RF", "BD", "BU"},
	{"BU", "UF", "BR", "BL"},
	{"BL", "LF", "BU", "BD"},

	{"RF", "FL", "RD", "RU"},
	{"RU", "UL", "RF", "RB"},
	{"RB", "BL", "RU", "RD"},
	{"RD", "DL", "RB", "RF"},

	{"LF", "FR", "LU", "LD"},
	{"LD", "DR", "LF", "LB"},
	{"LB", "BR", "LD", "LU"},
	{"LU", "UR", "LB", "LF"},
}

var (
	all   []Orientation
	table map[Orientation][3]Orientation
)

func init() {
	var err error
	all, table, err = build(rows[:])
	if err != nil {
		panic("orientation: " + err.Error())
	}
}

// build decodes the raw rows and checks the laws the compiler relies on:
// closure, pivot inverses and a flip cycle of length four.
func build(raw [][4]string) ([]Orientation, map[Orientation][3]Orientation, error) {
	order := make([]Orientation, 0, len(raw))
	t := make(map[Orientation][3]Orientation, len(raw))

	for _, row := range raw {
		from, err := Parse(row[0])
		if err != nil {
			return nil, nil, err
		}
		if _, dup := t[from]; dup {
			return nil, nil, fmt.Errorf("duplicate row for %s", from)
		}
		var next [3]Orientation
		for i, s := range row[1:] {
			if next[i], err = Parse(s); err != nil {
				return nil, nil, fmt.Errorf("row %s: %w", from, err)
			}
		}
		order = append(order, from)
		t[from] = next
	}

	if len(order) != 24 {
		return nil, nil, fmt.Errorf("want 24 orientations, have %d", len(order))
	}

	for _, o := range order {
		next := t[o]
		for i, to := range next {
			if _, ok := t[to]; !ok {
				return nil, nil, fmt.Errorf("%s -%s-> %s leaves the table", o, Operator(i).Key(), to)
			}
		}
		if got := t[next[PivotP]][PivotN]; got != o {
			return nil, nil, fmt.Errorf("n(p(%s)) = %s", o, got)
		}
		if got := t[next[PivotN]][PivotP]; got != o {
			return nil, nil, fmt.Errorf("p(n(%s)) = %s", o, got)
		}
		if next[PivotP].Bottom != o.Bottom || next[PivotN].Bottom != o.Bottom {
			return nil, nil, fmt.Errorf("pivot from %s moved the bottom face", o)
		}
		x := o
		for i := 0; i < 4; i++ {
			x = t[x][Flip]
		}
		if x != o {
			return nil, nil, fmt.Errorf("four flips from %s end at %s", o, x)
		}
	}

	return order, t, nil
}

// Transition returns the orientation reached by applying op to o. It panics
// if o is not one of the 24 valid orientations.
func Transition(o Orientation, op Operator) Orientation {
	next, ok := table[o]
	if !ok {
		panic(fmt.Sprintf("orientation: no transitions for %q", o.String()))
	}
	if op < Flip || op > PivotN {
		panic(fmt.Sprintf("orientation: unknown operator %d", int(op)))
	}
	return next[op]
}

// All returns the 24 orientations in table order.
func All() []Orientation {
	out := make([]Orientation, len(all))
	copy(out, all)
	return out
}

// Row is one line of the transition table, used for display and export.
type Row struct {
	From   Orientation `json:"from"`
	Flip   Orientation `json:"f"`
	PivotP Orientation `json:"p"`
	PivotN Orientation `json:"n"`
}

// Table returns the full transition table in table order.
func Table() []Row {
	out := make([]Row, 0, len(all))
	for _, o := range all {
		next := table[o]
		out = append(out, Row{From: o, Flip: next[Flip], PivotP: next[PivotP], PivotN: next[PivotN]})
	}
	return out
}
