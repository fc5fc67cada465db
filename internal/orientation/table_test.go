package orientation

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAllHas24DistinctValidOrientations(t *testing.T) {
	seen := make(map[Orientation]bool)
	for _, o := range All() {
		if !o.Valid() {
			t.Errorf("%s is not realizable", o)
		}
		if seen[o] {
			t.Errorf("%s listed twice", o)
		}
		seen[o] = true
	}
	if len(seen) != 24 {
		t.Fatalf("got %d orientations, want 24", len(seen))
	}
}

func TestClosure(t *testing.T) {
	valid := make(map[Orientation]bool)
	for _, o := range All() {
		valid[o] = true
	}
	for _, o := range All() {
		for _, op := range Operators {
			if next := Transition(o, op); !valid[next] {
				t.Errorf("%s -%s-> %s is not a table orientation", o, op.Key(), next)
			}
		}
	}
}

func TestPivotsAreInverses(t *testing.T) {
	for _, o := range All() {
		if got := Transition(Transition(o, PivotP), PivotN); got != o {
			t.Errorf("n(p(%s)) = %s", o, got)
		}
		if got := Transition(Transition(o, PivotN), PivotP); got != o {
			t.Errorf("p(n(%s)) = %s", o, got)
		}
	}
}

func TestPivotKeepsBottomFace(t *testing.T) {
	for _, o := range All() {
		for _, op := range []Operator{PivotP, PivotN} {
			if got := Transition(o, op); got.Bottom != o.Bottom {
				t.Errorf("%s(%s) moved bottom to %s", op, o, got.Bottom)
			}
		}
	}
}

func TestFourFlipsIsIdentity(t *testing.T) {
	for _, o := range All() {
		x := o
		for i := 0; i < 4; i++ {
			x = Transition(x, Flip)
		}
		if x != o {
			t.Errorf("flip^4(%s) = %s", o, x)
		}
	}
}

func TestFlipBringsFrontToBottom(t *testing.T) {
	for _, o := range All() {
		if got := Transition(o, Flip); got.Bottom != o.Front {
			t.Errorf("flip(%s) = %s, want bottom %s", o, got, o.Front)
		}
	}
}

func TestKnownTransitions(t *testing.T) {
	tests := []struct {
		from string
		op   Operator
		want string
	}{
		{"DF", Flip, "FU"},
		{"DF", PivotP, "DL"},
		{"DF", PivotN, "DR"},
		{"FU", Flip, "UB"},
		{"LU", PivotP, "LB"},
		{"RD", PivotN, "RF"},
	}

	for _, tt := range tests {
		from, err := Parse(tt.from)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.from, err)
		}
		if got := Transition(from, tt.op).String(); got != tt.want {
			t.Errorf("Transition(%s, %s) = %s, want %s", tt.from, tt.op, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	o, err := Parse("df")
	if err != nil {
		t.Fatalf("Parse(df): %v", err)
	}
	if o != Home {
		t.Errorf("Parse(df) = %s, want %s", o, Home)
	}

	for _, bad := range []string{"", "D", "DD", "DU", "XF", "DFU"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) should fail", bad)
		}
	}
}

func TestBuildRejectsBrokenTable(t *testing.T) {
	broken := make([][4]string, len(rows))
	copy(broken, rows[:])
	broken[0][2] = "DR" // p(DF) no longer inverts n(DR)

	if _, _, err := build(broken); err == nil {
		t.Fatal("expected broken pivot to be rejected")
	}

	if _, _, err := build(rows[:23]); err == nil || !strings.Contains(err.Error(), "24") {
		t.Fatalf("expected short table to be rejected, got %v", err)
	}
}

func TestOrientationJSON(t *testing.T) {
	data, err := json.Marshal(Table()[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"from":"DF","f":"FU","p":"DL","n":"DR"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	var o Orientation
	if err := json.Unmarshal([]byte(`"RB"`), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if o.String() != "RB" {
		t.Errorf("got %s, want RB", o)
	}
}
