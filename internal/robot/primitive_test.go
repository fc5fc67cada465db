package robot

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cuberobot/internal/orientation"
)

func TestRotateBounds(t *testing.T) {
	tests := []struct {
		from    ServoPosition
		turn    int
		wantErr bool
		want    ServoPosition
		cmd     string
	}{
		{CCW, 1, false, Home, "h"},
		{Home, 1, false, CW, "r"},
		{CW, 1, true, CW, ""},
		{CCW, -1, true, CCW, ""},
		{Home, -1, false, CCW, "l"},
		{CW, -1, false, Home, "h"},
		{CCW, 2, false, CW, "r"},
		{Home, 2, true, Home, ""},
		{CW, 2, false, CCW, "l"},
		{CCW, -2, false, CW, "r"},
		{Home, -2, true, Home, ""},
		{CW, -2, false, CCW, "l"},
		{Home, 0, true, Home, ""},
		{Home, 3, true, Home, ""},
	}

	for _, tt := range tests {
		start := State{Orientation: orientation.Home, Bottom: tt.from, Top: GripperClosed}
		next, cmd, err := Do(Rotate{Turn: tt.turn}, start)

		if tt.wantErr {
			if !errors.Is(err, ErrIllegalServoTransition) {
				t.Errorf("Rotate(%+d) from %s: err = %v, want ErrIllegalServoTransition", tt.turn, tt.from, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Rotate(%+d) from %s: unexpected error %v", tt.turn, tt.from, err)
			continue
		}
		if next.Bottom != tt.want {
			t.Errorf("Rotate(%+d) from %s: bottom = %s, want %s", tt.turn, tt.from, next.Bottom, tt.want)
		}
		if cmd != tt.cmd {
			t.Errorf("Rotate(%+d) from %s: command = %q, want %q", tt.turn, tt.from, cmd, tt.cmd)
		}
	}
}

func TestRotateClosedKeepsOrientation(t *testing.T) {
	start := State{Orientation: orientation.Home, Bottom: Home, Top: GripperClosed}
	next, err := Rotate{Turn: 1}.Apply(start)
	if err != nil {
		t.Fatal(err)
	}
	if next.Orientation != orientation.Home {
		t.Errorf("closed rotate changed orientation to %s", next.Orientation)
	}
}

func TestRotateOpenPivotsCube(t *testing.T) {
	start := Initial

	plus, err := Rotate{Turn: 1}.Apply(start)
	if err != nil {
		t.Fatal(err)
	}
	if plus.Orientation.String() != "DL" {
		t.Errorf("open +1 from DF: got %s, want DL", plus.Orientation)
	}

	minus, err := Rotate{Turn: -1}.Apply(start)
	if err != nil {
		t.Fatal(err)
	}
	if minus.Orientation.String() != "DR" {
		t.Errorf("open -1 from DF: got %s, want DR", minus.Orientation)
	}

	half, err := Rotate{Turn: 2}.Apply(minus)
	if err != nil {
		t.Fatal(err)
	}
	if half.Bottom != CW || half.Orientation.String() != "DL" {
		t.Errorf("open 2 from DR/CCW: got %s", half)
	}
}

func TestPrimitivesDoNotModifyInput(t *testing.T) {
	start := Initial
	prims := []Primitive{Flip{}, Close{}, Open{}, Rotate{Turn: 1}, Rotate{Turn: -1}}
	for _, p := range prims {
		if _, _, err := Do(p, start); err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if start != Initial {
			t.Fatalf("%s modified its input: %s", p, start)
		}
	}
}

func TestGripperPrimitives(t *testing.T) {
	closed, cmd, err := Do(Close{}, Initial)
	if err != nil || cmd != "c" || closed.Top != GripperClosed {
		t.Fatalf("Close: state=%s cmd=%q err=%v", closed, cmd, err)
	}

	// Closing twice is allowed and still emits the command.
	again, cmd, err := Do(Close{}, closed)
	if err != nil || cmd != "c" || again != closed {
		t.Fatalf("second Close: state=%s cmd=%q err=%v", again, cmd, err)
	}

	open, cmd, err := Do(Open{}, closed)
	if err != nil || cmd != "o" || open.Top != GripperOpen {
		t.Fatalf("Open: state=%s cmd=%q err=%v", open, cmd, err)
	}
}

func TestFlip(t *testing.T) {
	next, cmd, err := Do(Flip{}, Initial)
	if err != nil {
		t.Fatal(err)
	}
	if cmd != "fo" {
		t.Errorf("command = %q, want fo", cmd)
	}
	if next.Orientation.String() != "FU" {
		t.Errorf("orientation = %s, want FU", next.Orientation)
	}
	if next.Bottom != Initial.Bottom || next.Top != GripperOpen {
		t.Errorf("flip touched servos: %s", next)
	}
}

func TestPositionForCommand(t *testing.T) {
	for _, p := range []ServoPosition{CCW, Home, CW} {
		got, ok := PositionForCommand(p.Command()[0])
		if !ok || got != p {
			t.Errorf("PositionForCommand(%q) = %s, %v", p.Command(), got, ok)
		}
	}
	if _, ok := PositionForCommand('x'); ok {
		t.Error("PositionForCommand('x') should fail")
	}
}
