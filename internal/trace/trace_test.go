package trace

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/orientation"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

func compile(t *testing.T, text string) *compiler.Program {
	t.Helper()
	sol, err := compiler.ParseSolution(text)
	if err != nil {
		t.Fatal(err)
	}
	prog, err := compiler.Run(sol, robot.Initial)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestProgramTrace(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.Program(compile(t, "D1 L1"))
	if err := l.Err(); err != nil {
		t.Fatal(err)
	}

	log, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if log.Header.Version != Version || log.Header.Solution != "D1 L1" {
		t.Errorf("header = %+v", log.Header)
	}

	// 2 instruction events, 10 primitives, 1 done.
	if len(log.Events) != 13 {
		t.Fatalf("got %d events", len(log.Events))
	}

	var cmds strings.Builder
	for _, e := range log.Events {
		if e.EventType == EventPrimitive {
			cmds.WriteString(e.Command)
		}
	}
	if cmds.String() != "crohfofofocro" {
		t.Errorf("primitive commands = %q", cmds.String())
	}

	first := log.Events[0]
	if first.EventType != EventInstruction || first.Token != "D1" || first.Index != 0 {
		t.Errorf("first event = %+v", first)
	}

	twist := log.Events[2]
	if twist.Primitive != "Rotate(+1)" || twist.Before.Top != robot.GripperClosed || twist.After.Bottom != robot.CW {
		t.Errorf("twist event = %+v", twist)
	}

	done := log.Events[len(log.Events)-1]
	if done.EventType != EventDone || done.Command != "cro hfofofocro" {
		t.Errorf("done event = %+v", done)
	}
	wantFinal := orientation.Orientation{Bottom: orientation.L, Front: orientation.D}
	if done.After == nil || done.After.Orientation != wantFinal {
		t.Errorf("final = %v", done.After)
	}
}

func TestCreateAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "traces")
	l, err := Create(dir)
	if err != nil {
		t.Fatal(err)
	}
	l.Program(compile(t, "U1"))
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	if filepath.Dir(l.FilePath()) != dir {
		t.Errorf("trace written to %s", l.FilePath())
	}

	log, err := Load(l.FilePath())
	if err != nil {
		t.Fatal(err)
	}
	if log.Header.Solution != "U1" {
		t.Errorf("solution = %q", log.Header.Solution)
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.Program(compile(t, "U1"))
	if err := l.Close(); err != nil {
		t.Errorf("Close on nil logger = %v", err)
	}
}

func TestReadRejectsMissingHeader(t *testing.T) {
	if _, err := Read(strings.NewReader(`{"event_type":"primitive"}` + "\n")); err == nil {
		t.Error("expected an error")
	}
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Error("expected an error for an empty trace")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"compile_20260101_090000.000001.jsonl", "compile_20260102_090000.000001.jsonl", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "compile_20260102_090000.000001.jsonl" {
		t.Errorf("List = %v", files)
	}

	if files, err := List(filepath.Join(dir, "missing")); err != nil || len(files) != 0 {
		t.Errorf("List(missing) = %v, %v", files, err)
	}
}
