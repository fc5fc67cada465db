// Package trace writes a JSONL record of every primitive a compilation
// executes.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

// Version is written to every trace header.
const Version = "1.0"

// EventType identifies the type of a trace line.
type EventType string

const (
	EventInstruction EventType = "instruction"
	EventPrimitive   EventType = "primitive"
	EventDone        EventType = "done"
)

// Event is one line of the trace.
type Event struct {
	ElapsedUs   int64        `json:"elapsed_us"`
	EventType   EventType    `json:"event_type"`
	Index       int          `json:"index"`
	Token       string       `json:"token,omitempty"`
	Primitive   string       `json:"primitive,omitempty"`
	Command     string       `json:"command,omitempty"`
	Before      *robot.State `json:"before,omitempty"`
	After       *robot.State `json:"after,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Header is the first line of the trace.
type Header struct {
	Type      string    `json:"type"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Solution  string    `json:"solution,omitempty"`
}

// Log is a trace read back from disk.
type Log struct {
	Header Header
	Events []Event
}

// Logger writes trace events. A nil *Logger discards everything.
type Logger struct {
	w         io.Writer
	closer    io.Closer
	path      string
	startTime time.Time
	err       error
}

// NewLogger writes a trace to w.
func NewLogger(w io.Writer) *Logger {
	l := &Logger{w: w, startTime: time.Now()}
	if c, ok := w.(io.Closer); ok {
		l.closer = c
	}
	return l
}

// Create opens a new timestamped trace file in dir.
func Create(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}

	filename := fmt.Sprintf("compile_%s.jsonl", time.Now().Format("20060102_150405.000000"))
	path := filepath.Join(dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}

	l := NewLogger(file)
	l.path = path
	return l, nil
}

// Begin writes the header line.
func (l *Logger) Begin(sol compiler.Solution) {
	if l == nil {
		return
	}
	l.write(Header{
		Type:      "header",
		Version:   Version,
		CreatedAt: l.startTime,
		Solution:  sol.String(),
	})
}

// Instruction records the start of one instruction.
func (l *Logger) Instruction(index int, in compiler.Instruction, s robot.State) {
	if l == nil {
		return
	}
	l.write(Event{
		ElapsedUs: l.elapsed(),
		EventType: EventInstruction,
		Index:     index,
		Token:     in.Token(),
		Before:    &s,
	})
}

// Action records one executed primitive.
func (l *Logger) Action(index int, a compiler.Action) {
	if l == nil {
		return
	}
	before, after := a.Before, a.After
	l.write(Event{
		ElapsedUs: l.elapsed(),
		EventType: EventPrimitive,
		Index:     index,
		Primitive: a.Primitive.String(),
		Command:   a.Command,
		Before:    &before,
		After:     &after,
	})
}

// Step records an instruction and all of its primitives.
func (l *Logger) Step(step compiler.Step) {
	if l == nil {
		return
	}
	l.Instruction(step.Index, step.Instruction, step.Start)
	for _, a := range step.Actions {
		l.Action(step.Index, a)
	}
}

// Done records the end of the program.
func (l *Logger) Done(prog *compiler.Program) {
	if l == nil {
		return
	}
	final := prog.Final
	l.write(Event{
		ElapsedUs:   l.elapsed(),
		EventType:   EventDone,
		Index:       len(prog.Steps),
		Command:     prog.Commands(),
		After:       &final,
		Description: fmt.Sprintf("%d primitives", prog.PrimitiveCount()),
	})
}

// Program writes a complete trace for prog.
func (l *Logger) Program(prog *compiler.Program) {
	if l == nil {
		return
	}
	l.Begin(prog.Solution)
	for _, step := range prog.Steps {
		l.Step(step)
	}
	l.Done(prog)
}

func (l *Logger) elapsed() int64 {
	return time.Since(l.startTime).Microseconds()
}

func (l *Logger) write(v any) {
	if l.err != nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		l.err = err
		return
	}
	_, l.err = l.w.Write(append(data, '\n'))
}

// Err returns the first write error.
func (l *Logger) Err() error {
	if l == nil {
		return nil
	}
	return l.err
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return l.Err()
	}
	if err := l.closer.Close(); err != nil {
		return err
	}
	return l.err
}

// FilePath returns the trace file path, if the trace is a file.
func (l *Logger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Read parses a trace written by Logger.
func Read(r io.Reader) (*Log, error) {
	log := &Log{Events: make([]Event, 0)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		// First line is the header
		if lineNum == 1 {
			if err := json.Unmarshal(line, &log.Header); err != nil {
				return nil, fmt.Errorf("failed to parse header: %w", err)
			}
			if log.Header.Type != "header" {
				return nil, fmt.Errorf("line 1 is %q, not a header", log.Header.Type)
			}
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
		}
		log.Events = append(log.Events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	if lineNum == 0 {
		return nil, fmt.Errorf("empty trace")
	}

	return log, nil
}

// Load reads a trace file.
func Load(path string) (*Log, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// List returns the trace files in dir, newest first. A missing directory
// holds no traces.
func List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "compile_*.jsonl"))
	if err != nil {
		return nil, err
	}
	// File names carry a sortable timestamp.
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches, nil
}
