package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot"
	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/notation"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

var (
	stepFile     string
	stepNotation string
	stepSpeed    float64
)

var stepCmd = &cobra.Command{
	Use:   "step [solution...]",
	Short: "Step through a compiled solution interactively",
	Long: `Compile a solution and walk through the robot's primitives one at a time,
showing the cube orientation, servo positions and command output as they
change.

Usage:
  cuberobot step R2 U3 F2 B1 L3          # Step manually
  cuberobot step --speed 4 R2 U3 F2      # Autoplay starts paused; p to play`,
	RunE: runStep,
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().StringVarP(&stepFile, "file", "f", "", "Read the solution from a file")
	stepCmd.Flags().StringVar(&stepNotation, "notation", notation.Solver, "Input notation (solver, standard)")
	stepCmd.Flags().Float64VarP(&stepSpeed, "speed", "s", 2.0, "Autoplay primitives per second")
}

func runStep(cmd *cobra.Command, args []string) error {
	text, err := readSolutionText(args, stepFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	sol, err := notation.Parse(text, stepNotation)
	if err != nil {
		return err
	}
	prog, err := cuberobot.Compile(sol)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newStepModel(prog, stepSpeed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("stepper error: %w", err)
	}

	return nil
}

// stepFrame is one primitive in program order.
type stepFrame struct {
	step   int
	action compiler.Action
}

type stepModel struct {
	prog     *compiler.Program
	frames   []stepFrame
	pos      int // frames executed
	speed    float64
	playing  bool
	quitting bool
	// gen is bumped on every play/pause; ticks from older generations are
	// dropped so only one tick chain is ever live.
	gen int
}

type stepTickMsg struct {
	gen int
	at  time.Time
}

func newStepModel(prog *compiler.Program, speed float64) *stepModel {
	m := &stepModel{prog: prog, speed: speed}
	for _, s := range prog.Steps {
		for _, a := range s.Actions {
			m.frames = append(m.frames, stepFrame{step: s.Index, action: a})
		}
	}
	if m.speed <= 0 {
		m.speed = 1
	}
	return m
}

func (m *stepModel) Init() tea.Cmd {
	return nil
}

func (m *stepModel) tick() tea.Cmd {
	delay := time.Duration(float64(time.Second) / m.speed)
	gen := m.gen
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return stepTickMsg{gen: gen, at: t}
	})
}

// setPlaying starts or stops autoplay, returning the first tick when it
// starts.
func (m *stepModel) setPlaying(on bool) tea.Cmd {
	if m.playing != on {
		m.gen++
	}
	m.playing = on
	if on {
		return m.tick()
	}
	return nil
}

func (m *stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n", "right":
			m.setPlaying(false)
			m.forward()

		case "b", "left":
			m.setPlaying(false)
			if m.pos > 0 {
				m.pos--
			}

		case "N":
			// Jump to the end of the current instruction.
			m.setPlaying(false)
			if m.pos < len(m.frames) {
				cur := m.frames[m.pos].step
				for m.pos < len(m.frames) && m.frames[m.pos].step == cur {
					m.pos++
				}
			}

		case "p":
			return m, m.setPlaying(!m.playing)

		case "r":
			m.pos = 0
			m.setPlaying(false)

		case "+", "=":
			m.speed *= 2
			if m.speed > 32 {
				m.speed = 32
			}

		case "-":
			m.speed /= 2
			if m.speed < 0.25 {
				m.speed = 0.25
			}
		}

	case stepTickMsg:
		if m.playing && msg.gen == m.gen {
			m.forward()
			if m.pos < len(m.frames) {
				return m, m.tick()
			}
			m.setPlaying(false)
		}
	}

	return m, nil
}

func (m *stepModel) forward() {
	if m.pos < len(m.frames) {
		m.pos++
	}
}

// state returns the robot state after the executed frames.
func (m *stepModel) state() robot.State {
	if m.pos == 0 {
		return m.prog.Start
	}
	return m.frames[m.pos-1].action.After
}

// sent returns the command output so far, grouped per instruction.
func (m *stepModel) sent() string {
	var b strings.Builder
	for i := 0; i < m.pos; i++ {
		if i > 0 && m.frames[i].step != m.frames[i-1].step {
			b.WriteByte(' ')
		}
		b.WriteString(m.frames[i].action.Command)
	}
	return b.String()
}

func (m *stepModel) View() string {
	if m.quitting {
		return "Stepper closed.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Cube Robot Stepper"))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Primitive %d/%d", m.pos, len(m.frames))
	if m.playing {
		progress += " [PLAYING]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString(fmt.Sprintf(" (%.2g/s)\n\n", m.speed))

	// Instruction list
	current := -1
	if m.pos < len(m.frames) {
		current = m.frames[m.pos].step
	}
	var tokens []string
	for _, s := range m.prog.Steps {
		tok := s.Instruction.Token()
		switch {
		case s.Index == current:
			tok = faceStyle.Render("[" + tok + "]")
		case current == -1 || s.Index < current:
			tok = doneStyle.Render(tok)
		}
		tokens = append(tokens, tok)
	}
	b.WriteString("Solution: ")
	b.WriteString(strings.Join(tokens, " "))
	b.WriteString("\n")
	if current >= 0 {
		in := m.prog.Steps[current].Instruction
		b.WriteString(fmt.Sprintf("Move:     %s (%s)\n", notation.Format(in), notation.Describe(in)))
	}
	b.WriteString("\n")

	s := m.state()
	b.WriteString(fmt.Sprintf("Bottom face: %s   Front face: %s\n", faceStyle.Render(s.Orientation.Bottom.String()), s.Orientation.Front))
	b.WriteString(fmt.Sprintf("Platform:    %s\n", s.Bottom))
	b.WriteString(fmt.Sprintf("Gripper:     %s\n", s.Top))
	b.WriteString("\n")

	if m.pos > 0 {
		last := m.frames[m.pos-1].action
		b.WriteString(fmt.Sprintf("Last: %s\n", notation.DescribePrimitive(last.Primitive, last.Before)))
	}
	if m.pos < len(m.frames) {
		next := m.frames[m.pos].action
		b.WriteString(statusStyle.Render(fmt.Sprintf("Next: %s", notation.DescribePrimitive(next.Primitive, next.Before))))
		b.WriteString("\n")
	} else {
		b.WriteString(faceStyle.Render("Program complete"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("Sent: ")
	b.WriteString(commandStyle.Render(m.sent()))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("SPACE/n=next  b=back  N=next move  p=play  r=reset  +/-=speed  q=quit"))
	b.WriteString("\n")

	return b.String()
}
