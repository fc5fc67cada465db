package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot"
	"github.com/SeamusWaldron/cuberobot/internal/analysis"
	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/notation"
	"github.com/SeamusWaldron/cuberobot/internal/server"
	"github.com/SeamusWaldron/cuberobot/internal/storage"
	"github.com/SeamusWaldron/cuberobot/internal/trace"
)

var (
	compileFile     string
	compileFormat   string
	compileOutput   string
	compileNotation string
	compileSave     bool
	compileNotes    string
	compileTrace    bool
	compileStats    bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [solution...]",
	Short: "Compile a solution into robot commands",
	Long: `Compile a solver solution into the robot's command string.

The solution is read from the arguments, from --file, or from stdin.

Examples:
  cuberobot compile R2 U3 F2 B1 L3
  cuberobot compile --notation standard "R2 U' F2 B L'"
  cuberobot compile --file solution.txt --format json -o program.json
  cuberobot compile --save --stats U1 R3 F2`,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileFile, "file", "f", "", "Read the solution from a file")
	compileCmd.Flags().StringVar(&compileFormat, "format", "txt", "Output format (txt, json)")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "Output file (default: stdout)")
	compileCmd.Flags().StringVar(&compileNotation, "notation", notation.Solver, "Input notation (solver, standard)")
	compileCmd.Flags().BoolVar(&compileSave, "save", false, "Store the compiled program in the history database")
	compileCmd.Flags().StringVar(&compileNotes, "notes", "", "Notes stored with --save")
	compileCmd.Flags().BoolVar(&compileTrace, "trace", false, "Write a JSONL trace to the trace directory")
	compileCmd.Flags().BoolVar(&compileStats, "stats", false, "Print a cost summary")
}

func runCompile(cmd *cobra.Command, args []string) error {
	text, err := readSolutionText(args, compileFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	sol, err := notation.Parse(text, compileNotation)
	if err != nil {
		return err
	}
	logf("Parsed %d instructions", len(sol))

	var tl *trace.Logger
	if compileTrace {
		_, cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		tl, err = trace.Create(cfg.TraceDir)
		if err != nil {
			return err
		}
		defer tl.Close()
	}

	prog, err := cuberobot.Compile(sol)
	if err != nil {
		return err
	}
	logf("Compiled %d primitives, final state %s", prog.PrimitiveCount(), prog.Final)

	if tl != nil {
		tl.Program(prog)
		if err := tl.Err(); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Trace saved to: %s\n", tl.FilePath())
	}

	if compileSave {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := storage.SaveProgram(db, prog, compileNotes)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved run: %s\n", run.RunID)
	}

	output, err := renderProgram(prog, compileFormat, compileStats)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), compileOutput, output)
}

// readSolutionText returns the solution from args, file or stdin, in that
// order of preference.
func readSolutionText(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) > 0 && file != "" {
		return "", fmt.Errorf("give the solution as arguments or --file, not both")
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read solution file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// renderProgram formats prog for output.
func renderProgram(prog *compiler.Program, format string, stats bool) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		if !stats {
			return prog.Commands(), nil
		}
		var b strings.Builder
		b.WriteString(prog.Commands())
		b.WriteString("\n\n")
		b.WriteString(formatSummary(analysis.Summarize(prog)))
		b.WriteString(formatProfile(analysis.AnalyzeMovementProfile(prog.Solution)))
		b.WriteString("\n")
		b.WriteString(formatCosts(analysis.Costs(prog)))
		return strings.TrimRight(b.String(), "\n"), nil

	case "json":
		data, err := json.MarshalIndent(server.NewCompileResponse(prog), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt or json)", format)
	}
}

func formatSummary(s analysis.ProgramSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Instructions:     %d\n", s.Instructions)
	fmt.Fprintf(&b, "Primitives:       %d\n", s.Primitives)
	fmt.Fprintf(&b, "Flips:            %d\n", s.Flips)
	fmt.Fprintf(&b, "Spins:            %d\n", s.Spins)
	fmt.Fprintf(&b, "Twists:           %d\n", s.Twists)
	fmt.Fprintf(&b, "Gripper cycles:   %d\n", s.GripperCycles)
	fmt.Fprintf(&b, "Command chars:    %d\n", s.CommandChars)
	fmt.Fprintf(&b, "Per twist:        %.2f\n", s.AvgPerTwist)
	fmt.Fprintf(&b, "Overhead:         %.1f%%\n", s.Overhead*100)
	fmt.Fprintf(&b, "Already placed:   %d\n", s.SkippedReorder)
	if s.MaxStepIndex >= 0 {
		fmt.Fprintf(&b, "Longest step:     #%d (%d primitives)\n", s.MaxStepIndex+1, s.MaxStepLength)
	}
	return b.String()
}

func formatProfile(p *analysis.MovementProfile) string {
	if p.MostUsedFace == "" {
		return ""
	}
	return fmt.Sprintf("Most used face:   %s (%d)\n", p.MostUsedFace, p.FaceCounts[p.MostUsedFace])
}

func formatCosts(costs []analysis.StepCost) string {
	if len(costs) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%4s  %-5s  %5s  %5s  %5s  %-4s  %s\n", "#", "Token", "Prims", "Flips", "Spins", "To", "Commands")
	for _, c := range costs {
		fmt.Fprintf(&b, "%4d  %-5s  %5d  %5d  %5d  %-4s  %s\n",
			c.Index+1, c.Token, c.Primitives, c.Flips, c.Spins, c.Orientation, c.Commands)
	}
	return b.String()
}

// writeOutput writes output to path, or to w when path is empty.
func writeOutput(w io.Writer, path, output string) error {
	if path == "" {
		_, err := fmt.Fprintln(w, output)
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logf("Wrote %s", path)
	return nil
}
