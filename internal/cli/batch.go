package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot/internal/analysis"
	"github.com/SeamusWaldron/cuberobot/internal/batch"
	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/notation"
)

var (
	batchNotation string
	batchWorkers  int
	batchFormat   string
	batchOutput   string
	batchStats    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Compile one solution per line",
	Long: `Compile a file of solutions, one per line, each from the robot's initial
state. Blank lines and lines starting with '#' are skipped. Reads stdin when
no file is given.

Examples:
  cuberobot batch solutions.txt
  cuberobot batch --stats --workers 4 solutions.txt
  solver --many | cuberobot batch --format json -o programs.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchNotation, "notation", notation.Solver, "Input notation (solver, standard)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", batch.DefaultWorkers, "Maximum concurrent compiles")
	batchCmd.Flags().StringVar(&batchFormat, "format", "txt", "Output format (txt, json)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Output file (default: stdout)")
	batchCmd.Flags().BoolVar(&batchStats, "stats", false, "Print statistics over the batch")
}

func runBatch(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	entries, err := batch.ReadEntries(in)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no solutions in input")
	}
	logf("Compiling %d solutions with %d workers", len(entries), batchWorkers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parse := func(text string) (compiler.Solution, error) {
		return notation.Parse(text, batchNotation)
	}
	results, err := batch.Compile(ctx, entries, parse, batchWorkers)
	if err != nil {
		return err
	}

	output, err := renderBatch(results, batchFormat, batchStats)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), batchOutput, output); err != nil {
		return err
	}

	if n := batch.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d solutions failed", n, len(results))
	}
	return nil
}

type batchItem struct {
	Line     int    `json:"line"`
	Solution string `json:"solution"`
	Commands string `json:"commands,omitempty"`
	Error    string `json:"error,omitempty"`
}

func renderBatch(results []batch.Result, format string, stats bool) (string, error) {
	var summary *analysis.BatchSummary
	if stats {
		s, err := batch.Summarize(results)
		if err == nil {
			summary = &s
		}
	}

	switch strings.ToLower(format) {
	case "txt":
		var b strings.Builder
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(&b, "%d: error: %v\n", r.Line, r.Err)
				continue
			}
			fmt.Fprintf(&b, "%d: %s\n", r.Line, r.Program.Commands())
		}
		if summary != nil {
			b.WriteString("\n")
			b.WriteString(formatBatchSummary(*summary))
		}
		return strings.TrimRight(b.String(), "\n"), nil

	case "json":
		items := make([]batchItem, len(results))
		for i, r := range results {
			items[i] = batchItem{Line: r.Line, Solution: r.Text}
			if r.Err != nil {
				items[i].Error = r.Err.Error()
			} else {
				items[i].Commands = r.Program.Commands()
			}
		}
		data, err := json.MarshalIndent(struct {
			Results []batchItem            `json:"results"`
			Summary *analysis.BatchSummary `json:"summary,omitempty"`
		}{items, summary}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt or json)", format)
	}
}

func formatBatchSummary(s analysis.BatchSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Solutions:        %d\n", s.Solutions)
	fmt.Fprintf(&b, "Total primitives: %d\n", s.TotalPrimitives)
	writeDistribution(&b, "Instructions", s.Instructions)
	writeDistribution(&b, "Primitives", s.Primitives)
	if s.PerInstruction.Count > 0 {
		writeDistribution(&b, "Per instruction", s.PerInstruction)
	}
	return b.String()
}

func writeDistribution(w io.Writer, name string, d analysis.Distribution) {
	fmt.Fprintf(w, "%-17s mean %.2f  median %.2f  p90 %.2f  min %.2f  max %.2f  sd %.2f\n",
		name+":", d.Mean, d.Median, d.P90, d.Min, d.Max, d.StdDev)
}
