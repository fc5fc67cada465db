package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot/internal/analysis"
	"github.com/SeamusWaldron/cuberobot/internal/export"
	"github.com/SeamusWaldron/cuberobot/internal/storage"
)

var (
	historyLimit  int
	statsLimit    int
	historyLast   bool
	exportFormat  string
	exportOutput  string
	exportGrouped bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage compiled runs",
	Long:  `Commands for listing, inspecting and exporting runs stored with 'compile --save'.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Long:  `Display a list of recent compiled runs with basic statistics.`,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show details of a run",
	Long: `Display detailed information about a stored run including:
- Run metadata (solution, command string, final robot state)
- Per-instruction command groups and orientations

Use --last to show the most recent run.`,
	RunE: runHistoryShow,
}

var historyExportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Export a run",
	Long: `Export a run as its command string, as JSON, or as a report.

Formats:
  txt   command string (one group per line with --lines)
  json  run and steps
  md    Markdown report
  html  standalone HTML report
  xlsx  Excel workbook (requires -o)

Examples:
  cuberobot history export --last
  cuberobot history export <run_id> --format json
  cuberobot history export <run_id> --lines -o program.txt
  cuberobot history export --last --format xlsx -o run.xlsx`,
	RunE: runHistoryExport,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics over stored runs",
	Long:  `Summarize instruction and primitive counts across stored runs.`,
	RunE:  runHistoryStats,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to display")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&historyLast, "last", false, "Show the most recent run")

	historyCmd.AddCommand(historyExportCmd)
	historyExportCmd.Flags().BoolVar(&historyLast, "last", false, "Export the most recent run")
	historyExportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json, md, html, xlsx)")
	historyExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	historyExportCmd.Flags().BoolVar(&exportGrouped, "lines", false, "Write one command group per line (txt)")

	historyCmd.AddCommand(historyStatsCmd)
	historyStatsCmd.Flags().IntVar(&statsLimit, "limit", 0, "Only include the most recent runs (0 for all)")

	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := storage.NewRunRepository(db).List(historyLimit)
	if err != nil {
		return err
	}

	printRunList(cmd.OutOrStdout(), runs)
	return nil
}

func printRunList(w io.Writer, runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored yet")
		fmt.Fprintln(w, "Store one with: cuberobot compile --save <solution>")
		return
	}

	fmt.Fprintf(w, "Recent runs (showing %d):\n", len(runs))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-36s  %-19s  %-5s  %-6s  %-5s  %s\n", "ID", "Created", "Moves", "Prims", "Final", "Notes")
	fmt.Fprintln(w, "------------------------------------  -------------------  -----  ------  -----  -----")

	for _, r := range runs {
		notes := ""
		if r.Notes != nil {
			notes = truncate(*r.Notes, 30)
		}

		fmt.Fprintf(w, "%-36s  %-19s  %-5d  %-6d  %-5s  %s\n",
			r.RunID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.InstructionCount,
			r.PrimitiveCount,
			r.FinalOrientation,
			notes,
		)
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// resolveRunID picks the run from args or --last.
func resolveRunID(runs *storage.RunRepository, args []string, last bool) (string, error) {
	if last {
		run, err := runs.GetLast()
		if err != nil {
			return "", err
		}
		if run == nil {
			return "", fmt.Errorf("no runs found")
		}
		return run.RunID, nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return "", fmt.Errorf("please provide a run ID or use --last")
}

func loadRun(db *storage.DB, args []string, last bool) (*storage.Run, []storage.StepRecord, error) {
	runs := storage.NewRunRepository(db)

	runID, err := resolveRunID(runs, args, last)
	if err != nil {
		return nil, nil, err
	}

	run, err := runs.Get(runID)
	if err != nil {
		return nil, nil, err
	}
	if run == nil {
		return nil, nil, fmt.Errorf("run not found: %s", runID)
	}

	steps, err := storage.NewStepRepository(db).GetByRun(runID)
	if err != nil {
		return nil, nil, err
	}

	return run, steps, nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	run, steps, err := loadRun(db, args, historyLast)
	if err != nil {
		return err
	}

	printRun(cmd.OutOrStdout(), run, steps)
	return nil
}

func printRun(w io.Writer, run *storage.Run, steps []storage.StepRecord) {
	fmt.Fprintln(w, "Run Details")
	fmt.Fprintln(w, "===========")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "ID:       %s\n", run.RunID)
	fmt.Fprintf(w, "Created:  %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if run.Notes != nil && *run.Notes != "" {
		fmt.Fprintf(w, "Notes:    %s\n", *run.Notes)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Solution: %s\n", run.SolutionText)
	fmt.Fprintf(w, "Commands: %s\n", run.CommandText)
	fmt.Fprintf(w, "Final:    orientation=%s bottom=%d top=%s\n", run.FinalOrientation, run.FinalBottom, run.FinalTop)
	fmt.Fprintf(w, "Counts:   %d instructions, %d primitives\n", run.InstructionCount, run.PrimitiveCount)
	fmt.Fprintln(w)

	if len(steps) == 0 {
		return
	}

	fmt.Fprintln(w, "Steps")
	fmt.Fprintln(w, "-----")
	fmt.Fprintf(w, "%4s  %-5s  %-4s  %-4s  %s\n", "#", "Token", "From", "To", "Commands")
	for _, s := range steps {
		fmt.Fprintf(w, "%4d  %-5s  %-4s  %-4s  %s\n", s.StepIndex+1, s.Token, s.OrientationBefore, s.OrientationAfter, s.Commands)
	}
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	run, steps, err := loadRun(db, args, historyLast)
	if err != nil {
		return err
	}

	if strings.EqualFold(exportFormat, "xlsx") {
		if exportOutput == "" {
			return fmt.Errorf("xlsx export needs an output file (-o)")
		}
		if err := export.WriteXLSX(exportOutput, run, steps); err != nil {
			return err
		}
		logf("Wrote %s", exportOutput)
		return nil
	}

	output, err := formatExport(run, steps, exportFormat, exportGrouped)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), exportOutput, output)
}

func formatExport(run *storage.Run, steps []storage.StepRecord, format string, grouped bool) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		if !grouped {
			return run.CommandText, nil
		}
		groups := make([]string, len(steps))
		for i, s := range steps {
			groups[i] = s.Commands
		}
		return strings.Join(groups, "\n"), nil

	case "json":
		data, err := json.MarshalIndent(struct {
			Run   *storage.Run         `json:"run"`
			Steps []storage.StepRecord `json:"steps"`
		}{run, steps}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	case "md", "markdown":
		return strings.TrimRight(export.Markdown(run, steps), "\n"), nil

	case "html":
		return string(export.HTML(run, steps)), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt, json, md, html or xlsx)", format)
	}
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := storage.NewRunRepository(db).List(statsLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs stored yet")
		return nil
	}

	samples := make([]analysis.Sample, len(runs))
	for i, r := range runs {
		samples[i] = analysis.Sample{Instructions: r.InstructionCount, Primitives: r.PrimitiveCount}
	}
	summary, err := analysis.Aggregate(samples)
	if err != nil {
		return err
	}

	fmt.Fprint(out, formatBatchSummary(summary))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	steps, err := storage.NewStepRepository(db).Count(args[0])
	if err != nil {
		return err
	}
	if err := storage.NewRunRepository(db).Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted run: %s (%d steps)\n", args[0], steps)
	return nil
}
