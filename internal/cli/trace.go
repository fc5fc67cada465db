package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot/internal/trace"
)

var traceLast bool

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Inspect compile traces",
	Long:  `Commands for reading the JSONL traces written by 'compile --trace'.`,
}

var traceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trace files, newest first",
	RunE:  runTraceList,
}

var traceShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a trace",
	Long: `Print every instruction and primitive recorded in a trace file.

Use --last to show the newest trace in the trace directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTraceShow,
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.AddCommand(traceListCmd)
	traceCmd.AddCommand(traceShowCmd)
	traceShowCmd.Flags().BoolVar(&traceLast, "last", false, "Show the newest trace")
}

func traceFiles() ([]string, error) {
	_, cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	return trace.List(cfg.TraceDir)
}

func runTraceList(cmd *cobra.Command, args []string) error {
	files, err := traceFiles()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, "No traces yet")
		fmt.Fprintln(out, "Write one with: cuberobot compile --trace <solution>")
		return nil
	}
	for _, f := range files {
		fmt.Fprintln(out, f)
	}
	return nil
}

func runTraceShow(cmd *cobra.Command, args []string) error {
	var path string
	switch {
	case len(args) > 0:
		path = args[0]
	case traceLast:
		files, err := traceFiles()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no traces found")
		}
		path = files[0]
	default:
		return fmt.Errorf("please provide a trace file or use --last")
	}

	log, err := trace.Load(path)
	if err != nil {
		return err
	}
	printTrace(cmd.OutOrStdout(), log)
	return nil
}

func printTrace(w io.Writer, log *trace.Log) {
	fmt.Fprintf(w, "Trace v%s, %s\n", log.Header.Version, log.Header.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Solution: %s\n\n", log.Header.Solution)

	for _, e := range log.Events {
		switch e.EventType {
		case trace.EventInstruction:
			from := ""
			if e.Before != nil {
				from = e.Before.Orientation.String()
			}
			fmt.Fprintf(w, "#%d %s (from %s)\n", e.Index+1, e.Token, from)
		case trace.EventPrimitive:
			to := ""
			if e.After != nil {
				to = e.After.String()
			}
			fmt.Fprintf(w, "    %-10s %-3s %s\n", e.Primitive, e.Command, to)
		case trace.EventDone:
			fmt.Fprintf(w, "\nDone: %s (%s)\n", e.Command, e.Description)
		}
	}
}
