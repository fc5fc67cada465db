package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot/internal/orientation"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
	"github.com/SeamusWaldron/cuberobot/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and history information",
	Long:  `Display the configuration in use, the history database and the robot's initial state.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfgFile, cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Cube Robot Status")
	fmt.Fprintln(out, "=================")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Config:   %s\n", cfgFile.Path())
	fmt.Fprintf(out, "Serial:   %s @ %d baud\n", orUnset(cfg.SerialDevice), cfg.Baud)
	fmt.Fprintf(out, "Traces:   %s\n", cfg.TraceDir)
	fmt.Fprintf(out, "Listen:   %s\n", cfg.ListenAddr)
	fmt.Fprintln(out)

	path, err := getDBPath()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Database: %s\n", path)

	if db, err := storage.OpenMigrated(path); err == nil {
		defer db.Close()
		v, _ := db.CurrentVersion()
		fmt.Fprintf(out, "Schema:   v%d\n", v)

		runs := storage.NewRunRepository(db)
		if last, _ := runs.GetLast(); last != nil {
			fmt.Fprintf(out, "Last run: %s (%s)\n", last.RunID, last.CreatedAt.Local().Format(time.RFC3339))
		}
		all, _ := runs.List(0)
		fmt.Fprintf(out, "Runs:     %d\n", len(all))
	} else {
		fmt.Fprintf(out, "Schema:   unavailable (%v)\n", err)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Initial state: %s\n", robot.Initial)
	fmt.Fprintf(out, "Orientations:  %d\n", len(orientation.All()))

	return nil
}
