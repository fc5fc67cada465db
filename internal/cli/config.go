package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long:  `Commands for reading and writing the cuberobot config file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Long: `Show the settings in effect after defaults and CUBEROBOT_* environment
overrides are applied.`,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save the config file.

Keys: ` + strings.Join(config.Keys, ", ") + `

Examples:
  cuberobot config set serial /dev/ttyUSB0
  cuberobot config set baud 115200
  cuberobot config set delay 200`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	f, cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:      %s\n", f.Path())
	fmt.Fprintf(out, "db:        %s\n", orUnset(cfg.DBPath))
	fmt.Fprintf(out, "serial:    %s\n", orUnset(cfg.SerialDevice))
	fmt.Fprintf(out, "baud:      %d\n", cfg.Baud)
	fmt.Fprintf(out, "delay:     %dms\n", cfg.GroupDelayMs)
	fmt.Fprintf(out, "trace-dir: %s\n", cfg.TraceDir)
	fmt.Fprintf(out, "listen:    %s\n", cfg.ListenAddr)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	f, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := f.Set(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
