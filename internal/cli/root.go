// Package cli implements the command-line interface for cuberobot.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot/internal/config"
	"github.com/SeamusWaldron/cuberobot/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath     string
	configPath string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cuberobot",
	Short: "Cube solving robot compiler",
	Long: `cuberobot - A CLI tool that turns Rubik's Cube solver output into command
strings for a two-servo cube solving robot.

Compile solutions, step through the robot's moves, keep a history of
compiled runs, and stream programs to the robot over a serial line.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		paths := []string{".env"}
		if dir, err := config.Dir(); err == nil {
			paths = append(paths, filepath.Join(dir, ".env"))
		}
		return config.LoadEnvFiles(paths...)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cuberobot/cuberobot.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cuberobot/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig loads the config file from flag or default.
func loadConfig() (*config.File, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDefault()
}

// resolveConfig loads the config file and applies environment overrides.
func resolveConfig() (*config.File, config.Config, error) {
	f, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	c, err := f.Resolve()
	if err != nil {
		return nil, config.Config{}, err
	}
	return f, c, nil
}

// getDBPath returns the database path from flag, then config, then default.
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	_, cfg, err := resolveConfig()
	if err != nil {
		return "", err
	}
	if p := cfg.DBPath; p != "" {
		return p, nil
	}
	return storage.DefaultDBPath()
}

func openDB() (*storage.DB, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}

	return storage.OpenMigrated(path)
}

// logf prints progress to stderr when --verbose is set.
func logf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
