package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot/internal/server"
	"github.com/SeamusWaldron/cuberobot/internal/storage"
)

var (
	serveAddr   string
	serveNoHist bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the compiler over HTTP.

Endpoints:
  POST /api/compile       {"solution": "R2 U3", "notation": "solver", "save": false}
  POST /api/verify        {"commands": "...", "scramble": "..."}
  GET  /api/orientations  orientation transition table
  GET  /api/runs          stored runs (?limit=N)
  GET  /api/runs/:id      one run with its steps
  GET  /healthz`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: from config)")
	serveCmd.Flags().BoolVar(&serveNoHist, "no-history", false, "Run without the history database")
}

func runServe(cmd *cobra.Command, args []string) error {
	_, cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	var db *storage.DB
	if !serveNoHist {
		db, err = openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		logf("Using database: %s", db.Path())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", addr)
	return server.New(db).Run(ctx, addr)
}
