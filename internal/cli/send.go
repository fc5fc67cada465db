package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot"
	"github.com/SeamusWaldron/cuberobot/internal/notation"
	"github.com/SeamusWaldron/cuberobot/internal/storage"
	"github.com/SeamusWaldron/cuberobot/internal/transport"
)

var (
	sendFile     string
	sendNotation string
	sendDevice   string
	sendBaud     int
	sendDelay    time.Duration
	sendRunID    string
	sendDryRun   bool
)

var sendCmd = &cobra.Command{
	Use:   "send [solution...]",
	Short: "Compile a solution and stream it to the robot",
	Long: `Compile a solution and write the command groups to the robot's serial port,
one group per line.

The device and baud rate come from the config file unless given as flags.
Use --run to send a stored run instead of compiling.

Examples:
  cuberobot send --device /dev/ttyUSB0 R2 U3 F2 B1 L3
  cuberobot send --run <run_id> --delay 500ms
  cuberobot send --dry-run U1 R3`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sendFile, "file", "f", "", "Read the solution from a file")
	sendCmd.Flags().StringVar(&sendNotation, "notation", notation.Solver, "Input notation (solver, standard)")
	sendCmd.Flags().StringVar(&sendDevice, "device", "", "Serial device (default: from config)")
	sendCmd.Flags().IntVar(&sendBaud, "baud", 0, "Baud rate (default: from config)")
	sendCmd.Flags().DurationVar(&sendDelay, "delay", 0, "Pause between command groups (default: from config)")
	sendCmd.Flags().StringVar(&sendRunID, "run", "", "Send a stored run")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "Print the groups instead of sending them")
}

func runSend(cmd *cobra.Command, args []string) error {
	groups, err := sendGroups(cmd, args)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		return fmt.Errorf("nothing to send")
	}

	if sendDryRun {
		return sendTo(context.Background(), cmd.OutOrStdout(), groups, 0)
	}

	_, cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	portCfg := transport.DefaultConfig(cfg.SerialDevice)
	portCfg.Baud = cfg.Baud
	if sendDevice != "" {
		portCfg.Device = sendDevice
	}
	if sendBaud > 0 {
		portCfg.Baud = sendBaud
	}
	delay := time.Duration(cfg.GroupDelayMs) * time.Millisecond
	if sendDelay > 0 {
		delay = sendDelay
	}

	port, err := transport.Open(portCfg)
	if err != nil {
		return err
	}
	defer port.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logf("Sending %d groups to %s at %d baud", len(groups), portCfg.Device, portCfg.Baud)
	return sendTo(ctx, port, groups, delay)
}

func sendTo(ctx context.Context, w io.Writer, groups []string, delay time.Duration) error {
	s := transport.NewSender(w, delay)
	s.OnGroup = func(i int, g string) {
		logf("[%d/%d] %s", i+1, len(groups), g)
	}

	n, err := s.Send(ctx, groups)
	if err != nil {
		return fmt.Errorf("stopped after %d of %d groups: %w", n, len(groups), err)
	}
	return nil
}

// sendGroups returns the command groups from a stored run or a fresh
// compilation.
func sendGroups(cmd *cobra.Command, args []string) ([]string, error) {
	if sendRunID != "" {
		if len(args) > 0 || sendFile != "" {
			return nil, fmt.Errorf("--run cannot be combined with a solution")
		}
		db, err := openDB()
		if err != nil {
			return nil, err
		}
		defer db.Close()

		run, err := storage.NewRunRepository(db).Get(sendRunID)
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, fmt.Errorf("run not found: %s", sendRunID)
		}
		return strings.Fields(run.CommandText), nil
	}

	text, err := readSolutionText(args, sendFile, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	sol, err := notation.Parse(text, sendNotation)
	if err != nil {
		return nil, err
	}
	prog, err := cuberobot.Compile(sol)
	if err != nil {
		return nil, err
	}
	return prog.Groups(), nil
}
