package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/notation"
	"github.com/SeamusWaldron/cuberobot/internal/simulate"
)

var (
	verifyFile     string
	verifyScramble string
)

// errNotSolved is returned by verify when the replay leaves the cube scrambled.
var errNotSolved = errors.New("command stream does not solve the scramble")

var verifyCmd = &cobra.Command{
	Use:   "verify [commands...]",
	Short: "Replay a command stream and check what it does",
	Long: `Replay a robot command stream against a simulated robot and cube.

Prints the face twists the stream performs. With --scramble, the scramble is
applied to a solved cube first and the command reports whether the stream
solves it.

Examples:
  cuberobot verify "cro hfofofocro"
  cuberobot verify --scramble "L3 D3" "cro hfofofocro"
  cuberobot compile U1 R3 | cuberobot verify --scramble "R1 U3"`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&verifyFile, "file", "f", "", "Read the command stream from a file")
	verifyCmd.Flags().StringVar(&verifyScramble, "scramble", "", "Scramble (solver tokens) to apply before the replay")
}

func runVerify(cmd *cobra.Command, args []string) error {
	commands, err := readSolutionText(args, verifyFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if verifyScramble == "" {
		rep, err := simulate.Decompile(commands)
		if err != nil {
			return err
		}
		printReplay(out, rep)
		return nil
	}

	scramble, err := compiler.ParseSolution(verifyScramble)
	if err != nil {
		return fmt.Errorf("scramble: %w", err)
	}

	v, err := simulate.Verify(scramble, commands)
	if err != nil {
		return err
	}
	printReplay(out, &v.Replay)
	fmt.Fprintln(out)

	if !v.Solved {
		fmt.Fprintln(out, errorStyle.Render("NOT SOLVED"))
		if verbose {
			fmt.Fprintln(out, v.Net)
		}
		return errNotSolved
	}
	fmt.Fprintln(out, faceStyle.Render("SOLVED"))
	return nil
}

func printReplay(w io.Writer, rep *simulate.Replay) {
	fmt.Fprintf(w, "Solution:   %s\n", rep.Solution)
	fmt.Fprintf(w, "Standard:   %s\n", notation.FormatSequence(rep.Solution))
	fmt.Fprintf(w, "Twists:     %d\n", len(rep.Solution))
	fmt.Fprintf(w, "Primitives: %d (%d flips)\n", rep.Primitives, rep.Flips)
	fmt.Fprintf(w, "Final:      %s\n", rep.Final)
}
