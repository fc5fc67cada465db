package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuberobot/internal/cube"
	"github.com/SeamusWaldron/cuberobot/internal/notation"
)

var (
	convertFrom   string
	convertTo     string
	convertInvert bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [moves...]",
	Short: "Convert a move sequence between notations",
	Long: `Rewrite a move sequence in solver tokens (R1 U3 F2) or standard notation
(R U' F2). With --invert the sequence is reversed and each quarter turn
flipped, giving the scramble that the sequence solves.

Examples:
  cuberobot convert "R U' F2"
  cuberobot convert --from solver --to standard R1 U3 F2
  cuberobot convert --invert --from solver R2 U3 F2 B1 L3`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertFrom, "from", notation.Standard, "Input notation (solver, standard)")
	convertCmd.Flags().StringVar(&convertTo, "to", notation.Solver, "Output notation (solver, standard)")
	convertCmd.Flags().BoolVar(&convertInvert, "invert", false, "Output the inverse sequence")
}

func runConvert(cmd *cobra.Command, args []string) error {
	text, err := readSolutionText(args, "", cmd.InOrStdin())
	if err != nil {
		return err
	}
	sol, err := notation.Parse(text, convertFrom)
	if err != nil {
		return err
	}
	if convertInvert {
		sol = cube.Inverse(sol)
	}

	switch convertTo {
	case notation.Solver:
		fmt.Fprintln(cmd.OutOrStdout(), sol.String())
	case notation.Standard:
		fmt.Fprintln(cmd.OutOrStdout(), notation.FormatSequence(sol))
	default:
		return fmt.Errorf("unknown notation %q (use %s or %s)", convertTo, notation.Solver, notation.Standard)
	}
	return nil
}
