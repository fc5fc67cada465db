package cube

import (
	"fmt"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
)

// Apply performs a single solver instruction.
func (c *Cube) Apply(in compiler.Instruction) error {
	if !c.Turn(in.Face, in.Twist) {
		return fmt.Errorf("cube: cannot apply %s", in.Token())
	}
	return nil
}

// ApplySolution performs every instruction in order, stopping at the first
// one that cannot be applied.
func (c *Cube) ApplySolution(sol compiler.Solution) error {
	for i, in := range sol {
		if err := c.Apply(in); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	return nil
}

// Inverse returns the solution that undoes sol.
func Inverse(sol compiler.Solution) compiler.Solution {
	inv := make(compiler.Solution, len(sol))
	for i, in := range sol {
		undo := in
		if undo.Twist == 1 || undo.Twist == -1 {
			undo.Twist = -undo.Twist
		}
		inv[len(sol)-1-i] = undo
	}
	return inv
}
