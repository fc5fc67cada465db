package cuberobot

import (
	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
	"github.com/SeamusWaldron/cuberobot/internal/simulate"
)

// Sentinel errors for the cuberobot package. Errors returned by this package
// wrap one of these; test with errors.Is.
var (
	// Input errors
	ErrMalformedInstruction = compiler.ErrMalformedInstruction
	ErrMalformedCommand     = simulate.ErrMalformedCommand

	// Compilation errors
	ErrIllegalServoTransition = robot.ErrIllegalServoTransition
	ErrUnreachableFace        = compiler.ErrUnreachableFace
)
