// Package analysis computes cost statistics for compiled programs.
package analysis

import (
	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/orientation"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

// ProgramSummary contains statistics for one compiled solution.
type ProgramSummary struct {
	Instructions   int     `json:"instructions"`
	Primitives     int     `json:"primitives"`
	Flips          int     `json:"flips"`
	Spins          int     `json:"spins"`  // open-gripper rotates
	Twists         int     `json:"twists"` // closed-gripper rotates
	GripperCycles  int     `json:"gripper_cycles"`
	CommandChars   int     `json:"command_chars"`
	AvgPerTwist    float64 `json:"avg_primitives_per_twist"`
	Overhead       float64 `json:"reorientation_overhead"` // non-twist-triple primitives / primitives
	MaxStepLength  int     `json:"max_step_primitives"`
	MaxStepIndex   int     `json:"max_step_index"`
	SkippedReorder int     `json:"already_on_bottom"`
}

// StepCost describes one compiled instruction.
type StepCost struct {
	Index       int    `json:"index"`
	Token       string `json:"token"`
	Primitives  int    `json:"primitives"`
	Flips       int    `json:"flips"`
	Spins       int    `json:"spins"`
	Commands    string `json:"commands"`
	Orientation string `json:"orientation_after"`
}

// Summarize computes the summary for prog.
func Summarize(prog *compiler.Program) ProgramSummary {
	s := ProgramSummary{
		Instructions: len(prog.Steps),
		MaxStepIndex: -1,
	}

	for _, step := range prog.Steps {
		c := Cost(step)
		s.Primitives += c.Primitives
		s.Flips += c.Flips
		s.Spins += c.Spins
		s.CommandChars += len(c.Commands)
		if c.Primitives > s.MaxStepLength {
			s.MaxStepLength = c.Primitives
			s.MaxStepIndex = step.Index
		}
		if step.Start.Orientation.Bottom == step.Instruction.Face {
			s.SkippedReorder++
		}
		for _, a := range step.Actions {
			switch a.Primitive.(type) {
			case robot.Rotate:
				if a.Before.Top == robot.GripperClosed {
					s.Twists++
				}
			case robot.Close:
				s.GripperCycles++
			}
		}
	}

	if s.Twists > 0 {
		s.AvgPerTwist = float64(s.Primitives) / float64(s.Twists)
	}
	if s.Primitives > 0 {
		s.Overhead = float64(s.Primitives-3*s.Instructions) / float64(s.Primitives)
	}

	return s
}

// Cost computes per-step figures.
func Cost(step compiler.Step) StepCost {
	c := StepCost{
		Index:       step.Index,
		Token:       step.Instruction.Token(),
		Primitives:  len(step.Actions),
		Commands:    step.Commands(),
		Orientation: step.End.Orientation.String(),
	}
	for _, a := range step.Actions {
		switch a.Primitive.(type) {
		case robot.Flip:
			c.Flips++
		case robot.Rotate:
			if a.Before.Top == robot.GripperOpen {
				c.Spins++
			}
		}
	}
	return c
}

// Costs returns the cost of every step.
func Costs(prog *compiler.Program) []StepCost {
	out := make([]StepCost, len(prog.Steps))
	for i, step := range prog.Steps {
		out[i] = Cost(step)
	}
	return out
}

// MovementProfile counts which faces and twists a solution uses.
type MovementProfile struct {
	FaceCounts    map[string]int `json:"face_counts"`
	TwistCounts   map[int]int    `json:"twist_counts"`
	MostUsedFace  string         `json:"most_used_face"`
	FaceSequences map[string]int `json:"face_sequences"` // e.g., "RU" -> count
}

// AnalyzeMovementProfile analyzes which faces and twists are most used.
func AnalyzeMovementProfile(sol compiler.Solution) *MovementProfile {
	profile := &MovementProfile{
		FaceCounts:    make(map[string]int),
		TwistCounts:   make(map[int]int),
		FaceSequences: make(map[string]int),
	}

	for i, in := range sol {
		profile.FaceCounts[in.Face.String()]++
		profile.TwistCounts[in.Twist]++

		if i > 0 {
			seq := sol[i-1].Face.String() + in.Face.String()
			profile.FaceSequences[seq]++
		}
	}

	// Ties go to the face listed first.
	maxFaceCount := 0
	for _, f := range orientation.Faces {
		if count := profile.FaceCounts[f.String()]; count > maxFaceCount {
			maxFaceCount = count
			profile.MostUsedFace = f.String()
		}
	}

	return profile
}
