package analysis

import (
	"errors"

	"github.com/montanaflynn/stats"

	"github.com/SeamusWaldron/cuberobot/internal/compiler"
)

// ErrNoSamples is returned when there is nothing to aggregate.
var ErrNoSamples = errors.New("no samples to aggregate")

// Sample is the size of one compiled solution.
type Sample struct {
	Instructions int `json:"instructions"`
	Primitives   int `json:"primitives"`
}

// SampleOf measures prog.
func SampleOf(prog *compiler.Program) Sample {
	return Sample{
		Instructions: len(prog.Steps),
		Primitives:   prog.PrimitiveCount(),
	}
}

// Distribution holds summary statistics over a set of values.
type Distribution struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
}

// Describe computes the distribution of data.
func Describe(data []float64) (Distribution, error) {
	d := Distribution{Count: len(data)}
	if len(data) == 0 {
		return d, ErrNoSamples
	}

	var err error
	if d.Mean, err = stats.Mean(data); err != nil {
		return d, err
	}
	if d.StdDev, err = stats.StandardDeviation(data); err != nil {
		return d, err
	}
	if d.Min, err = stats.Min(data); err != nil {
		return d, err
	}
	if d.Max, err = stats.Max(data); err != nil {
		return d, err
	}
	if d.Median, err = stats.Median(data); err != nil {
		return d, err
	}
	if d.P90, err = stats.Percentile(data, 90); err != nil {
		return d, err
	}
	return d, nil
}

// BatchSummary describes the cost of many compiled solutions.
type BatchSummary struct {
	Solutions       int          `json:"solutions"`
	Instructions    Distribution `json:"instructions"`
	Primitives      Distribution `json:"primitives"`
	PerInstruction  Distribution `json:"primitives_per_instruction"`
	TotalPrimitives int          `json:"total_primitives"`
}

// Aggregate summarizes samples. Empty solutions count towards the totals
// but not towards PerInstruction.
func Aggregate(samples []Sample) (BatchSummary, error) {
	b := BatchSummary{Solutions: len(samples)}
	if len(samples) == 0 {
		return b, ErrNoSamples
	}

	instructions := make([]float64, 0, len(samples))
	primitives := make([]float64, 0, len(samples))
	var ratios []float64
	for _, s := range samples {
		instructions = append(instructions, float64(s.Instructions))
		primitives = append(primitives, float64(s.Primitives))
		b.TotalPrimitives += s.Primitives
		if s.Instructions > 0 {
			ratios = append(ratios, float64(s.Primitives)/float64(s.Instructions))
		}
	}

	var err error
	if b.Instructions, err = Describe(instructions); err != nil {
		return b, err
	}
	if b.Primitives, err = Describe(primitives); err != nil {
		return b, err
	}
	if len(ratios) > 0 {
		if b.PerInstruction, err = Describe(ratios); err != nil {
			return b, err
		}
	}
	return b, nil
}
