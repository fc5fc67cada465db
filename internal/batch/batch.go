// Package batch compiles many solutions at once.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/cuberobot/internal/analysis"
	"github.com/SeamusWaldron/cuberobot/internal/compiler"
	"github.com/SeamusWaldron/cuberobot/internal/robot"
)

// DefaultWorkers bounds concurrent compiles when no limit is given.
const DefaultWorkers = 8

// Entry is one solution read from a batch file.
type Entry struct {
	Line int // 1-based line in the input
	Text string
}

// Result is the outcome of compiling one entry.
type Result struct {
	Entry
	Program *compiler.Program
	Err     error
}

// ParseFunc decodes solution text.
type ParseFunc func(text string) (compiler.Solution, error)

// ReadEntries reads one solution per line. Blank lines and lines starting
// with '#' are skipped.
func ReadEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		entries = append(entries, Entry{Line: line, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch input: %w", err)
	}
	return entries, nil
}

// Compile compiles every entry from the initial robot state with at most
// workers running at once. Results are in input order. A solution that fails
// to parse or compile records its error in its Result; only cancellation of
// ctx aborts the batch.
func Compile(ctx context.Context, entries []Entry, parse ParseFunc, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if parse == nil {
		parse = compiler.ParseSolution
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]Result, len(entries))
	for i, e := range entries {
		i, e := i, e
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := Result{Entry: e}
			sol, err := parse(e.Text)
			if err == nil {
				r.Program, err = compiler.Run(sol, robot.Initial)
			}
			r.Err = err
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Summarize aggregates the successful results.
func Summarize(results []Result) (analysis.BatchSummary, error) {
	samples := make([]analysis.Sample, 0, len(results))
	for _, r := range results {
		if r.Err == nil && r.Program != nil {
			samples = append(samples, analysis.SampleOf(r.Program))
		}
	}
	return analysis.Aggregate(samples)
}
