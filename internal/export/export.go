// Package export renders stored runs as reports.
package export

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/SeamusWaldron/cuberobot/internal/storage"
)

// Markdown renders run as a Markdown document with a table of steps.
func Markdown(run *storage.Run, steps []storage.StepRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Run %s\n\n", run.RunID)
	fmt.Fprintf(&b, "- **Created:** %s\n", run.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Solution:** `%s`\n", run.SolutionText)
	fmt.Fprintf(&b, "- **Commands:** `%s`\n", run.CommandText)
	fmt.Fprintf(&b, "- **Final state:** orientation=%s bottom=%d top=%s\n", run.FinalOrientation, run.FinalBottom, run.FinalTop)
	fmt.Fprintf(&b, "- **Counts:** %d instructions, %d primitives\n", run.InstructionCount, run.PrimitiveCount)
	if run.Notes != nil && *run.Notes != "" {
		fmt.Fprintf(&b, "- **Notes:** %s\n", *run.Notes)
	}

	if len(steps) == 0 {
		return b.String()
	}

	b.WriteString("\n## Steps\n\n")
	b.WriteString("| # | Token | From | To | Bottom | Commands |\n")
	b.WriteString("|---|-------|------|----|--------|----------|\n")
	for _, s := range steps {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %d | %s |\n",
			s.StepIndex+1, s.Token, s.OrientationBefore, s.OrientationAfter, s.BottomAfter, s.Commands)
	}
	return b.String()
}

// HTML renders run as a standalone HTML page.
func HTML(run *storage.Run, steps []storage.StepRecord) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Run " + run.RunID,
	})
	return markdown.ToHTML([]byte(Markdown(run, steps)), p, r)
}
