package export

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SeamusWaldron/cuberobot/internal/storage"
)

func sampleRun() (*storage.Run, []storage.StepRecord) {
	notes := "bench"
	run := &storage.Run{
		RunID:            "run-1",
		CreatedAt:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		SolutionText:     "D1 L1",
		CommandText:      "cro hfofofocro",
		InstructionCount: 2,
		PrimitiveCount:   10,
		FinalOrientation: "LD",
		FinalBottom:      1,
		FinalTop:         "open",
		Notes:            &notes,
	}
	steps := []storage.StepRecord{
		{RunID: "run-1", StepIndex: 0, Token: "D1", Face: "D", Twist: 1, Commands: "cro", OrientationBefore: "DF", OrientationAfter: "DF", BottomAfter: 1},
		{RunID: "run-1", StepIndex: 1, Token: "L1", Face: "L", Twist: 1, Commands: "hfofofocro", OrientationBefore: "DF", OrientationAfter: "LD", BottomAfter: 1},
	}
	return run, steps
}

func TestMarkdown(t *testing.T) {
	run, steps := sampleRun()
	md := Markdown(run, steps)

	for _, want := range []string{
		"# Run run-1",
		"- **Commands:** `cro hfofofocro`",
		"- **Notes:** bench",
		"| 2 | L1 | DF | LD | 1 | hfofofocro |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	if strings.Contains(Markdown(run, nil), "## Steps") {
		t.Error("steps section rendered without steps")
	}
}

func TestHTML(t *testing.T) {
	run, steps := sampleRun()
	page := string(HTML(run, steps))

	for _, want := range []string{"<title>Run run-1</title>", "<table>", "hfofofocro"} {
		if !strings.Contains(page, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	run, steps := sampleRun()
	path := filepath.Join(t.TempDir(), "run.xlsx")

	if err := WriteXLSX(path, run, steps); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	checks := []struct{ sheet, cell, want string }{
		{RunSheet, "A4", "Commands"},
		{RunSheet, "B4", "cro hfofofocro"},
		{StepsSheet, "B1", "Token"},
		{StepsSheet, "H3", "hfofofocro"},
		{StepsSheet, "G3", "1"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}
}
