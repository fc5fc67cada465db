package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/SeamusWaldron/cuberobot/internal/storage"
)

// Sheet names used by WriteXLSX.
const (
	RunSheet   = "Run"
	StepsSheet = "Steps"
)

// WriteXLSX writes run to an Excel workbook at path with a summary sheet and
// one row per step.
func WriteXLSX(path string, run *storage.Run, steps []storage.StepRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StepsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(RunSheet); err != nil {
		return err
	}

	notes := ""
	if run.Notes != nil {
		notes = *run.Notes
	}
	summary := [][]any{
		{"Run ID", run.RunID},
		{"Created", run.CreatedAt.UTC().Format("2006-01-02 15:04:05")},
		{"Solution", run.SolutionText},
		{"Commands", run.CommandText},
		{"Instructions", run.InstructionCount},
		{"Primitives", run.PrimitiveCount},
		{"Final orientation", run.FinalOrientation},
		{"Final bottom", run.FinalBottom},
		{"Final top", run.FinalTop},
		{"Notes", notes},
	}
	if err := writeRows(f, RunSheet, summary); err != nil {
		return err
	}

	rows := [][]any{{"#", "Token", "Face", "Twist", "From", "To", "Bottom", "Commands"}}
	for _, s := range steps {
		rows = append(rows, []any{
			s.StepIndex + 1, s.Token, s.Face, s.Twist,
			s.OrientationBefore, s.OrientationAfter, s.BottomAfter, s.Commands,
		})
	}
	if err := writeRows(f, StepsSheet, rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
