package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Analyses"

var exportHeaders = []string{
	"Created At",
	"Resume ID",
	"Score",
	"Matched",
	"Missing Critical",
	"Missing Optional",
	"Experience Gap",
	"Risks",
}

// ExportXLSX writes one row per analysis to w.
func ExportXLSX(w io.Writer, items []Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return err
	}
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
	}

	for i, a := range items {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(exportSheet, cell, v)
		}
		rep := a.Report
		write(1, a.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		write(2, a.ResumeID.String())
		write(3, a.Score)
		write(4, strings.Join(rep.SkillAnalysis.Matched, ", "))
		write(5, strings.Join(rep.SkillAnalysis.MissingCritical, ", "))
		write(6, strings.Join(rep.SkillAnalysis.MissingOptional, ", "))
		write(7, rep.ExperienceAnalysis.Gap)
		write(8, strings.Join(rep.Risks, "; "))
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 20)
	_ = f.SetColWidth(exportSheet, "B", "B", 38)
	_ = f.SetColWidth(exportSheet, "D", "F", 32)
	_ = f.SetColWidth(exportSheet, "H", "H", 60)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
