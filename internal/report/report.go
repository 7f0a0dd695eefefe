package report

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	screenErrors "resumescreen/internal/errors"
	"resumescreen/internal/types"
)

// screenColumns is the fixed column order for generic-mode reports.
var screenColumns = []string{
	"Name",
	"Contact Number",
	"Email",
	"Experience Score",
	"Skills Score",
	"Recommendation",
}

// errorColumn is appended to either schema whenever at least one record
// carries a failure reason. It is never present on a fully clean batch.
const errorColumn = "Error"

const defaultSheet = "Sheet1"

// Writer renders evaluation records into xlsx workbooks. Output is
// deterministic: the same records always produce the same cell matrix.
type Writer struct {
	sheet  string
	logger *screenErrors.Logger
}

// NewWriter creates a report writer targeting the given sheet name.
func NewWriter(sheetName string, logger *screenErrors.Logger) *Writer {
	if sheetName == "" {
		sheetName = defaultSheet
	}
	return &Writer{sheet: sheetName, logger: logger}
}

// WriteScreenReport writes a generic-mode report with one row per record in
// record order. Failure records get sentinel values so every input file is
// accounted for.
func (w *Writer) WriteScreenReport(path string, records []types.EvaluationRecord) error {
	headers := screenColumns
	withErrors := anyFailed(records)
	if withErrors {
		headers = append(slices.Clone(screenColumns), errorColumn)
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = screenRow(r, withErrors)
	}

	return w.writeSheet(path, headers, rows)
}

func screenRow(r types.EvaluationRecord, withErrors bool) []any {
	var row []any
	if r.Failed() {
		row = []any{r.FileName, types.NotProvided, types.NotProvided, 0, 0, types.TierNotSuitable}
	} else {
		e := r.Evaluation
		row = []any{e.Name, e.ContactNumber, e.Email, e.ExperienceScore, e.SkillsScore, e.Recommendation}
	}
	if withErrors {
		row = append(row, r.Err)
	}
	return row
}

func anyFailed(records []types.EvaluationRecord) bool {
	for _, r := range records {
		if r.Failed() {
			return true
		}
	}
	return false
}

// writeSheet creates a workbook with a bold header row, writes all data rows
// and saves it. All report variants funnel through here.
func (w *Writer) writeSheet(path string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("Failed to close workbook", "error", err.Error())
		}
	}()

	if w.sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, w.sheet); err != nil {
			return screenErrors.NewIOError(screenErrors.ErrCodeReportWriteFailed,
				"Failed to name report sheet", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return screenErrors.NewIOError(screenErrors.ErrCodeReportWriteFailed,
			"Failed to create header style", err)
	}

	for c, header := range headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return screenErrors.NewIOError(screenErrors.ErrCodeReportWriteFailed,
				"Failed to address header cell", err)
		}
		if err := f.SetCellValue(w.sheet, cell, header); err != nil {
			return screenErrors.NewIOError(screenErrors.ErrCodeReportWriteFailed,
				"Failed to write header cell", err)
		}

		colName, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return screenErrors.NewIOError(screenErrors.ErrCodeReportWriteFailed,
				"Failed to resolve column name", err)
		}
		if err := f.SetColWidth(w.sheet, colName, colName, columnWidth(header)); err != nil {
			return screenErrors.NewIOError(screenErrors.ErrCodeReportWriteFailed,
				"Failed to set column width", err)
		}
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(w.sheet, "A1", lastHeader, headerStyle); err != nil {
		return screenErrors.NewIOError(screenErrors.ErrCodeReportWriteFailed,
			"Failed to style header row", err)
	}

	for ri, row := range rows {
		for ci, value := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return screenErrors.NewIOError(screenErrors.ErrCodeReportWriteFailed,
					"Failed to address data cell", err)
			}
			if err := f.SetCellValue(w.sheet, cell, value); err != nil {
				return screenErrors.NewIOError(screenErrors.ErrCodeReportWriteFailed,
					"Failed to write data cell", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return screenErrors.NewIOError(screenErrors.ErrCodeReportWriteFailed,
			fmt.Sprintf("Failed to save report to %s", path), err)
	}

	w.logger.Info("Report written", "path", path, "rows", len(rows), "columns", len(headers))
	return nil
}

// columnWidth sizes a column from its header length, clamped to keep short
// columns readable and long rubric headers from dominating the sheet.
func columnWidth(header string) float64 {
	width := float64(len(header)) + 2
	if width < 14 {
		width = 14
	}
	if width > 45 {
		width = 45
	}
	return width
}
