package report

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	screenErrors "resumescreen/internal/errors"
	"resumescreen/internal/types"
)

// rubricGetter extracts one rubric column value from a record. Failure
// records render sentinel values: zero scores, the lowest tier and the file
// name in place of the candidate name.
type rubricGetter func(types.EvaluationRecord) any

// rubricGetters maps every known rubric column header to its value. Criterion
// columns come from the declared rubric table, so the dictionary cannot drift
// from the schema or validation.
var rubricGetters = buildRubricGetters()

func buildRubricGetters() map[string]rubricGetter {
	getters := map[string]rubricGetter{
		"Candidate Name": func(r types.EvaluationRecord) any {
			if r.Rubric == nil {
				return r.FileName
			}
			return r.Rubric.CandidateName
		},
		"Total Score": func(r types.EvaluationRecord) any {
			if r.Rubric == nil {
				return 0
			}
			return r.Rubric.TotalScore
		},
		"recommendation": func(r types.EvaluationRecord) any {
			return r.Recommendation()
		},
		"justification": func(r types.EvaluationRecord) any {
			if r.Rubric == nil {
				return ""
			}
			return r.Rubric.Justification
		},
		errorColumn: func(r types.EvaluationRecord) any {
			return r.Err
		},
	}

	for i, c := range types.RubricCriteria {
		getters[c.Column] = func(r types.EvaluationRecord) any {
			if r.Rubric == nil {
				return 0
			}
			return r.Rubric.CriterionScores()[i]
		}
	}

	return getters
}

// RubricColumns returns the fixed rubric column order: candidate name, the
// criterion columns in declared order, then the three summary columns.
func RubricColumns() []string {
	columns := make([]string, 0, len(types.RubricCriteria)+4)
	columns = append(columns, "Candidate Name")
	for _, c := range types.RubricCriteria {
		columns = append(columns, c.Column)
	}
	return append(columns, "Total Score", "recommendation", "justification")
}

// WriteRubricReport writes a fixed-rubric report using the default column
// order.
func (w *Writer) WriteRubricReport(path string, records []types.EvaluationRecord) error {
	return w.writeRubricSheet(path, RubricColumns(), records)
}

// WriteRubricReportWithTemplate writes a fixed-rubric report whose columns
// follow the header row of an existing xlsx template. Template headers the
// column dictionary does not know stay blank.
func (w *Writer) WriteRubricReportWithTemplate(path, templatePath string, records []types.EvaluationRecord) error {
	headers, err := templateHeaders(templatePath)
	if err != nil {
		return err
	}

	for _, header := range headers {
		if _, known := rubricGetters[header]; !known {
			w.logger.Warn("Template column not in rubric dictionary, leaving blank", "column", header)
		}
	}

	return w.writeRubricSheet(path, headers, records)
}

func (w *Writer) writeRubricSheet(path string, headers []string, records []types.EvaluationRecord) error {
	if anyFailed(records) && !slices.Contains(headers, errorColumn) {
		headers = append(slices.Clone(headers), errorColumn)
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		row := make([]any, len(headers))
		for c, header := range headers {
			if getter, ok := rubricGetters[header]; ok {
				row[c] = getter(r)
			} else {
				row[c] = ""
			}
		}
		rows[i] = row
	}

	return w.writeSheet(path, headers, rows)
}

// templateHeaders reads the header row from the first sheet of an xlsx
// template.
func templateHeaders(templatePath string) ([]string, error) {
	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, screenErrors.NewIOError(screenErrors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to open template %s", templatePath), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, screenErrors.NewValidationError(screenErrors.ErrCodeInvalidFormat,
			"Template workbook has no sheets: "+templatePath, nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, screenErrors.NewIOError(screenErrors.ErrCodeFileNotReadable,
			"Failed to read template header row", err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, screenErrors.NewValidationError(screenErrors.ErrCodeInvalidFormat,
			"Template has no header row: "+templatePath, nil)
	}

	return rows[0], nil
}
