package surveys

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// WriteSummaryWorkbook writes the summary as a spreadsheet: a header block
// with the response counters followed by one row per field answer.
func WriteSummaryWorkbook(w io.Writer, messages Messages, data SummaryData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("surveys: name sheet: %w", err)
	}
	sheet := &sheetWriter{file: f, name: summarySheet}

	sheet.row(data.Event.Name, data.Survey.Title)
	sheet.row(messages.Format("survey.summary_of", map[string]any{
		"filtered": data.Survey.CountFilteredResponses,
		"total":    data.Survey.CountResponses,
	}))
	for _, filter := range data.Filters {
		sheet.row(filter.Dimension, strings.Join(filter.Values, ", "))
	}
	sheet.row()
	sheet.row(
		messages.Get("survey.export.field"),
		messages.Get("survey.export.type"),
		messages.Get("survey.export.answer"),
		messages.Get("survey.export.count"),
	)

	for _, field := range data.Fields {
		fieldSummary, ok := data.Summary[field.Slug]
		if !ok || fieldSummary == nil {
			continue
		}
		title := field.Title
		if title == "" {
			title = field.Slug
		}
		switch typed := fieldSummary.(type) {
		case TextFieldSummary:
			for _, value := range nonEmpty(typed.Values) {
				sheet.row(title, string(field.Type), value)
			}
		case OptionFieldSummary:
			for _, bar := range OptionBars(field, typed) {
				sheet.row(title, string(field.Type), bar.Label, bar.Count)
			}
		case MatrixFieldSummary:
			view := matrixView(field, typed)
			for _, row := range view.Rows {
				for i, count := range row.Counts {
					sheet.row(title, string(field.Type), row.Label+" / "+view.Columns[i], count)
				}
			}
		case FileUploadFieldSummary:
			for _, card := range fileCards(typed.URLs) {
				sheet.row(title, string(field.Type), card.URL)
			}
		default:
			continue
		}
		responses, missing := fieldSummary.Counts()
		sheet.row(title, string(field.Type), messages.Get("survey.attributes.count_responses"), responses)
		sheet.row(title, string(field.Type), messages.Get("survey.attributes.count_missing_responses"), missing)
	}
	if sheet.err != nil {
		return sheet.err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("surveys: write workbook: %w", err)
	}
	return nil
}

// ExportFilename is the attachment name of a summary export.
func ExportFilename(scope SurveyScope) string {
	return fmt.Sprintf("%s-%s-summary.xlsx", scope.EventSlug, scope.SurveySlug)
}

type sheetWriter struct {
	file *excelize.File
	name string
	next int
	err  error
}

func (s *sheetWriter) row(values ...any) {
	s.next++
	if s.err != nil {
		return
	}
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, s.next)
		if err != nil {
			s.err = fmt.Errorf("surveys: cell name: %w", err)
			return
		}
		if err := s.file.SetCellValue(s.name, cell, value); err != nil {
			s.err = fmt.Errorf("surveys: set cell %s: %w", cell, err)
			return
		}
	}
}
