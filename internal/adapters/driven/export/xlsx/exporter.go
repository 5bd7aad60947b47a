// Package xlsx writes chart rows to an Excel workbook with excelize.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
)

// Ensure Exporter implements the interface.
var _ driven.ReportExporter = (*Exporter)(nil)

// Sheet names.
const (
	SubjectsSheet = "Subjects"
	TermsSheet    = "Terms"
)

// Exporter writes one sheet per chart, each with a native Excel chart
// next to the data.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

type sheetSpec struct {
	name      string
	headers   [2]string
	rows      []domain.ChartRow
	chartType excelize.ChartType
	title     string
}

// Export writes the bar rows to the Subjects sheet and the line rows to the
// Terms sheet.
func (e *Exporter) Export(w io.Writer, bar, line []domain.ChartRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []sheetSpec{
		{
			name:      SubjectsSheet,
			headers:   [2]string{"Subject", "Average grade"},
			rows:      bar,
			chartType: excelize.Col,
			title:     "Average grade by subject",
		},
		{
			name:      TermsSheet,
			headers:   [2]string{"Term", "Score"},
			rows:      line,
			chartType: excelize.Line,
			title:     "Score dynamics by term",
		},
	}

	// A new workbook starts with Sheet1
	if err := f.SetSheetName("Sheet1", SubjectsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(TermsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	for _, sheet := range sheets {
		if err := writeSheet(f, sheet); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet.name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet sheetSpec) error {
	if err := f.SetSheetRow(sheet.name, "A1", &[]any{sheet.headers[0], sheet.headers[1]}); err != nil {
		return err
	}

	for i, row := range sheet.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.name, cell, &[]any{row.Category.String(), row.Value}); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet.name, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet.name, "B", "B", 16); err != nil {
		return err
	}

	if len(sheet.rows) == 0 {
		return nil
	}

	last := len(sheet.rows) + 1
	return f.AddChart(sheet.name, "D2", &excelize.Chart{
		Type: sheet.chartType,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", sheet.name),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet.name, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheet.name, last),
			},
		},
		Title: []excelize.RichTextRun{{Text: sheet.title}},
		Legend: excelize.ChartLegend{
			Position: "none",
		},
	})
}
