package driving

import "io"

// ChartKind selects which chart to render.
type ChartKind string

// Chart kinds.
const (
	ChartKindBar  ChartKind = "bar"
	ChartKindLine ChartKind = "line"
)

// IsValid returns true if the chart kind is recognised.
func (k ChartKind) IsValid() bool {
	return k == ChartKindBar || k == ChartKindLine
}

// ReportService renders the current chart data locally.
type ReportService interface {
	// RenderChart draws one chart as PNG.
	RenderChart(w io.Writer, kind ChartKind) error

	// ExportWorkbook writes both charts' rows as an XLSX workbook.
	ExportWorkbook(w io.Writer) error
}
