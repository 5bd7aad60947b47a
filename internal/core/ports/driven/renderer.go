package driven

import (
	"io"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// ChartRenderer draws chart rows to an image.
type ChartRenderer interface {
	// RenderBar draws rows as a bar chart.
	RenderBar(w io.Writer, title string, rows []domain.ChartRow) error

	// RenderLine draws rows as a line chart.
	RenderLine(w io.Writer, title string, rows []domain.ChartRow) error
}

// ReportExporter writes chart rows to a spreadsheet.
type ReportExporter interface {
	// Export writes the bar and line rows as separate sheets.
	Export(w io.Writer, bar, line []domain.ChartRow) error
}
