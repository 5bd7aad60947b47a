package services

import (
	"fmt"
	"io"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// Chart titles.
const (
	BarChartTitle  = "Average grade by subject"
	LineChartTitle = "Score dynamics by term"
)

// ReportService renders the charts store locally.
type ReportService struct {
	charts   driving.ChartsStore
	renderer driven.ChartRenderer
	exporter driven.ReportExporter
}

// NewReportService creates a new report service.
func NewReportService(
	charts driving.ChartsStore,
	renderer driven.ChartRenderer,
	exporter driven.ReportExporter,
) *ReportService {
	return &ReportService{
		charts:   charts,
		renderer: renderer,
		exporter: exporter,
	}
}

// RenderChart draws one chart as PNG.
func (r *ReportService) RenderChart(w io.Writer, kind driving.ChartKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: chart kind %q", domain.ErrInvalidInput, kind)
	}
	if r.renderer == nil {
		return fmt.Errorf("render chart: renderer not configured")
	}

	switch kind {
	case driving.ChartKindBar:
		rows := r.charts.FormattedBarData()
		if len(rows) == 0 {
			return domain.ErrNoAnalysis
		}
		return r.renderer.RenderBar(w, BarChartTitle, rows)
	default:
		rows := r.charts.FormattedLineData()
		if len(rows) == 0 {
			return domain.ErrNoAnalysis
		}
		return r.renderer.RenderLine(w, LineChartTitle, rows)
	}
}

// ExportWorkbook writes both charts' rows as a workbook.
func (r *ReportService) ExportWorkbook(w io.Writer) error {
	if r.exporter == nil {
		return fmt.Errorf("export workbook: exporter not configured")
	}

	bar := r.charts.FormattedBarData()
	line := r.charts.FormattedLineData()
	if len(bar) == 0 && len(line) == 0 {
		return domain.ErrNoAnalysis
	}

	return r.exporter.Export(w, bar, line)
}
