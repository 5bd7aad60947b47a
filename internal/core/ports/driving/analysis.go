package driving

import (
	"context"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// ChartsStore exposes the chart data produced by the last analysis.
type ChartsStore interface {
	// BarData returns the bar series, or nil if none is set.
	BarData() *domain.ChartSeries

	// LineData returns the line series, or nil if none is set.
	LineData() *domain.ChartSeries

	// Loading returns true while an analysis is in flight.
	Loading() bool

	// FormattedBarData zips the bar series into rows.
	FormattedBarData() []domain.ChartRow

	// FormattedLineData zips the line series into rows.
	FormattedLineData() []domain.ChartRow
}

// AnalysisService orchestrates the calls against the grading service.
type AnalysisService interface {
	// Login authenticates and commits a new session.
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)

	// Logout tears down the session and the chart data.
	Logout()

	// Analyze requests an analysis for term and commits the chart data.
	Analyze(ctx context.Context, creds domain.Credentials, term string) (*domain.AnalysisResult, error)

	// DownloadFile saves an export of the last analysis. Failures are
	// reported to the user and never returned. Returns the saved path, or
	// "" on failure.
	DownloadFile(ctx context.Context, fileType domain.FileType) string

	// RestoreLatest loads the most recent recorded analysis for the current
	// session into the charts store.
	RestoreLatest(ctx context.Context) error

	// History returns the user's recent analyses and downloads.
	History(ctx context.Context, limit int) ([]domain.AnalysisRecord, []domain.DownloadRecord, error)

	// ClearHistory removes the user's recorded history.
	ClearHistory(ctx context.Context) error
}
