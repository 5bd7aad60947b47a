package driven

import (
	"context"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// HistoryStore persists successful analyses and downloads.
type HistoryStore interface {
	// SaveAnalysis records a successful analysis.
	SaveAnalysis(ctx context.Context, record *domain.AnalysisRecord) error

	// LatestAnalysis returns the most recent analysis for username and term.
	// Returns domain.ErrNotFound if there is none.
	LatestAnalysis(ctx context.Context, username, term string) (*domain.AnalysisRecord, error)

	// ListAnalyses returns the user's analyses, most recent first.
	ListAnalyses(ctx context.Context, username string, limit int) ([]domain.AnalysisRecord, error)

	// SaveDownload records a successful download.
	SaveDownload(ctx context.Context, record *domain.DownloadRecord) error

	// ListDownloads returns the user's downloads, most recent first.
	ListDownloads(ctx context.Context, username string, limit int) ([]domain.DownloadRecord, error)

	// DeleteUser removes all history for username.
	DeleteUser(ctx context.Context, username string) error
}
