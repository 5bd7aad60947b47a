package domain

import "time"

// AnalysisRecord is a persisted successful analysis.
type AnalysisRecord struct {
	ID        string
	Username  string
	Term      string
	Bar       ChartSeries
	Line      ChartSeries
	CreatedAt time.Time
}

// DownloadRecord is a persisted successful file download.
type DownloadRecord struct {
	ID        string
	Username  string
	Term      string
	FileType  FileType
	Path      string
	Size      int64
	CreatedAt time.Time
}

// TermLabel renders a stored term for display.
func TermLabel(term string) string {
	if term == AllTerms {
		return "all"
	}
	return term
}
