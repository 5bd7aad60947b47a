package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu        sync.RWMutex
	analyses  []domain.AnalysisRecord
	downloads []domain.DownloadRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// SaveAnalysis records an analysis, assigning an ID if it has none.
func (s *HistoryStore) SaveAnalysis(_ context.Context, record *domain.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	s.analyses = append(s.analyses, *record)
	return nil
}

// LatestAnalysis returns the most recent analysis for username and term.
func (s *HistoryStore) LatestAnalysis(_ context.Context, username, term string) (*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.AnalysisRecord
	for i := range s.analyses {
		r := &s.analyses[i]
		if r.Username != username || r.Term != term {
			continue
		}
		if latest == nil || !r.CreatedAt.Before(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	record := *latest
	return &record, nil
}

// ListAnalyses returns the user's analyses, most recent first.
func (s *HistoryStore) ListAnalyses(_ context.Context, username string, limit int) ([]domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.AnalysisRecord, 0)
	for _, r := range s.analyses {
		if r.Username == username {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// SaveDownload records a download, assigning an ID if it has none.
func (s *HistoryStore) SaveDownload(_ context.Context, record *domain.DownloadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	s.downloads = append(s.downloads, *record)
	return nil
}

// ListDownloads returns the user's downloads, most recent first.
func (s *HistoryStore) ListDownloads(_ context.Context, username string, limit int) ([]domain.DownloadRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.DownloadRecord, 0)
	for _, r := range s.downloads {
		if r.Username == username {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DeleteUser removes all history for username.
func (s *HistoryStore) DeleteUser(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	analyses := s.analyses[:0]
	for _, r := range s.analyses {
		if r.Username != username {
			analyses = append(analyses, r)
		}
	}
	s.analyses = analyses

	downloads := s.downloads[:0]
	for _, r := range s.downloads {
		if r.Username != username {
			downloads = append(downloads, r)
		}
	}
	s.downloads = downloads
	return nil
}
