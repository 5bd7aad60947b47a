package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testSeries() (domain.ChartSeries, domain.ChartSeries) {
	bar := domain.ChartSeries{
		Labels: []domain.Label{"Math", "Physics"},
		Values: []float64{4.5, 3.75},
	}
	line := domain.ChartSeries{
		Labels: []domain.Label{"1", "2", "3"},
		Values: []float64{70, 82.5, 91},
	}
	return bar, line
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DBFileName), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)

	version, err := store.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenDoesNotReapplyMigrations(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.HistoryStore().SaveAnalysis(ctx, &domain.AnalysisRecord{Username: "u1"}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	records, err := second.HistoryStore().ListAnalyses(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestHistoryStore_SaveAndLatestAnalysis(t *testing.T) {
	store := setupTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()
	bar, line := testSeries()
	created := time.Date(2026, 3, 1, 9, 30, 0, 123, time.UTC)

	record := &domain.AnalysisRecord{Username: "u1", Term: "2", Bar: bar, Line: line, CreatedAt: created}
	require.NoError(t, history.SaveAnalysis(ctx, record))
	assert.NotEmpty(t, record.ID)

	got, err := history.LatestAnalysis(ctx, "u1", "2")
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "u1", got.Username)
	assert.Equal(t, "2", got.Term)
	assert.Equal(t, bar, got.Bar)
	assert.Equal(t, line, got.Line)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestHistoryStore_LatestAnalysis_PicksNewest(t *testing.T) {
	store := setupTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, v := range []float64{3, 5, 4} {
		require.NoError(t, history.SaveAnalysis(ctx, &domain.AnalysisRecord{
			Username:  "u1",
			Term:      domain.AllTerms,
			Bar:       domain.ChartSeries{Labels: []domain.Label{"Math"}, Values: []float64{v}},
			CreatedAt: base.Add(time.Duration([]int{0, 2, 1}[i]) * time.Hour),
		}))
	}

	got, err := history.LatestAnalysis(ctx, "u1", domain.AllTerms)
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, got.Bar.Values)
}

func TestHistoryStore_LatestAnalysis_NotFound(t *testing.T) {
	store := setupTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()
	require.NoError(t, history.SaveAnalysis(ctx, &domain.AnalysisRecord{Username: "u1", Term: "1"}))

	_, err := history.LatestAnalysis(ctx, "u1", "2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = history.LatestAnalysis(ctx, "u2", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_ListAnalyses_Limit(t *testing.T) {
	store := setupTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, history.SaveAnalysis(ctx, &domain.AnalysisRecord{
			Username:  "u1",
			Term:      "1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	limited, err := history.ListAnalyses(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.True(t, limited[0].CreatedAt.After(limited[1].CreatedAt))
	assert.True(t, base.Add(4*time.Minute).Equal(limited[0].CreatedAt))

	all, err := history.ListAnalyses(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	none, err := history.ListAnalyses(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestHistoryStore_Downloads(t *testing.T) {
	store := setupTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, history.SaveDownload(ctx, &domain.DownloadRecord{
		Username: "u1", Term: "1", FileType: domain.FileTypeCSV,
		Path: "/tmp/grades.csv", Size: 120, CreatedAt: base,
	}))
	require.NoError(t, history.SaveDownload(ctx, &domain.DownloadRecord{
		Username: "u1", Term: "1", FileType: domain.FileTypeAvgGrades,
		Path: "/tmp/avg_grades.png", Size: 4096, CreatedAt: base.Add(time.Minute),
	}))

	downloads, err := history.ListDownloads(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, downloads, 2)
	assert.Equal(t, domain.FileTypeAvgGrades, downloads[0].FileType)
	assert.Equal(t, int64(4096), downloads[0].Size)
	assert.Equal(t, "/tmp/grades.csv", downloads[1].Path)
	assert.NotEmpty(t, downloads[1].ID)
}

func TestHistoryStore_DeleteUser(t *testing.T) {
	store := setupTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()

	for _, user := range []string{"u1", "u2"} {
		require.NoError(t, history.SaveAnalysis(ctx, &domain.AnalysisRecord{Username: user}))
		require.NoError(t, history.SaveDownload(ctx, &domain.DownloadRecord{
			Username: user, FileType: domain.FileTypeXLSX, Path: "grades.xlsx",
		}))
	}

	require.NoError(t, history.DeleteUser(ctx, "u1"))

	analyses, err := history.ListAnalyses(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, analyses)
	downloads, err := history.ListDownloads(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, downloads)

	analyses, err = history.ListAnalyses(ctx, "u2", 0)
	require.NoError(t, err)
	assert.Len(t, analyses, 1)
}

func TestHistoryStore_FillsTimestamp(t *testing.T) {
	store := setupTestStore(t)
	history := store.HistoryStore()
	ctx := context.Background()
	before := time.Now()

	record := &domain.AnalysisRecord{Username: "u1"}
	require.NoError(t, history.SaveAnalysis(ctx, record))

	assert.False(t, record.CreatedAt.Before(before.Truncate(time.Second)))
	assert.Equal(t, time.UTC, record.CreatedAt.Location())
}

func TestSQLLimit(t *testing.T) {
	assert.Equal(t, -1, sqlLimit(0))
	assert.Equal(t, -1, sqlLimit(-3))
	assert.Equal(t, 7, sqlLimit(7))
}
