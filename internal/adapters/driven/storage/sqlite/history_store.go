package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// SaveAnalysis records an analysis. Missing IDs and timestamps are filled in.
func (h *historyStore) SaveAnalysis(ctx context.Context, record *domain.AnalysisRecord) error {
	barJSON, err := json.Marshal(record.Bar)
	if err != nil {
		return fmt.Errorf("marshalling bar data: %w", err)
	}
	lineJSON, err := json.Marshal(record.Line)
	if err != nil {
		return fmt.Errorf("marshalling line data: %w", err)
	}

	fillRecord(&record.ID, &record.CreatedAt)

	_, err = h.store.db.ExecContext(ctx, `
		INSERT INTO analyses (id, username, term, bar_data, line_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.ID, record.Username, record.Term, string(barJSON), string(lineJSON),
		record.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}
	return nil
}

// LatestAnalysis returns the most recent analysis for username and term.
func (h *historyStore) LatestAnalysis(ctx context.Context, username, term string) (*domain.AnalysisRecord, error) {
	row := h.store.db.QueryRowContext(ctx, `
		SELECT id, username, term, bar_data, line_data, created_at
		FROM analyses
		WHERE username = ? AND term = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, username, term)

	record, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListAnalyses returns the user's analyses, most recent first.
// A non-positive limit returns every record.
func (h *historyStore) ListAnalyses(ctx context.Context, username string, limit int) ([]domain.AnalysisRecord, error) {
	rows, err := h.store.db.QueryContext(ctx, `
		SELECT id, username, term, bar_data, line_data, created_at
		FROM analyses
		WHERE username = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, username, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	records := make([]domain.AnalysisRecord, 0)
	for rows.Next() {
		record, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}

	return records, nil
}

// SaveDownload records a download. Missing IDs and timestamps are filled in.
func (h *historyStore) SaveDownload(ctx context.Context, record *domain.DownloadRecord) error {
	fillRecord(&record.ID, &record.CreatedAt)

	_, err := h.store.db.ExecContext(ctx, `
		INSERT INTO downloads (id, username, term, file_type, path, size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Username, record.Term, string(record.FileType), record.Path,
		record.Size, record.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving download: %w", err)
	}
	return nil
}

// ListDownloads returns the user's downloads, most recent first.
func (h *historyStore) ListDownloads(ctx context.Context, username string, limit int) ([]domain.DownloadRecord, error) {
	rows, err := h.store.db.QueryContext(ctx, `
		SELECT id, username, term, file_type, path, size, created_at
		FROM downloads
		WHERE username = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, username, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying downloads: %w", err)
	}
	defer rows.Close()

	records := make([]domain.DownloadRecord, 0)
	for rows.Next() {
		var record domain.DownloadRecord
		var fileType string
		var createdAt int64
		if err := rows.Scan(&record.ID, &record.Username, &record.Term, &fileType,
			&record.Path, &record.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning download: %w", err)
		}
		record.FileType = domain.FileType(fileType)
		record.CreatedAt = time.Unix(0, createdAt).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating downloads: %w", err)
	}

	return records, nil
}

// DeleteUser removes all history for username.
func (h *historyStore) DeleteUser(ctx context.Context, username string) error {
	tx, err := h.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM analyses WHERE username = ?", username); err != nil {
		return fmt.Errorf("deleting analyses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM downloads WHERE username = ?", username); err != nil {
		return fmt.Errorf("deleting downloads: %w", err)
	}
	return tx.Commit()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.AnalysisRecord, error) {
	var record domain.AnalysisRecord
	var barJSON, lineJSON string
	var createdAt int64
	if err := row.Scan(&record.ID, &record.Username, &record.Term, &barJSON, &lineJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning analysis: %w", err)
	}

	if err := json.Unmarshal([]byte(barJSON), &record.Bar); err != nil {
		return nil, fmt.Errorf("unmarshaling bar data: %w", err)
	}
	if err := json.Unmarshal([]byte(lineJSON), &record.Line); err != nil {
		return nil, fmt.Errorf("unmarshaling line data: %w", err)
	}
	record.CreatedAt = time.Unix(0, createdAt).UTC()

	return &record, nil
}

func fillRecord(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
	*createdAt = createdAt.UTC()
}

// sqlLimit maps a non-positive limit onto SQLite's "no limit".
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
