package services

import (
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
)

// mockGradingAPI implements driven.GradingAPI for testing.
type mockGradingAPI struct {
	mu sync.Mutex

	terms    []int
	loginErr error
	logins   []domain.Credentials

	analyzeFn func(ctx context.Context, req driven.AnalyzeRequest) (*domain.AnalysisResult, error)

	files       map[domain.FileType][]byte
	downloadErr error

	analyzeCalls  []driven.AnalyzeRequest
	downloadCalls []downloadCall
}

type downloadCall struct {
	fileType domain.FileType
	username string
	term     string
}

func newMockGradingAPI() *mockGradingAPI {
	return &mockGradingAPI{files: make(map[domain.FileType][]byte)}
}

func (m *mockGradingAPI) Login(_ context.Context, creds domain.Credentials) ([]int, error) {
	m.mu.Lock()
	m.logins = append(m.logins, creds)
	m.mu.Unlock()
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.terms, nil
}

func (m *mockGradingAPI) Analyze(ctx context.Context, req driven.AnalyzeRequest) (*domain.AnalysisResult, error) {
	m.mu.Lock()
	m.analyzeCalls = append(m.analyzeCalls, req)
	fn := m.analyzeFn
	m.mu.Unlock()

	if fn == nil {
		return successResult(), nil
	}
	return fn(ctx, req)
}

func (m *mockGradingAPI) Download(
	_ context.Context,
	fileType domain.FileType,
	username, term string,
) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloadCalls = append(m.downloadCalls, downloadCall{fileType, username, term})
	if m.downloadErr != nil {
		return nil, m.downloadErr
	}
	data, ok := m.files[fileType]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func successResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Success: true,
		Message: "ok",
		Bar: domain.ChartSeries{
			Labels: []domain.Label{"Math", "Physics", "History"},
			Values: []float64{4.5, 3.8, 5},
		},
		Line: domain.ChartSeries{
			Labels: []domain.Label{"1", "2"},
			Values: []float64{71, 84.5},
		},
	}
}

// mockRenderer implements driven.ChartRenderer and driven.ReportExporter.
type mockRenderer struct {
	title    string
	kind     string
	rows     []domain.ChartRow
	exported [2][]domain.ChartRow
	err      error
}

func (m *mockRenderer) RenderBar(w io.Writer, title string, rows []domain.ChartRow) error {
	m.kind, m.title, m.rows = "bar", title, rows
	if m.err != nil {
		return m.err
	}
	_, err := w.Write([]byte("bar"))
	return err
}

func (m *mockRenderer) RenderLine(w io.Writer, title string, rows []domain.ChartRow) error {
	m.kind, m.title, m.rows = "line", title, rows
	if m.err != nil {
		return m.err
	}
	_, err := w.Write([]byte("line"))
	return err
}

func (m *mockRenderer) Export(w io.Writer, bar, line []domain.ChartRow) error {
	m.exported = [2][]domain.ChartRow{bar, line}
	if m.err != nil {
		return m.err
	}
	_, err := w.Write([]byte("xlsx"))
	return err
}
