package mcp

import (
	"context"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// mockAnalysisService implements driving.AnalysisService for testing.
// Login and Logout update the linked session store.
type mockAnalysisService struct {
	sessions *mockSessionStore
	alerts   *mockAlertFeed

	loginErr    error
	result      *domain.AnalysisResult
	analyzeErr  error
	analyzed    []string
	path        string
	downloadMsg string
	downloaded  []domain.FileType
	loggedOut   bool
}

func (m *mockAnalysisService) Login(_ context.Context, creds domain.Credentials) (*domain.Session, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	session := domain.NewSession(creds, []int{1, 2, 3})
	if m.sessions != nil {
		m.sessions.session = session
	}
	return session, nil
}

func (m *mockAnalysisService) Logout() {
	m.loggedOut = true
	if m.sessions != nil {
		m.sessions.session = nil
	}
}

func (m *mockAnalysisService) Analyze(_ context.Context, _ domain.Credentials, term string) (*domain.AnalysisResult, error) {
	m.analyzed = append(m.analyzed, term)
	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	if m.result == nil {
		return &domain.AnalysisResult{Success: true}, nil
	}
	return m.result, nil
}

func (m *mockAnalysisService) DownloadFile(_ context.Context, fileType domain.FileType) string {
	m.downloaded = append(m.downloaded, fileType)
	if m.downloadMsg != "" && m.alerts != nil {
		m.alerts.pending = append(m.alerts.pending, m.downloadMsg)
	}
	return m.path
}

func (m *mockAnalysisService) RestoreLatest(context.Context) error { return nil }

func (m *mockAnalysisService) History(context.Context, int) ([]domain.AnalysisRecord, []domain.DownloadRecord, error) {
	return nil, nil, nil
}

func (m *mockAnalysisService) ClearHistory(context.Context) error { return nil }

// mockSessionStore implements driving.SessionStore for testing.
type mockSessionStore struct {
	session *domain.Session
}

func (m *mockSessionStore) Session() *domain.Session { return m.session.Clone() }

func (m *mockSessionStore) IsAuthenticated() bool { return m.session != nil }

func (m *mockSessionStore) SetSelectedTerm(term string) {
	if m.session != nil {
		m.session.SelectedTerm = &term
	}
}

func (m *mockSessionStore) Restore() error { return nil }

// mockChartsStore implements driving.ChartsStore for testing.
type mockChartsStore struct {
	bar  domain.ChartSeries
	line domain.ChartSeries
}

func (m *mockChartsStore) BarData() *domain.ChartSeries { return &m.bar }

func (m *mockChartsStore) LineData() *domain.ChartSeries { return &m.line }

func (m *mockChartsStore) Loading() bool { return false }

func (m *mockChartsStore) FormattedBarData() []domain.ChartRow { return m.bar.Rows() }

func (m *mockChartsStore) FormattedLineData() []domain.ChartRow { return m.line.Rows() }

// mockAlertFeed implements driving.AlertFeed for testing.
type mockAlertFeed struct {
	pending []string
}

func (m *mockAlertFeed) Drain() []string {
	out := m.pending
	m.pending = nil
	return out
}

type fixture struct {
	analysis *mockAnalysisService
	sessions *mockSessionStore
	charts   *mockChartsStore
	alerts   *mockAlertFeed
}

func newFixture() *fixture {
	sessions := &mockSessionStore{}
	alerts := &mockAlertFeed{}
	return &fixture{
		analysis: &mockAnalysisService{sessions: sessions, alerts: alerts},
		sessions: sessions,
		charts:   &mockChartsStore{},
		alerts:   alerts,
	}
}

func (f *fixture) login() {
	f.sessions.session = domain.NewSession(domain.Credentials{Username: "alice", Password: "secret"}, []int{1, 2, 3})
}

func (f *fixture) ports() *Ports {
	return &Ports{
		Analysis: f.analysis,
		Sessions: f.sessions,
		Charts:   f.charts,
		Alerts:   f.alerts,
	}
}
