package tui

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// mockAnalysis implements driving.AnalysisService for testing.
type mockAnalysis struct {
	mu        sync.Mutex
	sessions  *fakeSessions
	loginErr  error
	loggedOut bool
}

func (m *mockAnalysis) Login(_ context.Context, creds domain.Credentials) (*domain.Session, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	session := domain.NewSession(creds, []int{1, 2})
	if m.sessions != nil {
		m.sessions.set(session)
	}
	return session, nil
}

func (m *mockAnalysis) Logout() {
	m.mu.Lock()
	m.loggedOut = true
	m.mu.Unlock()
	if m.sessions != nil {
		m.sessions.set(nil)
	}
}

func (m *mockAnalysis) Analyze(context.Context, domain.Credentials, string) (*domain.AnalysisResult, error) {
	return &domain.AnalysisResult{Success: true}, nil
}

func (m *mockAnalysis) DownloadFile(context.Context, domain.FileType) string { return "" }

func (m *mockAnalysis) RestoreLatest(context.Context) error { return nil }

func (m *mockAnalysis) History(context.Context, int) ([]domain.AnalysisRecord, []domain.DownloadRecord, error) {
	return nil, nil, nil
}

func (m *mockAnalysis) ClearHistory(context.Context) error { return nil }

// fakeSessions implements driving.SessionStore. Restore swaps in the value
// of onDisk, mimicking a reload from the session file.
type fakeSessions struct {
	mu       sync.Mutex
	session  *domain.Session
	onDisk   *domain.Session
	restored int
}

func (f *fakeSessions) set(s *domain.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = s
	f.onDisk = s
}

func (f *fakeSessions) Session() *domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil
	}
	return f.session.Clone()
}

func (f *fakeSessions) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session != nil
}

func (f *fakeSessions) SetSelectedTerm(term string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session != nil {
		f.session.SelectedTerm = &term
	}
}

func (f *fakeSessions) Restore() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restored++
	f.session = f.onDisk
	return nil
}

type fakeCharts struct{}

func (fakeCharts) BarData() *domain.ChartSeries { return nil }

func (fakeCharts) LineData() *domain.ChartSeries { return nil }

func (fakeCharts) Loading() bool { return false }

func (fakeCharts) FormattedBarData() []domain.ChartRow { return nil }

func (fakeCharts) FormattedLineData() []domain.ChartRow { return nil }

// fakeWatcher implements driving.SessionWatcher over a test-owned channel.
type fakeWatcher struct {
	events chan struct{}
	err    error
}

func (f *fakeWatcher) Watch(context.Context) (<-chan struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func TestNewPorts(t *testing.T) {
	analysis := &mockAnalysis{}
	sessions := &fakeSessions{}

	ports := NewPorts(analysis, sessions, fakeCharts{})

	assert.Equal(t, analysis, ports.Analysis)
	assert.Equal(t, sessions, ports.Sessions)
	assert.Nil(t, ports.Alerts)
	assert.Nil(t, ports.Watcher)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing analysis", &Ports{Sessions: &fakeSessions{}, Charts: fakeCharts{}}, ErrMissingAnalysisService},
		{"missing sessions", &Ports{Analysis: &mockAnalysis{}, Charts: fakeCharts{}}, ErrMissingSessionStore},
		{"missing charts", &Ports{Analysis: &mockAnalysis{}, Sessions: &fakeSessions{}}, ErrMissingChartsStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.want)
		})
	}
}
