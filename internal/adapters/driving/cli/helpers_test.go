package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/etis-cli/internal/adapters/driven/export/xlsx"
	"github.com/custodia-labs/etis-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/etis-cli/internal/adapters/driven/render"
	"github.com/custodia-labs/etis-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
	"github.com/custodia-labs/etis-cli/internal/core/services"
)

// mockGradingAPI implements driven.GradingAPI for CLI tests.
type mockGradingAPI struct {
	mu sync.Mutex

	terms      []int
	loginErr   error
	loginCalls int

	result     *domain.AnalysisResult
	analyzeErr error

	files map[domain.FileType][]byte

	analyzeCalls  []driven.AnalyzeRequest
	downloadTerms []string
}

func (m *mockGradingAPI) Login(_ context.Context, _ domain.Credentials) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginCalls++
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.terms, nil
}

func (m *mockGradingAPI) Analyze(_ context.Context, req driven.AnalyzeRequest) (*domain.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyzeCalls = append(m.analyzeCalls, req)
	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	return m.result, nil
}

func (m *mockGradingAPI) Download(
	_ context.Context,
	fileType domain.FileType,
	_, term string,
) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloadTerms = append(m.downloadTerms, term)
	data, ok := m.files[fileType]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func testResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Success: true,
		Bar: domain.ChartSeries{
			Labels: []domain.Label{"Math", "Physics"},
			Values: []float64{4.5, 3.75},
		},
		Line: domain.ChartSeries{
			Labels: []domain.Label{"1", "2"},
			Values: []float64{80, 85.5},
		},
	}
}

// testEnv holds the fakes behind the services installed for a test.
type testEnv struct {
	api      *mockGradingAPI
	sessions *services.SessionStore
	charts   *services.ChartsStore
	history  *memory.HistoryStore
	saver    *memory.FileSaver
	alerts   *notify.Queue
	config   *memory.ConfigStore
}

// setupTestServices installs services backed by in-memory fakes and
// returns a cleanup function that removes them and resets all flags.
func setupTestServices() (*testEnv, func()) {
	env := &testEnv{
		api: &mockGradingAPI{
			terms:  []int{1, 2, 3},
			result: testResult(),
			files:  map[domain.FileType][]byte{domain.FileTypeCSV: []byte("subject,grade\n")},
		},
		sessions: services.NewSessionStore(memory.NewSessionPersister()),
		charts:   services.NewChartsStore(),
		history:  memory.NewHistoryStore(),
		saver:    memory.NewFileSaver(),
		alerts:   notify.NewQueue(),
		config:   memory.NewConfigStore(),
	}

	analysis := services.NewAnalysisService(env.api, env.sessions, env.charts, env.history, env.saver, env.alerts)

	SetServices(&Services{
		Sessions: env.sessions,
		Charts:   env.charts,
		Analysis: analysis,
		Report:   services.NewReportService(env.charts, render.NewRenderer(), xlsx.NewExporter()),
		Settings: services.NewSettingsService(env.config),
		Alerts:   env.alerts,
	})

	return env, func() {
		SetServices(nil)
		resetFlags(rootCmd)
	}
}

// login puts a session for alice into the store.
func (e *testEnv) login() {
	e.sessions.SetUser(domain.NewSession(domain.Credentials{Username: "alice", Password: "secret"}, e.api.terms))
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(args ...string) (string, string, error) {
	return executeWithInput("", args...)
}

func executeWithInput(input string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetErr(io.Discard)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
