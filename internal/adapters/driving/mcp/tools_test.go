package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

func newTestServer(t *testing.T, f *fixture) *Server {
	t.Helper()
	server, err := NewServer(f.ports())
	require.NoError(t, err)
	return server
}

func TestServer_handleLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns username and terms", func(t *testing.T) {
		f := newFixture()
		server := newTestServer(t, f)

		_, output, err := server.handleLogin(ctx, nil, LoginInput{Username: "alice", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, "alice", output.Username)
		assert.Equal(t, []int{1, 2, 3}, output.Terms)
		assert.True(t, f.sessions.IsAuthenticated())
	})

	t.Run("propagates login error", func(t *testing.T) {
		f := newFixture()
		f.analysis.loginErr = errors.New("Invalid credentials")
		server := newTestServer(t, f)

		_, _, err := server.handleLogin(ctx, nil, LoginInput{Username: "alice", Password: "nope"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})
}

func TestServer_handleAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a session", func(t *testing.T) {
		server := newTestServer(t, newFixture())

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{})

		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	})

	t.Run("uses selected term by default", func(t *testing.T) {
		f := newFixture()
		f.login()
		f.sessions.SetSelectedTerm("2")
		f.analysis.result = &domain.AnalysisResult{
			Success: true,
			Bar:     domain.ChartSeries{Labels: []domain.Label{"Math"}, Values: []float64{4.5}},
			Line:    domain.ChartSeries{Labels: []domain.Label{"1", "2"}, Values: []float64{80, 85.5}},
		}
		server := newTestServer(t, f)

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{})

		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, f.analysis.analyzed)
		assert.Equal(t, "2", output.Term)
		assert.Equal(t, []RowOutput{{Category: "Math", Value: 4.5}}, output.Subjects)
		assert.Len(t, output.Dynamics, 2)
		assert.Equal(t, "2", output.Dynamics[1].Category)
	})

	t.Run("explicit all overrides selection", func(t *testing.T) {
		f := newFixture()
		f.login()
		f.sessions.SetSelectedTerm("2")
		server := newTestServer(t, f)

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Term: "all"})

		require.NoError(t, err)
		assert.Equal(t, []string{domain.AllTerms}, f.analysis.analyzed)
		assert.Equal(t, "all", output.Term)
		assert.Empty(t, output.Subjects)
	})

	t.Run("rejects unknown term", func(t *testing.T) {
		f := newFixture()
		f.login()
		server := newTestServer(t, f)

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Term: "9"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, f.analysis.analyzed)
	})

	t.Run("surfaces analysis message", func(t *testing.T) {
		f := newFixture()
		f.login()
		f.analysis.analyzeErr = domain.NewAnalysisError("No grades for term")
		server := newTestServer(t, f)

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{})

		require.Error(t, err)
		assert.True(t, domain.IsAnalysisError(err))
		assert.Contains(t, err.Error(), "No grades for term")
	})
}

func TestServer_handleDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("returns saved path", func(t *testing.T) {
		f := newFixture()
		f.login()
		f.analysis.path = "/tmp/etis.csv"
		server := newTestServer(t, f)

		_, output, err := server.handleDownload(ctx, nil, DownloadInput{FileType: "csv"})

		require.NoError(t, err)
		assert.True(t, output.Saved)
		assert.Equal(t, "/tmp/etis.csv", output.Path)
		assert.Empty(t, output.Alerts)
		assert.Equal(t, []domain.FileType{domain.FileTypeCSV}, f.analysis.downloaded)
	})

	t.Run("failure comes back as alert", func(t *testing.T) {
		f := newFixture()
		f.login()
		f.analysis.downloadMsg = "File not found. Run an analysis first."
		server := newTestServer(t, f)

		_, output, err := server.handleDownload(ctx, nil, DownloadInput{FileType: "xlsx"})

		require.NoError(t, err)
		assert.False(t, output.Saved)
		assert.Equal(t, []string{"File not found. Run an analysis first."}, output.Alerts)
	})

	t.Run("requires file type", func(t *testing.T) {
		f := newFixture()
		f.login()
		server := newTestServer(t, f)

		_, _, err := server.handleDownload(ctx, nil, DownloadInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("requires a session", func(t *testing.T) {
		server := newTestServer(t, newFixture())

		_, _, err := server.handleDownload(ctx, nil, DownloadInput{FileType: "csv"})

		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	})
}

func TestServer_handleSelectTerm(t *testing.T) {
	f := newFixture()
	f.login()
	server := newTestServer(t, f)

	_, output, err := server.handleSelectTerm(context.Background(), nil, SelectTermInput{Term: "3"})

	require.NoError(t, err)
	assert.Equal(t, "3", output.Term)
	assert.Equal(t, "3", f.sessions.Session().SelectedTermOrAll())

	_, _, err = server.handleSelectTerm(context.Background(), nil, SelectTermInput{Term: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServer_handleLogout(t *testing.T) {
	f := newFixture()
	f.login()
	server := newTestServer(t, f)

	_, output, err := server.handleLogout(context.Background(), nil, struct{}{})

	require.NoError(t, err)
	assert.True(t, output.LoggedOut)
	assert.True(t, f.analysis.loggedOut)

	_, output, err = server.handleLogout(context.Background(), nil, struct{}{})
	require.NoError(t, err)
	assert.False(t, output.LoggedOut)
}
