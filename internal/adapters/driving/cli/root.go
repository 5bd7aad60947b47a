// Package cli provides the cobra command tree for etis.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
	"github.com/custodia-labs/etis-cli/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Options holds the root flags that affect how services are wired.
type Options struct {
	// ConfigDir overrides the default ~/.etis directory.
	ConfigDir string

	// APIBase overrides the configured grading service URL for this run.
	APIBase string
}

// Services aggregates the driving ports the commands use.
type Services struct {
	Sessions driving.SessionStore
	Charts   driving.ChartsStore
	Analysis driving.AnalysisService
	Report   driving.ReportService
	Settings driving.SettingsService
	Alerts   driving.AlertFeed

	// Watcher is optional. The TUI uses it to follow logins and logouts
	// made from another terminal.
	Watcher driving.SessionWatcher
}

// Bootstrap builds the services once the root flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	verbose   bool
	configDir string
	apiBase   string

	bootstrap Bootstrap
)

// Service instances used by the commands.
var (
	sessionStore    driving.SessionStore
	chartsStore     driving.ChartsStore
	analysisService driving.AnalysisService
	reportService   driving.ReportService
	settingsService driving.SettingsService
	alertFeed       driving.AlertFeed
	sessionWatcher  driving.SessionWatcher
)

var rootCmd = &cobra.Command{
	Use:   "etis",
	Short: "Grade analysis client for the etis grading service",
	Long: `etis logs in to the etis grading service, requests grade analyses for
a term and downloads the resulting tables and charts.

Run "etis login" first. The session is kept in ~/.etis until "etis logout".`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.etis)")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "grading service URL for this run")
}

// SetBootstrap registers the function that wires services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	sessionStore = s.Sessions
	chartsStore = s.Charts
	analysisService = s.Analysis
	reportService = s.Report
	settingsService = s.Settings
	alertFeed = s.Alerts
	sessionWatcher = s.Watcher
}

// SetVersion overrides the version reported by "etis version".
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx. Commands that block, such
// as tui and mcp serve, stop when ctx is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if analysisService != nil || bootstrap == nil {
		return nil
	}

	services, err := bootstrap(Options{ConfigDir: configDir, APIBase: apiBase})
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)
	return nil
}

// requireSession returns the current session or domain.ErrNotAuthenticated.
func requireSession() (*domain.Session, error) {
	if sessionStore == nil || analysisService == nil {
		return nil, errors.New("analysis service not configured")
	}
	session := sessionStore.Session()
	if err := domain.RequireSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// printAlerts writes pending alerts to stderr.
func printAlerts(cmd *cobra.Command) {
	if alertFeed == nil {
		return
	}
	for _, msg := range alertFeed.Drain() {
		cmd.PrintErrf("! %s\n", msg)
	}
}
