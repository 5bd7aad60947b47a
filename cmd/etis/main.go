// Command etis is the command-line client for the etis grading service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/custodia-labs/etis-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/etis-cli/internal/adapters/driven/download"
	"github.com/custodia-labs/etis-cli/internal/adapters/driven/export/xlsx"
	"github.com/custodia-labs/etis-cli/internal/adapters/driven/httpapi"
	"github.com/custodia-labs/etis-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/etis-cli/internal/adapters/driven/render"
	"github.com/custodia-labs/etis-cli/internal/adapters/driven/session"
	"github.com/custodia-labs/etis-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/etis-cli/internal/core/services"
	"github.com/custodia-labs/etis-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var closers []func() error
	cli.SetVersion(version)
	cli.SetBootstrap(func(opts cli.Options) (*cli.Services, error) {
		svcs, closeFn, err := wire(opts)
		if closeFn != nil {
			closers = append(closers, closeFn)
		}
		return svcs, err
	})

	err := cli.ExecuteContext(ctx)

	for _, closeFn := range closers {
		if cerr := closeFn(); cerr != nil {
			logger.Warn("shutdown: %v", cerr)
		}
	}
	stop()

	if err != nil {
		os.Exit(1)
	}
}

// wire builds the services from the config directory. The returned close
// function releases the history database.
func wire(opts cli.Options) (*cli.Services, func() error, error) {
	dir := opts.ConfigDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("locate config dir: %w", err)
		}
		dir = d
	}
	logger.Debug("config dir: %s", dir)

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("read settings: %w", err)
	}
	if opts.APIBase != "" {
		settings.API.BaseURL = strings.TrimRight(opts.APIBase, "/")
	}
	logger.Debug("grading service: %s", settings.API.BaseURL)

	sessionFile, err := session.NewStore(dir)
	if err != nil {
		return nil, nil, err
	}
	sessionStore := services.NewSessionStore(sessionFile)
	if err := sessionStore.Restore(); err != nil {
		// A corrupt session file means logged out; the next login rewrites it.
		logger.Warn("restore session: %v", err)
	}

	db, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}

	chartsStore := services.NewChartsStore()
	alerts := notify.NewQueue()
	analysisService := services.NewAnalysisService(
		httpapi.NewClient(httpapi.ConfigFromSettings(settings.API)),
		sessionStore,
		chartsStore,
		db.HistoryStore(),
		download.NewDirSaver(settings.Download.Dir),
		alerts,
	)

	return &cli.Services{
		Sessions: sessionStore,
		Charts:   chartsStore,
		Analysis: analysisService,
		Report:   services.NewReportService(chartsStore, render.NewRenderer(), xlsx.NewExporter()),
		Settings: settingsService,
		Alerts:   alerts,
		Watcher:  sessionFile,
	}, db.Close, nil
}
