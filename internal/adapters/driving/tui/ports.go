// Package tui provides an interactive terminal user interface for etis.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis logs in, analyses and downloads.
	Analysis driving.AnalysisService

	// Sessions holds the authenticated user and the selected term.
	Sessions driving.SessionStore

	// Charts exposes the chart data of the last analysis.
	Charts driving.ChartsStore

	// Alerts collects messages raised by downloads. Optional.
	Alerts driving.AlertFeed

	// Watcher reports logins and logouts made by other processes. Optional.
	Watcher driving.SessionWatcher

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	analysis driving.AnalysisService,
	sessions driving.SessionStore,
	charts driving.ChartsStore,
) *Ports {
	return &Ports{
		Analysis: analysis,
		Sessions: sessions,
		Charts:   charts,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.Sessions == nil {
		return ErrMissingSessionStore
	}
	if p.Charts == nil {
		return ErrMissingChartsStore
	}
	return nil
}
