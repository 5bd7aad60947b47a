package mcp

import (
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis logs in, analyses and downloads.
	Analysis driving.AnalysisService

	// Sessions holds the authenticated user and the selected term.
	Sessions driving.SessionStore

	// Charts exposes the last analysis. Optional; without it the chart
	// resources are empty.
	Charts driving.ChartsStore

	// Alerts collects messages raised by downloads. Optional.
	Alerts driving.AlertFeed
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
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
	return nil
}
