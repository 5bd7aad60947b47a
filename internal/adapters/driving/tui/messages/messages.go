// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLogin is the login form shown while logged out.
	ViewLogin ViewType = iota
	// ViewDashboard shows the term list and the charts.
	ViewDashboard
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewDashboard:
		return "dashboard"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// RequiresSession reports whether the view is only reachable while logged in.
func (v ViewType) RequiresSession() bool {
	return v != ViewLogin
}

// LoginCompleted carries the result of a login attempt.
type LoginCompleted struct {
	Session *domain.Session
	Err     error
}

// LoggedOut signals that the session was cleared from this process.
type LoggedOut struct{}

// SessionChanged signals that the persisted session changed on disk.
type SessionChanged struct{}

// AnalysisStarted signals that an analysis request was sent for Term.
type AnalysisStarted struct {
	Term string
}

// AnalysisCompleted carries the result of an analysis.
type AnalysisCompleted struct {
	Term   string
	Result *domain.AnalysisResult
	Err    error
}

// ChartsRestored signals that recorded chart data was loaded, if any.
type ChartsRestored struct {
	Err error
}

// DownloadCompleted carries the result of a download. Path is empty on
// failure; Alerts holds the messages raised while it ran.
type DownloadCompleted struct {
	FileType domain.FileType
	Path     string
	Alerts   []string
}

// AlertDismissed closes the alert modal.
type AlertDismissed struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
