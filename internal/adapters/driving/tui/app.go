package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/etis-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// Views other than login require a session. Whenever the session appears or
// disappears, from this process or another one, the app routes to the
// matching view.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	loginView     *login.View
	dashboardView *dashboard.View
	settingsView  *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// sessionEvents is fed by the session watcher, if any.
	sessionEvents <-chan struct{}

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	a := &App{
		ports:       ports,
		styles:      styles.DefaultStyles(),
		keymap:      keymap.DefaultKeyMap(),
		help:        help.New(),
		currentView: messages.ViewLogin,
		width:       80,
		height:      24,
	}
	a.buildViews(context.Background())
	return a, nil
}

func (a *App) buildViews(ctx context.Context) {
	a.ctx = ctx
	a.loginView = login.NewView(ctx, a.styles, a.ports.Analysis)
	a.dashboardView = dashboard.NewView(ctx, a.styles, dashboard.Deps{
		Analysis: a.ports.Analysis,
		Sessions: a.ports.Sessions,
		Charts:   a.ports.Charts,
		Alerts:   a.ports.Alerts,
	})
	a.settingsView = settings.NewView(a.styles, a.ports.Settings)
}

// WithContext sets the context for the app. Requests started by the views
// are cancelled with it.
func (a *App) WithContext(ctx context.Context) *App {
	a.buildViews(ctx)
	return a
}

// Init implements tea.Model.
// It picks the first view from the session state and starts the watcher.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("etis")}

	if a.ports.Watcher != nil {
		events, err := a.ports.Watcher.Watch(a.ctx)
		if err != nil {
			logger.Warn("session watcher unavailable: %v", err)
		} else {
			a.sessionEvents = events
			cmds = append(cmds, a.listen())
		}
	}

	if a.ports.Sessions.IsAuthenticated() {
		a.currentView = messages.ViewDashboard
		cmds = append(cmds, a.dashboardView.Init())
	} else {
		a.currentView = messages.ViewLogin
		cmds = append(cmds, a.loginView.Init())
	}

	return tea.Batch(cmds...)
}

// listen waits for the next session change.
func (a *App) listen() tea.Cmd {
	events := a.sessionEvents
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return messages.SessionChanged{}
	}
}

// guard moves to the view allowed by the session state: login without a
// session, and away from login with one.
func (a *App) guard() tea.Cmd {
	authenticated := a.ports.Sessions.IsAuthenticated()

	switch {
	case !authenticated && a.currentView.RequiresSession():
		a.loginView.Reset()
		a.currentView = messages.ViewLogin
		return a.loginView.Init()

	case authenticated && a.currentView == messages.ViewLogin:
		a.currentView = messages.ViewDashboard
		return a.dashboardView.Init()
	}
	return nil
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		if guarded := a.guard(); guarded != nil {
			return a, guarded
		}
		switch a.currentView {
		case messages.ViewSettings:
			return a, a.settingsView.Init()
		case messages.ViewDashboard:
			a.dashboardView.Refresh()
		case messages.ViewLogin, messages.ViewHelp:
		}
		return a, nil

	case messages.LoginCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err != nil {
			return a, cmd
		}
		return a, tea.Batch(cmd, a.guard())

	case messages.LoggedOut:
		return a, a.guard()

	case messages.SessionChanged:
		if err := a.ports.Sessions.Restore(); err != nil {
			a.err = err
			logger.Warn("reload session: %v", err)
		}
		a.dashboardView.Refresh()
		return a, tea.Batch(a.guard(), a.listen())

	case messages.AnalysisCompleted, messages.DownloadCompleted, messages.ChartsRestored:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewDashboard {
			a.dashboardView, cmd = a.dashboardView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// updateKey forwards a key press to the active view.
func (a *App) updateKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)

	case messages.ViewDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)

	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)

	case messages.ViewHelp:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, a.keymap.Back), keymap.Matches(keyStr, a.keymap.Help):
			a.currentView = messages.ViewDashboard
			a.dashboardView.Refresh()
		case keymap.Matches(keyStr, a.keymap.Quit):
			cmd = tea.Quit
		}
	}

	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	switch a.currentView {
	case messages.ViewLogin:
		return a.loginView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.dashboardView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Help.Render("[esc] back")
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received a window size.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.loginView.SetDimensions(width, height)
	a.dashboardView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
