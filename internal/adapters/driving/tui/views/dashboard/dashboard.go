// Package dashboard provides the main view for a logged in user: the term
// list, the charts of the last analysis and the download keys.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/components/chart"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
)

// termsPaneWidth is the width of the term list column.
const termsPaneWidth = 18

// Deps are the driving ports the dashboard uses. Alerts is optional.
type Deps struct {
	Analysis driving.AnalysisService
	Sessions driving.SessionStore
	Charts   driving.ChartsStore
	Alerts   driving.AlertFeed
}

// View is the dashboard.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	deps      Deps
	ctx       context.Context
	terms     *list.TermList
	statusbar *status.Bar

	// alerts is non-empty while the alert modal is open.
	alerts []string

	downloading bool
	err         error

	width  int
	height int
}

// NewView creates a new dashboard view.
func NewView(ctx context.Context, s *styles.Styles, deps Deps) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints(km.DashboardHelp())

	return &View{
		styles:    s,
		keymap:    km,
		deps:      deps,
		ctx:       ctx,
		terms:     list.NewTermList(s),
		statusbar: bar,
		width:     80,
		height:    24,
	}
}

// Init loads the session's terms and restores the last recorded analysis.
func (v *View) Init() tea.Cmd {
	v.Refresh()

	analysis, ctx := v.deps.Analysis, v.ctx
	if analysis == nil || v.deps.Charts == nil || v.hasCharts() {
		return nil
	}
	return func() tea.Msg {
		return messages.ChartsRestored{Err: analysis.RestoreLatest(ctx)}
	}
}

// Refresh reloads the terms and user from the session store.
func (v *View) Refresh() {
	if v.deps.Sessions == nil {
		return
	}
	session := v.deps.Sessions.Session()
	if session == nil {
		v.terms.SetTerms(nil, domain.AllTerms)
		v.statusbar.SetUsername("")
		return
	}
	v.terms.SetTerms(session.SelectableTerms(), session.SelectedTermOrAll())
	v.statusbar.SetUsername(session.Username)
}

// Update handles messages for the dashboard.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.AnalysisCompleted:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.statusbar.SetState(status.StateDone)
		v.statusbar.SetMessage(fmt.Sprintf("Analysed %s", termTitle(msg.Term)))
		return v, nil

	case messages.ChartsRestored:
		if msg.Err != nil {
			v.setError(msg.Err)
		}
		return v, nil

	case messages.DownloadCompleted:
		v.downloading = false
		v.alerts = append(v.alerts, msg.Alerts...)
		if msg.Path != "" {
			v.statusbar.SetState(status.StateDone)
			v.statusbar.SetMessage("Saved " + msg.Path)
		} else {
			v.statusbar.Clear()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if len(v.alerts) > 0 {
		if keyStr == "enter" || keyStr == "esc" || keyStr == " " {
			v.alerts = v.alerts[1:]
		}
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Up), keymap.Matches(keyStr, v.keymap.Down):
		v.terms, _ = v.terms.Update(msg)
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Analyze):
		return v, v.analyze()

	case keymap.Matches(keyStr, v.keymap.Download):
		fileType, _ := keymap.DownloadType(keyStr)
		return v, v.download(fileType)

	case keymap.Matches(keyStr, v.keymap.Logout):
		return v, v.logout()

	case keymap.Matches(keyStr, v.keymap.Settings):
		return v, viewChanged(messages.ViewSettings)

	case keymap.Matches(keyStr, v.keymap.Help):
		return v, viewChanged(messages.ViewHelp)

	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, tea.Quit
	}

	return v, nil
}

// analyze starts an analysis for the term under the cursor. The charts
// store raises its loading flag as soon as the command runs.
func (v *View) analyze() tea.Cmd {
	session := v.session()
	if session == nil || v.deps.Analysis == nil {
		v.setError(domain.ErrNotAuthenticated)
		return nil
	}

	term := v.terms.SelectedTerm()
	v.err = nil
	v.statusbar.SetState(status.StateLoading)
	v.statusbar.SetMessage("")

	analysis, ctx, creds := v.deps.Analysis, v.ctx, session.Credentials()
	return func() tea.Msg {
		result, err := analysis.Analyze(ctx, creds, term)
		return messages.AnalysisCompleted{Term: term, Result: result, Err: err}
	}
}

// download fetches an export for the selected term. Alerts raised by the
// download are collected and shown in the modal.
func (v *View) download(fileType domain.FileType) tea.Cmd {
	if v.deps.Analysis == nil || v.downloading {
		return nil
	}
	v.downloading = true
	v.statusbar.SetState(status.StateLoading)
	v.statusbar.SetMessage("")

	analysis, alerts, ctx := v.deps.Analysis, v.deps.Alerts, v.ctx
	return func() tea.Msg {
		path := analysis.DownloadFile(ctx, fileType)
		var pending []string
		if alerts != nil {
			pending = alerts.Drain()
		}
		return messages.DownloadCompleted{FileType: fileType, Path: path, Alerts: pending}
	}
}

func (v *View) logout() tea.Cmd {
	if v.deps.Analysis == nil {
		return nil
	}
	v.deps.Analysis.Logout()
	v.alerts = nil
	v.err = nil
	v.statusbar.Clear()
	return func() tea.Msg { return messages.LoggedOut{} }
}

func (v *View) session() *domain.Session {
	if v.deps.Sessions == nil {
		return nil
	}
	return v.deps.Sessions.Session()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	var analysisErr *domain.AnalysisError
	if errors.As(err, &analysisErr) {
		v.statusbar.SetMessage(analysisErr.Message)
		return
	}
	v.statusbar.SetMessage(err.Error())
}

func (v *View) hasCharts() bool {
	return len(v.deps.Charts.FormattedBarData()) > 0 || len(v.deps.Charts.FormattedLineData()) > 0
}

// View renders the dashboard, or the alert modal when one is open.
func (v *View) View() string {
	if len(v.alerts) > 0 {
		return v.viewAlert()
	}

	header := v.styles.Title.Render("etis") + "  " +
		v.styles.Muted.Render("Analysis for "+termTitle(v.terms.SelectedTerm()))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(termsPaneWidth).Render(v.terms.View()),
		v.viewCharts(),
	)

	downloads := v.viewDownloads()

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "", body, "", downloads, "", v.statusbar.View())
}

func (v *View) viewCharts() string {
	chartWidth := max(v.width-termsPaneWidth-2, 30)

	if v.deps.Charts == nil {
		return v.styles.Muted.Render("No data")
	}
	if v.deps.Charts.Loading() {
		return v.styles.Warning.Render("Loading analysis...")
	}
	if !v.hasCharts() {
		return v.styles.Muted.Render("No analysis yet. Press enter to analyse the selected term.")
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Average grade by subject"))
	b.WriteString("\n")
	b.WriteString(chart.Bars(v.styles, v.deps.Charts.FormattedBarData(), chartWidth))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Score dynamics by term"))
	b.WriteString("\n")
	b.WriteString(chart.Sparkline(v.styles, v.deps.Charts.FormattedLineData()))
	return b.String()
}

func (v *View) viewDownloads() string {
	types := domain.FileTypes()
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = fmt.Sprintf("[%d] %s", i+1, t.Description())
	}
	return v.styles.Help.Render("Download: " + strings.Join(parts, "  "))
}

func (v *View) viewAlert() string {
	box := v.styles.Modal.Render(
		v.styles.Warning.Render(v.alerts[0]) + "\n\n" + v.styles.Help.Render("[enter] OK"),
	)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, box)
}

func termTitle(term string) string {
	if term == domain.AllTerms {
		return "all terms"
	}
	return "term " + term
}

func viewChanged(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.terms.SetDimensions(termsPaneWidth, height-8)
	v.statusbar.SetWidth(width)
}

// Alerts returns the alerts waiting in the modal.
func (v *View) Alerts() []string {
	return v.alerts
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SelectedTerm returns the term under the cursor.
func (v *View) SelectedTerm() string {
	return v.terms.SelectedTerm()
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}
