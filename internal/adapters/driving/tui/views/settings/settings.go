// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
)

// Item identifies an editable setting.
type Item int

const (
	ItemBaseURL Item = iota
	ItemToken
	ItemDownloadDir
)

// itemCount is the number of rows in the overview.
const itemCount = 3

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

var errNoSettingsService = errors.New("settings service not available")

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error

	selected int
	editing  bool
	field    *input.Field

	// Dimensions
	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		field:           input.NewField(s, "", "", false),
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	v.editing = false
	v.field.Blur()
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: errNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.stopEditing()
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleOverviewKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDashboard}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < itemCount-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		return v, v.startEditing(Item(v.selected))
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.stopEditing()
		v.err = nil
		return v, nil
	case keyEnter:
		return v, v.save(Item(v.selected), v.field.Value())
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

// startEditing opens an input for item, prefilled with its current value.
// The token is never prefilled.
func (v *View) startEditing(item Item) tea.Cmd {
	switch item {
	case ItemBaseURL:
		v.field = input.NewField(v.styles, "URL", domain.DefaultAPIBaseURL, false)
		v.field.SetValue(v.settings.API.BaseURL)
	case ItemToken:
		v.field = input.NewField(v.styles, "Token", "paste token", true)
	case ItemDownloadDir:
		v.field = input.NewField(v.styles, "Directory", "current directory", false)
		v.field.SetValue(v.settings.Download.Dir)
	}
	v.field.SetWidth(v.width)
	v.editing = true
	return v.field.Focus()
}

func (v *View) stopEditing() {
	v.editing = false
	v.field.Blur()
	v.field.Reset()
}

func (v *View) save(item Item, value string) tea.Cmd {
	svc := v.settingsService
	value = strings.TrimSpace(value)
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		var err error
		switch item {
		case ItemBaseURL:
			err = svc.SetBaseURL(value)
		case ItemToken:
			err = svc.SetToken(value)
		case ItemDownloadDir:
			err = svc.SetDownloadDir(value)
		}
		return messages.SettingsSaved{Err: err}
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	b.WriteString(v.renderOverview())

	if v.editing {
		b.WriteString("\n")
		b.WriteString(v.field.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	token := v.styles.Warning.Render("(not set)")
	if v.settings.API.IsAuthenticated() {
		token = v.styles.Success.Render("[configured]")
	}
	dir := v.settings.Download.Dir
	if dir == "" {
		dir = "(current directory)"
	}

	items := []struct {
		label string
		value string
	}{
		{label: "Grading service URL", value: v.settings.API.BaseURL},
		{label: "API token", value: token},
		{label: "Download directory", value: dir},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Timeout %s, %.1f req/s",
		v.settings.API.Timeout, v.settings.API.RateLimit)))
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.field.SetWidth(width)
}

// Editing reports whether an input is open.
func (v *View) Editing() bool {
	return v.editing
}

// Selected returns the highlighted item.
func (v *View) Selected() Item {
	return Item(v.selected)
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
