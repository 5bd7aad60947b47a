// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// NextField moves focus between form fields.
	NextField key.Binding

	// Submit sends the login form.
	Submit key.Binding

	// Analyze requests an analysis for the selected term.
	Analyze key.Binding

	// Download fetches one of the exports of the last analysis.
	Download key.Binding

	// Logout clears the session.
	Logout key.Binding

	// Settings opens the settings view.
	Settings key.Binding
}

// downloadKeys maps the number keys to the exports, in display order.
var downloadKeys = map[string]domain.FileType{
	"1": domain.FileTypeCSV,
	"2": domain.FileTypeXLSX,
	"3": domain.FileTypeAvgGrades,
	"4": domain.FileTypeTermDynamics,
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "log in"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter", "analyse"),
		),
		Download: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "download"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
	}
}

// DownloadType returns the export bound to keyStr.
func DownloadType(keyStr string) (domain.FileType, bool) {
	ft, ok := downloadKeys[keyStr]
	return ft, ok
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// LoginHelp returns keybindings for the login view.
func (k *KeyMap) LoginHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit}
}

// DashboardHelp returns keybindings for the dashboard.
func (k *KeyMap) DashboardHelp() []key.Binding {
	return []key.Binding{k.Up, k.Analyze, k.Download, k.Logout, k.Help}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Analyze},
		{k.Download, k.Logout, k.Settings},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
