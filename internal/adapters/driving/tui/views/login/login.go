// Package login provides the login form shown while no session exists.
package login

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
)

// errMissingCredentials is shown when the form is submitted incomplete.
var errMissingCredentials = errors.New("enter a username and a password")

// View is the login form.
type View struct {
	styles   *styles.Styles
	analysis driving.AnalysisService
	ctx      context.Context

	username *input.Field
	password *input.Field
	focused  int

	submitting bool
	err        error

	width  int
	height int
}

// NewView creates a new login view.
func NewView(ctx context.Context, s *styles.Styles, analysis driving.AnalysisService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	v := &View{
		styles:   s,
		analysis: analysis,
		ctx:      ctx,
		username: input.NewField(s, "Username", "student id", false),
		password: input.NewField(s, "Password", "", true),
		width:    80,
		height:   24,
	}
	v.username.Focus()
	return v
}

// Init focuses the username field.
func (v *View) Init() tea.Cmd {
	return v.username.Init()
}

// Reset clears the form.
func (v *View) Reset() {
	v.username.Reset()
	v.password.Reset()
	v.err = nil
	v.submitting = false
	v.focus(0)
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.LoginCompleted:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			v.password.Reset()
			v.focus(1)
			return v, nil
		}
		v.err = nil
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.submitting {
		return v, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		v.focus(1 - v.focused)
		return v, nil

	case "enter":
		if v.focused == 0 && v.password.Value() == "" {
			v.focus(1)
			return v, nil
		}
		return v, v.submit()
	}

	var cmd tea.Cmd
	if v.focused == 0 {
		v.username, cmd = v.username.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v *View) focus(i int) {
	v.focused = i
	if i == 0 {
		v.username.Focus()
		v.password.Blur()
		return
	}
	v.password.Focus()
	v.username.Blur()
}

// submit validates the form and returns the login command.
func (v *View) submit() tea.Cmd {
	creds := domain.Credentials{
		Username: strings.TrimSpace(v.username.Value()),
		Password: v.password.Value(),
	}
	if creds.Validate() != nil {
		v.err = errMissingCredentials
		return nil
	}
	if v.analysis == nil {
		v.err = errors.New("analysis service not available")
		return nil
	}

	v.err = nil
	v.submitting = true
	ctx, analysis := v.ctx, v.analysis
	return func() tea.Msg {
		session, err := analysis.Login(ctx, creds)
		return messages.LoginCompleted{Session: session, Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("etis"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Sign in to the grading service"))
	b.WriteString("\n\n")
	b.WriteString(v.username.View())
	b.WriteString("\n")
	b.WriteString(v.password.View())
	b.WriteString("\n\n")

	switch {
	case v.submitting:
		b.WriteString(v.styles.Warning.Render("Signing in..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Login failed: " + v.err.Error()))
	default:
		b.WriteString(v.styles.Help.Render("[tab] Next field  [enter] Log in  [ctrl+c] Quit"))
	}

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, b.String())
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.username.SetWidth(min(width-4, 60))
	v.password.SetWidth(min(width-4, 60))
}

// Submitting reports whether a login request is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// Err returns the last login error.
func (v *View) Err() error {
	return v.err
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focused
}

// Username returns the entered username.
func (v *View) Username() string {
	return v.username.Value()
}
