// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// allTermsLabel is shown for the entry that selects every term.
const allTermsLabel = "All terms"

// TermList is a navigable list of the user's terms. The first entry always
// selects all terms.
type TermList struct {
	terms    []domain.Term
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewTermList creates a list holding only the all-terms entry.
func NewTermList(s *styles.Styles) *TermList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &TermList{
		styles: s,
		width:  20,
		height: 10,
	}
}

// Init initialises the term list.
func (l *TermList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *TermList) Update(msg tea.Msg) (*TermList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list with the cursor on the selected entry.
func (l *TermList) View() string {
	lines := make([]string, 0, l.Count()+2)
	lines = append(lines, l.styles.Subtitle.Render("Terms"), "")

	for i := 0; i < l.Count(); i++ {
		label := l.label(i)
		if i == l.selected {
			lines = append(lines, l.styles.Selected.Render("> "+label))
		} else {
			lines = append(lines, l.styles.Normal.Render("  "+label))
		}
	}

	return strings.Join(lines, "\n")
}

func (l *TermList) label(i int) string {
	if i == 0 {
		return allTermsLabel
	}
	return "Term " + l.terms[i-1].String()
}

// SetTerms replaces the terms and moves the cursor to selected.
// An unknown or empty selection puts the cursor on all terms.
func (l *TermList) SetTerms(terms []domain.Term, selected string) {
	l.terms = terms
	l.selected = 0
	for i, t := range terms {
		if t.String() == selected {
			l.selected = i + 1
			break
		}
	}
}

// Terms returns the listed terms, without the all-terms entry.
func (l *TermList) Terms() []domain.Term {
	return l.terms
}

// Selected returns the cursor index. Zero is the all-terms entry.
func (l *TermList) Selected() int {
	return l.selected
}

// SelectedTerm returns the term under the cursor, or domain.AllTerms.
func (l *TermList) SelectedTerm() string {
	if l.selected == 0 || l.selected > len(l.terms) {
		return domain.AllTerms
	}
	return l.terms[l.selected-1].String()
}

// MoveUp moves selection up.
func (l *TermList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *TermList) MoveDown() {
	if l.selected < l.Count()-1 {
		l.selected++
	}
}

// Count returns the number of entries, including all terms.
func (l *TermList) Count() int {
	return len(l.terms) + 1
}

// SetDimensions sets the component dimensions.
func (l *TermList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *TermList) Width() int {
	return l.width
}
