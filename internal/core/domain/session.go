package domain

import (
	"fmt"
	"slices"
	"strconv"
)

// Term identifies an academic period. The grading service reports terms as
// integers; the selected term is carried as a string because an empty value
// means "all terms".
type Term int

// String returns the decimal form of the term.
func (t Term) String() string {
	return strconv.Itoa(int(t))
}

// AllTerms is the selected-term value that requests an analysis across every term.
const AllTerms = ""

// AllTermsName is how users spell AllTerms.
const AllTermsName = "all"

// Session is an authenticated user identity plus the available terms and the
// current term selection.
type Session struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Terms    []int  `json:"terms"`

	// SelectedTerm is nil until a term has been chosen.
	SelectedTerm *string `json:"selected_term,omitempty"`
}

// NewSession merges a login's term list into the credentials that produced it.
func NewSession(creds Credentials, terms []int) *Session {
	return &Session{
		Username: creds.Username,
		Password: creds.Password,
		Terms:    terms,
	}
}

// Credentials returns the credentials echoed into the session.
func (s *Session) Credentials() Credentials {
	return Credentials{Username: s.Username, Password: s.Password}
}

// SelectableTerms returns the terms the user may pick from.
// A session without terms yields an empty list.
func (s *Session) SelectableTerms() []Term {
	if s == nil || len(s.Terms) == 0 {
		return []Term{}
	}
	terms := make([]Term, len(s.Terms))
	for i, t := range s.Terms {
		terms[i] = Term(t)
	}
	return terms
}

// SelectedTermOrAll returns the selected term, or AllTerms if none is selected.
func (s *Session) SelectedTermOrAll() string {
	if s == nil || s.SelectedTerm == nil {
		return AllTerms
	}
	return *s.SelectedTerm
}

// ResolveTerm maps a user-supplied term to its stored form. "all" and ""
// resolve to AllTerms; anything else must be one of the session's terms.
func (s *Session) ResolveTerm(arg string) (string, error) {
	if arg == AllTermsName || arg == "" {
		return AllTerms, nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		return "", fmt.Errorf("%w: term must be a number or %q", ErrInvalidInput, AllTermsName)
	}
	if s == nil || !slices.Contains(s.Terms, n) {
		return "", fmt.Errorf("%w: term %d is not available", ErrInvalidInput, n)
	}
	return Term(n).String(), nil
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Terms = slices.Clone(s.Terms)
	if s.SelectedTerm != nil {
		term := *s.SelectedTerm
		c.SelectedTerm = &term
	}
	return &c
}
