package driving

import (
	"context"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// SessionStore holds the authenticated user, their terms and the selected term.
type SessionStore interface {
	// Session returns a copy of the current session, or nil if logged out.
	Session() *domain.Session

	// IsAuthenticated returns true while a session exists.
	IsAuthenticated() bool

	// SetSelectedTerm stores the selected term.
	SetSelectedTerm(term string)

	// Restore reloads the session from its persisted copy.
	Restore() error
}

// SessionWatcher reports when the session was changed by another process.
type SessionWatcher interface {
	// Watch sends on the returned channel after each change. The channel is
	// closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
