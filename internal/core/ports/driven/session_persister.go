package driven

import (
	"context"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

// SessionPersister stores a serialized copy of the session for the
// lifetime of the login. It is cleared on logout.
type SessionPersister interface {
	// Load returns the persisted session, or nil and no error if none exists.
	Load() (*domain.Session, error)

	// Save replaces the persisted session.
	Save(session *domain.Session) error

	// Delete removes the persisted session. Deleting a missing session is not an error.
	Delete() error

	// Path returns where the session is persisted.
	Path() string
}

// SessionWatcher reports changes to the persisted session made by other processes.
type SessionWatcher interface {
	// Watch sends on the returned channel whenever the persisted session
	// changes. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
