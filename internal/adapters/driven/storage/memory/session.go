package memory

import (
	"sync"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
)

// Ensure SessionPersister implements the interface.
var _ driven.SessionPersister = (*SessionPersister)(nil)

// SessionPersister is an in-memory implementation of driven.SessionPersister.
type SessionPersister struct {
	mu      sync.Mutex
	session *domain.Session

	// SaveErr, when set, is returned from Save.
	SaveErr error
	// Saves counts successful Save calls.
	Saves int
}

// NewSessionPersister creates an empty session persister.
func NewSessionPersister() *SessionPersister {
	return &SessionPersister{}
}

// Load returns a copy of the stored session, or nil.
func (p *SessionPersister) Load() (*domain.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session.Clone(), nil
}

// Save replaces the stored session.
func (p *SessionPersister) Save(session *domain.Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.session = session.Clone()
	p.Saves++
	return nil
}

// Delete clears the stored session.
func (p *SessionPersister) Delete() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = nil
	return nil
}

// Path returns a placeholder path.
func (p *SessionPersister) Path() string {
	return ":memory:"
}
