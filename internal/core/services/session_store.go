package services

import (
	"sync"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
	"github.com/custodia-labs/etis-cli/internal/logger"
)

// Ensure SessionStore implements the interface.
var _ driving.SessionStore = (*SessionStore)(nil)

// SessionStore owns the current session and mirrors it to a persister.
// All operations are total: persistence failures are logged, never returned.
//
// The selected term is held apart from the session so that it survives
// DeleteUser and a selection made before SetUser carries into the next
// session.
type SessionStore struct {
	mu        sync.RWMutex
	session   *domain.Session
	selected  *string
	persister driven.SessionPersister
}

// NewSessionStore creates a session store. persister may be nil, in which
// case the session lives only in memory.
func NewSessionStore(persister driven.SessionPersister) *SessionStore {
	return &SessionStore{persister: persister}
}

// Session returns a copy of the current session, or nil if logged out.
func (s *SessionStore) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// IsAuthenticated returns true while a session exists.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// SetUser replaces the current session and persists it. A session without
// a selection takes the term selected before it.
func (s *SessionStore) SetUser(session *domain.Session) {
	s.mu.Lock()
	s.session = session.Clone()
	s.adoptSelection()
	snapshot := s.session.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
}

// SetSelectedTerm stores the selected term. Without a session it is kept
// in memory until the next SetUser.
func (s *SessionStore) SetSelectedTerm(term string) {
	s.mu.Lock()
	s.selected = &term
	if s.session == nil {
		s.mu.Unlock()
		logger.Debug("selected term %q held until login", term)
		return
	}
	s.session.SelectedTerm = &term
	snapshot := s.session.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
}

// adoptSelection reconciles the session's selection with the held one.
// Callers hold s.mu.
func (s *SessionStore) adoptSelection() {
	if s.session == nil {
		return
	}
	if s.session.SelectedTerm != nil {
		term := *s.session.SelectedTerm
		s.selected = &term
		return
	}
	if s.selected != nil {
		term := *s.selected
		s.session.SelectedTerm = &term
	}
}

// DeleteUser clears the session and its persisted copy.
func (s *SessionStore) DeleteUser() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	if s.persister == nil {
		return
	}
	if err := s.persister.Delete(); err != nil {
		logger.Warn("failed to delete persisted session: %v", err)
	}
}

// Restore reloads the session from its persisted copy. A missing copy
// leaves the store logged out.
func (s *SessionStore) Restore() error {
	if s.persister == nil {
		return nil
	}

	session, err := s.persister.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.session = session
	s.adoptSelection()
	s.mu.Unlock()

	if session != nil {
		logger.Debug("restored session for %s from %s", session.Username, s.persister.Path())
	}
	return nil
}

func (s *SessionStore) persist(session *domain.Session) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(session); err != nil {
		logger.Warn("failed to persist session: %v", err)
	}
}
