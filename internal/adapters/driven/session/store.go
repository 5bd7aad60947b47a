// Package session persists the logged-in session as a JSON file and
// reports changes to it made by other etis processes.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
	"github.com/custodia-labs/etis-cli/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.SessionPersister = (*Store)(nil)
	_ driven.SessionWatcher   = (*Store)(nil)
)

// FileName is the session file inside the config directory.
const FileName = "session.json"

// Store keeps the session in <dir>/session.json with owner-only permissions.
type Store struct {
	dir  string
	path string
}

// NewStore creates a session store in dir, creating dir if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &Store{
		dir:  dir,
		path: filepath.Join(dir, FileName),
	}, nil
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted session, or nil if there is none.
// An empty file counts as no session.
func (s *Store) Load() (*domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Save replaces the persisted session. A nil session deletes the file.
// The file is written to a temporary name and renamed into place so
// readers never see a partial write.
func (s *Store) Save(session *domain.Session) error {
	if session == nil {
		return s.Delete()
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// Delete removes the session file. A missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Watch reports changes to the session file. The directory is watched
// rather than the file so that creation and atomic replacement are seen.
// Bursts of events are coalesced into one notification.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", s.dir, err)
	}

	changes := make(chan struct{}, 1)

	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !s.handleFsEvent(event) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("session watcher: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleFsEvent returns true for events that change the session file.
func (s *Store) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != s.path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
