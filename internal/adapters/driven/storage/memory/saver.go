package memory

import (
	"sync"

	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
)

// Ensure FileSaver implements the interface.
var _ driven.FileSaver = (*FileSaver)(nil)

// FileSaver keeps saved payloads in memory, keyed by file name.
type FileSaver struct {
	mu    sync.RWMutex
	files map[string][]byte

	// Err, when set, is returned from Save.
	Err error
}

// NewFileSaver creates an empty file saver.
func NewFileSaver() *FileSaver {
	return &FileSaver{files: make(map[string][]byte)}
}

// Save stores data under name and returns name as the path.
func (s *FileSaver) Save(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.files[name] = append([]byte(nil), data...)
	return name, nil
}

// File returns the payload saved under name.
func (s *FileSaver) File(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	return data, ok
}

// Names returns the saved file names.
func (s *FileSaver) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	return names
}
