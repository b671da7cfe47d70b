package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const defaultFileName = "session.json"

type fileState struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// FileStore persists the session as a 0600 JSON file, the console analog of
// browser-local storage.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	state fileState
}

// NewFileStore loads (or lazily creates) the session file at path. An empty
// path falls back to the user config directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		path = filepath.Join(configDir, "stockflow", defaultFileName)
	}

	store := &FileStore{path: path}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *FileStore) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading session file: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		// A corrupt session file means signed out, not a fatal error.
		s.state = fileState{}
	}
	return nil
}

// Token implements Provider.
func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Username implements Provider.
func (s *FileStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Username
}

// Save implements Provider.
func (s *FileStore) Save(token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fileState{Token: token, Username: username}
	return s.write()
}

// Clear implements Provider.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fileState{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

func (s *FileStore) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}
