// Package session holds the client-side login state: the current
// username and its bearer token. The pair is persisted to a small JSON
// file so a new process does not force a re-login. The token is opaque;
// only the server judges its validity.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Session is the persisted identity pair. Username and Token are either
// both set or both empty; the store never writes a partial session.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Active reports whether a user is logged in.
func (s Session) Active() bool {
	return s.Username != ""
}

// Store manages the session file. Reads are safe from any goroutine;
// writes overwrite the previous session unconditionally.
type Store struct {
	path string

	mu  sync.RWMutex
	cur Session
}

// Open loads the session file at path, creating parent directories as
// needed. A missing file yields an empty session, not an error.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("session file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := json.Unmarshal(data, &s.cur); err != nil {
		// A corrupt file is treated as logged-out rather than fatal.
		s.cur = Session{}
	}

	return s, nil
}

// DefaultPath returns the session file location under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "flixctl", "session.json"), nil
}

// Get returns the current session.
func (s *Store) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Set replaces the session with the given pair and persists it. Both
// values are written together, so the token-iff-username invariant holds
// by construction. Last write wins.
func (s *Store) Set(username, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.cur
	s.cur = Session{Username: username, Token: token}
	if err := s.persist(); err != nil {
		s.cur = prev
		return err
	}
	return nil
}

// Clear wipes the session and removes the backing file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// persist writes the session atomically: temp file in the same
// directory, then rename. Caller holds the write lock.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.cur, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set session file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
