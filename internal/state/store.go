package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/mapimp/internal/fsops"
	"github.com/danieljhkim/mapimp/internal/importlist"
)

// SessionStore provides an interface for persisting edit sessions.
type SessionStore interface {
	// Load loads the session for the given session ID.
	// Returns os.ErrNotExist if the session doesn't exist.
	Load(id string) (*Session, error)

	// Save saves the session atomically.
	Save(id string, session *Session) error

	// Delete deletes the session file. A missing session is not an error.
	Delete(id string) error
}

// FileSessionStore implements SessionStore using JSON files on disk.
type FileSessionStore struct {
	fs          fsops.FS
	sessionsDir string
}

// NewFileSessionStore creates a new FileSessionStore.
func NewFileSessionStore(fs fsops.FS, sessionsDir string) *FileSessionStore {
	return &FileSessionStore{
		fs:          fs,
		sessionsDir: sessionsDir,
	}
}

func (s *FileSessionStore) path(id string) (string, error) {
	if err := s.fs.ValidateIdentifier(id); err != nil {
		return "", fmt.Errorf("invalid session id: %w", err)
	}
	return filepath.Join(s.sessionsDir, id+".json"), nil
}

// Load loads the session for the given session ID.
func (s *FileSessionStore) Load(id string) (*Session, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.Version > SchemaVersion {
		return nil, fmt.Errorf("session version %d is newer than supported version %d", session.Version, SchemaVersion)
	}
	if session.Entries == nil {
		session.Entries = []*importlist.Entry{}
	}

	return &session, nil
}

// Save saves the session atomically.
func (s *FileSessionStore) Save(id string, session *Session) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}

// Delete deletes the session file.
func (s *FileSessionStore) Delete(id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
