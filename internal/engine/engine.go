// Package engine provides the core business logic for mapimp operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It loads import lists out of archives, keeps the
// pending edits of each archive in a session, and saves them back by
// executing a sync plan against the archive.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Load/Sync/Export: The archive passes, each holding one handle
//   - Open/Import/Move/Remove/Save/Reset: Session editing on top of them
package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/mapimp/internal/archive"
	"github.com/danieljhkim/mapimp/internal/clock"
	"github.com/danieljhkim/mapimp/internal/config"
	"github.com/danieljhkim/mapimp/internal/fsops"
	"github.com/danieljhkim/mapimp/internal/state"
)

// Engine orchestrates all mapimp operations.
// It is the main API surface called by the CLI.
type Engine struct {
	backend  archive.Backend
	sessions state.SessionStore
	fs       fsops.FS
	clock    clock.Clock
	settings *config.Settings
}

// New creates a new Engine with the given dependencies.
func New(
	backend archive.Backend,
	sessions state.SessionStore,
	fs fsops.FS,
	clk clock.Clock,
	settings *config.Settings,
) *Engine {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &Engine{
		backend:  backend,
		sessions: sessions,
		fs:       fs,
		clock:    clk,
		settings: settings,
	}
}

// resolveArchive returns the absolute archive path and its session ID.
func resolveArchive(path string) (string, string, error) {
	if path == "" {
		return "", "", fmt.Errorf("%w: archive path is required", ErrValidation)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve archive path: %w", err)
	}
	return abs, state.ComputeSessionID(abs), nil
}

// loadSession returns the stored session for an archive, or nil when there
// is none.
func (e *Engine) loadSession(id string) (*state.Session, error) {
	session, err := e.sessions.Load(id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}
