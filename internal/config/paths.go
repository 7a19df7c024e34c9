// Package config manages mapimp configuration and filesystem paths.
//
// The data root (default ~/.mapimp, overridable with MAPIMP_ROOT) holds the
// sessions/ directory with pending edits and an optional config.toml read by
// LoadSettings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by mapimp.
type Paths struct {
	// Root is the base directory for all mapimp data (default: ~/.mapimp)
	Root string

	// Sessions is the directory containing pending edit sessions
	Sessions string

	// Config is the path to the settings file
	Config string
}

// DefaultPaths returns the default paths for mapimp.
// Paths can be overridden with environment variables:
// - MAPIMP_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("MAPIMP_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".mapimp")
	}

	return NewPaths(root), nil
}

// NewPaths lays out the standard paths below root.
func NewPaths(root string) *Paths {
	return &Paths{
		Root:     root,
		Sessions: filepath.Join(root, "sessions"),
		Config:   filepath.Join(root, "config.toml"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.Sessions,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
