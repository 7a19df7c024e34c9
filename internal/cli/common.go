package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danieljhkim/mapimp/internal/archive"
	"github.com/danieljhkim/mapimp/internal/clock"
	"github.com/danieljhkim/mapimp/internal/config"
	"github.com/danieljhkim/mapimp/internal/engine"
	"github.com/danieljhkim/mapimp/internal/fsops"
	"github.com/danieljhkim/mapimp/internal/log"
	"github.com/danieljhkim/mapimp/internal/state"
)

// settings is loaded once per invocation before any command runs.
var settings = config.DefaultSettings()

// loadSettings reads the settings file and environment and configures logging.
func loadSettings() error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return fmt.Errorf("failed to get config paths: %w", err)
	}

	loaded, err := config.LoadSettings(paths, configFile)
	if err != nil {
		return err
	}
	if err := log.Configure(loaded.LogLevel, loaded.LogFile); err != nil {
		return err
	}

	settings = loaded
	return nil
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	// Get default paths
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	// Ensure directories exist
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	// Create real implementations
	fs := fsops.NewRealFS()
	backend := archive.NewZipOpener(fs)
	sessions := state.NewFileSessionStore(fs, paths.Sessions)
	clk := &clock.RealClock{}

	// Create engine
	return engine.New(backend, sessions, fs, clk, settings), nil
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	initColors()
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
