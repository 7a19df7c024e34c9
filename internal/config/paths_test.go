package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("returns paths based on home directory", func(t *testing.T) {
		t.Setenv("MAPIMP_ROOT", "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root == "" {
			t.Error("Root should not be empty")
		}
		if filepath.Base(paths.Root) != ".mapimp" {
			t.Errorf("Root should end with .mapimp, got: %s", paths.Root)
		}
		if paths.Sessions != filepath.Join(paths.Root, "sessions") {
			t.Errorf("Sessions path incorrect: got %s", paths.Sessions)
		}
		if paths.Config != filepath.Join(paths.Root, "config.toml") {
			t.Errorf("Config path incorrect: got %s", paths.Config)
		}
	})

	t.Run("respects MAPIMP_ROOT environment variable", func(t *testing.T) {
		customRoot := filepath.Join(t.TempDir(), "custom")
		t.Setenv("MAPIMP_ROOT", customRoot)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root != customRoot {
			t.Errorf("Expected root %s, got %s", customRoot, paths.Root)
		}
		if paths.Sessions != filepath.Join(customRoot, "sessions") {
			t.Errorf("Sessions should be under custom root, got: %s", paths.Sessions)
		}
	})
}

func TestPaths_EnsureDirectories(t *testing.T) {
	paths := NewPaths(filepath.Join(t.TempDir(), "root"))

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{paths.Root, paths.Sessions} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("directory %s was not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}

	// Second call must be a no-op
	if err := paths.EnsureDirectories(); err != nil {
		t.Errorf("second EnsureDirectories failed: %v", err)
	}
}
