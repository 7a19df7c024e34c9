package integration

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/danieljhkim/mapimp/internal/archive"
	"github.com/danieljhkim/mapimp/internal/clock"
	"github.com/danieljhkim/mapimp/internal/config"
	"github.com/danieljhkim/mapimp/internal/engine"
	"github.com/danieljhkim/mapimp/internal/fsops"
	"github.com/danieljhkim/mapimp/internal/importlist"
	"github.com/danieljhkim/mapimp/internal/state"
)

// testEnv wires the engine to real zip archives and session files under a
// temp directory.
type testEnv struct {
	eng      *engine.Engine
	fs       *fsops.RealFS
	sessions *state.FileSessionStore
	clock    *clock.FakeClock
	dir      string
}

func setupTestEngine(t *testing.T, settings *config.Settings) *testEnv {
	t.Helper()

	dir := t.TempDir()
	fs := fsops.NewRealFS()
	sessions := state.NewFileSessionStore(fs, filepath.Join(dir, "sessions"))
	clk := clock.NewFakeClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	eng := engine.New(archive.NewZipOpener(fs), sessions, fs, clk, settings)
	return &testEnv{eng: eng, fs: fs, sessions: sessions, clock: clk, dir: dir}
}

// createMap writes a map archive holding files and an import list naming
// them in the given order.
func (env *testEnv) createMap(t *testing.T, name string, files map[string]string, order ...string) string {
	t.Helper()

	path := filepath.Join(env.dir, name)
	kind, _ := archive.KindByName("map")
	if err := archive.CreateZip(env.fs, path, kind); err != nil {
		t.Fatalf("CreateZip() error = %v", err)
	}

	a, err := archive.OpenZip(env.fs, path)
	if err != nil {
		t.Fatalf("OpenZip() error = %v", err)
	}
	for full, content := range files {
		if err := a.WriteEntry(full, []byte(content), archive.CompressionDeflate); err != nil {
			t.Fatalf("WriteEntry(%s) error = %v", full, err)
		}
	}

	entries := make([]*importlist.Entry, len(order))
	for i, full := range order {
		entries[i] = importlist.NewArchivedEntry(full)
	}
	if index := importlist.Encode(entries); index != nil {
		if err := a.WriteEntry(kind.IndexFile, index, archive.CompressionDeflate); err != nil {
			t.Fatalf("WriteEntry(index) error = %v", err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return path
}

// writeSource creates a file on disk to import from.
func (env *testEnv) writeSource(t *testing.T, rel, content string) string {
	t.Helper()

	path := filepath.Join(env.dir, "src", filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// snapshot reopens the archive and returns its sorted entry names, the
// decoded index paths and a reader for entry contents.
func (env *testEnv) snapshot(t *testing.T, path string) (names []string, index []string, read func(string) string) {
	t.Helper()

	a, err := archive.OpenZip(env.fs, path)
	if err != nil {
		t.Fatalf("OpenZip() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	names = a.Names()
	sort.Strings(names)

	data, err := a.ReadEntry("war3map.imp")
	if err == nil {
		entries, ok := importlist.Decode(data)
		if !ok {
			t.Fatalf("index does not decode")
		}
		for _, e := range entries {
			index = append(index, e.FullPath())
		}
	}

	read = func(name string) string {
		b, err := a.ReadEntry(name)
		if err != nil {
			t.Fatalf("ReadEntry(%s) error = %v", name, err)
		}
		return string(b)
	}
	return names, index, read
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
