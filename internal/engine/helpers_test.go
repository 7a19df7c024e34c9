package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/mapimp/internal/archive"
	"github.com/danieljhkim/mapimp/internal/clock"
	"github.com/danieljhkim/mapimp/internal/config"
	"github.com/danieljhkim/mapimp/internal/fsops"
	"github.com/danieljhkim/mapimp/internal/importlist"
	"github.com/danieljhkim/mapimp/internal/state"
)

const (
	testMap      = "/maps/test.w3x"
	testCampaign = "/maps/test.w3n"
	mapIndex     = "war3map.imp"
	prefix       = importlist.Prefix
)

// mockSessionStore keeps sessions as JSON, so tests see exactly what a file
// store would persist.
type mockSessionStore struct {
	sessions map[string][]byte
	saveErr  error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string][]byte)}
}

func (m *mockSessionStore) Load(id string) (*state.Session, error) {
	data, ok := m.sessions[id]
	if !ok {
		return nil, os.ErrNotExist
	}
	var s state.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *mockSessionStore) Save(id string, s *state.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.sessions[id] = data
	return nil
}

func (m *mockSessionStore) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

type testEnv struct {
	engine   *Engine
	backend  *archive.MemoryOpener
	sessions *mockSessionStore
	clock    *clock.FakeClock
}

var testTime = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := archive.NewMemoryOpener()
	sessions := newMockSessionStore()
	clk := clock.NewFakeClock(testTime)
	return &testEnv{
		engine:   New(backend, sessions, fsops.NewRealFS(), clk, config.DefaultSettings()),
		backend:  backend,
		sessions: sessions,
		clock:    clk,
	}
}

// addMap registers a map archive whose index lists the given full paths.
// Each listed file is present in the archive with its own name as content.
func (env *testEnv) addMap(t *testing.T, path string, files ...string) *archive.Memory {
	t.Helper()
	m := env.backend.Add(path)
	m.Entries["war3map.j"] = []byte("// script")

	entries := make([]*importlist.Entry, 0, len(files))
	for _, f := range files {
		m.Entries[f] = []byte(f)
		entries = append(entries, importlist.NewArchivedEntry(f))
	}
	if data := importlist.Encode(entries); data != nil {
		m.Entries[mapIndex] = data
	}
	return m
}

// indexPaths decodes the archive's current index into full paths.
func indexPaths(t *testing.T, m *archive.Memory, name string) []string {
	t.Helper()
	data, ok := m.Entries[name]
	if !ok {
		return nil
	}
	entries, found := importlist.Decode(data)
	if !found {
		t.Fatalf("index %s does not decode", name)
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.FullPath()
	}
	return paths
}

func fullPaths(entries []*importlist.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.FullPath()
	}
	return out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newImported(full, diskPath string) *importlist.Entry {
	return importlist.NewImportedEntry(full, diskPath)
}
