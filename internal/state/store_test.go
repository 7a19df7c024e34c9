package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/mapimp/internal/fsops"
	"github.com/danieljhkim/mapimp/internal/importlist"
)

func newStore(t *testing.T) (*FileSessionStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "sessions")
	return NewFileSessionStore(fsops.NewRealFS(), dir), dir
}

func TestFileSessionStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, dir := newStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	moved := importlist.NewArchivedEntry(importlist.Prefix + "a.mdx")
	moved.SetFullPath("units/a.mdx")
	moved.Changed = true

	session := NewSession("/maps/test.w3x", "map", []*importlist.Entry{
		moved,
		importlist.NewImportedEntry("b.blp", "/disk/b.blp"),
	}, now)
	session.Touch(now.Add(time.Minute))

	id := ComputeSessionID(session.ArchivePath)
	require.NoError(t, store.Save(id, session))
	assert.FileExists(t, filepath.Join(dir, id+".json"))

	loaded, err := store.Load(id)
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, loaded.Version)
	assert.Equal(t, "/maps/test.w3x", loaded.ArchivePath)
	assert.Equal(t, "map", loaded.Kind)
	assert.True(t, loaded.Dirty)
	assert.True(t, loaded.CreatedAt.Equal(now))
	assert.True(t, loaded.UpdatedAt.Equal(now.Add(time.Minute)))

	require.Len(t, loaded.Entries, 2)
	assert.Equal(t, "units/a.mdx", loaded.Entries[0].FullPath())
	assert.Equal(t, importlist.Prefix+"a.mdx", loaded.Entries[0].OriginalPath())
	assert.True(t, loaded.Entries[0].Changed)
	assert.Equal(t, "/disk/b.blp", loaded.Entries[1].DiskPath)
	assert.False(t, loaded.Entries[1].Archived())
}

func TestFileSessionStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	_, err := store.Load(ComputeSessionID("/nope.w3x"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileSessionStore_LoadCorrupt(t *testing.T) {
	t.Parallel()

	store, dir := newStore(t)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644))

	_, err := store.Load("bad")
	assert.ErrorContains(t, err, "failed to unmarshal session")
}

func TestFileSessionStore_LoadNewerVersion(t *testing.T) {
	t.Parallel()

	store, dir := newStore(t)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "future.json"), []byte(`{"version": 99}`), 0644))

	_, err := store.Load("future")
	assert.ErrorContains(t, err, "newer than supported")
}

func TestFileSessionStore_Delete(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	id := ComputeSessionID("/maps/x.w3x")
	require.NoError(t, store.Save(id, NewSession("/maps/x.w3x", "map", nil, time.Now())))

	require.NoError(t, store.Delete(id))
	_, err := store.Load(id)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Deleting twice is fine
	assert.NoError(t, store.Delete(id))
}

func TestFileSessionStore_RejectsBadID(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	for _, id := range []string{"", "..", "../escape", "a/b"} {
		_, err := store.Load(id)
		assert.ErrorContains(t, err, "invalid session id", "id %q", id)
	}
}

func TestNewSession_EmptyEntries(t *testing.T) {
	t.Parallel()

	s := NewSession("/maps/x.w3x", "campaign", nil, time.Now())
	assert.NotNil(t, s.Entries)
	assert.Empty(t, s.Entries)
	assert.False(t, s.Dirty)
}
