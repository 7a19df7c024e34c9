package fsops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFS_ValidateRelPath(t *testing.T) {
	fs := NewRealFS()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{filepath.FromSlash("war3mapImported/units/footman.mdx"), false},
		{"war3map.imp", false},
		{".hidden.blp", false},
		{"..hidden.mdx", false},
		{filepath.FromSlash("a/./b.mdx"), false},
		{"", true},
		{".", true},
		{"..", true},
		{filepath.FromSlash("../outside.mdx"), true},
		{filepath.FromSlash("units/../../outside.mdx"), true},
		{filepath.FromSlash("/etc/hosts"), true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := fs.ValidateRelPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRealFS_ValidateIdentifier(t *testing.T) {
	fs := NewRealFS()

	for _, id := range []string{"3f2a9c", "session_123"} {
		assert.NoError(t, fs.ValidateIdentifier(id), id)
	}
	for _, id := range []string{"", ".", "..", "..x", "a/b", `a\b`} {
		assert.Error(t, fs.ValidateIdentifier(id), id)
	}
}

func TestRealFS_AtomicWrite(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(dir, "export", "units", "footman.mdx")
		require.NoError(t, fs.AtomicWrite(path, []byte("mdx"), 0644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "mdx", string(got))
	})

	t.Run("replaces existing content", func(t *testing.T) {
		path := filepath.Join(dir, "session.json")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
		require.NoError(t, fs.AtomicWrite(path, []byte("new"), 0644))

		got, err := fs.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		// no temp files left behind
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), "mapimp-tmp")
		}
	})
}

func TestRealFS_FileLifecycle(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "unit.mdx")

	exists, err := fs.Exists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = fs.ReadFile(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("mdx"), 0644))

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.EqualValues(t, 3, info.Size())

	exists, err = fs.Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, fs.Remove(path))
	_, err = fs.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRealFS_WalkFiles(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	for _, f := range []string{"b.blp", "units/footman.mdx", "units/human/knight.mdx", "a.mp3"} {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(f), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))

	got, err := fs.WalkFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mp3", "b.blp", "units/footman.mdx", "units/human/knight.mdx"}, got)

	_, err = fs.WalkFiles(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}
