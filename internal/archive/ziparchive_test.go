package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/mapimp/internal/fsops"
)

func newZip(t *testing.T, kind Kind) (fsops.FS, string) {
	t.Helper()
	fs := fsops.NewRealFS()
	path := filepath.Join(t.TempDir(), "test.w3x")
	require.NoError(t, CreateZip(fs, path, kind))
	return fs, path
}

func TestCreateZip_DetectsKind(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds {
		t.Run(kind.Name, func(t *testing.T) {
			fs, path := newZip(t, kind)

			a, err := NewZipOpener(fs).Open(path)
			require.NoError(t, err)
			defer func() { _ = a.Close() }()

			got, ok := DetectKind(a)
			require.True(t, ok)
			assert.Equal(t, kind, got)
		})
	}
}

func TestCreateZip_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	fs, path := newZip(t, Kinds[0])
	err := CreateZip(fs, path, Kinds[0])
	assert.ErrorIs(t, err, ErrExists)
}

func TestZipArchive_RoundTrip(t *testing.T) {
	t.Parallel()

	fs, path := newZip(t, Kinds[0])
	src := filepath.Join(t.TempDir(), "a.mdx")
	require.NoError(t, os.WriteFile(src, []byte("model bytes"), 0644))

	a, err := OpenZip(fs, path)
	require.NoError(t, err)
	require.NoError(t, a.AddFile(src, `war3mapImported\a.mdx`, CompressionZstd))
	require.NoError(t, a.WriteEntry("war3map.imp", []byte{1, 2, 3}, CompressionStore))
	require.NoError(t, a.WriteEntry("scratch", []byte("x"), CompressionDeflate))
	require.NoError(t, a.RemoveEntry("scratch"))
	require.NoError(t, a.Compact())
	require.NoError(t, a.Close())

	b, err := OpenZip(fs, path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	assert.Equal(t, []string{"war3map.j", `war3mapImported\a.mdx`, "war3map.imp"}, b.Names())

	data, err := b.ReadEntry(`war3mapImported\a.mdx`)
	require.NoError(t, err)
	assert.Equal(t, []byte("model bytes"), data)

	_, err = b.ReadEntry("scratch")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestZipArchive_Rename(t *testing.T) {
	t.Parallel()

	fs, path := newZip(t, Kinds[0])
	a, err := OpenZip(fs, path)
	require.NoError(t, err)

	require.NoError(t, a.WriteEntry("a", []byte("1"), CompressionDeflate))
	require.NoError(t, a.WriteEntry("b", []byte("2"), CompressionDeflate))

	assert.ErrorIs(t, a.RenameEntry("a", "b"), ErrExists)
	assert.ErrorIs(t, a.RenameEntry("missing", "c"), ErrNotFound)
	require.NoError(t, a.RenameEntry("a", "a"))
	require.NoError(t, a.RenameEntry("a", "c"))
	assert.Equal(t, []string{"war3map.j", "c", "b"}, a.Names())
	require.NoError(t, a.Close())

	b, err := OpenZip(fs, path)
	require.NoError(t, err)
	data, err := b.ReadEntry("c")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), data)
}

func TestZipArchive_CloseWithoutChangesKeepsFile(t *testing.T) {
	t.Parallel()

	fs, path := newZip(t, Kinds[0])
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	a, err := OpenZip(fs, path)
	require.NoError(t, err)
	_, _ = DetectKind(a)
	require.NoError(t, a.Close())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestZipArchive_Extract(t *testing.T) {
	t.Parallel()

	fs, path := newZip(t, Kinds[0])
	a, err := OpenZip(fs, path)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.NoError(t, a.WriteEntry(`war3mapImported\x.txt`, []byte("hi"), CompressionDeflate))
	dest := filepath.Join(t.TempDir(), "x.txt")
	require.NoError(t, a.ExtractEntry(`war3mapImported\x.txt`, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(got))
}

func TestZipArchive_ClosedHandle(t *testing.T) {
	t.Parallel()

	fs, path := newZip(t, Kinds[0])
	a, err := OpenZip(fs, path)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	assert.ErrorIs(t, a.Close(), ErrClosed)
	_, err = a.ReadEntry("war3map.j")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, a.Compact(), ErrClosed)
}

func TestOpenZip_Errors(t *testing.T) {
	t.Parallel()

	fs := fsops.NewRealFS()
	dir := t.TempDir()

	_, err := OpenZip(fs, filepath.Join(dir, "missing.w3x"))
	assert.Error(t, err)

	junk := filepath.Join(dir, "junk.w3x")
	require.NoError(t, os.WriteFile(junk, []byte("not a zip"), 0644))
	_, err = OpenZip(fs, junk)
	assert.ErrorContains(t, err, "failed to parse archive")
}

func TestZipOpener_Create(t *testing.T) {
	t.Parallel()

	var backend Backend = NewZipOpener(fsops.NewRealFS())
	path := filepath.Join(t.TempDir(), "new.w3x")
	require.NoError(t, backend.Create(path, Kinds[0]))
	assert.ErrorIs(t, backend.Create(path, Kinds[0]), ErrExists)
}
