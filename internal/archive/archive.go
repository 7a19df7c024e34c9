// Package archive defines the map archive collaborator the engine drives.
//
// The engine never touches a container format directly. It opens an Archive
// through an Opener, issues name-keyed operations (read, write, rename,
// remove, add, compact, extract) and closes it. Two backends are provided:
//
//   - ZipArchive: a zip container (klauspost/compress, with zstd support)
//   - Memory: an in-memory archive that records every call, for tests
//
// Names inside an archive are backslash-separated, as in the game's own
// containers.
package archive

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the named entry does not exist in the archive.
	ErrNotFound = errors.New("archive entry not found")

	// ErrExists indicates the target name is already taken.
	ErrExists = errors.New("archive entry already exists")

	// ErrClosed indicates the archive handle was already closed.
	ErrClosed = errors.New("archive closed")
)

// Compression selects how an entry's bytes are stored.
type Compression int

const (
	CompressionStore Compression = iota
	CompressionDeflate
	CompressionZstd
)

// String returns the configuration name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionStore:
		return "store"
	case CompressionDeflate:
		return "deflate"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", int(c))
	}
}

// ParseCompression parses a configuration name.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "store", "none":
		return CompressionStore, nil
	case "deflate", "zlib", "":
		return CompressionDeflate, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return CompressionStore, fmt.Errorf("unknown compression %q", s)
	}
}

// Archive is an open map archive. All names are full archive paths.
type Archive interface {
	// ReadEntry returns the entry's bytes, or ErrNotFound.
	ReadEntry(name string) ([]byte, error)

	// WriteEntry creates or replaces an entry.
	WriteEntry(name string, data []byte, compression Compression) error

	// RenameEntry moves an entry to a new name.
	RenameEntry(oldName, newName string) error

	// RemoveEntry deletes an entry. Missing entries return ErrNotFound.
	RemoveEntry(name string) error

	// AddFile stores the external file at sourcePath under name, replacing
	// any existing entry.
	AddFile(sourcePath, name string, compression Compression) error

	// Compact reclaims space left by removed and rewritten entries.
	Compact() error

	// ExtractEntry writes the entry's bytes to destPath on disk.
	ExtractEntry(name, destPath string) error

	// Close releases the handle. Pending changes are flushed first.
	Close() error
}

// Opener opens archives by filesystem path.
type Opener interface {
	Open(path string) (Archive, error)
}

// Backend opens existing archives and creates new ones.
type Backend interface {
	Opener

	// Create writes a new archive of the given kind at path. It fails with
	// ErrExists when path is taken.
	Create(path string, kind Kind) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Archive, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (Archive, error) {
	return f(path)
}
