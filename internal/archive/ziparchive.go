package archive

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/danieljhkim/mapimp/internal/fsops"
)

// zipEntry is one staged entry of a ZipArchive.
type zipEntry struct {
	data     []byte
	method   uint16
	modified time.Time
}

// ZipArchive is an Archive backed by a zip container on disk.
//
// The whole container is loaded on open and mutations are staged in memory.
// Compact rewrites the container atomically; Close does the same when
// changes are still pending.
type ZipArchive struct {
	fs      fsops.FS
	path    string
	entries map[string]*zipEntry
	order   []string
	dirty   bool
	closed  bool
	now     func() time.Time
}

// ZipOpener opens and creates zip-backed archives.
type ZipOpener struct {
	fs fsops.FS
}

// NewZipOpener creates an Opener for zip containers.
func NewZipOpener(fs fsops.FS) *ZipOpener {
	return &ZipOpener{fs: fs}
}

// Open loads the container at path.
func (o *ZipOpener) Open(path string) (Archive, error) {
	return OpenZip(o.fs, path)
}

// Create writes an empty container of the given kind at path.
func (o *ZipOpener) Create(path string, kind Kind) error {
	return CreateZip(o.fs, path, kind)
}

// OpenZip loads the zip container at path.
func OpenZip(fs fsops.FS, path string) (*ZipArchive, error) {
	raw, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	r, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse archive: %w", err)
	}
	r.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	a := newZipArchive(fs, path)
	for _, f := range r.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %s: %w", f.Name, err)
		}
		if _, dup := a.entries[f.Name]; !dup {
			a.order = append(a.order, f.Name)
		}
		a.entries[f.Name] = &zipEntry{
			data:     data,
			method:   f.Method,
			modified: f.Modified,
		}
	}

	return a, nil
}

// CreateZip writes a new container at path that holds only the marker entry
// of kind, so it is recognized as that kind on open.
func CreateZip(fs fsops.FS, path string, kind Kind) error {
	exists, err := fs.Exists(path)
	if err != nil {
		return fmt.Errorf("failed to check archive path: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}

	a := newZipArchive(fs, path)
	if err := a.WriteEntry(kind.Marker, nil, CompressionDeflate); err != nil {
		return err
	}
	return a.Close()
}

func newZipArchive(fs fsops.FS, path string) *ZipArchive {
	return &ZipArchive{
		fs:      fs,
		path:    path,
		entries: make(map[string]*zipEntry),
		order:   []string{},
		now:     time.Now,
	}
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()
	return io.ReadAll(rc)
}

// zipMethod maps a compression policy to a zip method id.
func zipMethod(c Compression) (uint16, error) {
	switch c {
	case CompressionStore:
		return zip.Store, nil
	case CompressionDeflate:
		return zip.Deflate, nil
	case CompressionZstd:
		return zstd.ZipMethodWinZip, nil
	default:
		return 0, fmt.Errorf("unsupported compression: %s", c)
	}
}

// Names returns the entry names in container order.
func (a *ZipArchive) Names() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// ReadEntry returns a copy of the entry's bytes.
func (a *ZipArchive) ReadEntry(name string) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	e, ok := a.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return bytes.Clone(e.data), nil
}

// WriteEntry creates or replaces an entry.
func (a *ZipArchive) WriteEntry(name string, data []byte, compression Compression) error {
	if a.closed {
		return ErrClosed
	}
	method, err := zipMethod(compression)
	if err != nil {
		return err
	}
	if _, ok := a.entries[name]; !ok {
		a.order = append(a.order, name)
	}
	a.entries[name] = &zipEntry{
		data:     bytes.Clone(data),
		method:   method,
		modified: a.now(),
	}
	a.dirty = true
	return nil
}

// RenameEntry moves an entry, keeping its position in the container.
func (a *ZipArchive) RenameEntry(oldName, newName string) error {
	if a.closed {
		return ErrClosed
	}
	e, ok := a.entries[oldName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, taken := a.entries[newName]; taken {
		return fmt.Errorf("%w: %s", ErrExists, newName)
	}

	delete(a.entries, oldName)
	a.entries[newName] = e
	for i, n := range a.order {
		if n == oldName {
			a.order[i] = newName
			break
		}
	}
	a.dirty = true
	return nil
}

// RemoveEntry deletes an entry.
func (a *ZipArchive) RemoveEntry(name string) error {
	if a.closed {
		return ErrClosed
	}
	if _, ok := a.entries[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	delete(a.entries, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	a.dirty = true
	return nil
}

// AddFile reads sourcePath from disk and stores it under name.
func (a *ZipArchive) AddFile(sourcePath, name string, compression Compression) error {
	if a.closed {
		return ErrClosed
	}
	data, err := a.fs.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}
	return a.WriteEntry(name, data, compression)
}

// Compact rewrites the container without the space held by removed entries.
func (a *ZipArchive) Compact() error {
	if a.closed {
		return ErrClosed
	}
	return a.flush()
}

// ExtractEntry writes the entry's bytes to destPath.
func (a *ZipArchive) ExtractEntry(name, destPath string) error {
	data, err := a.ReadEntry(name)
	if err != nil {
		return err
	}
	if err := a.fs.AtomicWrite(destPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return nil
}

// Close flushes pending changes and releases the staged entries.
func (a *ZipArchive) Close() error {
	if a.closed {
		return ErrClosed
	}
	var err error
	if a.dirty {
		err = a.flush()
	}
	a.closed = true
	a.entries = nil
	a.order = nil
	return err
}

// flush serializes every entry and replaces the container on disk.
func (a *ZipArchive) flush() error {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	for _, name := range a.order {
		e := a.entries[name]
		fw, err := w.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   e.method,
			Modified: e.modified,
		})
		if err != nil {
			return fmt.Errorf("failed to write entry header %s: %w", name, err)
		}
		if _, err := fw.Write(e.data); err != nil {
			return fmt.Errorf("failed to write entry %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}

	if err := a.fs.AtomicWrite(a.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	a.dirty = false
	return nil
}
