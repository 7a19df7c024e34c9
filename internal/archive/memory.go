package archive

import (
	"bytes"
	"errors"
	"fmt"
)

// Call records one operation issued against a Memory archive.
type Call struct {
	Op   string
	Args []string
}

// Memory is an in-memory Archive that records every call it receives.
//
// Failures can be injected per entry name (FailAdd, FailRemove, FailRename)
// or per operation (FailWrite, FailCompact, FailClose).
type Memory struct {
	Entries map[string][]byte
	Calls   []Call

	// Sources stands in for the disk when AddFile is called.
	Sources map[string][]byte

	// Extracted holds the bytes written by ExtractEntry, keyed by destPath.
	Extracted map[string][]byte

	FailAdd     map[string]error
	FailRemove  map[string]error
	FailRename  map[string]error
	FailWrite   error
	FailCompact error
	FailClose   error
	FailExtract error

	closed bool
}

// NewMemory creates an empty in-memory archive.
func NewMemory() *Memory {
	return &Memory{
		Entries:    make(map[string][]byte),
		Sources:    make(map[string][]byte),
		Extracted:  make(map[string][]byte),
		FailAdd:    make(map[string]error),
		FailRemove: make(map[string]error),
		FailRename: make(map[string]error),
	}
}

// Closed reports whether Close has been called.
func (m *Memory) Closed() bool {
	return m.closed
}

// CallsOf returns the recorded calls with the given op name.
func (m *Memory) CallsOf(op string) []Call {
	var out []Call
	for _, c := range m.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Ops returns the op names of every recorded call, in order.
func (m *Memory) Ops() []string {
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Op
	}
	return out
}

func (m *Memory) record(op string, args ...string) {
	m.Calls = append(m.Calls, Call{Op: op, Args: args})
}

func (m *Memory) ReadEntry(name string) ([]byte, error) {
	m.record("read", name)
	if m.closed {
		return nil, ErrClosed
	}
	data, ok := m.Entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return bytes.Clone(data), nil
}

func (m *Memory) WriteEntry(name string, data []byte, _ Compression) error {
	m.record("write", name)
	if m.closed {
		return ErrClosed
	}
	if m.FailWrite != nil {
		return m.FailWrite
	}
	m.Entries[name] = bytes.Clone(data)
	return nil
}

func (m *Memory) RenameEntry(oldName, newName string) error {
	m.record("rename", oldName, newName)
	if m.closed {
		return ErrClosed
	}
	if err := m.FailRename[oldName]; err != nil {
		return err
	}
	data, ok := m.Entries[oldName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, taken := m.Entries[newName]; taken {
		return fmt.Errorf("%w: %s", ErrExists, newName)
	}
	delete(m.Entries, oldName)
	m.Entries[newName] = data
	return nil
}

func (m *Memory) RemoveEntry(name string) error {
	m.record("remove", name)
	if m.closed {
		return ErrClosed
	}
	if err := m.FailRemove[name]; err != nil {
		return err
	}
	if _, ok := m.Entries[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(m.Entries, name)
	return nil
}

func (m *Memory) AddFile(sourcePath, name string, _ Compression) error {
	m.record("add", sourcePath, name)
	if m.closed {
		return ErrClosed
	}
	if err := m.FailAdd[name]; err != nil {
		return err
	}
	data, ok := m.Sources[sourcePath]
	if !ok {
		return fmt.Errorf("source file not found: %s", sourcePath)
	}
	m.Entries[name] = bytes.Clone(data)
	return nil
}

func (m *Memory) Compact() error {
	m.record("compact")
	if m.closed {
		return ErrClosed
	}
	return m.FailCompact
}

func (m *Memory) ExtractEntry(name, destPath string) error {
	m.record("extract", name, destPath)
	if m.closed {
		return ErrClosed
	}
	if m.FailExtract != nil {
		return m.FailExtract
	}
	data, ok := m.Entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	m.Extracted[destPath] = bytes.Clone(data)
	return nil
}

func (m *Memory) Close() error {
	m.record("close")
	if m.closed {
		return ErrClosed
	}
	m.closed = true
	return m.FailClose
}

// MemoryOpener is a Backend that hands out Memory archives by path.
type MemoryOpener struct {
	Archives map[string]*Memory
	FailOpen error
	Opened   []string
}

// NewMemoryOpener creates an opener with no archives registered.
func NewMemoryOpener() *MemoryOpener {
	return &MemoryOpener{Archives: make(map[string]*Memory)}
}

// Add registers a fresh Memory archive under path and returns it.
func (o *MemoryOpener) Add(path string) *Memory {
	m := NewMemory()
	o.Archives[path] = m
	return m
}

// Create registers a Memory archive holding only the kind's marker.
func (o *MemoryOpener) Create(path string, kind Kind) error {
	if _, ok := o.Archives[path]; ok {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	m := o.Add(path)
	m.Entries[kind.Marker] = nil
	return nil
}

// Open returns the archive registered under path. A closed archive is
// reopened so the same Memory can serve several sessions.
func (o *MemoryOpener) Open(path string) (Archive, error) {
	o.Opened = append(o.Opened, path)
	if o.FailOpen != nil {
		return nil, o.FailOpen
	}
	m, ok := o.Archives[path]
	if !ok {
		return nil, errors.New("no such archive: " + path)
	}
	m.closed = false
	return m, nil
}
