package importlist

import "encoding/json"

// Entry is one file tracked by the import list.
type Entry struct {
	// InnerPath is the path with Prefix stripped. It never starts with Prefix.
	InnerPath string

	// Custom marks a file stored at its literal path instead of under Prefix.
	Custom bool

	// DiskPath is the external file whose bytes are written on the next save.
	// Empty means the content already lives in the archive.
	DiskPath string

	// Changed is set when the path, content or flags differ from the loaded state.
	Changed bool

	// Deleted marks the entry for removal from the archive and the index.
	Deleted bool

	// originalPath is the full path the entry had when it was loaded.
	originalPath string
}

// NewArchivedEntry creates an entry for a file already present in the archive
// under the given full path.
func NewArchivedEntry(full string) *Entry {
	inner, custom := SplitPath(full)
	return &Entry{
		InnerPath:    inner,
		Custom:       custom,
		originalPath: full,
	}
}

// NewImportedEntry creates an entry for an external file that should be added
// to the archive under the given full path.
func NewImportedEntry(full, diskPath string) *Entry {
	inner, custom := SplitPath(full)
	return &Entry{
		InnerPath: inner,
		Custom:    custom,
		DiskPath:  diskPath,
		Changed:   true,
	}
}

// FullPath returns the path the entry is stored under in the archive.
func (e *Entry) FullPath() string {
	return JoinPath(e.InnerPath, e.Custom)
}

// SetFullPath re-derives InnerPath and Custom from a full archive path.
func (e *Entry) SetFullPath(full string) {
	e.InnerPath, e.Custom = SplitPath(full)
}

// OriginalPath returns the full path the entry had in the archive at load
// time, or "" for entries that were never saved.
func (e *Entry) OriginalPath() string {
	return e.originalPath
}

// Archived reports whether the entry exists in the archive.
func (e *Entry) Archived() bool {
	return e.originalPath != ""
}

// Clone returns a copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}

// CloneAll copies every entry in the list.
func CloneAll(entries []*Entry) []*Entry {
	out := make([]*Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

type entryJSON struct {
	InnerPath    string `json:"innerPath"`
	Custom       bool   `json:"custom"`
	OriginalPath string `json:"originalPath,omitempty"`
	DiskPath     string `json:"diskPath,omitempty"`
	Changed      bool   `json:"changed"`
	Deleted      bool   `json:"deleted"`
}

// MarshalJSON includes the original path, which has no exported field.
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		InnerPath:    e.InnerPath,
		Custom:       e.Custom,
		OriginalPath: e.originalPath,
		DiskPath:     e.DiskPath,
		Changed:      e.Changed,
		Deleted:      e.Deleted,
	})
}

// UnmarshalJSON restores an entry written by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var v entryJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = Entry{
		Custom:       v.Custom,
		DiskPath:     v.DiskPath,
		Changed:      v.Changed,
		Deleted:      v.Deleted,
		originalPath: v.OriginalPath,
	}
	// Session files can be edited by hand; re-derive to keep the prefix invariant.
	e.SetFullPath(JoinPath(v.InnerPath, v.Custom))
	return nil
}
