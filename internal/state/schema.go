package state

import (
	"time"

	"github.com/danieljhkim/mapimp/internal/importlist"
)

// SchemaVersion is the current session file layout.
const SchemaVersion = 1

// Session is the pending edited import list of one archive.
// This is the authoritative record of what the next save will do.
type Session struct {
	// Version is the session file layout version
	Version int `json:"version"`

	// ArchivePath is the absolute path of the archive
	ArchivePath string `json:"archivePath"`

	// Kind is the archive kind ("map" or "campaign")
	Kind string `json:"kind"`

	// Entries is the edited entry list, in index order
	Entries []*importlist.Entry `json:"entries"`

	// Dirty indicates edits were made since the list was loaded
	Dirty bool `json:"dirty"`

	// CreatedAt is when the list was loaded from the archive
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the session was last edited
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession creates a clean session for a freshly loaded list.
func NewSession(archivePath, kind string, entries []*importlist.Entry, now time.Time) *Session {
	if entries == nil {
		entries = []*importlist.Entry{}
	}
	return &Session{
		Version:     SchemaVersion,
		ArchivePath: archivePath,
		Kind:        kind,
		Entries:     entries,
		Dirty:       false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch marks the session edited at now.
func (s *Session) Touch(now time.Time) {
	s.Dirty = true
	s.UpdatedAt = now
}
