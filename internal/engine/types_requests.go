package engine

import "github.com/danieljhkim/mapimp/internal/importlist"

// LoadRequest represents a request to read an archive's import list.
type LoadRequest struct {
	// ArchivePath is the archive to read
	ArchivePath string
}

// SyncRequest represents a request to write an entry list into an archive.
type SyncRequest struct {
	// ArchivePath is the archive to modify
	ArchivePath string

	// Entries is the edited list. It is not modified; the final states are
	// returned in SyncResult.Entries.
	Entries []*importlist.Entry

	// DryRun performs planning only without opening the archive
	DryRun bool
}

// ExportRequest represents a request to extract archived entries to disk.
type ExportRequest struct {
	// ArchivePath is the archive to read from
	ArchivePath string

	// Dest is the directory entries are extracted under
	Dest string

	// Entries is the list to export. When nil, the pending session is used,
	// or the archive's own list when there is no session.
	Entries []*importlist.Entry
}

// CreateRequest represents a request to create a new, empty archive.
type CreateRequest struct {
	ArchivePath string

	// Kind is the archive kind name ("map" or "campaign")
	Kind string
}

// OpenRequest represents a request to start a session on an archive.
type OpenRequest struct {
	ArchivePath string

	// Force discards a session with unsaved changes
	Force bool
}

// ListRequest represents a request for the current entry list.
type ListRequest struct {
	ArchivePath string
}

// ImportRequest represents a request to import files from disk.
type ImportRequest struct {
	ArchivePath string

	// Paths are files or folders on disk
	Paths []string

	// As overrides the archive name of a single imported file, or the name
	// prefix of an imported folder
	As string

	// WithFolderName prefixes folder imports with the folder's base name
	WithFolderName bool

	// Include keeps only folder files matching one of these globs
	Include []string

	// Exclude drops folder files matching any of these globs
	Exclude []string
}

// MoveRequest represents a request to change an entry's archive path.
type MoveRequest struct {
	ArchivePath string
	From        string
	To          string
}

// RemoveRequest represents a request to toggle the deleted mark on entries.
type RemoveRequest struct {
	ArchivePath string

	// Paths are full archive paths of the selected entries
	Paths []string
}

// StatusRequest represents a request for session status.
type StatusRequest struct {
	ArchivePath string
}

// SaveRequest represents a request to save the pending session.
type SaveRequest struct {
	ArchivePath string

	// DryRun shows the plan without modifying the archive
	DryRun bool
}

// ResetRequest represents a request to discard the pending session.
type ResetRequest struct {
	ArchivePath string
}
