package engine

import (
	"time"

	"github.com/danieljhkim/mapimp/internal/importlist"
	"github.com/danieljhkim/mapimp/internal/planner"
)

// LoadResult represents an archive's import list.
type LoadResult struct {
	// ArchivePath is the absolute archive path
	ArchivePath string `json:"archivePath"`

	// Found is false when the archive has no recognizable import list
	Found bool `json:"found"`

	// Kind is the detected archive kind (empty when no marker was found)
	Kind string `json:"kind,omitempty"`

	// IndexFile is the name of the import list inside the archive
	IndexFile string `json:"indexFile,omitempty"`

	// IndexPresent is false when the marker exists but the index file does not
	IndexPresent bool `json:"indexPresent"`

	// Entries is the decoded list
	Entries []*importlist.Entry `json:"entries"`
}

// OpError records an archive operation that failed but did not abort the save.
type OpError struct {
	Op    planner.Operation `json:"op"`
	Error string            `json:"error"`
}

// SyncResult represents the outcome of a sync pass.
type SyncResult struct {
	// Saved is false when a structural step failed (open, index write, close)
	Saved bool `json:"saved"`

	// FailedFiles lists the disk paths whose add failed
	FailedFiles []string `json:"failedFiles"`

	// Entries is the final entry list, with failed adds marked deleted
	Entries []*importlist.Entry `json:"entries"`

	// Plan is the generated plan
	Plan *planner.SyncPlan `json:"plan"`

	// Applied is the list of operations that succeeded (empty if DryRun)
	Applied []planner.Operation `json:"applied"`

	// OpErrors lists recovered operation failures
	OpErrors []OpError `json:"opErrors"`

	// IndexFile is the name the index was written under
	IndexFile string `json:"indexFile,omitempty"`

	// Index is the encoded import list. Nil means the index file is removed.
	Index []byte `json:"-"`

	// IndexRemoved is true when the list was empty and the index was removed
	IndexRemoved bool `json:"indexRemoved"`
}

// ExportFailure records an entry that could not be extracted.
type ExportFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ExportResult represents the outcome of an export pass.
type ExportResult struct {
	// Dest is the absolute destination directory
	Dest string `json:"dest"`

	// Extracted lists the destination files written
	Extracted []string `json:"extracted"`

	// Skipped lists the full paths of entries never archived
	Skipped []string `json:"skipped"`

	// Failed lists entries that could not be extracted
	Failed []ExportFailure `json:"failed"`
}

// CreateResult represents a newly created archive.
type CreateResult struct {
	ArchivePath string `json:"archivePath"`
	Kind        string `json:"kind"`
	SessionID   string `json:"sessionId"`
}

// OpenResult represents a freshly started session.
type OpenResult struct {
	ArchivePath string `json:"archivePath"`
	SessionID   string `json:"sessionId"`
	Kind        string `json:"kind"`

	// IndexPresent is false when the archive has no index file yet
	IndexPresent bool `json:"indexPresent"`

	// Replaced is true when an earlier session was discarded
	Replaced bool `json:"replaced"`

	Entries []*importlist.Entry `json:"entries"`
}

// ListResult represents the entry list of an archive.
type ListResult struct {
	ArchivePath string `json:"archivePath"`
	Kind        string `json:"kind"`

	// FromSession is true when the list comes from a pending session
	FromSession bool `json:"fromSession"`

	// Dirty indicates the session has unsaved edits
	Dirty bool `json:"dirty"`

	Entries []*importlist.Entry `json:"entries"`
}

// ImportResult represents the outcome of an import.
type ImportResult struct {
	// Added is the full paths appended as new entries
	Added []string `json:"added"`

	// Updated is the full paths of existing entries that received new content
	Updated []string `json:"updated"`

	// Filtered is the folder files dropped by include/exclude globs
	Filtered []string `json:"filtered"`
}

// MoveResult represents a path edit.
type MoveResult struct {
	From string `json:"from"`
	To   string `json:"to"`

	// Custom is the entry's custom flag after the move
	Custom bool `json:"custom"`
}

// RemoveResult represents the effect of toggling deleted marks.
type RemoveResult struct {
	Deleted  []string `json:"deleted"`
	Restored []string `json:"restored"`
	Dropped  []string `json:"dropped"`
}

// StatusResult represents the pending session of an archive.
type StatusResult struct {
	ArchivePath string `json:"archivePath"`
	SessionID   string `json:"sessionId"`

	// HasSession is false when no session exists
	HasSession bool `json:"hasSession"`

	Kind  string `json:"kind,omitempty"`
	Dirty bool   `json:"dirty"`

	// Total is the number of entries in the list
	Total int `json:"total"`

	// Deleted is the number of entries marked deleted
	Deleted int `json:"deleted"`

	// Plan is the operations the next save would execute
	Plan *planner.SyncPlan `json:"plan,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// SaveResult represents the outcome of saving a session.
type SaveResult struct {
	*SyncResult

	// Reloaded is true when the session was refreshed from the saved archive
	Reloaded bool `json:"reloaded"`
}

// ResetResult represents a discarded session.
type ResetResult struct {
	// Discarded is false when there was no session
	Discarded bool `json:"discarded"`

	// Dirty is true when the discarded session had unsaved edits
	Dirty bool `json:"dirty"`
}
