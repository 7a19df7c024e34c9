package engine

import "errors"

var (
	// ErrArchiveOpen indicates the archive could not be opened.
	ErrArchiveOpen = errors.New("failed to open archive")

	// ErrArchiveClose indicates the archive could not be closed cleanly.
	ErrArchiveClose = errors.New("failed to close archive")

	// ErrIndexRead indicates the import list could not be read.
	ErrIndexRead = errors.New("failed to read import list")

	// ErrIndexWrite indicates the import list could not be written or removed.
	ErrIndexWrite = errors.New("failed to write import list")

	// ErrNoImportList indicates the archive is not a known kind or its
	// import list uses an unsupported version.
	ErrNoImportList = errors.New("archive has no import list")

	// ErrUnsavedChanges indicates a session with pending edits would be lost.
	ErrUnsavedChanges = errors.New("unsaved changes")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
)
