package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/mapimp/internal/archive"
	"github.com/danieljhkim/mapimp/internal/importlist"
	"github.com/danieljhkim/mapimp/internal/log"
)

// Export extracts every archived entry to Dest.
//
// Each entry is read from the archive under its original path and written
// to Dest joined with its current full path, so unsaved path edits show up
// in the exported layout. Entries that were never archived are skipped;
// export never reads from an entry's disk source. Deleted entries that are
// still in the archive are exported.
func (e *Engine) Export(ctx context.Context, req *ExportRequest) (*ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	archivePath, id, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}
	if req.Dest == "" {
		return nil, fmt.Errorf("%w: destination is required", ErrValidation)
	}
	dest, err := filepath.Abs(req.Dest)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination: %w", err)
	}

	entries := req.Entries
	if entries == nil {
		entries, err = e.currentEntries(ctx, archivePath, id)
		if err != nil {
			return nil, err
		}
	}

	guard, err := archive.Acquire(e.backend, archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveOpen, err)
	}
	defer func() {
		_ = guard.Close()
	}()

	result := &ExportResult{
		Dest:      dest,
		Extracted: []string{},
		Skipped:   []string{},
		Failed:    []ExportFailure{},
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			log.Warn("export cancelled: %v", err)
			break
		}

		full := entry.FullPath()
		if !entry.Archived() {
			result.Skipped = append(result.Skipped, full)
			continue
		}

		target, err := e.exportTarget(dest, full)
		if err == nil {
			err = e.extract(guard.Archive(), entry.OriginalPath(), target)
		}
		if err != nil {
			log.Warn("failed to export %s: %v", full, err)
			result.Failed = append(result.Failed, ExportFailure{Path: full, Error: err.Error()})
			continue
		}
		result.Extracted = append(result.Extracted, target)
	}

	if err := guard.Close(); err != nil {
		return result, fmt.Errorf("%w: %w", ErrArchiveClose, err)
	}
	return result, ctx.Err()
}

// exportTarget maps a full archive path to a file under dest, refusing paths
// that would leave dest.
func (e *Engine) exportTarget(dest, full string) (string, error) {
	rel := importlist.NativePath(full)
	if err := e.fs.ValidateRelPath(rel); err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return filepath.Join(dest, rel), nil
}

func (e *Engine) extract(a archive.Archive, name, target string) error {
	if err := e.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	log.Debug("extract %s -> %s", name, target)
	return a.ExtractEntry(name, target)
}

// currentEntries returns the pending session's list, or the archive's own
// list when there is no session.
func (e *Engine) currentEntries(ctx context.Context, archivePath, id string) ([]*importlist.Entry, error) {
	session, err := e.loadSession(id)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session.Entries, nil
	}

	loaded, err := e.Load(ctx, &LoadRequest{ArchivePath: archivePath})
	if err != nil {
		return nil, err
	}
	if !loaded.Found {
		return nil, fmt.Errorf("%w: %s", ErrNoImportList, archivePath)
	}
	return loaded.Entries, nil
}
