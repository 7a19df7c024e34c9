package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/mapimp/internal/archive"
	"github.com/danieljhkim/mapimp/internal/importlist"
	"github.com/danieljhkim/mapimp/internal/log"
	"github.com/danieljhkim/mapimp/internal/planner"
)

// Sync writes the edited entry list into the archive.
//
// Algorithm steps:
// 1. Build the sync plan from the edited entries
// 2. Acquire the archive (nothing else happens if this fails)
// 3. Execute the plan in order; failed adds mark their entry deleted
// 4. Detect the archive kind to find the index file name
// 5. Write the re-encoded index, or remove it when the list is empty
// 6. Compact the archive
// 7. Close the archive
//
// The returned error is non-nil exactly when Saved is false, except for a
// dry run, which never saves. Per-entry failures are reported in the result
// and never fail the save.
func (e *Engine) Sync(ctx context.Context, req *SyncRequest) (*SyncResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	archivePath, _, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}

	entries := importlist.CloneAll(req.Entries)
	plan := planner.BuildSyncPlan(entries)
	for _, skip := range plan.Skipped {
		log.Debug("skipping %s: %s", skip.Path, skip.Reason)
	}

	result := &SyncResult{
		FailedFiles: []string{},
		Entries:     entries,
		Plan:        plan,
		Applied:     []planner.Operation{},
		OpErrors:    []OpError{},
	}

	if req.DryRun {
		result.Index = importlist.Encode(entries)
		result.IndexRemoved = result.Index == nil
		return result, nil
	}

	guard, err := archive.Acquire(e.backend, archivePath)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrArchiveOpen, err)
	}
	defer func() {
		_ = guard.Close()
	}()
	a := guard.Archive()

	for _, op := range plan.Operations {
		if err := e.executeOperation(a, op); err != nil {
			result.OpErrors = append(result.OpErrors, OpError{Op: op, Error: err.Error()})
			if op.Type == planner.OpAdd {
				entry := entries[op.Entry]
				log.Warn("failed to add %s: %v", entry.DiskPath, err)
				result.FailedFiles = append(result.FailedFiles, entry.DiskPath)
				entry.Deleted = true
			} else {
				log.Warn("failed to %s %s: %v", op.Type, op.Source, err)
			}
			continue
		}
		result.Applied = append(result.Applied, op)
	}

	writeErr := e.writeIndex(a, result)
	if writeErr != nil {
		log.Error("%v", writeErr)
	}

	// Compaction runs even after a failed index write
	if err := a.Compact(); err != nil {
		log.Warn("failed to compact archive: %v", err)
	}

	closeErr := guard.Close()
	if closeErr != nil {
		closeErr = fmt.Errorf("%w: %w", ErrArchiveClose, closeErr)
	}

	if err := errors.Join(writeErr, closeErr); err != nil {
		return result, err
	}
	result.Saved = true
	return result, nil
}

// writeIndex stores the re-encoded entry list under the archive's index
// file, or removes the index file when no live entry remains.
func (e *Engine) writeIndex(a archive.Archive, result *SyncResult) error {
	kind, ok := archive.DetectKind(a)
	if !ok {
		return ErrNoImportList
	}
	result.IndexFile = kind.IndexFile
	result.Index = importlist.Encode(result.Entries)

	if result.Index == nil {
		log.Debug("removing %s", kind.IndexFile)
		if err := a.RemoveEntry(kind.IndexFile); err != nil && !errors.Is(err, archive.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrIndexWrite, err)
		}
		result.IndexRemoved = true
		return nil
	}

	log.Debug("writing %s (%d bytes)", kind.IndexFile, len(result.Index))
	if err := a.WriteEntry(kind.IndexFile, result.Index, e.settings.Compression); err != nil {
		return fmt.Errorf("%w: %w", ErrIndexWrite, err)
	}
	return nil
}

// executeOperation executes a single archive operation.
func (e *Engine) executeOperation(a archive.Archive, op planner.Operation) error {
	switch op.Type {
	case planner.OpRemove:
		log.Debug("remove %s", op.Source)
		if err := a.RemoveEntry(op.Source); err != nil && !errors.Is(err, archive.ErrNotFound) {
			return fmt.Errorf("failed to remove: %w", err)
		}
		return nil
	case planner.OpRename:
		log.Debug("rename %s -> %s", op.Source, op.Target)
		if err := a.RenameEntry(op.Source, op.Target); err != nil {
			return fmt.Errorf("failed to rename: %w", err)
		}
		return nil
	case planner.OpAdd:
		log.Debug("add %s as %s", op.Source, op.Target)
		if err := a.AddFile(op.Source, op.Target, e.settings.Compression); err != nil {
			return fmt.Errorf("failed to add: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}
