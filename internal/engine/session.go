package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/mapimp/internal/archive"
	"github.com/danieljhkim/mapimp/internal/importlist"
	"github.com/danieljhkim/mapimp/internal/log"
	"github.com/danieljhkim/mapimp/internal/planner"
	"github.com/danieljhkim/mapimp/internal/state"
)

// Create writes a new archive of the requested kind and opens a session on it.
func (e *Engine) Create(ctx context.Context, req *CreateRequest) (*CreateResult, error) {
	archivePath, id, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}
	kind, ok := archive.KindByName(req.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown archive kind %q", ErrValidation, req.Kind)
	}

	if err := e.backend.Create(archivePath, kind); err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	session := state.NewSession(archivePath, kind.Name, nil, e.clock.Now())
	if err := e.sessions.Save(id, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &CreateResult{ArchivePath: archivePath, Kind: kind.Name, SessionID: id}, nil
}

// Open loads the archive's import list into a fresh session. An existing
// session with unsaved edits is only replaced when Force is set.
func (e *Engine) Open(ctx context.Context, req *OpenRequest) (*OpenResult, error) {
	archivePath, id, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}

	existing, err := e.loadSession(id)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Dirty && !req.Force {
		return nil, fmt.Errorf("%w: %s has pending edits (use --force to discard them)", ErrUnsavedChanges, archivePath)
	}

	session, loaded, err := e.freshSession(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	if err := e.sessions.Save(id, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &OpenResult{
		ArchivePath:  archivePath,
		SessionID:    id,
		Kind:         session.Kind,
		IndexPresent: loaded.IndexPresent,
		Replaced:     existing != nil,
		Entries:      session.Entries,
	}, nil
}

// freshSession loads the archive and wraps its list in a clean session.
func (e *Engine) freshSession(ctx context.Context, archivePath string) (*state.Session, *LoadResult, error) {
	loaded, err := e.Load(ctx, &LoadRequest{ArchivePath: archivePath})
	if err != nil {
		return nil, nil, err
	}
	if !loaded.Found {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoImportList, archivePath)
	}
	return state.NewSession(archivePath, loaded.Kind, loaded.Entries, e.clock.Now()), loaded, nil
}

// session returns the pending session, opening one when none exists.
func (e *Engine) session(ctx context.Context, archivePath, id string) (*state.Session, error) {
	session, err := e.loadSession(id)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	log.Info("opening %s", archivePath)
	session, _, err = e.freshSession(ctx, archivePath)
	return session, err
}

// List returns the pending session's list, or the archive's own list when
// there is no session.
func (e *Engine) List(ctx context.Context, req *ListRequest) (*ListResult, error) {
	archivePath, id, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}

	session, err := e.loadSession(id)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return &ListResult{
			ArchivePath: archivePath,
			Kind:        session.Kind,
			FromSession: true,
			Dirty:       session.Dirty,
			Entries:     session.Entries,
		}, nil
	}

	loaded, err := e.Load(ctx, &LoadRequest{ArchivePath: archivePath})
	if err != nil {
		return nil, err
	}
	if !loaded.Found {
		return nil, fmt.Errorf("%w: %s", ErrNoImportList, archivePath)
	}
	return &ListResult{
		ArchivePath: archivePath,
		Kind:        loaded.Kind,
		Entries:     loaded.Entries,
	}, nil
}

// Move changes an entry's full path. Deleted entries cannot be moved.
func (e *Engine) Move(ctx context.Context, req *MoveRequest) (*MoveResult, error) {
	archivePath, id, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}
	if req.From == "" || req.To == "" {
		return nil, fmt.Errorf("%w: both paths are required", ErrValidation)
	}

	session, err := e.session(ctx, archivePath, id)
	if err != nil {
		return nil, err
	}

	entry, err := importlist.Rename(session.Entries, req.From, req.To)
	if err != nil {
		return nil, wrapListError(err)
	}

	if req.From != req.To {
		session.Touch(e.clock.Now())
		if err := e.sessions.Save(id, session); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	return &MoveResult{From: req.From, To: entry.FullPath(), Custom: entry.Custom}, nil
}

// Remove toggles the deleted mark on the selected entries.
func (e *Engine) Remove(ctx context.Context, req *RemoveRequest) (*RemoveResult, error) {
	archivePath, id, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}
	if len(req.Paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", ErrValidation)
	}

	session, err := e.session(ctx, archivePath, id)
	if err != nil {
		return nil, err
	}

	entries, toggled, err := importlist.ToggleDeleted(session.Entries, req.Paths)
	if err != nil {
		return nil, wrapListError(err)
	}
	session.Entries = entries
	session.Touch(e.clock.Now())

	if err := e.sessions.Save(id, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &RemoveResult{
		Deleted:  toggled.Deleted,
		Restored: toggled.Restored,
		Dropped:  toggled.Dropped,
	}, nil
}

// Status reports the pending session and the plan the next save would run.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	archivePath, id, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{ArchivePath: archivePath, SessionID: id}

	session, err := e.loadSession(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return result, nil
	}

	result.HasSession = true
	result.Kind = session.Kind
	result.Dirty = session.Dirty
	result.Total = len(session.Entries)
	result.Deleted = len(session.Entries) - len(importlist.Live(session.Entries))
	result.Plan = planner.BuildSyncPlan(session.Entries)
	result.CreatedAt = session.CreatedAt
	result.UpdatedAt = session.UpdatedAt
	return result, nil
}

// Save syncs the pending session into the archive.
//
// After a successful save the session is replaced by the list freshly loaded
// from the archive. After a failed save the session keeps the final entry
// states so the failure is visible and nothing is lost.
func (e *Engine) Save(ctx context.Context, req *SaveRequest) (*SaveResult, error) {
	archivePath, id, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}

	session, err := e.loadSession(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: no session for %s (run open first)", ErrNotFound, archivePath)
	}

	synced, syncErr := e.Sync(ctx, &SyncRequest{
		ArchivePath: archivePath,
		Entries:     session.Entries,
		DryRun:      req.DryRun,
	})
	if synced == nil {
		return nil, syncErr
	}
	result := &SaveResult{SyncResult: synced}
	if req.DryRun {
		return result, nil
	}

	if syncErr != nil {
		session.Entries = synced.Entries
		session.Touch(e.clock.Now())
		if err := e.sessions.Save(id, session); err != nil {
			log.Error("failed to save session: %v", err)
		}
		return result, syncErr
	}

	fresh, _, err := e.freshSession(ctx, archivePath)
	if err != nil {
		// The archive is saved; drop the stale session rather than keep it
		log.Warn("failed to reload %s: %v", archivePath, err)
		if err := e.sessions.Delete(id); err != nil {
			log.Error("failed to delete session: %v", err)
		}
		return result, nil
	}
	if err := e.sessions.Save(id, fresh); err != nil {
		return result, fmt.Errorf("failed to save session: %w", err)
	}
	result.Reloaded = true
	return result, nil
}

// Reset discards the pending session.
func (e *Engine) Reset(ctx context.Context, req *ResetRequest) (*ResetResult, error) {
	_, id, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}

	session, err := e.loadSession(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &ResetResult{}, nil
	}

	if err := e.sessions.Delete(id); err != nil {
		return nil, err
	}
	return &ResetResult{Discarded: true, Dirty: session.Dirty}, nil
}

// wrapListError maps entry list errors onto engine sentinels.
func wrapListError(err error) error {
	switch {
	case errors.Is(err, importlist.ErrEntryNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, importlist.ErrEntryDeleted), errors.Is(err, importlist.ErrDuplicatePath):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	default:
		return err
	}
}
