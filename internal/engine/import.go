package engine

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/danieljhkim/mapimp/internal/importlist"
	"github.com/danieljhkim/mapimp/internal/log"
)

// Import adds files from disk to the pending session.
//
// A file is stored under its base name, or under As when it is the only
// path given. A folder contributes every file below it at its relative
// path, prefixed with As or, when WithFolderName is set, the folder's own
// name. Include and Exclude globs filter folder files by relative path.
// An import whose full path matches an existing entry replaces that entry's
// content instead of adding a duplicate.
func (e *Engine) Import(ctx context.Context, req *ImportRequest) (*ImportResult, error) {
	archivePath, id, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}
	if len(req.Paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", ErrValidation)
	}
	if req.As != "" && len(req.Paths) > 1 {
		return nil, fmt.Errorf("%w: --as needs exactly one path", ErrValidation)
	}
	for _, pattern := range append(append([]string{}, req.Include...), req.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: invalid glob %q", ErrValidation, pattern)
		}
	}

	result := &ImportResult{
		Added:    []string{},
		Updated:  []string{},
		Filtered: []string{},
	}

	var imported []*importlist.Entry
	for _, p := range req.Paths {
		entries, filtered, err := e.collect(p, req)
		if err != nil {
			return nil, err
		}
		imported = append(imported, entries...)
		result.Filtered = append(result.Filtered, filtered...)
	}
	if len(imported) == 0 {
		return nil, fmt.Errorf("%w: no files to import", ErrValidation)
	}

	session, err := e.session(ctx, archivePath, id)
	if err != nil {
		return nil, err
	}

	entries, merged := importlist.Merge(session.Entries, imported)
	session.Entries = entries
	session.Touch(e.clock.Now())
	if err := e.sessions.Save(id, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	result.Added = merged.Added
	result.Updated = merged.Updated
	return result, nil
}

// collect turns one disk path into imported entries.
func (e *Engine) collect(diskPath string, req *ImportRequest) ([]*importlist.Entry, []string, error) {
	abs, err := filepath.Abs(diskPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve %s: %w", diskPath, err)
	}
	info, err := e.fs.Stat(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	if !info.IsDir() {
		name := filepath.Base(abs)
		if req.As != "" {
			name = req.As
		}
		return []*importlist.Entry{importlist.NewImportedEntry(importlist.ArchiveName(name), abs)}, nil, nil
	}

	files, err := e.fs.WalkFiles(abs)
	if err != nil {
		return nil, nil, err
	}

	prefix := ""
	switch {
	case req.As != "":
		prefix = filepath.ToSlash(req.As)
	case req.WithFolderName:
		prefix = filepath.Base(abs)
	}

	var entries []*importlist.Entry
	var filtered []string
	for _, rel := range files {
		keep, err := matchFilters(rel, req.Include, req.Exclude)
		if err != nil {
			return nil, nil, err
		}
		if !keep {
			log.Debug("filtered %s", rel)
			filtered = append(filtered, rel)
			continue
		}

		name := rel
		if prefix != "" {
			name = path.Join(prefix, rel)
		}
		source := filepath.Join(abs, filepath.FromSlash(rel))
		entries = append(entries, importlist.NewImportedEntry(importlist.ArchiveName(name), source))
	}

	return entries, filtered, nil
}

// matchFilters reports whether rel passes the include and exclude globs.
// No include globs means everything is included.
func matchFilters(rel string, include, exclude []string) (bool, error) {
	if len(include) > 0 {
		matched := false
		for _, pattern := range include {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return false, fmt.Errorf("%w: %w", ErrValidation, err)
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}

	for _, pattern := range exclude {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}
