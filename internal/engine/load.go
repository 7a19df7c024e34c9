package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/mapimp/internal/archive"
	"github.com/danieljhkim/mapimp/internal/importlist"
	"github.com/danieljhkim/mapimp/internal/log"
)

// Load reads and decodes an archive's import list.
//
// An archive without a kind marker, or whose index uses an unsupported
// version, is reported as Found=false with a nil error. An archive with a
// marker but no index file is Found with an empty list.
func (e *Engine) Load(ctx context.Context, req *LoadRequest) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	archivePath, _, err := resolveArchive(req.ArchivePath)
	if err != nil {
		return nil, err
	}

	guard, err := archive.Acquire(e.backend, archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveOpen, err)
	}
	defer func() {
		_ = guard.Close()
	}()

	result, err := readList(guard.Archive())
	if err != nil {
		return nil, err
	}
	result.ArchivePath = archivePath

	if err := guard.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArchiveClose, err)
	}
	return result, nil
}

// readList detects the archive kind and decodes its index.
func readList(a archive.Archive) (*LoadResult, error) {
	result := &LoadResult{Entries: []*importlist.Entry{}}

	kind, ok := archive.DetectKind(a)
	if !ok {
		log.Debug("no kind marker found")
		return result, nil
	}
	result.Kind = kind.Name
	result.IndexFile = kind.IndexFile

	data, err := a.ReadEntry(kind.IndexFile)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			log.Debug("%s has no %s yet", kind.Name, kind.IndexFile)
			result.Found = true
			return result, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrIndexRead, err)
	}

	entries, ok := importlist.Decode(data)
	if !ok {
		log.Warn("%s uses an unsupported layout", kind.IndexFile)
		return result, nil
	}

	result.Found = true
	result.IndexPresent = true
	result.Entries = entries
	return result, nil
}
