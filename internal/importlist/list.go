package importlist

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound indicates no entry has the requested full path.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEntryDeleted indicates an edit was attempted on a deleted entry.
	ErrEntryDeleted = errors.New("entry is marked deleted")

	// ErrDuplicatePath indicates another entry already uses the full path.
	ErrDuplicatePath = errors.New("path already in use")
)

// Find returns the position of the entry whose full path equals full
// (case-sensitive), or -1.
func Find(entries []*Entry, full string) int {
	for i, e := range entries {
		if e.FullPath() == full {
			return i
		}
	}
	return -1
}

// Live returns the entries that are not marked deleted, in order.
func Live(entries []*Entry) []*Entry {
	live := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Deleted {
			live = append(live, e)
		}
	}
	return live
}

// HasChanges reports whether saving the list would touch the archive.
func HasChanges(entries []*Entry) bool {
	for _, e := range entries {
		if e.Changed || e.Deleted {
			return true
		}
	}
	return false
}

// MergeResult describes how imported entries were folded into a list.
type MergeResult struct {
	// Added is the full paths appended as new entries
	Added []string

	// Updated is the full paths of existing entries that received new content
	Updated []string
}

// Merge folds imported entries into the list. An import whose full path
// matches an existing entry replaces that entry's disk source, marks it
// changed and clears its deleted mark; any other import is appended.
func Merge(entries []*Entry, imported []*Entry) ([]*Entry, *MergeResult) {
	result := &MergeResult{
		Added:   []string{},
		Updated: []string{},
	}

	for _, imp := range imported {
		full := imp.FullPath()
		if i := Find(entries, full); i >= 0 {
			entries[i].DiskPath = imp.DiskPath
			entries[i].Changed = true
			entries[i].Deleted = false
			result.Updated = append(result.Updated, full)
			continue
		}
		entries = append(entries, imp)
		result.Added = append(result.Added, full)
	}

	return entries, result
}

// ToggleResult describes the effect of ToggleDeleted.
type ToggleResult struct {
	// Deleted is the full paths newly marked deleted
	Deleted []string

	// Restored is the full paths whose deleted mark was cleared
	Restored []string

	// Dropped is the full paths removed from the list outright
	Dropped []string
}

// ToggleDeleted flips the deleted mark on a selection of entries. The new
// state is the opposite of the first selected entry's current state.
//
// Entries that were never archived have nothing to remove, so deleting them
// drops them from the list. An archived entry with a pending disk source
// loses that source when it is deleted.
func ToggleDeleted(entries []*Entry, selection []string) ([]*Entry, *ToggleResult, error) {
	result := &ToggleResult{
		Deleted:  []string{},
		Restored: []string{},
		Dropped:  []string{},
	}
	if len(selection) == 0 {
		return entries, result, nil
	}

	selected := make([]*Entry, 0, len(selection))
	for _, full := range selection {
		i := Find(entries, full)
		if i < 0 {
			return entries, nil, fmt.Errorf("%w: %s", ErrEntryNotFound, full)
		}
		selected = append(selected, entries[i])
	}

	del := !selected[0].Deleted
	drop := make(map[*Entry]bool)

	for _, e := range selected {
		switch {
		case e.DiskPath == "":
			if e.Deleted != del {
				e.Deleted = del
				if del {
					result.Deleted = append(result.Deleted, e.FullPath())
				} else {
					result.Restored = append(result.Restored, e.FullPath())
				}
			}
		case del && !e.Archived():
			drop[e] = true
			result.Dropped = append(result.Dropped, e.FullPath())
		case del:
			e.DiskPath = ""
			e.Deleted = true
			result.Deleted = append(result.Deleted, e.FullPath())
		}
	}

	if len(drop) == 0 {
		return entries, result, nil
	}

	kept := entries[:0]
	for _, e := range entries {
		if !drop[e] {
			kept = append(kept, e)
		}
	}
	return kept, result, nil
}

// Rename moves the entry at full path from to full path to. The entry's
// inner path and custom flag are re-derived from the new path.
func Rename(entries []*Entry, from, to string) (*Entry, error) {
	i := Find(entries, from)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, from)
	}

	e := entries[i]
	if e.Deleted {
		return nil, fmt.Errorf("%w: %s", ErrEntryDeleted, from)
	}
	if from == to {
		return e, nil
	}
	if j := Find(entries, to); j >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, to)
	}

	e.SetFullPath(to)
	e.Changed = true
	return e, nil
}
