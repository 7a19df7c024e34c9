package planner

import "github.com/danieljhkim/mapimp/internal/importlist"

// Skip reasons
const (
	SkipNeverArchived = "never archived"
	SkipSamePath      = "path unchanged"
)

// BuildSyncPlan generates the ordered operations that bring an archive in
// line with entries.
func BuildSyncPlan(entries []*importlist.Entry) *SyncPlan {
	plan := NewSyncPlan()

	for i, e := range entries {
		original := e.OriginalPath()

		switch {
		case e.Deleted:
			if original == "" {
				plan.AddSkip(Skip{Entry: i, Path: e.FullPath(), Reason: SkipNeverArchived})
				continue
			}
			plan.AddOperation(Operation{Type: OpRemove, Source: original, Entry: i})

		case e.Changed && e.DiskPath == "":
			target := e.FullPath()
			if original == "" {
				plan.AddSkip(Skip{Entry: i, Path: target, Reason: SkipNeverArchived})
				continue
			}
			if original == target {
				plan.AddSkip(Skip{Entry: i, Path: target, Reason: SkipSamePath})
				continue
			}
			plan.AddOperation(Operation{Type: OpRename, Source: original, Target: target, Entry: i})

		case e.Changed:
			// A fresh import has nothing to remove first
			if original != "" {
				plan.AddOperation(Operation{Type: OpRemove, Source: original, Entry: i})
			}
			plan.AddOperation(Operation{Type: OpAdd, Source: e.DiskPath, Target: e.FullPath(), Entry: i})
		}
	}

	return plan
}
