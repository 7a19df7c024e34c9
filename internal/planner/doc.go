// Package planner handles the planning phase of a save.
//
// The planner turns an edited import list into a deterministic, ordered list
// of archive operations. It never touches the archive; the engine executes
// the plan and reports what happened.
//
// Entries are visited in list order:
//   - deleted entries are removed under their original path
//   - changed entries without a disk source are renamed
//   - changed entries with a disk source are removed and added again
//   - unchanged entries produce nothing
package planner
