// Package importlist models the import list of a map archive.
//
// The import list is a small binary index stored inside the archive that
// records which embedded files are imports and whether each one is a
// "custom" path or lives under the conventional war3mapImported\ directory.
//
// Key concepts:
//   - Entry: one tracked file, with its inner path, custom flag and edit state
//   - Path codec: SplitPath/JoinPath convert between full and inner paths
//   - Binary codec: Decode/Encode read and write the index file layout
//   - List helpers: Merge, ToggleDeleted and Rename implement the edit rules
package importlist
