package importlist

import (
	"path/filepath"
	"strings"
)

// Prefix is the directory that non-custom imports are stored under.
const Prefix = `war3mapImported\`

// SplitPath splits a full archive path into its inner path and custom flag.
// A path that starts with Prefix loses it and is not custom; any other path
// is kept verbatim and is custom.
func SplitPath(full string) (inner string, custom bool) {
	if strings.HasPrefix(full, Prefix) {
		return full[len(Prefix):], false
	}
	return full, true
}

// JoinPath returns the full archive path for an inner path.
func JoinPath(inner string, custom bool) string {
	if custom {
		return inner
	}
	return Prefix + inner
}

// ArchiveName converts a relative filesystem path to the backslash-separated
// form used for names inside the archive.
func ArchiveName(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", `\`)
}

// NativePath converts an archive name to a relative filesystem path.
func NativePath(name string) string {
	return filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
}
