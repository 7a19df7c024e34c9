package state

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeSessionID computes a stable session ID from the archive's absolute
// path. This ID names the session file.
func ComputeSessionID(archivePath string) string {
	hash := sha256.Sum256([]byte(archivePath))
	return hex.EncodeToString(hash[:])
}
