package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText returns the hex-encoded SHA-256 digest of the given text.
// Used as the dedup key for ingested messages.
func HashText(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
