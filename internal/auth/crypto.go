package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SessionID derives a stable, non-reversible identifier for a credential.
// Raw tokens are never used as map keys or written to logs.
func SessionID(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}

// ConstantTimeCompareStrings compares two strings in constant time.
func ConstantTimeCompareStrings(a, b string) bool {
	aBytes := []byte(a)
	bBytes := []byte(b)

	// If lengths differ, still do comparison to maintain constant time
	if len(aBytes) != len(bBytes) {
		if len(aBytes) < len(bBytes) {
			aBytes = make([]byte, len(bBytes))
		} else {
			bBytes = make([]byte, len(aBytes))
		}
		subtle.ConstantTimeCompare(aBytes, bBytes)
		return false
	}

	return subtle.ConstantTimeCompare(aBytes, bBytes) == 1
}
