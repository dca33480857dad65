// Package auth provides credential verification for API tokens.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Checksum computes the hex-encoded HMAC-SHA256 digest of token keyed by
// secretKey. Stored credential checksums are minted with this same
// construction, so a credential verifies only while its token bytes are
// intact.
func Checksum(secretKey, token string) string {
	return hex.EncodeToString(digest([]byte(secretKey), token))
}

func digest(key []byte, token string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(token))
	return mac.Sum(nil)
}
