package auth

import (
	"crypto/hmac"
	"encoding/hex"

	"github.com/adagio/visitorid/internal/model"
)

// Set is the in-memory credential set used to authorize requests.
// It is built once at startup and never mutated afterwards, so it is safe
// for unsynchronized concurrent reads.
type Set struct {
	key     []byte
	names   []string
	digests [][]byte
}

// NewSet builds a Set from the loaded credentials. Each credential's stored
// checksum is recomputed from its token; credentials that fail verification
// are excluded from the accept set and their names returned so the caller
// can log them. A token matching an excluded credential is rejected exactly
// like an unknown token.
func NewSet(secretKey string, creds []model.Credential) (*Set, []string) {
	s := &Set{key: []byte(secretKey)}

	var corrupted []string
	for _, cred := range creds {
		d := digest(s.key, cred.Token)
		stored, err := hex.DecodeString(cred.Checksum)
		if err != nil || !hmac.Equal(d, stored) {
			corrupted = append(corrupted, cred.Name)
			continue
		}
		s.names = append(s.names, cred.Name)
		s.digests = append(s.digests, d)
	}

	return s, corrupted
}

// Validate checks a presented bearer token against the set and returns the
// name of the matched credential. The token is digested once, then compared
// against every verified credential digest without early exit; only
// fixed-length digests are compared, so the decision is constant-time with
// respect to the token's length and content.
func (s *Set) Validate(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	d := digest(s.key, token)
	matched := -1
	for i := range s.digests {
		if hmac.Equal(d, s.digests[i]) {
			matched = i
		}
	}

	if matched < 0 {
		return "", false
	}
	return s.names[matched], true
}

// Len reports how many credentials passed checksum verification.
func (s *Set) Len() int {
	return len(s.digests)
}
