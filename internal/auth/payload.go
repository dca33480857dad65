package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/adagio/visitorid/internal/model"
)

// credentialEntry is the wire form of one credential in the secret payload.
type credentialEntry struct {
	Token    string `json:"token"`
	Checksum string `json:"checksum"`
}

// ParseCredentialPayload decodes the credential document held by the secret
// store: a JSON object mapping credential names to token/checksum pairs.
// Entries with an empty token or checksum fail by name rather than being
// skipped, so a malformed secret is caught at startup instead of silently
// shrinking the accept set. Credentials are returned in name order.
func ParseCredentialPayload(data []byte) ([]model.Credential, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty credential payload")
	}

	var raw map[string]credentialEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode credential payload: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("credential payload contains no entries")
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	creds := make([]model.Credential, 0, len(names))
	for _, name := range names {
		entry := raw[name]
		if entry.Token == "" {
			return nil, fmt.Errorf("credential %q: token is empty", name)
		}
		if entry.Checksum == "" {
			return nil, fmt.Errorf("credential %q: checksum is empty", name)
		}
		creds = append(creds, model.Credential{
			Name:     name,
			Token:    entry.Token,
			Checksum: entry.Checksum,
		})
	}

	return creds, nil
}
