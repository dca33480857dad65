package model

// Credential is one authorized API token together with the checksum that
// protects it at rest. The checksum is the hex-encoded HMAC-SHA256 of the
// token keyed by the process secret key; a credential is usable only while
// the stored checksum still verifies.
type Credential struct {
	Name     string
	Token    string
	Checksum string
}

// AuthContext holds authenticated request context.
// This is injected into the request context by auth middleware.
type AuthContext struct {
	CredentialName string
}
