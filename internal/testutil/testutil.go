package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/adagio/visitorid/internal/auth"
	"github.com/adagio/visitorid/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// ============================================================================
// Test Data Factories
// ============================================================================

// SecretKey is the checksum key used by test credentials.
const SecretKey = "test-secret-key"

// NewTestCredential creates a credential whose checksum verifies under SecretKey.
func NewTestCredential(t testing.TB, name, token string) model.Credential {
	t.Helper()
	return model.Credential{
		Name:     name,
		Token:    token,
		Checksum: auth.Checksum(SecretKey, token),
	}
}

// NewCredentialSet builds a usable credential set from name/token pairs.
func NewCredentialSet(t testing.TB, pairs map[string]string) *auth.Set {
	t.Helper()
	creds := make([]model.Credential, 0, len(pairs))
	for name, token := range pairs {
		creds = append(creds, NewTestCredential(t, name, token))
	}
	set, corrupted := auth.NewSet(SecretKey, creds)
	if len(corrupted) != 0 {
		t.Fatalf("test credentials failed checksum verification: %v", corrupted)
	}
	return set
}

// NewTestVisitorRecord creates a visitor record with sensible defaults.
func NewTestVisitorRecord(t testing.TB, userID string) *model.VisitorRecord {
	t.Helper()
	now := time.Now().UTC()
	return &model.VisitorRecord{
		UserID:    userID,
		VisitorID: fmt.Sprintf("visitor-%d", now.UnixNano()),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UniqueUserID generates a unique user ID for tests.
func UniqueUserID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
