package config

import (
	"os"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	// Ensure ambient environment does not leak into the assertions.
	for _, key := range []string{
		"APP_ENV", "APP_PORT",
		"GOOGLE_CLOUD_PROJECT", "FIRESTORE_COLLECTION",
		"API_SECRET_KEY", "API_TOKENS_SECRET_NAME", "API_TOKENS_JSON",
		"STORE_TIMEOUT", "CREDENTIAL_LOAD_TIMEOUT",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("expected default AppPort 8080, got %d", cfg.AppPort)
	}

	if cfg.GoogleCloudProject != "adagio-teas-visitor-ids" {
		t.Errorf("expected default GoogleCloudProject 'adagio-teas-visitor-ids', got %s", cfg.GoogleCloudProject)
	}

	if cfg.FirestoreCollection != "visitor_ids" {
		t.Errorf("expected default FirestoreCollection 'visitor_ids', got %s", cfg.FirestoreCollection)
	}

	if cfg.APITokensSecretName != "adagio-visitorid-api-tokens" {
		t.Errorf("expected default APITokensSecretName 'adagio-visitorid-api-tokens', got %s", cfg.APITokensSecretName)
	}

	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("expected default StoreTimeout 5s, got %s", cfg.StoreTimeout)
	}

	if cfg.CredentialLoadTimeout != 10*time.Second {
		t.Errorf("expected default CredentialLoadTimeout 10s, got %s", cfg.CredentialLoadTimeout)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel 'info', got %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}

	if cfg.MaxRequestBodySize != 1048576 {
		t.Errorf("expected default MaxRequestBodySize 1048576, got %d", cfg.MaxRequestBodySize)
	}
}

func TestLoad_WithOverrides(t *testing.T) {
	os.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")
	os.Setenv("FIRESTORE_COLLECTION", "visitor_ids_staging")
	os.Setenv("STORE_TIMEOUT", "250ms")
	defer func() {
		os.Unsetenv("GOOGLE_CLOUD_PROJECT")
		os.Unsetenv("FIRESTORE_COLLECTION")
		os.Unsetenv("STORE_TIMEOUT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.GoogleCloudProject != "my-project" {
		t.Errorf("expected GoogleCloudProject to be overridden, got %s", cfg.GoogleCloudProject)
	}

	if cfg.FirestoreCollection != "visitor_ids_staging" {
		t.Errorf("expected FirestoreCollection to be overridden, got %s", cfg.FirestoreCollection)
	}

	if cfg.StoreTimeout != 250*time.Millisecond {
		t.Errorf("expected StoreTimeout 250ms, got %s", cfg.StoreTimeout)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	os.Setenv("STORE_TIMEOUT", "not-a-duration")
	defer os.Unsetenv("STORE_TIMEOUT")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for malformed duration, got nil")
	}
}

func TestConfig_UsesDefaultSecretKey(t *testing.T) {
	os.Unsetenv("API_SECRET_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.UsesDefaultSecretKey() {
		t.Error("unset API_SECRET_KEY should report the default key")
	}

	cfg.APISecretKey = "operator-chosen-key"
	if cfg.UsesDefaultSecretKey() {
		t.Error("an operator-chosen key should not report the default")
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{AppEnv: "production"}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction to return true")
	}

	cfg.AppEnv = "development"
	if cfg.IsProduction() {
		t.Error("expected IsProduction to return false")
	}
}
