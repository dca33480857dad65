// Package secrets reads startup-time secrets from Google Secret Manager.
package secrets

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// Manager wraps the Secret Manager client for payload reads.
type Manager struct {
	client *secretmanager.Client
}

// ClientOptions builds the client options shared by Google Cloud clients.
// Explicit JSON key material wins; an empty string falls back to
// Application Default Credentials (Cloud Run service account or
// GOOGLE_APPLICATION_CREDENTIALS).
func ClientOptions(credentialsJSON string) []option.ClientOption {
	if credentialsJSON == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsJSON([]byte(credentialsJSON))}
}

// NewManager creates a Secret Manager client.
func NewManager(ctx context.Context, opts ...option.ClientOption) (*Manager, error) {
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create secret manager client: %w", err)
	}
	return &Manager{client: client}, nil
}

// AccessLatest returns the payload of the latest version of the named
// secret in the given project.
func (m *Manager) AccessLatest(ctx context.Context, projectID, name string) ([]byte, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name),
	}

	resp, err := m.client.AccessSecretVersion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("access secret %q: %w", name, err)
	}

	return resp.GetPayload().GetData(), nil
}

// Close releases the underlying client connection.
func (m *Manager) Close() error {
	return m.client.Close()
}
