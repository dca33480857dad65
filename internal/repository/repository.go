// Package repository provides document store access layer.
package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// Repository provides document store access methods.
type Repository struct {
	client     *firestore.Client
	collection string
}

// New creates a new Repository backed by a Firestore client.
func New(ctx context.Context, projectID, collection string, opts ...option.ClientOption) (*Repository, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &Repository{client: client, collection: collection}, nil
}

// Close closes the underlying client connection.
func (r *Repository) Close() error {
	return r.client.Close()
}

// Client returns the underlying Firestore client.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) Client() *firestore.Client {
	return r.client
}
