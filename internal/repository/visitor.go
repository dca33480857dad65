package repository

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adagio/visitorid/internal/model"
)

// Common errors for visitor repository operations.
var (
	ErrVisitorNotFound  = errors.New("visitor record not found")
	ErrDuplicateVisitor = errors.New("multiple visitor records for user")
	ErrCorruptRecord    = errors.New("corrupt visitor record")
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// GetVisitorByUserID retrieves the visitor record mapped to the given
// user. Exactly one record per user is expected: more than one match is
// an integrity violation and surfaces as ErrDuplicateVisitor.
func (r *Repository) GetVisitorByUserID(ctx context.Context, userID string) (*model.VisitorRecord, error) {
	// Limit(2) instead of Limit(1): the second document, if any, is the
	// cheapest proof of a uniqueness violation.
	iter := r.client.Collection(r.collection).
		Where("user_id", "==", userID).
		Limit(2).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if errors.Is(err, iterator.Done) {
			return nil, ErrVisitorNotFound
		}
		return nil, mapStoreError("query visitor record", err)
	}

	var record model.VisitorRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, fmt.Errorf("%w: decode document %s: %v", ErrCorruptRecord, doc.Ref.ID, err)
	}
	if record.VisitorID == "" {
		return nil, fmt.Errorf("%w: document %s has no visitor_id", ErrCorruptRecord, doc.Ref.ID)
	}

	if _, err := iter.Next(); err == nil {
		return nil, ErrDuplicateVisitor
	} else if !errors.Is(err, iterator.Done) {
		return nil, mapStoreError("verify visitor record uniqueness", err)
	}

	return &record, nil
}

// mapStoreError folds transport-level failures into ErrStoreUnavailable
// so callers can classify them without importing gRPC machinery.
func mapStoreError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
	}

	switch status.Code(err) {
	case codes.DeadlineExceeded, codes.Canceled, codes.Unavailable, codes.ResourceExhausted:
		return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}
