// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adagio/visitorid/internal/metrics"
	"github.com/adagio/visitorid/internal/model"
	"github.com/adagio/visitorid/internal/repository"
)

// Service errors.
var (
	ErrEmptyUserID     = errors.New("user_id must not be empty")
	ErrVisitorNotFound = errors.New("visitor ID not found")
	ErrStoreFailure    = errors.New("visitor store failure")
)

const defaultStoreTimeout = 5 * time.Second

// VisitorSource is the document store surface the lookup flow reads from.
type VisitorSource interface {
	GetVisitorByUserID(ctx context.Context, userID string) (*model.VisitorRecord, error)
}

// LookupService resolves user IDs to visitor IDs.
type LookupService struct {
	source       VisitorSource
	storeTimeout time.Duration
	metrics      metrics.Recorder

	// now is overridable in tests.
	now func() time.Time
}

// NewLookupService creates a new LookupService.
func NewLookupService(source VisitorSource, storeTimeout time.Duration, recorder metrics.Recorder) *LookupService {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &LookupService{
		source:       source,
		storeTimeout: storeTimeout,
		metrics:      recorder,
		now:          time.Now,
	}
}

// Lookup resolves the visitor ID mapped to userID. The user ID is matched
// verbatim against the store; no trimming or case folding is applied. The
// store call runs under the configured timeout so a slow backend cannot
// pin the request past its deadline.
func (s *LookupService) Lookup(ctx context.Context, userID string) (*model.LookupResult, error) {
	if userID == "" {
		s.metrics.IncLookup("bad_request")
		return nil, ErrEmptyUserID
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	start := time.Now()
	record, err := s.source.GetVisitorByUserID(ctx, userID)
	s.metrics.ObserveLookupDuration(time.Since(start))

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrVisitorNotFound):
			s.metrics.IncLookup("not_found")
			return nil, ErrVisitorNotFound
		case errors.Is(err, repository.ErrDuplicateVisitor):
			s.metrics.IncLookup("duplicate")
			return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
		default:
			s.metrics.IncLookup("error")
			return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
	}

	s.metrics.IncLookup("found")
	return &model.LookupResult{
		VisitorID: record.VisitorID,
		UserID:    userID,
		FoundAt:   s.now().UTC(),
	}, nil
}
