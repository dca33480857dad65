package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adagio/visitorid/internal/metrics"
	"github.com/adagio/visitorid/internal/model"
	"github.com/adagio/visitorid/internal/repository"
)

// fakeVisitorSource returns a canned record or error and captures the call.
type fakeVisitorSource struct {
	record *model.VisitorRecord
	err    error

	calls       int
	gotUserID   string
	sawDeadline bool
}

func (f *fakeVisitorSource) GetVisitorByUserID(ctx context.Context, userID string) (*model.VisitorRecord, error) {
	f.calls++
	f.gotUserID = userID
	_, f.sawDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func TestLookup_Found(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	source := &fakeVisitorSource{
		record: &model.VisitorRecord{UserID: "user-1", VisitorID: "v-42"},
	}
	rec := metrics.NewInMemory()

	svc := NewLookupService(source, time.Second, rec)
	svc.now = func() time.Time { return fixed }

	result, err := svc.Lookup(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.VisitorID != "v-42" {
		t.Errorf("VisitorID = %q, want %q", result.VisitorID, "v-42")
	}
	if result.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", result.UserID, "user-1")
	}
	if !result.FoundAt.Equal(fixed) {
		t.Errorf("FoundAt = %v, want %v", result.FoundAt, fixed)
	}

	snap := rec.Snapshot()
	if snap.Lookups["found"] != 1 {
		t.Errorf("Lookups[found] = %d, want 1", snap.Lookups["found"])
	}
	if snap.LookupDurationCount != 1 {
		t.Errorf("LookupDurationCount = %d, want 1", snap.LookupDurationCount)
	}
}

func TestLookup_UserIDPassedVerbatim(t *testing.T) {
	source := &fakeVisitorSource{
		record: &model.VisitorRecord{UserID: "  Padded-User  ", VisitorID: "v-1"},
	}
	svc := NewLookupService(source, time.Second, nil)

	result, err := svc.Lookup(context.Background(), "  Padded-User  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No trimming or case folding on the way to the store or back.
	if source.gotUserID != "  Padded-User  " {
		t.Errorf("store queried with %q, want verbatim user ID", source.gotUserID)
	}
	if result.UserID != "  Padded-User  " {
		t.Errorf("result echoes %q, want verbatim user ID", result.UserID)
	}
}

func TestLookup_EmptyUserID(t *testing.T) {
	source := &fakeVisitorSource{}
	rec := metrics.NewInMemory()
	svc := NewLookupService(source, time.Second, rec)

	_, err := svc.Lookup(context.Background(), "")
	if !errors.Is(err, ErrEmptyUserID) {
		t.Fatalf("expected ErrEmptyUserID, got %v", err)
	}
	if source.calls != 0 {
		t.Errorf("store should not be queried for an empty user ID, got %d calls", source.calls)
	}
	if got := rec.Snapshot().Lookups["bad_request"]; got != 1 {
		t.Errorf("Lookups[bad_request] = %d, want 1", got)
	}
}

func TestLookup_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		sourceErr   error
		wantErr     error
		wantOutcome string
	}{
		{"not found", repository.ErrVisitorNotFound, ErrVisitorNotFound, "not_found"},
		{"duplicate records", repository.ErrDuplicateVisitor, ErrStoreFailure, "duplicate"},
		{"corrupt record", repository.ErrCorruptRecord, ErrStoreFailure, "error"},
		{"store unavailable", repository.ErrStoreUnavailable, ErrStoreFailure, "error"},
		{"unexpected failure", errors.New("boom"), ErrStoreFailure, "error"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			source := &fakeVisitorSource{err: test.sourceErr}
			rec := metrics.NewInMemory()
			svc := NewLookupService(source, time.Second, rec)

			_, err := svc.Lookup(context.Background(), "user-1")
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}

			if got := rec.Snapshot().Lookups[test.wantOutcome]; got != 1 {
				t.Errorf("Lookups[%s] = %d, want 1", test.wantOutcome, got)
			}
		})
	}
}

func TestLookup_RepeatedLookupsStable(t *testing.T) {
	source := &fakeVisitorSource{
		record: &model.VisitorRecord{UserID: "user-1", VisitorID: "v-42"},
	}
	svc := NewLookupService(source, time.Second, nil)

	first, err := svc.Lookup(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	second, err := svc.Lookup(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}

	// Identical lookups against an unchanged store agree on everything
	// except the found_at timestamp.
	if first.VisitorID != second.VisitorID || first.UserID != second.UserID {
		t.Errorf("repeated lookups diverged: %+v vs %+v", first, second)
	}
	if source.calls != 2 {
		t.Errorf("store calls = %d, want 2", source.calls)
	}
}

func TestLookup_AppliesStoreDeadline(t *testing.T) {
	source := &fakeVisitorSource{
		record: &model.VisitorRecord{UserID: "user-1", VisitorID: "v-1"},
	}
	svc := NewLookupService(source, 50*time.Millisecond, nil)

	if _, err := svc.Lookup(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !source.sawDeadline {
		t.Error("store call should carry a deadline")
	}
}

func TestNewLookupService_Defaults(t *testing.T) {
	svc := NewLookupService(&fakeVisitorSource{}, 0, nil)

	if svc.storeTimeout != defaultStoreTimeout {
		t.Errorf("storeTimeout = %s, want %s", svc.storeTimeout, defaultStoreTimeout)
	}
	if svc.metrics == nil {
		t.Error("metrics recorder should default to noop, not nil")
	}
}
