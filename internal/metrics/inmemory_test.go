package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestInMemoryRecorder_Counters(t *testing.T) {
	t.Parallel()

	rec := NewInMemory()

	rec.IncAuthSuccess()
	rec.IncAuthSuccess()
	rec.IncAuthFailure("missing")
	rec.IncAuthFailure("invalid")
	rec.IncAuthFailure("invalid")
	rec.IncLookup("found")
	rec.IncLookup("not_found")
	rec.ObserveLookupDuration(40 * time.Millisecond)
	rec.ObserveLookupDuration(60 * time.Millisecond)

	snap := rec.Snapshot()

	if snap.AuthSuccesses != 2 {
		t.Errorf("AuthSuccesses = %d, want 2", snap.AuthSuccesses)
	}
	if snap.AuthFailures["missing"] != 1 || snap.AuthFailures["invalid"] != 2 {
		t.Errorf("unexpected AuthFailures: %v", snap.AuthFailures)
	}
	if snap.Lookups["found"] != 1 || snap.Lookups["not_found"] != 1 {
		t.Errorf("unexpected Lookups: %v", snap.Lookups)
	}
	if snap.LookupDurationCount != 2 {
		t.Errorf("LookupDurationCount = %d, want 2", snap.LookupDurationCount)
	}
	if snap.LookupDurationTotalNs != (100 * time.Millisecond).Nanoseconds() {
		t.Errorf("LookupDurationTotalNs = %d, want %d", snap.LookupDurationTotalNs, (100 * time.Millisecond).Nanoseconds())
	}
}

func TestInMemoryRecorder_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	rec := NewInMemory()
	rec.IncLookup("found")

	snap := rec.Snapshot()
	snap.Lookups["found"] = 99

	if got := rec.Snapshot().Lookups["found"]; got != 1 {
		t.Errorf("mutating a snapshot should not affect the recorder, got %d", got)
	}
}

func TestInMemoryRecorder_ConcurrentUse(t *testing.T) {
	t.Parallel()

	rec := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rec.IncAuthSuccess()
				rec.IncAuthFailure("invalid")
				rec.IncLookup("found")
				rec.ObserveLookupDuration(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	snap := rec.Snapshot()
	if snap.AuthSuccesses != 800 {
		t.Errorf("AuthSuccesses = %d, want 800", snap.AuthSuccesses)
	}
	if snap.AuthFailures["invalid"] != 800 {
		t.Errorf("AuthFailures[invalid] = %d, want 800", snap.AuthFailures["invalid"])
	}
	if snap.Lookups["found"] != 800 {
		t.Errorf("Lookups[found] = %d, want 800", snap.Lookups["found"])
	}
	if snap.LookupDurationCount != 800 {
		t.Errorf("LookupDurationCount = %d, want 800", snap.LookupDurationCount)
	}
}
