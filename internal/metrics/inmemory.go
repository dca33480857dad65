package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	AuthSuccesses         uint64
	AuthFailures          map[string]uint64
	Lookups               map[string]uint64
	LookupDurationCount   uint64
	LookupDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	authSuccesses         uint64
	lookupDurationCount   uint64
	lookupDurationTotalNs int64

	mu           sync.Mutex
	authFailures map[string]uint64
	lookups      map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		authFailures: make(map[string]uint64),
		lookups:      make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	authFailures := make(map[string]uint64, len(m.authFailures))
	for reason, n := range m.authFailures {
		authFailures[reason] = n
	}
	lookups := make(map[string]uint64, len(m.lookups))
	for outcome, n := range m.lookups {
		lookups[outcome] = n
	}
	m.mu.Unlock()

	return Snapshot{
		AuthSuccesses:         atomic.LoadUint64(&m.authSuccesses),
		AuthFailures:          authFailures,
		Lookups:               lookups,
		LookupDurationCount:   atomic.LoadUint64(&m.lookupDurationCount),
		LookupDurationTotalNs: atomic.LoadInt64(&m.lookupDurationTotalNs),
	}
}

// IncAuthSuccess increments the successful-authentication counter.
func (m *InMemoryRecorder) IncAuthSuccess() {
	atomic.AddUint64(&m.authSuccesses, 1)
}

// IncAuthFailure increments the failed-authentication counter for a reason.
func (m *InMemoryRecorder) IncAuthFailure(reason string) {
	m.mu.Lock()
	m.authFailures[reason]++
	m.mu.Unlock()
}

// IncLookup increments the lookup counter for an outcome.
func (m *InMemoryRecorder) IncLookup(outcome string) {
	m.mu.Lock()
	m.lookups[outcome]++
	m.mu.Unlock()
}

// ObserveLookupDuration records lookup duration.
func (m *InMemoryRecorder) ObserveLookupDuration(duration time.Duration) {
	atomic.AddUint64(&m.lookupDurationCount, 1)
	atomic.AddInt64(&m.lookupDurationTotalNs, duration.Nanoseconds())
}
