package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// GuestTier is the fallback tier for anonymous callers and unrecognized
// tier names. The quota table must always contain it.
const GuestTier = "guest"

// DefaultWindow is the counting window shared by all tiers and keys.
const DefaultWindow = time.Hour

// DefaultCleanupInterval is how often the background sweep evicts expired
// windows. Correctness does not depend on the sweep: expired entries are
// also replaced lazily on next access. It only bounds memory growth from
// one-off guest IPs.
const DefaultCleanupInterval = 10 * time.Minute

// window is the per-key counter state.
type window struct {
	count int
	start time.Time
}

// Engine is an in-memory fixed-window rate limiter. One instance is shared
// by all request handlers, constructed once at startup and passed explicitly.
type Engine struct {
	limits          map[string]int
	windowSize      time.Duration
	cleanupInterval time.Duration

	// now is the clock; overridable in tests.
	now func() time.Time

	mu      sync.Mutex
	entries map[string]window
	done    chan struct{}
	closed  bool
}

// NewEngine creates an engine from a per-tier quota table, a window size and
// a cleanup interval. Zero durations select the defaults. Negative quotas or
// a missing guest tier are configuration errors, rejected at startup so they
// can never surface at request time. A background sweep goroutine is started;
// callers must Close the engine on shutdown.
func NewEngine(tierLimits map[string]int, windowSize, cleanupInterval time.Duration) (*Engine, error) {
	if len(tierLimits) == 0 {
		return nil, fmt.Errorf("tier limit table must not be empty")
	}
	if _, ok := tierLimits[GuestTier]; !ok {
		return nil, fmt.Errorf("tier limit table must include %q", GuestTier)
	}
	limits := make(map[string]int, len(tierLimits))
	for tier, limit := range tierLimits {
		if limit < 0 {
			return nil, fmt.Errorf("tier %q has negative limit %d", tier, limit)
		}
		limits[tier] = limit
	}
	if windowSize == 0 {
		windowSize = DefaultWindow
	}
	if windowSize < 0 {
		return nil, fmt.Errorf("window size must be positive, got %v", windowSize)
	}
	if cleanupInterval == 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	if cleanupInterval < 0 {
		return nil, fmt.Errorf("cleanup interval must be positive, got %v", cleanupInterval)
	}

	e := &Engine{
		limits:          limits,
		windowSize:      windowSize,
		cleanupInterval: cleanupInterval,
		now:             time.Now,
		entries:         make(map[string]window),
		done:            make(chan struct{}),
	}
	go e.sweepLoop()
	return e, nil
}

// DeriveKey returns the tracking key for a caller: "user:<id>" for any
// identity with a non-guest tier and a known id, else "ip:<originAddr>".
// Pure and deterministic. An identity missing its id degrades to IP keying
// rather than failing the request.
func DeriveKey(identity *Identity, originAddr string) string {
	if identity != nil && identity.Tier != "" && identity.Tier != GuestTier && identity.ID != "" {
		return "user:" + identity.ID
	}
	return "ip:" + originAddr
}

// tierFor resolves the caller's tier and quota, falling back to guest for
// anonymous callers and unrecognized tier names.
func (e *Engine) tierFor(identity *Identity) (limit int, tier string) {
	if identity != nil && identity.Tier != "" {
		if l, ok := e.limits[identity.Tier]; ok {
			return l, identity.Tier
		}
	}
	return e.limits[GuestTier], GuestTier
}

// effective projects stored window state onto the current time. An absent or
// expired window reads as a fresh one anchored at now. Both the consuming
// and the non-consuming paths go through this projection, so a status check
// at window expiry reports exactly what the next consume will see.
func (e *Engine) effective(stored window, now time.Time) window {
	if now.Sub(stored.start) >= e.windowSize {
		return window{count: 0, start: now}
	}
	return stored
}

// CheckAndConsume evaluates admission for one request and, if admitted,
// consumes one slot. The read-evaluate-increment sequence runs under the
// store lock and is O(1), so concurrent callers racing for the last slot
// see exactly one admission. A limit of zero always denies.
func (e *Engine) CheckAndConsume(identity *Identity, originAddr string) Result {
	key := DeriveKey(identity, originAddr)
	limit, tier := e.tierFor(identity)

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	w := e.effective(e.entries[key], now)

	remaining := limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	admitted := w.count < limit
	if admitted {
		w.count++
		remaining--
	}
	e.entries[key] = w

	return Result{
		Admitted:  admitted,
		Remaining: remaining,
		Limit:     limit,
		ResetAt:   w.start.Add(e.windowSize),
		Tier:      tier,
	}
}

// PeekStatus reports the caller's quota without consuming. It never writes
// to the store: an expired window is reported as a fresh one (full limit,
// reset anchored at now) without persisting that state.
func (e *Engine) PeekStatus(identity *Identity, originAddr string) Status {
	key := DeriveKey(identity, originAddr)
	limit, tier := e.tierFor(identity)

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	w := e.effective(e.entries[key], now)

	remaining := limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Remaining: remaining,
		Limit:     limit,
		ResetAt:   w.start.Add(e.windowSize),
		Tier:      tier,
	}
}

// Reset deletes the caller's entry outright, as if it had never been
// observed. Idempotent.
func (e *Engine) Reset(identity *Identity, originAddr string) {
	key := DeriveKey(identity, originAddr)

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.entries, key)
}

// Sweep evicts every key whose window has fully expired and returns the
// number of evicted entries. Called periodically by the background loop;
// exported so tests and operators can trigger it deterministically.
func (e *Engine) Sweep() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	evicted := 0
	for key, w := range e.entries {
		if now.Sub(w.start) >= e.windowSize {
			delete(e.entries, key)
			evicted++
		}
	}
	return evicted
}

// Snapshot returns a copy of the entire counter store for operational
// inspection. ResetIn may be negative for entries the sweep has not yet
// evicted.
func (e *Engine) Snapshot() map[string]SnapshotEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	snap := make(map[string]SnapshotEntry, len(e.entries))
	for key, w := range e.entries {
		snap[key] = SnapshotEntry{
			Count:       w.count,
			WindowStart: w.start,
			ResetIn:     w.start.Add(e.windowSize).Sub(now),
		}
	}
	return snap
}

// Close stops the background sweep goroutine. Safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.done)
	}
}

// sweepLoop runs the eviction sweep on a fixed interval, independent of
// request traffic, until Close.
func (e *Engine) sweepLoop() {
	ticker := time.NewTicker(e.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			e.Sweep()
		}
	}
}
