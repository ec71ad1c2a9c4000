package orderControllers

import (
	"sync"
	"time"
)

// IdempotencyGuard remembers recent checkout submissions by client key
// so a double-click replays the first result instead of inserting a
// second order. Entries expire after ttl; the guard is in-process only.
type IdempotencyGuard struct {
	mu      sync.Mutex
	entries map[string]idemEntry
	ttl     time.Duration
}

type idemEntry struct {
	result *PlaceOrderResult
	at     time.Time
}

func NewIdempotencyGuard(ttl time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{
		entries: make(map[string]idemEntry),
		ttl:     ttl,
	}
}

func (g *IdempotencyGuard) Get(key string) (*PlaceOrderResult, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prune()
	entry, ok := g.entries[key]
	if !ok {
		return nil, false
	}
	return entry.result, true
}

func (g *IdempotencyGuard) Put(key string, result *PlaceOrderResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[key] = idemEntry{result: result, at: time.Now()}
}

// prune drops expired entries. Caller must hold the lock.
func (g *IdempotencyGuard) prune() {
	cutoff := time.Now().Add(-g.ttl)
	for key, entry := range g.entries {
		if entry.at.Before(cutoff) {
			delete(g.entries, key)
		}
	}
}
