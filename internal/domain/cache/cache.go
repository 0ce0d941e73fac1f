// Package cache provides the bounded envelope cache owned by the calling
// layer. The engine itself stays stateless; results are memoized here keyed
// by (athlete id, input fingerprint), so a cached envelope is served only
// while the underlying data is unchanged.
package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sprinflow/indices/internal/domain/types"
)

// Cache memoizes computed envelopes per athlete.
type Cache interface {
	// Get returns the cached envelope for the athlete if its fingerprint
	// still matches the current input data.
	Get(ctx context.Context, athleteID, fingerprint string) (types.Envelope, bool)

	// Put stores the envelope computed for the given input fingerprint,
	// replacing any previous entry for the athlete.
	Put(ctx context.Context, athleteID, fingerprint string, env types.Envelope)

	// Invalidate drops the athlete's entry, e.g. after new data arrives.
	Invalidate(ctx context.Context, athleteID string)

	Size() int64
}

type entry struct {
	athleteID   string
	fingerprint string
	envelope    types.Envelope
	next        *entry
}

// inMemoryCache implements Cache with one entry per athlete and LIFO
// eviction once maxEntries is reached (maxEntries <= 0 means unbounded).
type inMemoryCache struct {
	mu         sync.RWMutex
	byAthlete  map[string]*entry
	head       *entry
	maxEntries int
	size       atomic.Int64
}

// New creates an in-memory envelope cache with configuration options.
func New(opts ...Option) Cache {
	c := &inMemoryCache{
		maxEntries: 10000, // default bound
	}
	for _, opt := range opts {
		opt(c)
	}
	c.byAthlete = make(map[string]*entry)
	return c
}

func (c *inMemoryCache) Get(ctx context.Context, athleteID, fingerprint string) (types.Envelope, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.byAthlete[athleteID]
	if !ok || e.fingerprint != fingerprint {
		return types.Envelope{}, false
	}
	return e.envelope, true
}

func (c *inMemoryCache) Put(ctx context.Context, athleteID, fingerprint string, env types.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.byAthlete[athleteID]; ok {
		// Refresh in place; position in the eviction list is unchanged.
		e.fingerprint = fingerprint
		e.envelope = env
		return
	}

	if c.maxEntries > 0 && len(c.byAthlete) >= c.maxEntries {
		c.evictOldest()
	}

	e := &entry{athleteID: athleteID, fingerprint: fingerprint, envelope: env, next: c.head}
	c.head = e
	c.byAthlete[athleteID] = e
	c.size.Add(1)
}

func (c *inMemoryCache) Invalidate(ctx context.Context, athleteID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.byAthlete[athleteID]
	if !ok {
		return
	}
	delete(c.byAthlete, athleteID)
	c.unlink(e)
	c.size.Add(-1)
}

// unlink removes e from the eviction list. Must hold c.mu.
func (c *inMemoryCache) unlink(e *entry) {
	if c.head == e {
		c.head = e.next
		return
	}
	for cur := c.head; cur != nil; cur = cur.next {
		if cur.next == e {
			cur.next = e.next
			return
		}
	}
}

// evictOldest drops the tail of the list (least recently inserted).
// Must hold c.mu.
func (c *inMemoryCache) evictOldest() {
	if c.head == nil {
		return
	}
	if c.head.next == nil {
		delete(c.byAthlete, c.head.athleteID)
		c.head = nil
		c.size.Add(-1)
		return
	}
	prev := c.head
	for prev.next.next != nil {
		prev = prev.next
	}
	delete(c.byAthlete, prev.next.athleteID)
	prev.next = nil
	c.size.Add(-1)
}

func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
