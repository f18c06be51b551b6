// Package cache implements C4, the real-time standings cache: a
// process-wide TTL-memoised mapping from tournament id to the most
// recently computed StandingsResult, plus a lossy broadcast of change
// events (spec.md §4.4). Grounded on the teacher's CacheService
// (Get/Set/Delete/GetOrSet over Redis), reworked into an in-process
// store since the spec's cache is explicitly not a shared external
// store.
package cache

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/pawnengine/core/internal/domain"
	"github.com/pawnengine/core/internal/metrics"
)

// Computer recomputes a StandingsResult for a tournament. The cache
// never knows how to compute one itself -- it only memoises whatever
// Computer returns (keeps C4 decoupled from C3).
type Computer func(ctx context.Context, id domain.TournamentID) (*domain.StandingsResult, error)

type entry struct {
	result *domain.StandingsResult
}

// Cache is C4: Get serves a fresh-enough cached value or recomputes;
// Invalidate/InvalidateAll drop entries; ForceRecompute always
// recomputes. A failed recomputation never evicts the previous value
// (spec.md §7 "The cache is never poisoned").
type Cache struct {
	mu       sync.RWMutex
	entries  map[domain.TournamentID]entry
	ttl      time.Duration
	compute  Computer
	bus      *Broadcaster
	slowWarn time.Duration
}

// New builds a Cache with the given TTL and recompute function. A
// Broadcaster is created internally with the spec's minimum buffer
// depth of 256 (spec.md §5).
func New(ttl time.Duration, compute Computer) *Cache {
	return &Cache{
		entries:  make(map[domain.TournamentID]entry),
		ttl:      ttl,
		compute:  compute,
		bus:      NewBroadcaster(256),
		slowWarn: time.Second,
	}
}

// Subscribe returns a receiver of StandingsUpdateEvent (spec.md §4.4).
func (c *Cache) Subscribe() <-chan domain.StandingsUpdateEvent {
	return c.bus.Subscribe()
}

// Get serves the cached value if its age is below the configured TTL,
// otherwise recomputes, stores, and returns the fresh value.
func (c *Cache) Get(ctx context.Context, id domain.TournamentID) (*domain.StandingsResult, error) {
	idStr := strconv.FormatInt(int64(id), 10)
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if ok && time.Since(e.result.ComputedAt) < c.ttl {
		metrics.RecordCacheHit(idStr)
		return e.result, nil
	}
	metrics.RecordCacheMiss(idStr)
	return c.recompute(ctx, id)
}

// ForceRecompute ignores cache age and always recomputes (spec.md
// §4.4).
func (c *Cache) ForceRecompute(ctx context.Context, id domain.TournamentID, eventType domain.WebSocketEventType, affected []domain.PlayerID) (*domain.StandingsResult, error) {
	result, err := c.recomputeAndStore(ctx, id)
	if err != nil {
		return nil, err
	}
	c.bus.Publish(domain.StandingsUpdateEvent{
		TournamentID:    id,
		EventType:       eventType,
		AffectedPlayers: affected,
		Timestamp:       result.ComputedAt,
		Standings:       *result,
	})
	return result, nil
}

func (c *Cache) recompute(ctx context.Context, id domain.TournamentID) (*domain.StandingsResult, error) {
	return c.recomputeAndStore(ctx, id)
}

func (c *Cache) recomputeAndStore(ctx context.Context, id domain.TournamentID) (*domain.StandingsResult, error) {
	result, err := c.compute(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics.RecordStandingsComputation(strconv.FormatInt(int64(id), 10), result.Duration, c.slowWarn)
	if result.Duration > c.slowWarn {
		log.Printf("cache: standings computation for tournament %d took %s (budget %s)", id, result.Duration, c.slowWarn)
	}
	c.mu.Lock()
	c.entries[id] = entry{result: result}
	c.mu.Unlock()
	return result, nil
}

// Invalidate drops the cached entry for one tournament.
func (c *Cache) Invalidate(id domain.TournamentID) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// InvalidateAll drops every cached entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[domain.TournamentID]entry)
	c.mu.Unlock()
}
