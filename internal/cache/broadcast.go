package cache

import (
	"strconv"
	"sync"

	"github.com/pawnengine/core/internal/domain"
	"github.com/pawnengine/core/internal/metrics"
)

// Broadcaster fans a StandingsUpdateEvent out to every subscriber over a
// bounded, lossy channel (spec.md §5: "bounded buffer, configurable
// depth >= 256 ... a slow subscriber may miss events"). Grounded on the
// teacher's Hub register/unregister/broadcast shape, but a full
// subscriber buffer drops the event rather than disconnecting the
// subscriber -- the spec treats events purely as invalidation hints,
// never as the thing a client must not miss.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan domain.StandingsUpdateEvent]bool
	depth  int
}

// NewBroadcaster creates a Broadcaster whose subscriber channels are
// buffered to depth slots.
func NewBroadcaster(depth int) *Broadcaster {
	if depth < 1 {
		depth = 256
	}
	return &Broadcaster{subs: make(map[chan domain.StandingsUpdateEvent]bool), depth: depth}
}

// Subscribe registers a new receiver. Callers should drain it promptly;
// a slow reader simply misses events rather than blocking publishers.
func (b *Broadcaster) Subscribe() <-chan domain.StandingsUpdateEvent {
	ch := make(chan domain.StandingsUpdateEvent, b.depth)
	b.mu.Lock()
	b.subs[ch] = true
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a previously returned receiver.
func (b *Broadcaster) Unsubscribe(ch <-chan domain.StandingsUpdateEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.subs {
		if c == ch {
			delete(b.subs, c)
			close(c)
			return
		}
	}
}

// Publish sends event to every subscriber, dropping it for any
// subscriber whose buffer is currently full.
func (b *Broadcaster) Publish(event domain.StandingsUpdateEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			metrics.RecordBroadcastDropped(strconv.FormatInt(int64(event.TournamentID), 10))
		}
	}
}
