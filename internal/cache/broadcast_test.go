package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawnengine/core/internal/domain"
)

func TestBroadcaster_DeliversToEverySubscriber(t *testing.T) {
	b := NewBroadcaster(4)
	a := b.Subscribe()
	c := b.Subscribe()

	b.Publish(domain.StandingsUpdateEvent{TournamentID: 1})

	select {
	case <-a:
	default:
		t.Fatal("subscriber a did not receive the event")
	}
	select {
	case <-c:
	default:
		t.Fatal("subscriber c did not receive the event")
	}
}

func TestBroadcaster_FullBufferDropsTheEventRatherThanBlocking(t *testing.T) {
	b := NewBroadcaster(1)
	sub := b.Subscribe()

	b.Publish(domain.StandingsUpdateEvent{TournamentID: 1})
	b.Publish(domain.StandingsUpdateEvent{TournamentID: 2}) // dropped, buffer full

	require.Len(t, sub, 1)
	event := <-sub
	assert.Equal(t, domain.TournamentID(1), event.TournamentID)
}

func TestBroadcaster_UnsubscribeClosesTheChannel(t *testing.T) {
	b := NewBroadcaster(1)
	sub := b.Subscribe()
	b.Unsubscribe(sub)

	_, ok := <-sub
	assert.False(t, ok, "an unsubscribed channel should be closed")
}
