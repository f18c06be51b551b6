package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawnengine/core/internal/domain"
)

func countingComputer(calls *int32) Computer {
	return func(ctx context.Context, id domain.TournamentID) (*domain.StandingsResult, error) {
		atomic.AddInt32(calls, 1)
		return &domain.StandingsResult{TournamentID: id, ComputedAt: time.Now()}, nil
	}
}

func TestCache_GetServesFreshEntryWithoutRecomputing(t *testing.T) {
	var calls int32
	c := New(time.Minute, countingComputer(&calls))

	_, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "a second Get within the TTL should not recompute")
}

func TestCache_GetRecomputesAfterTTLExpires(t *testing.T) {
	var calls int32
	c := New(time.Millisecond, countingComputer(&calls))

	_, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = c.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestCache_ForceRecomputeAlwaysRecomputesAndBroadcasts(t *testing.T) {
	var calls int32
	c := New(time.Hour, countingComputer(&calls))
	sub := c.Subscribe()

	_, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	_, err = c.ForceRecompute(context.Background(), 1, domain.EventManual, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	select {
	case event := <-sub:
		assert.Equal(t, domain.EventManual, event.EventType)
	case <-time.After(time.Second):
		t.Fatal("expected a broadcast event after ForceRecompute")
	}
}

func TestCache_FailedRecomputeNeverEvictsThePreviousValue(t *testing.T) {
	first := true
	c := New(time.Millisecond, func(ctx context.Context, id domain.TournamentID) (*domain.StandingsResult, error) {
		if first {
			first = false
			return &domain.StandingsResult{TournamentID: id, ComputedAt: time.Now(), AsOfRound: 1}, nil
		}
		return nil, assertErr
	})

	result, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.AsOfRound)

	time.Sleep(5 * time.Millisecond)
	_, err = c.Get(context.Background(), 1)
	require.Error(t, err, "the injected computer now fails")

	c.mu.RLock()
	cached, ok := c.entries[1]
	c.mu.RUnlock()
	require.True(t, ok, "a failed recompute must not delete the prior entry")
	assert.Equal(t, 1, cached.result.AsOfRound)
}

func TestCache_InvalidateDropsTheEntry(t *testing.T) {
	var calls int32
	c := New(time.Hour, countingComputer(&calls))
	_, err := c.Get(context.Background(), 1)
	require.NoError(t, err)

	c.Invalidate(1)
	_, err = c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

var assertErr = &testComputeError{}

type testComputeError struct{}

func (e *testComputeError) Error() string { return "compute failed" }
