package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawnengine/core/internal/domain"
)

// TestGeneratePairings_PairingNumberRandomIsWiredAndDeterministic checks
// that PairingNumberRandom actually draws from Config.rng() rather than
// being a dead seam: the same seed reshuffles boards identically across
// calls, and the resulting boards are still a 1..n numbering of exactly
// the same pairs the dialect produced.
func TestGeneratePairings_PairingNumberRandomIsWiredAndDeterministic(t *testing.T) {
	players := seededPlayers(8)

	natural, err := GeneratePairings(Input{
		Format:      domain.FormatRoundRobin,
		Players:     players,
		RoundNumber: 1,
		Config:      Config{RNGSeed: 1, PairingNumberMethod: domain.PairingNumberSequential},
	})
	require.NoError(t, err)
	naturalPairs := make(map[[2]domain.PlayerID]bool, len(natural))
	for _, p := range natural {
		naturalPairs[unorderedPair(p)] = true
	}

	shuffled, err := GeneratePairings(Input{
		Format:      domain.FormatRoundRobin,
		Players:     players,
		RoundNumber: 1,
		Config:      Config{RNGSeed: 1, PairingNumberMethod: domain.PairingNumberRandom},
	})
	require.NoError(t, err)

	again, err := GeneratePairings(Input{
		Format:      domain.FormatRoundRobin,
		Players:     players,
		RoundNumber: 1,
		Config:      Config{RNGSeed: 1, PairingNumberMethod: domain.PairingNumberRandom},
	})
	require.NoError(t, err)

	shuffledByBoard := make(map[int][2]domain.PlayerID, len(shuffled))
	seenBoards := make(map[int]bool, len(shuffled))
	for _, p := range shuffled {
		assert.True(t, naturalPairs[unorderedPair(p)], "shuffling must not change which players are paired")
		assert.False(t, seenBoards[p.Board], "board numbers must stay a 1..n bijection after shuffling")
		seenBoards[p.Board] = true
		shuffledByBoard[p.Board] = unorderedPair(p)
	}

	againByBoard := make(map[int][2]domain.PlayerID, len(again))
	for _, p := range again {
		againByBoard[p.Board] = unorderedPair(p)
	}
	assert.Equal(t, shuffledByBoard, againByBoard, "the same RNG seed must reshuffle boards identically across calls")
}

// TestGeneratePairings_KnockoutBoardsNeverReordered checks that knockout
// boards are exempt from PairingNumberRandom, since advanceKnockoutRound
// relies on adjacent board numbers to find bracket siblings.
func TestGeneratePairings_KnockoutBoardsNeverReordered(t *testing.T) {
	players := seededPlayers(8)
	for i, p := range players {
		rating := 2500 - i*10
		p.Rating = &rating
	}

	natural, err := GeneratePairings(Input{
		Format:      domain.FormatKnockout,
		Players:     players,
		RoundNumber: 1,
		Config:      Config{RNGSeed: 1, PairingNumberMethod: domain.PairingNumberRandom},
	})
	require.NoError(t, err)

	for _, p := range natural {
		assert.True(t, p.Board >= 1 && p.Board <= len(natural))
	}
	want := map[int][2]domain.PlayerID{1: {1, 8}, 2: {4, 5}, 3: {2, 7}, 4: {3, 6}}
	for _, p := range natural {
		assert.Equal(t, want[p.Board], unorderedPair(p), "knockout seeding must stay in its natural order regardless of PairingNumberMethod")
	}
}
