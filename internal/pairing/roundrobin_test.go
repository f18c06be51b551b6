package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawnengine/core/internal/domain"
)

func seededPlayers(n int) []*domain.Player {
	out := make([]*domain.Player, n)
	for i := 0; i < n; i++ {
		out[i] = &domain.Player{ID: domain.PlayerID(i + 1), Seed: i + 1, Status: domain.PlayerActive}
	}
	return out
}

// TestGenerateRoundRobin_FullCoverage checks that across every scheduled
// round, each pair of real players meets exactly once.
func TestGenerateRoundRobin_FullCoverage(t *testing.T) {
	for _, n := range []int{4, 5, 6, 7} {
		players := seededPlayers(n)
		totalRounds := n - 1
		if n%2 != 0 {
			totalRounds = n
		}

		met := make(map[[2]domain.PlayerID]int)
		for round := 1; round <= totalRounds; round++ {
			pairings, err := GeneratePairings(Input{
				Format:      domain.FormatRoundRobin,
				Players:     players,
				RoundNumber: round,
				Config:      DefaultConfig(),
			})
			require.NoError(t, err, "n=%d round=%d", n, round)

			seenThisRound := make(map[domain.PlayerID]bool)
			for _, p := range pairings {
				seenThisRound[p.White] = true
				if !p.IsBye() {
					seenThisRound[*p.Black] = true
					key := [2]domain.PlayerID{p.White, *p.Black}
					if key[0] > key[1] {
						key[0], key[1] = key[1], key[0]
					}
					met[key]++
				}
			}
			assert.Len(t, seenThisRound, n, "n=%d round=%d: every player should appear once", n, round)
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				key := [2]domain.PlayerID{domain.PlayerID(i + 1), domain.PlayerID(j + 1)}
				assert.Equal(t, 1, met[key], "n=%d: players %d and %d should meet exactly once", n, i+1, j+1)
			}
		}
	}
}

func TestGenerateRoundRobin_RoundOutOfRange(t *testing.T) {
	players := seededPlayers(4)
	_, err := GeneratePairings(Input{
		Format:      domain.FormatRoundRobin,
		Players:     players,
		RoundNumber: 10,
		Config:      DefaultConfig(),
	})
	require.Error(t, err)
	var invalid *domain.InvalidRoundError
	assert.ErrorAs(t, err, &invalid)
}
