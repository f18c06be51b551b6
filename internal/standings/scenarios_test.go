package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pawnengine/core/internal/domain"
)

// TestScenario_BuchholzRanksAAboveB is spec.md §8 scenario 4: A and B are
// tied on 4.0/5; A's opponents finished on 3,3,2,2,2 (sum 12), B's on
// 3,2,2,2,2 (sum 11). Plain Buchholz ranks A above B; Buchholz-Cut-1
// drops each player's weakest opponent score (A: 10, B: 9) and A still
// leads.
func TestScenario_BuchholzRanksAAboveB(t *testing.T) {
	const a, b domain.PlayerID = 1, 2
	oppScoresA := []domain.PlayerID{101, 102, 103, 104, 105}
	oppScoresB := []domain.PlayerID{201, 202, 203, 204, 205}

	ctx := tiebreakContext{
		Results: map[domain.PlayerID]*domain.PlayerResult{
			a:   {PlayerID: a, Points: 4.0, Opponents: oppScoresA},
			b:   {PlayerID: b, Points: 4.0, Opponents: oppScoresB},
			101: {Points: 3}, 102: {Points: 3}, 103: {Points: 2}, 104: {Points: 2}, 105: {Points: 2},
			201: {Points: 3}, 202: {Points: 2}, 203: {Points: 2}, 204: {Points: 2}, 205: {Points: 2},
		},
	}

	plain := buchholz(0)
	assert.Equal(t, 12.0, plain(a, ctx))
	assert.Equal(t, 11.0, plain(b, ctx))
	assert.Greater(t, plain(a, ctx), plain(b, ctx))

	cut1 := buchholz(1)
	assert.Equal(t, 10.0, cut1(a, ctx))
	assert.Equal(t, 9.0, cut1(b, ctx))
	assert.Greater(t, cut1(a, ctx), cut1(b, ctx))
}
