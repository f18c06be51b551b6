package standings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawnengine/core/internal/domain"
)

func samplePlayers() []*domain.Player {
	r := func(v int) *int { return &v }
	return []*domain.Player{
		{ID: 1, Seed: 1, Rating: r(2200), Status: domain.PlayerActive},
		{ID: 2, Seed: 2, Rating: r(2100), Status: domain.PlayerActive},
		{ID: 3, Seed: 3, Rating: r(2000), Status: domain.PlayerActive},
		{ID: 4, Seed: 4, Rating: r(1900), Status: domain.PlayerActive},
	}
}

func decidedGame(white, black domain.PlayerID, round, board int, result domain.ResultToken) *domain.Game {
	return &domain.Game{
		White: white, Black: black, Round: round, Board: board,
		Status: domain.GameDecided, Result: result,
	}
}

// TestCompute_PointsSumInvariant checks that every decisive, non-bye
// round contributes exactly one point split across the two boards
// (spec.md §4.3's scoring table always sums to 1 for a real game).
func TestCompute_PointsSumInvariant(t *testing.T) {
	players := samplePlayers()
	games := []*domain.Game{
		decidedGame(1, 2, 1, 1, domain.ResultWhiteWins),
		decidedGame(3, 4, 1, 2, domain.ResultDraw),
		decidedGame(1, 3, 2, 1, domain.ResultBlackWins),
		decidedGame(2, 4, 2, 2, domain.ResultDraw),
	}

	result, err := Compute(context.Background(), 1, players, games, 2, domain.DefaultTiebreakConfig())
	require.NoError(t, err)

	var total float64
	for _, s := range result.Standings {
		total += s.Points
	}
	assert.Equal(t, float64(len(games)), total, "every decided non-bye game contributes exactly 1 point total")
}

// TestCompute_TotalOrdering checks standings are sorted by points
// descending and that tied players share a rank.
func TestCompute_TotalOrdering(t *testing.T) {
	players := samplePlayers()
	games := []*domain.Game{
		decidedGame(1, 2, 1, 1, domain.ResultWhiteWins),
		decidedGame(3, 4, 1, 2, domain.ResultWhiteWins),
	}

	result, err := Compute(context.Background(), 1, players, games, 1, domain.DefaultTiebreakConfig())
	require.NoError(t, err)
	require.Len(t, result.Standings, 4)

	for i := 1; i < len(result.Standings); i++ {
		assert.GreaterOrEqual(t, result.Standings[i-1].Points, result.Standings[i].Points)
	}
	// Players 1 and 3 both won their round-1 game with 1 point; they
	// should share rank 1.
	byPlayer := make(map[domain.PlayerID]domain.Standing)
	for _, s := range result.Standings {
		byPlayer[s.PlayerID] = s
	}
	assert.Equal(t, 1, byPlayer[1].Rank)
	assert.Equal(t, 1, byPlayer[3].Rank)
}

// TestCompute_IsPureOverItsArguments checks calling Compute twice with
// identical arguments (spec.md §4.3's "a pure function") returns
// identical standings (ignoring the wall-clock timing fields).
func TestCompute_IsPureOverItsArguments(t *testing.T) {
	players := samplePlayers()
	games := []*domain.Game{
		decidedGame(1, 2, 1, 1, domain.ResultWhiteWins),
		decidedGame(3, 4, 1, 2, domain.ResultDraw),
	}

	first, err := Compute(context.Background(), 1, players, games, 1, domain.DefaultTiebreakConfig())
	require.NoError(t, err)
	second, err := Compute(context.Background(), 1, players, games, 1, domain.DefaultTiebreakConfig())
	require.NoError(t, err)

	assert.Equal(t, first.Standings, second.Standings)
}

func TestCompute_CancellationPropagates(t *testing.T) {
	players := samplePlayers()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compute(ctx, 1, players, nil, 1, domain.DefaultTiebreakConfig())
	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestAggregate_ByeAwardsPointsWithoutAGame(t *testing.T) {
	players := samplePlayers()
	games := []*domain.Game{
		decidedGame(1, domain.VirtualByePlayerID, 1, 1, domain.ResultWhiteWins),
	}
	results := Aggregate(players, games, 1)
	require.Contains(t, results, domain.PlayerID(1))
	assert.Equal(t, 1.0, results[1].Points)
	assert.Equal(t, 0, results[1].GamesPlayed, "a bye is not a counted game")
	assert.True(t, results[1].HadBye)
}

func TestAggregate_DoubleForfeitAwardsNoPoints(t *testing.T) {
	players := samplePlayers()
	games := []*domain.Game{
		decidedGame(1, 2, 1, 1, domain.ResultDoubleForfeit),
	}
	results := Aggregate(players, games, 1)
	assert.Equal(t, 0.0, results[1].Points)
	assert.Equal(t, 0.0, results[2].Points)
}

// TestCompute_UseFIDEDefaultsOverridesACustomTiebreakList checks that
// UseFIDEDefaults forces the FIDE-recommended ordering even when a
// caller also supplied an explicit (and here, deliberately different)
// Tiebreaks list.
func TestCompute_UseFIDEDefaultsOverridesACustomTiebreakList(t *testing.T) {
	players := samplePlayers()
	games := []*domain.Game{
		decidedGame(1, 2, 1, 1, domain.ResultWhiteWins),
		decidedGame(3, 4, 1, 2, domain.ResultDraw),
	}
	custom := domain.TiebreakConfig{
		Tiebreaks:       []domain.TiebreakKind{domain.TiebreakKoya},
		UseFIDEDefaults: true,
	}

	result, err := Compute(context.Background(), 1, players, games, 1, custom)
	require.NoError(t, err)
	require.NotEmpty(t, result.Standings)
	assert.Equal(t, domain.DefaultTiebreakConfig().Tiebreaks, result.Standings[0].Tiebreaks.Kinds,
		"UseFIDEDefaults must override the custom Tiebreaks list with the FIDE-recommended ordering")
}
