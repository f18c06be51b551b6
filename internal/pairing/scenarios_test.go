package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawnengine/core/internal/domain"
)

func intPtr(v int) *int { return &v }

// unorderedPair returns the two player ids of a pairing regardless of
// color, for comparison against a literal expected schedule.
func unorderedPair(p domain.Pairing) [2]domain.PlayerID {
	if p.Black == nil {
		return [2]domain.PlayerID{p.White, domain.VirtualByePlayerID}
	}
	if p.White < *p.Black {
		return [2]domain.PlayerID{p.White, *p.Black}
	}
	return [2]domain.PlayerID{*p.Black, p.White}
}

// TestScenario_FourPlayerRoundRobinThreeRounds is spec.md §8 scenario 1:
// Players A,B,C,D (seeds 1-4). Round 1: A-D, B-C; Round 2: A-C, D-B;
// Round 3: A-B, C-D.
func TestScenario_FourPlayerRoundRobinThreeRounds(t *testing.T) {
	a, b, c, d := domain.PlayerID(1), domain.PlayerID(2), domain.PlayerID(3), domain.PlayerID(4)
	players := []*domain.Player{
		{ID: a, Seed: 1, Status: domain.PlayerActive},
		{ID: b, Seed: 2, Status: domain.PlayerActive},
		{ID: c, Seed: 3, Status: domain.PlayerActive},
		{ID: d, Seed: 4, Status: domain.PlayerActive},
	}
	expected := map[int][][2]domain.PlayerID{
		1: {{a, d}, {b, c}},
		2: {{a, c}, {b, d}},
		3: {{a, b}, {c, d}},
	}

	for round := 1; round <= 3; round++ {
		pairings, err := GeneratePairings(Input{
			Format:      domain.FormatRoundRobin,
			Players:     players,
			RoundNumber: round,
			Config:      DefaultConfig(),
		})
		require.NoError(t, err)
		require.Len(t, pairings, 2)

		got := make(map[[2]domain.PlayerID]bool)
		for _, p := range pairings {
			got[unorderedPair(p)] = true
		}
		for _, want := range expected[round] {
			assert.True(t, got[want], "round %d missing pair %v", round, want)
		}
	}
}

// TestScenario_EightPlayerKnockoutSeeding is spec.md §8 scenario 2: seeds
// 1-8 produce first-round boards (1v8), (4v5), (3v6), (2v7).
func TestScenario_EightPlayerKnockoutSeeding(t *testing.T) {
	players := make([]*domain.Player, 8)
	for i := 0; i < 8; i++ {
		players[i] = &domain.Player{ID: domain.PlayerID(i + 1), Seed: i + 1, Status: domain.PlayerActive, Rating: intPtr(2500 - i*10)}
	}

	pairings, err := GeneratePairings(Input{
		Format:      domain.FormatKnockout,
		Players:     players,
		RoundNumber: 1,
		Config:      DefaultConfig(),
	})
	require.NoError(t, err)
	require.Len(t, pairings, 4)

	want := map[[2]domain.PlayerID]bool{
		{1, 8}: true,
		{4, 5}: true,
		{3, 6}: true,
		{2, 7}: true,
	}
	for _, p := range pairings {
		assert.True(t, want[unorderedPair(p)], "unexpected board %v", unorderedPair(p))
	}
}

// TestScenario_SwissRound2AfterUpsets is spec.md §8 scenario 3: 6 rated
// players, round 1 pairs the field by rating (1v4, 2v5, 3v6); after the
// lower boards upset their favorites, round 2's top board pairs two
// players who both scored 1.0 in round 1 and have not yet met, and no
// round 1 pair repeats (colors are not checked here).
func TestScenario_SwissRound2AfterUpsets(t *testing.T) {
	players := make([]*domain.Player, 6)
	ratings := []int{2000, 1900, 1800, 1700, 1600, 1500}
	for i := 0; i < 6; i++ {
		players[i] = &domain.Player{ID: domain.PlayerID(i + 1), Seed: i + 1, Status: domain.PlayerActive, Rating: intPtr(ratings[i])}
	}

	round1, err := GeneratePairings(Input{
		Format:      domain.FormatSwiss,
		Players:     players,
		RoundNumber: 1,
		Config:      DefaultConfig(),
	})
	require.NoError(t, err)

	want1 := map[[2]domain.PlayerID]bool{{1, 4}: true, {2, 5}: true, {3, 6}: true}
	for _, p := range round1 {
		assert.True(t, want1[unorderedPair(p)], "round 1 board %v not in the expected rating-order pairing", unorderedPair(p))
	}

	// Player 4 beats 1, player 5 beats 2, player 3 beats 6 (the "lower
	// rated wins two of three" upset the scenario describes).
	history := make([]*domain.Game, 0, 3)
	results := make(map[domain.PlayerID]*domain.PlayerResult)
	for _, p := range players {
		results[p.ID] = &domain.PlayerResult{PlayerID: p.ID}
	}
	record := func(board int, white, black domain.PlayerID, result domain.ResultToken) {
		game := &domain.Game{ID: domain.GameID(board), Round: 1, Board: board, White: white, Black: black, Status: domain.GameDecided, Result: result}
		history = append(history, game)
		wp, bp := result.Points()
		results[white].Points += wp
		results[black].Points += bp
		results[white].Opponents = append(results[white].Opponents, black)
		results[black].Opponents = append(results[black].Opponents, white)
	}
	for _, p := range round1 {
		switch unorderedPair(p) {
		case [2]domain.PlayerID{1, 4}:
			record(p.Board, 1, 4, domain.ResultBlackWins)
		case [2]domain.PlayerID{2, 5}:
			record(p.Board, 2, 5, domain.ResultBlackWins)
		case [2]domain.PlayerID{3, 6}:
			record(p.Board, 3, 6, domain.ResultWhiteWins)
		}
	}

	round2, err := GeneratePairings(Input{
		Format:        domain.FormatSwiss,
		Players:       players,
		PlayerResults: results,
		History:       history,
		RoundNumber:   2,
		Config:        DefaultConfig(),
	})
	require.NoError(t, err)

	topBoard := round2[0]
	leaders := map[domain.PlayerID]bool{3: true, 4: true, 5: true}
	assert.True(t, leaders[topBoard.White], "round 2 top board should seat one of the 1.0-scorers, got %v", topBoard)
	require.NotNil(t, topBoard.Black)
	assert.True(t, leaders[*topBoard.Black], "round 2 top board should seat two 1.0-scorers, got %v", topBoard)
	assert.NotEqual(t, topBoard.White, *topBoard.Black)

	for _, p := range round2 {
		assert.NotEqual(t, unorderedPair(p), [2]domain.PlayerID{1, 4}, "round 1 pairs may not repeat")
		assert.NotEqual(t, unorderedPair(p), [2]domain.PlayerID{2, 5}, "round 1 pairs may not repeat")
		assert.NotEqual(t, unorderedPair(p), [2]domain.PlayerID{3, 6}, "round 1 pairs may not repeat")
	}
}

// TestScenario_OddPlayerSwissByeGoesToWeakestUntriedPlayer is spec.md §8
// scenario 5: 5 players, round 1, nobody has had a bye yet -- the bye
// goes to the weakest player still eligible for one (selectByePlayer
// breaks the all-zero-points tie on lowest rating), and the remaining
// four are paired by the normal Swiss rules.
func TestScenario_OddPlayerSwissByeGoesToWeakestUntriedPlayer(t *testing.T) {
	players := make([]*domain.Player, 5)
	ratings := []int{2000, 1900, 1800, 1700, 1600}
	for i := 0; i < 5; i++ {
		players[i] = &domain.Player{ID: domain.PlayerID(i + 1), Seed: i + 1, Status: domain.PlayerActive, Rating: intPtr(ratings[i])}
	}

	pairings, err := GeneratePairings(Input{
		Format:      domain.FormatSwiss,
		Players:     players,
		RoundNumber: 1,
		Config:      DefaultConfig(),
	})
	require.NoError(t, err)
	require.Len(t, pairings, 3, "4 paired players plus one bye")

	var byes []domain.Pairing
	for _, p := range pairings {
		if p.IsBye() {
			byes = append(byes, p)
		}
	}
	require.Len(t, byes, 1)
	assert.Equal(t, domain.PlayerID(5), byes[0].White, "the weakest player (lowest rating, seed 5) receives the bye")
}
