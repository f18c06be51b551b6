package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawnengine/core/internal/domain"
	"github.com/pawnengine/core/internal/repository/memory"
)

// newSwissTournament seeds a four-player Swiss tournament with no games
// played yet, returning the coordinator built on top of it.
func newSwissTournament(t *testing.T) (*Coordinator, domain.TournamentID) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	ctx := context.Background()

	tournament := &domain.Tournament{
		Name:           "Club Championship",
		Format:         domain.FormatSwiss,
		TotalRounds:    3,
		Status:         domain.TournamentUpcoming,
		TiebreakConfig: domain.DefaultTiebreakConfig(),
	}
	require.NoError(t, repos.Tournaments.Create(ctx, tournament))

	for i := 1; i <= 4; i++ {
		require.NoError(t, repos.Players.Create(ctx, &domain.Player{
			TournamentID: tournament.ID,
			Name:         "Player",
			Status:       domain.PlayerActive,
			Seed:         i,
		}))
	}

	coord := New(repos, time.Minute)
	return coord, tournament.ID
}

func TestCoordinator_CreateAndPublishRound(t *testing.T) {
	coord, tournamentID := newSwissTournament(t)
	ctx := context.Background()

	round, err := coord.CreateNextRound(ctx, tournamentID)
	require.NoError(t, err)
	assert.Equal(t, 1, round.Number)
	assert.Equal(t, domain.RoundPlanned, round.Status)

	published, games, err := coord.PublishRound(ctx, tournamentID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoundPublished, published.Status)
	assert.Len(t, games, 2, "four active players pair into two boards")

	tournament, err := coord.repos.Tournaments.Get(ctx, tournamentID)
	require.NoError(t, err)
	assert.Equal(t, domain.TournamentInProgress, tournament.Status, "publishing the first round starts the tournament")
}

func TestCoordinator_PublishRoundTwiceIsRejected(t *testing.T) {
	coord, tournamentID := newSwissTournament(t)
	ctx := context.Background()

	_, err := coord.CreateNextRound(ctx, tournamentID)
	require.NoError(t, err)
	_, _, err = coord.PublishRound(ctx, tournamentID, 1)
	require.NoError(t, err)

	_, _, err = coord.PublishRound(ctx, tournamentID, 1)
	require.Error(t, err, "a round already published cannot be published again")
}

func TestCoordinator_RecordResultThenStandingsReflectIt(t *testing.T) {
	coord, tournamentID := newSwissTournament(t)
	ctx := context.Background()

	_, err := coord.CreateNextRound(ctx, tournamentID)
	require.NoError(t, err)
	_, games, err := coord.PublishRound(ctx, tournamentID, 1)
	require.NoError(t, err)
	require.NotEmpty(t, games)

	game := games[0]
	updated, err := coord.RecordResult(ctx, tournamentID, domain.RecordResultRequest{
		GameID: game.ID,
		Result: domain.ResultWhiteWins,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GameDecided, updated.Status)

	result, err := coord.Standings().Get(ctx, tournamentID)
	require.NoError(t, err)

	var winnerPoints float64
	for _, s := range result.Standings {
		if s.PlayerID == game.White {
			winnerPoints = s.Points
		}
	}
	assert.Equal(t, 1.0, winnerPoints)
}

func TestCoordinator_CompleteRoundRejectsWhileGamesUndecided(t *testing.T) {
	coord, tournamentID := newSwissTournament(t)
	ctx := context.Background()

	_, err := coord.CreateNextRound(ctx, tournamentID)
	require.NoError(t, err)
	_, _, err = coord.PublishRound(ctx, tournamentID, 1)
	require.NoError(t, err)

	_, err = coord.CompleteRound(ctx, tournamentID, 1)
	require.Error(t, err, "games are still ongoing")
}

func TestCoordinator_CompleteRoundAdvancesTournamentToFinished(t *testing.T) {
	coord, tournamentID := newSwissTournament(t)
	ctx := context.Background()

	// Drive all three rounds of the Swiss event to completion.
	for round := 1; round <= 3; round++ {
		_, err := coord.CreateNextRound(ctx, tournamentID)
		require.NoError(t, err)
		_, games, err := coord.PublishRound(ctx, tournamentID, round)
		require.NoError(t, err)
		for _, g := range games {
			_, err := coord.RecordResult(ctx, tournamentID, domain.RecordResultRequest{GameID: g.ID, Result: domain.ResultDraw})
			require.NoError(t, err)
		}
		_, err = coord.CompleteRound(ctx, tournamentID, round)
		require.NoError(t, err)
	}

	tournament, err := coord.repos.Tournaments.Get(ctx, tournamentID)
	require.NoError(t, err)
	assert.Equal(t, domain.TournamentFinished, tournament.Status)
	assert.Equal(t, 3, tournament.RoundsPlayed)
}

func TestCoordinator_WithdrawPlayerExcludesThemFromFuturePairings(t *testing.T) {
	coord, tournamentID := newSwissTournament(t)
	ctx := context.Background()

	players, err := coord.repos.Players.ListByTournament(ctx, tournamentID)
	require.NoError(t, err)
	target := players[0].ID

	_, err = coord.WithdrawPlayer(ctx, tournamentID, target, 1)
	require.NoError(t, err)

	_, err = coord.CreateNextRound(ctx, tournamentID)
	require.NoError(t, err)
	_, games, err := coord.PublishRound(ctx, tournamentID, 1)
	require.NoError(t, err)

	for _, g := range games {
		assert.NotEqual(t, target, g.White)
		assert.NotEqual(t, target, g.Black)
	}
}

// TestScenario_ForfeitRequiresApprovalBeforeStandingsChange is spec.md §8
// scenario 6: recording "1-0F" with no actor fails; with an actor the
// game parks pending approval and standings do not move until a distinct
// actor approves it.
func TestScenario_ForfeitRequiresApprovalBeforeStandingsChange(t *testing.T) {
	coord, tournamentID := newSwissTournament(t)
	ctx := context.Background()

	_, err := coord.CreateNextRound(ctx, tournamentID)
	require.NoError(t, err)
	_, games, err := coord.PublishRound(ctx, tournamentID, 1)
	require.NoError(t, err)
	require.NotEmpty(t, games)
	game := games[0]

	_, err = coord.RecordResult(ctx, tournamentID, domain.RecordResultRequest{
		GameID: game.ID,
		Result: domain.ResultWhiteWinForfeit,
	})
	require.Error(t, err, "a forfeit with no actor must be rejected")

	recorder := uuid.New()
	pending, err := coord.RecordResult(ctx, tournamentID, domain.RecordResultRequest{
		GameID: game.ID,
		Result: domain.ResultWhiteWinForfeit,
		Actor:  &recorder,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GamePendingApproval, pending.Status)

	before, err := coord.Standings().Get(ctx, tournamentID)
	require.NoError(t, err)
	for _, s := range before.Standings {
		assert.Zero(t, s.Points, "standings must not reflect a pending-approval result")
	}

	approver := uuid.New()
	decided, err := coord.ApproveResult(ctx, tournamentID, game.ID, approver)
	require.NoError(t, err)
	assert.Equal(t, domain.GameDecided, decided.Status)

	after, err := coord.Standings().Get(ctx, tournamentID)
	require.NoError(t, err)
	var winnerPoints float64
	for _, s := range after.Standings {
		if s.PlayerID == game.White {
			winnerPoints = s.Points
		}
	}
	assert.Equal(t, 1.0, winnerPoints, "the forfeit winner is awarded once the approval lands")
}
