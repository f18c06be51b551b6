package results

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawnengine/core/internal/domain"
)

func mustUUID() uuid.UUID { return uuid.New() }

func publishedRound(number int) *domain.Round {
	return &domain.Round{Number: number, Status: domain.RoundPublished}
}

func activePlayer(id domain.PlayerID) *domain.Player {
	return &domain.Player{ID: id, Status: domain.PlayerActive}
}

func TestValidate_RejectsUnknownToken(t *testing.T) {
	req := domain.RecordResultRequest{Result: domain.ResultToken("9-9")}
	game := &domain.Game{White: 1, Black: 2, Status: domain.GameOngoing}
	err := Validate(req, game, publishedRound(1), activePlayer(1), activePlayer(2))
	require.Error(t, err)
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestValidate_RejectsIncompatibleResultType(t *testing.T) {
	rt := domain.ResultTypeWhiteForfeit
	req := domain.RecordResultRequest{Result: domain.ResultWhiteWins, ResultType: &rt}
	game := &domain.Game{White: 1, Black: 2, Status: domain.GameOngoing}
	err := Validate(req, game, publishedRound(1), activePlayer(1), activePlayer(2))
	require.Error(t, err)
}

func TestValidate_RequiresPublishedRound(t *testing.T) {
	req := domain.RecordResultRequest{Result: domain.ResultWhiteWins}
	game := &domain.Game{White: 1, Black: 2, Status: domain.GameOngoing}
	round := &domain.Round{Number: 1, Status: domain.RoundPlanned}
	err := Validate(req, game, round, activePlayer(1), activePlayer(2))
	require.Error(t, err)
}

func TestValidate_IdenticalResubmissionIsANoOp(t *testing.T) {
	req := domain.RecordResultRequest{Result: domain.ResultWhiteWins}
	game := &domain.Game{White: 1, Black: 2, Status: domain.GameDecided, Result: domain.ResultWhiteWins}
	err := Validate(req, game, publishedRound(1), activePlayer(1), activePlayer(2))
	assert.NoError(t, err)
}

func TestValidate_ChangingADecidedResultRequiresAnActor(t *testing.T) {
	req := domain.RecordResultRequest{Result: domain.ResultBlackWins}
	game := &domain.Game{White: 1, Black: 2, Status: domain.GameDecided, Result: domain.ResultWhiteWins}
	err := Validate(req, game, publishedRound(1), activePlayer(1), activePlayer(2))
	require.Error(t, err)

	actor := mustUUID()
	req.Actor = &actor
	err = Validate(req, game, publishedRound(1), activePlayer(1), activePlayer(2))
	assert.NoError(t, err)
}

func TestValidate_RejectsSamePlayerOnBothSides(t *testing.T) {
	req := domain.RecordResultRequest{Result: domain.ResultWhiteWins}
	game := &domain.Game{White: 1, Black: 1, Status: domain.GameOngoing}
	err := Validate(req, game, publishedRound(1), activePlayer(1), activePlayer(1))
	require.Error(t, err)
}

func TestValidate_ForfeitTokenWithoutActorRequiresApproval(t *testing.T) {
	req := domain.RecordResultRequest{Result: domain.ResultWhiteWinForfeit}
	game := &domain.Game{White: 1, Black: 2, Status: domain.GameOngoing}
	err := Validate(req, game, publishedRound(1), activePlayer(1), activePlayer(2))
	require.Error(t, err, "a forfeit result with no actor cannot be recorded")

	actor := mustUUID()
	req.Actor = &actor
	err = Validate(req, game, publishedRound(1), activePlayer(1), activePlayer(2))
	assert.NoError(t, err)
}

func TestValidate_ByeGameSkipsParticipantSanity(t *testing.T) {
	req := domain.RecordResultRequest{Result: domain.ResultWhiteWins}
	game := &domain.Game{White: 1, Black: domain.VirtualByePlayerID, Status: domain.GameOngoing}
	err := Validate(req, game, publishedRound(1), nil, nil)
	assert.NoError(t, err)
}

func TestRequiresAudit_OnlyWhenCorrectingADecidedResult(t *testing.T) {
	game := &domain.Game{Status: domain.GameDecided, Result: domain.ResultWhiteWins}
	assert.True(t, RequiresAudit(domain.RecordResultRequest{Result: domain.ResultBlackWins}, game))
	assert.False(t, RequiresAudit(domain.RecordResultRequest{Result: domain.ResultWhiteWins}, game))

	ongoing := &domain.Game{Status: domain.GameOngoing, Result: domain.ResultOngoing}
	assert.False(t, RequiresAudit(domain.RecordResultRequest{Result: domain.ResultWhiteWins}, ongoing))
}
