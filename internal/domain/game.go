package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus is the lifecycle state of a Game's result.
type GameStatus string

// Game statuses.
const (
	GameOngoing         GameStatus = "ongoing"
	GamePendingApproval GameStatus = "pending_approval"
	GameDecided         GameStatus = "decided"
)

// Game is a single board in a Round. Black may be VirtualByePlayerID, in
// which case the game is a bye for White and has no Black-side outcome.
type Game struct {
	ID           GameID
	TournamentID TournamentID
	RoundID      RoundID
	Round        int // denormalized round number, for convenient history scans
	Board        int

	White PlayerID
	Black PlayerID // VirtualByePlayerID marks a bye

	Result     ResultToken
	ResultType *ResultType
	Status     GameStatus

	RecordedBy *uuid.UUID
	ApprovedBy *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBye reports whether this game is a bye (no real Black-side opponent).
func (g *Game) IsBye() bool { return g.Black.IsVirtual() }

// RecordResultRequest is the input to C2's record_result operation.
type RecordResultRequest struct {
	GameID     GameID
	Result     ResultToken
	ResultType *ResultType
	Actor      *uuid.UUID
}

// AuditEntry records a correction to an already-decided game's result
// (spec.md §4.2 step 3).
type AuditEntry struct {
	ID     uuid.UUID
	GameID GameID
	Actor  uuid.UUID
	Before ResultToken
	After  ResultToken
	At     time.Time
}
