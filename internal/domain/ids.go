package domain

// TournamentID identifies a Tournament.
type TournamentID int64

// PlayerID identifies a Player. VirtualByePlayerID is a reserved,
// negative id used internally by the pairing engine when round-robin or
// Swiss scheduling needs a placeholder opponent; it never appears in a
// repository-backed player list.
type PlayerID int64

// VirtualByePlayerID is the placeholder opponent id for bye pairings.
const VirtualByePlayerID PlayerID = -1

// IsVirtual reports whether id is the internal bye placeholder.
func (id PlayerID) IsVirtual() bool {
	return id == VirtualByePlayerID
}

// RoundID identifies a Round.
type RoundID int64

// GameID identifies a Game.
type GameID int64
