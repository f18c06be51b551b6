package domain

import "time"

// TiebreakKind names a tiebreak computation the standings calculator can
// dispatch to, per spec.md §4.3 and §9's "registry (tag -> function)".
type TiebreakKind string

// Supported tiebreak kinds.
const (
	TiebreakBuchholz                 TiebreakKind = "buchholz"
	TiebreakBuchholzCut1             TiebreakKind = "buchholz_cut1"
	TiebreakBuchholzCut2             TiebreakKind = "buchholz_cut2"
	TiebreakMedianBuchholz           TiebreakKind = "median_buchholz"
	TiebreakSonnebornBerger          TiebreakKind = "sonneborn_berger"
	TiebreakProgressive              TiebreakKind = "progressive"
	TiebreakDirectEncounter          TiebreakKind = "direct_encounter"
	TiebreakAverageRatingOfOpponents TiebreakKind = "average_rating_of_opponents"
	TiebreakPerformanceRating        TiebreakKind = "performance_rating"
	TiebreakNumberOfWins             TiebreakKind = "number_of_wins"
	TiebreakGamesWithBlack           TiebreakKind = "games_with_black"
	TiebreakWinsWithBlack            TiebreakKind = "wins_with_black"
	TiebreakKoya                     TiebreakKind = "koya"
	TiebreakAROCCut1                 TiebreakKind = "aroc_cut1"
)

// PlayerResult is the derived per-(tournament, player) aggregate over
// finalised games, as of some round cutoff (spec.md §3).
type PlayerResult struct {
	PlayerID    PlayerID
	Points      float64
	GamesPlayed int
	Wins        int
	Draws       int
	Losses      int
	WhiteGames  int
	BlackGames  int
	Opponents   []PlayerID // one entry per game played, byes excluded
	HadBye      bool
	// RunningTotals[i] is the player's cumulative score after round i+1,
	// used by the Progressive/Cumulative tiebreak.
	RunningTotals []float64
}

// TiebreakVector is the ordered list of computed tiebreak scores for one
// player; Values[i] is the score for Kinds[i], the tiebreak kinds
// actually applied (the FIDE defaults when UseFIDEDefaults is set).
type TiebreakVector struct {
	Kinds  []TiebreakKind
	Values []float64
}

// Standing is the derived per-(tournament, player, moment) ranking row.
type Standing struct {
	Rank        int
	PlayerID    PlayerID
	Points      float64
	Tiebreaks   TiebreakVector
	Performance *float64
	Wins        int
	Draws       int
	Losses      int
	Seed        int
}

// StandingsResult is the output of C3, memoised by C4.
type StandingsResult struct {
	TournamentID TournamentID
	AsOfRound    int
	Standings    []Standing
	Config       TiebreakConfig
	ComputedAt   time.Time
	Duration     time.Duration
}

// WebSocketEventType names the kind of change that produced a
// StandingsUpdateEvent (spec.md §4.4).
type WebSocketEventType string

// Standings update event kinds.
const (
	EventGameResultUpdated WebSocketEventType = "GameResultUpdated"
	EventPlayerUpdated     WebSocketEventType = "PlayerUpdated"
	EventRoundCompleted    WebSocketEventType = "RoundCompleted"
	EventManual            WebSocketEventType = "Manual"
)

// StandingsUpdateEvent is broadcast by C4 on every force-recompute
// (spec.md §6's event schema).
type StandingsUpdateEvent struct {
	TournamentID    TournamentID
	EventType       WebSocketEventType
	AffectedPlayers []PlayerID
	Timestamp       time.Time
	Standings       StandingsResult
}
