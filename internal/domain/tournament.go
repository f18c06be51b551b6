package domain

import "time"

// TournamentFormat is the pairing dialect a tournament runs under.
type TournamentFormat string

// Tournament formats.
const (
	FormatSwiss         TournamentFormat = "Swiss"
	FormatRoundRobin    TournamentFormat = "RoundRobin"
	FormatKnockout      TournamentFormat = "Knockout"
	FormatScheveningen  TournamentFormat = "Scheveningen"
	FormatManual        TournamentFormat = "Manual"
)

// TournamentStatus is the lifecycle state of a Tournament.
type TournamentStatus string

// Tournament statuses.
const (
	TournamentUpcoming   TournamentStatus = "Upcoming"
	TournamentInProgress TournamentStatus = "InProgress"
	TournamentFinished   TournamentStatus = "Finished"
	TournamentCancelled  TournamentStatus = "Cancelled"
)

// SeedingMethod controls how initial seed numbers are assigned.
type SeedingMethod string

// Seeding methods.
const (
	SeedingRating        SeedingMethod = "rating"
	SeedingManual         SeedingMethod = "manual"
	SeedingRandom          SeedingMethod = "random"
	SeedingCategoryBased SeedingMethod = "category_based"
)

// PairingNumberMethod controls how board numbers are assigned.
type PairingNumberMethod string

// Pairing-number methods.
const (
	PairingNumberSequential PairingNumberMethod = "sequential"
	PairingNumberRandom     PairingNumberMethod = "random"
	PairingNumberBySeed     PairingNumberMethod = "by_seed"
)

// Tournament is the root aggregate for a competition.
type Tournament struct {
	ID           TournamentID
	Name         string
	Format       TournamentFormat
	TotalRounds  int
	RoundsPlayed int
	Status       TournamentStatus

	SeedingMethod       SeedingMethod
	PairingNumberMethod PairingNumberMethod
	RNGSeed             int64

	TiebreakConfig TiebreakConfig

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTournamentRequest is the input to create a Tournament.
type CreateTournamentRequest struct {
	Name           string
	Format         TournamentFormat
	TotalRounds    int
	SeedingMethod  SeedingMethod
	RNGSeed        int64
	TiebreakConfig TiebreakConfig
}

// UpdateTournamentRequest is a partial update of a Tournament's settings.
type UpdateTournamentRequest struct {
	Name           *string
	TotalRounds    *int
	TiebreakConfig *TiebreakConfig
}

// TiebreakConfig enumerates the ordered tiebreak kinds used when ranking
// standings, plus auxiliary flags the calculator needs.
type TiebreakConfig struct {
	Tiebreaks               []TiebreakKind
	UseFIDEDefaults          bool
	ByeOpponentContribution float64 // points credited for a bye's virtual opponent in Buchholz-family sums and Sonneborn-Berger; spec default 0
}

// DefaultTiebreakConfig returns the FIDE-style default ordering used when
// a tournament does not configure its own.
func DefaultTiebreakConfig() TiebreakConfig {
	return TiebreakConfig{
		Tiebreaks: []TiebreakKind{
			TiebreakBuchholzCut1,
			TiebreakBuchholz,
			TiebreakSonnebornBerger,
			TiebreakNumberOfWins,
		},
		UseFIDEDefaults:         true,
		ByeOpponentContribution: 0,
	}
}
