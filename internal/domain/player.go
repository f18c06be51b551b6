package domain

import "time"

// Title is a closed-vocabulary chess title.
type Title string

// Title vocabulary.
const (
	TitleGM  Title = "GM"
	TitleIM  Title = "IM"
	TitleFM  Title = "FM"
	TitleCM  Title = "CM"
	TitleWGM Title = "WGM"
	TitleWIM Title = "WIM"
	TitleWFM Title = "WFM"
	TitleWCM Title = "WCM"
)

var validTitles = map[Title]bool{
	TitleGM: true, TitleIM: true, TitleFM: true, TitleCM: true,
	TitleWGM: true, TitleWIM: true, TitleWFM: true, TitleWCM: true,
}

// ValidTitle reports whether t is a recognised title.
func ValidTitle(t Title) bool { return validTitles[t] }

// PlayerStatus is the current state of a Player within a tournament.
type PlayerStatus string

// Player statuses.
const (
	PlayerActive       PlayerStatus = "active"
	PlayerWithdrawn    PlayerStatus = "withdrawn"
	PlayerByeRequested PlayerStatus = "bye_requested"
	PlayerLateEntry    PlayerStatus = "late_entry"
)

// Player is a tournament participant.
type Player struct {
	ID           PlayerID
	TournamentID TournamentID
	Name         string
	Rating       *int // 0..=4000 when present
	Title        *Title
	Status       PlayerStatus
	Seed         int

	// WithdrawnFromRound is the first round, inclusive, in which this
	// player must no longer be paired. Nil while Active.
	WithdrawnFromRound *int

	// LateEntryFromRound is the first round this player is eligible to
	// be paired into. Nil for players registered before round 1.
	LateEntryFromRound *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEligibleForRound reports whether the player may be paired in round r,
// given their withdrawal/late-entry bounds.
func (p *Player) IsEligibleForRound(r int) bool {
	if p.Status == PlayerWithdrawn {
		if p.WithdrawnFromRound == nil || r >= *p.WithdrawnFromRound {
			return false
		}
	}
	if p.LateEntryFromRound != nil && r < *p.LateEntryFromRound {
		return false
	}
	return true
}

// PlayerRequest is the input to register or update a Player.
type PlayerRequest struct {
	Name   string
	Rating *int
	Title  *Title
	Seed   *int
}
