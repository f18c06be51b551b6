// Package pairing implements C1, the pairing engine: generate_pairings
// dispatches to one of four dialects (Swiss, round-robin, knockout,
// Scheveningen) behind a single tagged Input struct, per spec.md §9
// "Polymorphism across formats".
package pairing

import "github.com/pawnengine/core/internal/domain"

// ColorPreference is a player's desired next color, derived from their
// white/black game counts (spec.md §4.1 step 2).
type ColorPreference int

const (
	PreferenceNone ColorPreference = iota
	PreferenceMildWhite
	PreferenceStrongWhite
	PreferenceMildBlack
	PreferenceStrongBlack
)

// History is the per-player derived state the Swiss dialect needs:
// opponents already met and color counts so far.
type History struct {
	Opponents  map[domain.PlayerID]bool
	Whites     int
	Blacks     int
	HadBye     bool
	LastColor  *bool // true = played white last game, nil if no games yet
}

// BuildHistory derives per-player opponent/color history from a
// player's complete game record (spec.md §4.1 step 2).
func BuildHistory(playerID domain.PlayerID, games []*domain.Game) *History {
	h := &History{Opponents: make(map[domain.PlayerID]bool)}
	for _, g := range games {
		if g.White != playerID && g.Black != playerID {
			continue
		}
		if g.IsBye() {
			if g.White == playerID {
				h.HadBye = true
			}
			continue
		}
		isWhite := g.White == playerID
		opponent := g.Black
		if !isWhite {
			opponent = g.White
		}
		h.Opponents[opponent] = true
		if isWhite {
			h.Whites++
		} else {
			h.Blacks++
		}
		played := isWhite
		h.LastColor = &played
	}
	return h
}

// Preference computes the player's color preference from whites/blacks
// played so far (spec.md §4.1 step 2).
func (h *History) Preference() ColorPreference {
	diff := h.Blacks - h.Whites
	switch {
	case diff >= 2:
		return PreferenceStrongWhite
	case diff == 1:
		return PreferenceMildWhite
	case diff <= -2:
		return PreferenceStrongBlack
	case diff == -1:
		return PreferenceMildBlack
	default:
		return PreferenceNone
	}
}

// HaveMet reports whether a and b's histories show a prior encounter.
// Either history suffices since opponent sets are symmetric.
func HaveMet(a *History, b domain.PlayerID) bool {
	return a.Opponents[b]
}

// BuildAllHistories derives History for every player in one pass over
// the game list (avoids an O(players*games) rescan per player).
func BuildAllHistories(playerIDs []domain.PlayerID, games []*domain.Game) map[domain.PlayerID]*History {
	out := make(map[domain.PlayerID]*History, len(playerIDs))
	for _, id := range playerIDs {
		out[id] = &History{Opponents: make(map[domain.PlayerID]bool)}
	}
	for _, g := range games {
		if g.IsBye() {
			if h, ok := out[g.White]; ok {
				h.HadBye = true
			}
			continue
		}
		if hw, ok := out[g.White]; ok {
			hw.Opponents[g.Black] = true
			hw.Whites++
			played := true
			hw.LastColor = &played
		}
		if hb, ok := out[g.Black]; ok {
			hb.Opponents[g.White] = true
			hb.Blacks++
			played := false
			hb.LastColor = &played
		}
	}
	return out
}
