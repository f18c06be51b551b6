package pairing

import (
	"fmt"
	"math/rand"

	"github.com/pawnengine/core/internal/domain"
)

// Input is the shared union of fields each dialect needs, dispatched on
// Format -- replacing any virtual-dispatch/inheritance approach (spec.md
// §9 "Polymorphism across formats").
type Input struct {
	Format domain.TournamentFormat

	// Players eligible to be paired this round (Active, not yet
	// withdrawn as of RoundNumber). Byes and eliminated knockout
	// players must already be excluded by the caller.
	Players []*domain.Player

	// PlayerResults is keyed by PlayerID, current score state (Swiss
	// ordering reads this; knockout seeds by rating and seed only).
	PlayerResults map[domain.PlayerID]*domain.PlayerResult

	// History is every game played so far across the whole tournament,
	// used for rematch avoidance and color balancing.
	History []*domain.Game

	RoundNumber int
	Config      Config

	// KnockoutBracket, when Format is Knockout and RoundNumber > 1,
	// carries the previous round's decided games so advanceKnockoutRound can
	// compute this round's positions. Ignored by other dialects.
	KnockoutBracket []*domain.Game

	// TeamA/TeamB partition Players for the Scheveningen dialect, by
	// index into Players (board i pairs TeamA[i] vs TeamB[i]).
	TeamA []domain.PlayerID
	TeamB []domain.PlayerID
}

// GeneratePairings produces a pairing list for round Input.RoundNumber,
// dispatching on Input.Format (spec.md §4.1).
func GeneratePairings(in Input) ([]domain.Pairing, error) {
	active := activePlayers(in.Players)
	if len(active) < 2 && in.Format != domain.FormatKnockout {
		return nil, &domain.InsufficientPlayersError{Active: len(active)}
	}

	switch in.Format {
	case domain.FormatSwiss:
		return applyPairingNumberMethod(in, generateSwiss(in, active))
	case domain.FormatRoundRobin:
		return applyPairingNumberMethod(in, generateRoundRobin(in, active))
	case domain.FormatKnockout:
		// Board order carries bracket adjacency across rounds
		// (advanceKnockoutRound pairs board i with i+1 to find each
		// slot's next opponent), so knockout boards never get
		// renumbered.
		return generateKnockoutRound(in, active)
	case domain.FormatScheveningen:
		return applyPairingNumberMethod(in, generateScheveningen(in))
	default:
		return nil, fmt.Errorf("pairing: unsupported format %q", in.Format)
	}
}

// applyPairingNumberMethod reassigns board numbers per
// Input.Config.PairingNumberMethod once a dialect has produced its
// natural ordering. PairingNumberRandom is the only pairing-number
// method that draws from Config.rng() (spec.md §9 "RNG").
func applyPairingNumberMethod(in Input, pairings []domain.Pairing, err error) ([]domain.Pairing, error) {
	if err != nil || in.Config.PairingNumberMethod != domain.PairingNumberRandom {
		return pairings, err
	}
	shuffleBoardNumbers(pairings, in.Config.rng())
	return pairings, nil
}

func shuffleBoardNumbers(pairings []domain.Pairing, rng *rand.Rand) {
	rng.Shuffle(len(pairings), func(i, j int) { pairings[i], pairings[j] = pairings[j], pairings[i] })
	for i := range pairings {
		pairings[i].Board = i + 1
	}
}

func activePlayers(players []*domain.Player) []*domain.Player {
	out := make([]*domain.Player, 0, len(players))
	for _, p := range players {
		if p.Status == domain.PlayerActive || p.Status == domain.PlayerLateEntry {
			out = append(out, p)
		}
	}
	return out
}
