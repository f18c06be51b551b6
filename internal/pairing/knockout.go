package pairing

import (
	"math/bits"
	"sort"

	"github.com/pawnengine/core/internal/domain"
)

// generateKnockoutRound implements spec.md §4.1's knockout dialect.
// Round 1 seeds the field into a standard single-elimination bracket and
// byes land on the top seeds (grounded on the teacher's
// challongeSeeding/generateByePos bye-priority idea, reworked into the
// recursive seeding formula spec.md §4.1 describes). Later rounds advance
// winners from in.KnockoutBracket board-by-board.
func generateKnockoutRound(in Input, active []*domain.Player) ([]domain.Pairing, error) {
	if in.RoundNumber <= 1 {
		return seedKnockoutRound1(active)
	}
	return advanceKnockoutRound(in.KnockoutBracket)
}

// seedKnockoutRound1 ranks the field by rating (unrated treated as 1000,
// spec.md §4.1), places it into bracket positions by the recursive
// seeding formula, and pairs adjacent positions. A position with no real
// player behind it is a bye for its partner.
func seedKnockoutRound1(active []*domain.Player) ([]domain.Pairing, error) {
	if len(active) < 2 {
		return nil, &domain.InsufficientPlayersError{Active: len(active)}
	}
	players := append([]*domain.Player(nil), active...)
	sort.SliceStable(players, func(i, j int) bool {
		ri, rj := ratingOrDefault(players[i]), ratingOrDefault(players[j])
		if ri != rj {
			return ri > rj
		}
		return players[i].Seed < players[j].Seed
	})

	size := nextPowerOfTwo(len(players))
	order := bracketSeedOrder(size)

	pairings := make([]domain.Pairing, 0, size/2)
	board := 1
	for i := 0; i < size; i += 2 {
		a, b := order[i], order[i+1]
		var pa, pb *domain.Player
		if a < len(players) {
			pa = players[a]
		}
		if b < len(players) {
			pb = players[b]
		}
		switch {
		case pa != nil && pb != nil:
			black := pb.ID
			pairings = append(pairings, domain.Pairing{White: pa.ID, Black: &black, Board: board})
		case pa != nil:
			pairings = append(pairings, domain.Pairing{White: pa.ID, Black: nil, Board: board})
		case pb != nil:
			pairings = append(pairings, domain.Pairing{White: pb.ID, Black: nil, Board: board})
		default:
			continue // both halves are padding; no board to play
		}
		board++
	}
	return pairings, nil
}

// advanceKnockoutRound pairs the winners of the previous round's boards,
// preserving bracket order: board i's winner meets board i+1's winner
// (spec.md §4.1 "Advancement").
func advanceKnockoutRound(previous []*domain.Game) ([]domain.Pairing, error) {
	games := append([]*domain.Game(nil), previous...)
	sort.SliceStable(games, func(i, j int) bool { return games[i].Board < games[j].Board })

	winners := make([]domain.PlayerID, 0, len(games))
	for _, g := range games {
		w, err := knockoutWinner(g)
		if err != nil {
			return nil, err
		}
		winners = append(winners, w)
	}
	if len(winners) < 1 {
		return nil, &domain.InsufficientPlayersError{Active: 0}
	}

	pairings := make([]domain.Pairing, 0, (len(winners)+1)/2)
	board := 1
	for i := 0; i < len(winners); i += 2 {
		if i+1 >= len(winners) {
			pairings = append(pairings, domain.Pairing{White: winners[i], Black: nil, Board: board})
			board++
			continue
		}
		black := winners[i+1]
		pairings = append(pairings, domain.Pairing{White: winners[i], Black: &black, Board: board})
		board++
	}
	return pairings, nil
}

// knockoutWinner reads a decided board's advancing player. A bye board
// advances White unconditionally.
func knockoutWinner(g *domain.Game) (domain.PlayerID, error) {
	if g.IsBye() {
		return g.White, nil
	}
	if g.Status != domain.GameDecided {
		return 0, &domain.InvalidRoundError{Round: g.Round, Reason: "board is not yet decided, cannot advance"}
	}
	white, black := g.Result.Points()
	if white > black {
		return g.White, nil
	}
	if black > white {
		return g.Black, nil
	}
	return 0, &domain.InvalidRoundError{Round: g.Round, Reason: "knockout board ended drawn with no decisive result to advance"}
}

func ratingOrDefault(p *domain.Player) int {
	if p.Rating != nil {
		return *p.Rating
	}
	return 1000
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// bracketSeedOrder returns, for a bracket of the given size (a power of
// two), the 0-indexed seed occupying each position: each seed s of the
// half-size order is followed by its mirror size-1-s, so seed 1 (index 0)
// sits at position 0 facing the bottom seed, seed 2 opens the second half,
// and the top surviving seed always meets the bottom surviving seed
// (spec.md §4.1).
func bracketSeedOrder(size int) []int {
	if size <= 1 {
		return []int{0}
	}
	half := bracketSeedOrder(size / 2)
	order := make([]int, size)
	for i, s := range half {
		order[2*i] = s
		order[2*i+1] = size - 1 - s
	}
	return order
}
