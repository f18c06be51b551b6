// Package standings implements C3, the standings calculator:
// compute_standings projects a game history into per-player aggregates,
// a tiebreak vector, and a ranked table (spec.md §4.3). Every exported
// entry point is a pure function of its arguments -- no repository
// access, no global state -- so C4 can memoise it freely.
package standings

import "github.com/pawnengine/core/internal/domain"

// Aggregate projects games played through throughRound into a
// per-player PlayerResult (spec.md §4.3 "Score mapping"). Games that are
// not yet Decided, or whose token doesn't score (Ongoing/Adjourned), are
// skipped entirely.
func Aggregate(players []*domain.Player, games []*domain.Game, throughRound int) map[domain.PlayerID]*domain.PlayerResult {
	out := make(map[domain.PlayerID]*domain.PlayerResult, len(players))
	for _, p := range players {
		out[p.ID] = &domain.PlayerResult{
			PlayerID:      p.ID,
			RunningTotals: make([]float64, 0, throughRound),
		}
	}

	// Running totals need one slot per round, filled in round order
	// regardless of the order games are stored in.
	byRound := make(map[int][]*domain.Game)
	maxRound := 0
	for _, g := range games {
		if g.Round > throughRound {
			continue
		}
		byRound[g.Round] = append(byRound[g.Round], g)
		if g.Round > maxRound {
			maxRound = g.Round
		}
	}

	for r := 1; r <= maxRound; r++ {
		for _, g := range byRound[r] {
			applyGame(out, g)
		}
		for _, pr := range out {
			pr.RunningTotals = append(pr.RunningTotals, pr.Points)
		}
	}
	return out
}

// applyGame folds one Decided, scored game into both sides' results.
func applyGame(out map[domain.PlayerID]*domain.PlayerResult, g *domain.Game) {
	if g.Status != domain.GameDecided || !g.Result.IsScored() {
		return
	}
	white, black := g.Result.Points()

	if g.IsBye() {
		pr, ok := out[g.White]
		if !ok {
			return
		}
		pr.Points += white
		pr.HadBye = true
		return
	}

	pw, okw := out[g.White]
	pb, okb := out[g.Black]
	if okw {
		pw.Points += white
		pw.GamesPlayed++
		pw.WhiteGames++
		pw.Opponents = append(pw.Opponents, g.Black)
		switch {
		case white > black:
			pw.Wins++
		case white < black:
			pw.Losses++
		default:
			pw.Draws++
		}
	}
	if okb {
		pb.Points += black
		pb.GamesPlayed++
		pb.BlackGames++
		pb.Opponents = append(pb.Opponents, g.White)
		switch {
		case black > white:
			pb.Wins++
		case black < white:
			pb.Losses++
		default:
			pb.Draws++
		}
	}
}
