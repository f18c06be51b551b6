package standings

import (
	"sort"

	"github.com/pawnengine/core/internal/domain"
)

// tiebreakContext is the read-only state every tiebreak function sees.
// Bundling it keeps the registry's function signature stable as new
// tiebreak kinds are added (spec.md §9 "registry (tag -> function) ...
// adding a new tiebreak must not require changes to the calculator loop").
type tiebreakContext struct {
	Results map[domain.PlayerID]*domain.PlayerResult
	Games   []*domain.Game
	Ratings map[domain.PlayerID]int
	Config  domain.TiebreakConfig
}

type tiebreakFunc func(player domain.PlayerID, ctx tiebreakContext) float64

// registry maps a TiebreakKind to its computation. New kinds are added
// here without touching the calculator's dispatch loop.
var registry = map[domain.TiebreakKind]tiebreakFunc{
	domain.TiebreakBuchholz:                 buchholz(0),
	domain.TiebreakBuchholzCut1:             buchholz(1),
	domain.TiebreakBuchholzCut2:             buchholz(2),
	domain.TiebreakMedianBuchholz:           medianBuchholz,
	domain.TiebreakSonnebornBerger:          sonnebornBerger,
	domain.TiebreakProgressive:              progressive,
	domain.TiebreakDirectEncounter:          directEncounter,
	domain.TiebreakAverageRatingOfOpponents: averageRatingOfOpponents,
	domain.TiebreakPerformanceRating:        performanceRatingTiebreak,
	domain.TiebreakNumberOfWins:             numberOfWins,
	domain.TiebreakGamesWithBlack:           gamesWithBlack,
	domain.TiebreakWinsWithBlack:            winsWithBlack,
	domain.TiebreakKoya:                     koya,
	domain.TiebreakAROCCut1:                 arocCut1,
}

// opponentScores returns the final points of each of player's real (non-
// bye) opponents, per spec.md §4.3 "Virtual opponents": a player who had
// a bye gets one extra entry of ctx.Config.ByeOpponentContribution
// regardless of their own score (spec default 0, configurable per OQ1).
func opponentScores(player domain.PlayerID, ctx tiebreakContext) []float64 {
	pr, ok := ctx.Results[player]
	if !ok {
		return nil
	}
	scores := make([]float64, 0, len(pr.Opponents))
	for _, opp := range pr.Opponents {
		if opp.IsVirtual() {
			scores = append(scores, ctx.Config.ByeOpponentContribution)
			continue
		}
		if oppResult, ok := ctx.Results[opp]; ok {
			scores = append(scores, oppResult.Points)
		} else {
			scores = append(scores, 0)
		}
	}
	if pr.HadBye {
		// Byes are not listed in Opponents; credit the virtual opponent here.
		scores = append(scores, ctx.Config.ByeOpponentContribution)
	}
	return scores
}

// buchholz returns a tiebreakFunc summing opponents' final scores,
// optionally dropping the `cut` lowest values (Cut-1/Cut-2).
func buchholz(cut int) tiebreakFunc {
	return func(player domain.PlayerID, ctx tiebreakContext) float64 {
		scores := opponentScores(player, ctx)
		sort.Float64s(scores)
		if cut > 0 && len(scores) > cut {
			scores = scores[cut:]
		}
		return sum(scores)
	}
}

// medianBuchholz drops both the highest and the lowest opponent score.
func medianBuchholz(player domain.PlayerID, ctx tiebreakContext) float64 {
	scores := opponentScores(player, ctx)
	sort.Float64s(scores)
	if len(scores) > 2 {
		scores = scores[1 : len(scores)-1]
	} else if len(scores) > 0 {
		scores = nil
	}
	return sum(scores)
}

// sonnebornBerger sums defeated opponents' scores plus half of drawn
// opponents' scores.
func sonnebornBerger(player domain.PlayerID, ctx tiebreakContext) float64 {
	var total float64
	for _, g := range ctx.Games {
		if g.Status != domain.GameDecided || !g.Result.IsScored() {
			continue
		}
		white, black := g.Result.Points()
		switch player {
		case g.White:
			total += contribution(white, black, opponentPoints(ctx, g.Black))
		case g.Black:
			total += contribution(black, white, opponentPoints(ctx, g.White))
		}
	}
	return total
}

func contribution(own, other, opponentFinal float64) float64 {
	switch {
	case own > other:
		return opponentFinal
	case own == other:
		return opponentFinal / 2
	default:
		return 0
	}
}

func opponentPoints(ctx tiebreakContext, opp domain.PlayerID) float64 {
	if opp.IsVirtual() {
		return ctx.Config.ByeOpponentContribution
	}
	if pr, ok := ctx.Results[opp]; ok {
		return pr.Points
	}
	return 0
}

// progressive sums the player's own running point totals after each
// round played so far (a.k.a. Cumulative).
func progressive(player domain.PlayerID, ctx tiebreakContext) float64 {
	pr, ok := ctx.Results[player]
	if !ok {
		return 0
	}
	return sum(pr.RunningTotals)
}

// directEncounter sums points earned specifically against the other
// players currently tied with this one on raw points (spec.md §4.3
// "applied only between tied players").
func directEncounter(player domain.PlayerID, ctx tiebreakContext) float64 {
	pr, ok := ctx.Results[player]
	if !ok {
		return 0
	}
	peers := make(map[domain.PlayerID]bool)
	for id, other := range ctx.Results {
		if id != player && other.Points == pr.Points {
			peers[id] = true
		}
	}
	if len(peers) == 0 {
		return 0
	}
	var total float64
	for _, g := range ctx.Games {
		if g.Status != domain.GameDecided || !g.Result.IsScored() || g.IsBye() {
			continue
		}
		white, black := g.Result.Points()
		if g.White == player && peers[g.Black] {
			total += white
		}
		if g.Black == player && peers[g.White] {
			total += black
		}
	}
	return total
}

// averageRatingOfOpponents is the mean rating of every real opponent
// faced (unrated players count as 1000, matching knockout seeding).
func averageRatingOfOpponents(player domain.PlayerID, ctx tiebreakContext) float64 {
	pr, ok := ctx.Results[player]
	if !ok || len(pr.Opponents) == 0 {
		return 0
	}
	var total float64
	n := 0
	for _, opp := range pr.Opponents {
		if opp.IsVirtual() {
			continue
		}
		total += ratingOf(ctx, opp)
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// arocCut1 is ARO with the single lowest-rated opponent dropped.
func arocCut1(player domain.PlayerID, ctx tiebreakContext) float64 {
	pr, ok := ctx.Results[player]
	if !ok {
		return 0
	}
	ratings := make([]float64, 0, len(pr.Opponents))
	for _, opp := range pr.Opponents {
		if !opp.IsVirtual() {
			ratings = append(ratings, ratingOf(ctx, opp))
		}
	}
	sort.Float64s(ratings)
	if len(ratings) > 1 {
		ratings = ratings[1:]
	}
	if len(ratings) == 0 {
		return 0
	}
	return sum(ratings) / float64(len(ratings))
}

func ratingOf(ctx tiebreakContext, id domain.PlayerID) float64 {
	if r, ok := ctx.Ratings[id]; ok {
		return float64(r)
	}
	return 1000
}

// performanceRatingTiebreak exposes ComputePerformance as a registry
// entry so it can be placed anywhere in the ordered tiebreak vector.
func performanceRatingTiebreak(player domain.PlayerID, ctx tiebreakContext) float64 {
	return ComputePerformance(player, ctx.Results, ctx.Ratings)
}

func numberOfWins(player domain.PlayerID, ctx tiebreakContext) float64 {
	if pr, ok := ctx.Results[player]; ok {
		return float64(pr.Wins)
	}
	return 0
}

func gamesWithBlack(player domain.PlayerID, ctx tiebreakContext) float64 {
	if pr, ok := ctx.Results[player]; ok {
		return float64(pr.BlackGames)
	}
	return 0
}

func winsWithBlack(player domain.PlayerID, ctx tiebreakContext) float64 {
	var n float64
	for _, g := range ctx.Games {
		if g.Status != domain.GameDecided || !g.Result.IsScored() || g.IsBye() {
			continue
		}
		if g.Black != player {
			continue
		}
		white, black := g.Result.Points()
		if black > white {
			n++
		}
	}
	return n
}

// koya sums points earned against opponents who finished with at least
// 50% of the maximum available score.
func koya(player domain.PlayerID, ctx tiebreakContext) float64 {
	maxPoints := 0.0
	for _, pr := range ctx.Results {
		if float64(pr.GamesPlayed) > maxPoints {
			maxPoints = float64(pr.GamesPlayed)
		}
	}
	var total float64
	for _, g := range ctx.Games {
		if g.Status != domain.GameDecided || !g.Result.IsScored() || g.IsBye() {
			continue
		}
		white, black := g.Result.Points()
		if g.White == player && qualifies(ctx, g.Black, maxPoints) {
			total += white
		}
		if g.Black == player && qualifies(ctx, g.White, maxPoints) {
			total += black
		}
	}
	return total
}

func qualifies(ctx tiebreakContext, opp domain.PlayerID, maxPoints float64) bool {
	if opp.IsVirtual() || maxPoints == 0 {
		return false
	}
	pr, ok := ctx.Results[opp]
	if !ok {
		return false
	}
	return pr.Points >= maxPoints/2
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}
