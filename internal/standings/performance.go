package standings

import (
	"math"

	"github.com/pawnengine/core/internal/domain"
)

// ComputePerformance estimates a player's performance rating as
// opponents' average rating plus dp(score%), the FIDE rating-difference
// function, clamped to [-800, +800] (spec.md §4.3). No pack repo or
// original_source ships the official dp lookup table, so dp is computed
// from its defining relationship -- the logistic expected-score model
// FIDE's table approximates -- rather than hand-transcribing a 100-row
// table (see DESIGN.md for the stdlib justification).
func ComputePerformance(player domain.PlayerID, results map[domain.PlayerID]*domain.PlayerResult, ratings map[domain.PlayerID]int) float64 {
	pr, ok := results[player]
	if !ok || len(pr.Opponents) == 0 {
		return 0
	}

	var ratingSum float64
	real := 0
	for _, opp := range pr.Opponents {
		if opp.IsVirtual() {
			continue
		}
		if r, ok := ratings[opp]; ok {
			ratingSum += float64(r)
		} else {
			ratingSum += 1000
		}
		real++
	}
	if real == 0 {
		return 0
	}
	avgRating := ratingSum / float64(real)
	pct := pr.Points / float64(real)

	return avgRating + dp(pct)
}

// dp inverts the Elo expected-score curve for a given score percentage
// (0..1), clamped to FIDE's documented [-800, +800] range.
func dp(pct float64) float64 {
	const clamp = 800
	switch {
	case pct >= 1:
		return clamp
	case pct <= 0:
		return -clamp
	}
	diff := 400 * math.Log10(pct/(1-pct))
	if diff > clamp {
		return clamp
	}
	if diff < -clamp {
		return -clamp
	}
	return diff
}
