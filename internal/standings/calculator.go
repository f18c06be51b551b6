package standings

import (
	"context"
	"sort"
	"time"

	"github.com/pawnengine/core/internal/domain"
)

// Compute implements C3's compute_standings(tournament_id, config):
// projects games -> per-player aggregates -> tiebreak vector -> ranked
// standings. A pure function of its arguments (spec.md §4.3); the only
// suspension is the cooperative cancellation check between tiebreak
// kinds (spec.md §5 "Cancellation").
func Compute(ctx context.Context, tournamentID domain.TournamentID, players []*domain.Player, games []*domain.Game, asOfRound int, config domain.TiebreakConfig) (*domain.StandingsResult, error) {
	start := time.Now()

	results := Aggregate(players, games, asOfRound)
	ratings := make(map[domain.PlayerID]int, len(players))
	seeds := make(map[domain.PlayerID]int, len(players))
	for _, p := range players {
		seeds[p.ID] = p.Seed
		if p.Rating != nil {
			ratings[p.ID] = *p.Rating
		} else {
			ratings[p.ID] = 1000
		}
	}

	tbCtx := tiebreakContext{Results: results, Games: games, Ratings: ratings, Config: config}
	kinds := config.Tiebreaks
	if config.UseFIDEDefaults || len(kinds) == 0 {
		kinds = domain.DefaultTiebreakConfig().Tiebreaks
	}

	standingsList := make([]domain.Standing, 0, len(players))
	for _, p := range players {
		select {
		case <-ctx.Done():
			return nil, domain.ErrCancelled
		default:
		}

		pr := results[p.ID]
		values := make([]float64, len(kinds))
		for i, kind := range kinds {
			fn, ok := registry[kind]
			if !ok {
				continue
			}
			values[i] = fn(p.ID, tbCtx)

			select {
			case <-ctx.Done():
				return nil, domain.ErrCancelled
			default:
			}
		}

		var perf *float64
		if pr.GamesPlayed > 0 {
			v := ComputePerformance(p.ID, results, ratings)
			perf = &v
		}

		standingsList = append(standingsList, domain.Standing{
			PlayerID:    p.ID,
			Points:      pr.Points,
			Tiebreaks:   domain.TiebreakVector{Kinds: kinds, Values: values},
			Performance: perf,
			Wins:        pr.Wins,
			Draws:       pr.Draws,
			Losses:      pr.Losses,
			Seed:        p.Seed,
		})
	}

	rankStandings(standingsList)

	return &domain.StandingsResult{
		TournamentID: tournamentID,
		AsOfRound:    asOfRound,
		Standings:    standingsList,
		Config:       config,
		ComputedAt:   start,
		Duration:     time.Since(start),
	}, nil
}

// rankStandings orders by (points desc, tiebreak vector desc
// lexicographically, seed asc) and assigns shared ranks to ties (spec.md
// §4.3 "Ordering").
func rankStandings(rows []domain.Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		for k := range a.Tiebreaks.Values {
			if k >= len(b.Tiebreaks.Values) {
				break
			}
			if a.Tiebreaks.Values[k] != b.Tiebreaks.Values[k] {
				return a.Tiebreaks.Values[k] > b.Tiebreaks.Values[k]
			}
		}
		return a.Seed < b.Seed
	})

	rank := 0
	for i := range rows {
		if i == 0 || !tied(rows[i-1], rows[i]) {
			rank = i + 1
		}
		rows[i].Rank = rank
	}
}

func tied(a, b domain.Standing) bool {
	if a.Points != b.Points {
		return false
	}
	if len(a.Tiebreaks.Values) != len(b.Tiebreaks.Values) {
		return false
	}
	for i := range a.Tiebreaks.Values {
		if a.Tiebreaks.Values[i] != b.Tiebreaks.Values[i] {
			return false
		}
	}
	return true
}
