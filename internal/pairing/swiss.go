package pairing

import (
	"fmt"
	"math"
	"sort"

	"github.com/pawnengine/core/internal/domain"
)

// swissCandidate is one eligible opponent for the current pairing head,
// scored per spec.md §4.1 step 4.
type swissCandidate struct {
	player *domain.Player
	score  float64
}

// generateSwiss implements spec.md §4.1's Swiss dialect: order, build
// histories, pair top-down with score-distance minimisation and bounded
// backtracking, assign colors, and (if odd) a bye.
func generateSwiss(in Input, active []*domain.Player) ([]domain.Pairing, error) {
	players := append([]*domain.Player(nil), active...)
	points := func(p *domain.Player) float64 {
		if pr, ok := in.PlayerResults[p.ID]; ok {
			return pr.Points
		}
		return 0
	}
	rating := func(p *domain.Player) int {
		if p.Rating != nil {
			return *p.Rating
		}
		return 0
	}

	// Step 1: order by (points desc, rating desc, seed asc).
	sort.SliceStable(players, func(i, j int) bool {
		if points(players[i]) != points(players[j]) {
			return points(players[i]) > points(players[j])
		}
		if rating(players[i]) != rating(players[j]) {
			return rating(players[i]) > rating(players[j])
		}
		return players[i].Seed < players[j].Seed
	})

	// Step 2: histories.
	ids := make([]domain.PlayerID, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	histories := BuildAllHistories(ids, in.History)

	var byePairing *domain.Pairing
	if len(players)%2 != 0 {
		byeIdx := selectByePlayer(players, histories, points, rating)
		byePairing = &domain.Pairing{White: players[byeIdx].ID, Black: nil, Board: 0}
		players = append(players[:byeIdx], players[byeIdx+1:]...)
	}

	pairs, err := swissBacktrackPair(players, histories, points, rating, in.Config.backtrackBudget())
	if err != nil {
		return nil, err
	}

	result := make([]domain.Pairing, 0, len(pairs)+1)
	board := 1
	for _, pr := range pairs {
		white, black := assignColors(pr[0], pr[1], histories, rating)
		b := black.ID
		result = append(result, domain.Pairing{White: white.ID, Black: &b, Board: board})
		board++
	}
	if byePairing != nil {
		byePairing.Board = board
		result = append(result, *byePairing)
	}
	return result, nil
}

// selectByePlayer picks the lowest-scoring player who has never had a
// bye; ties broken by lowest rating (spec.md §4.1 step 6).
func selectByePlayer(players []*domain.Player, histories map[domain.PlayerID]*History, points func(*domain.Player) float64, rating func(*domain.Player) int) int {
	best := -1
	for i, p := range players {
		if histories[p.ID].HadBye {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		bp, cp := players[best], p
		if points(cp) < points(bp) ||
			(points(cp) == points(bp) && rating(cp) < rating(bp)) {
			best = i
		}
	}
	if best == -1 {
		// every player has already had a bye; fall back to the
		// lowest-scoring player overall rather than failing outright.
		best = len(players) - 1
	}
	return best
}

// swissBacktrackPair greedily pairs the ordered list top-down, scoring
// candidates and backtracking within budget when a leader has no legal
// continuation (spec.md §4.1 steps 3-4, 7).
func swissBacktrackPair(players []*domain.Player, histories map[domain.PlayerID]*History, points func(*domain.Player) float64, rating func(*domain.Player) int, budget int) ([][2]*domain.Player, error) {
	remaining := append([]*domain.Player(nil), players...)
	var pairs [][2]*domain.Player
	// tried[leaderID] tracks candidate IDs already attempted for this
	// leader in the current attempt, so backtracking doesn't retry them.
	tried := make(map[domain.PlayerID]map[domain.PlayerID]bool)

	var pair func() error
	pair = func() error {
		if len(remaining) == 0 {
			return nil
		}
		if len(remaining) == 1 {
			return &domain.PairingImpossibleError{
				ScoreGroup: fmt.Sprintf("%.1f", points(remaining[0])),
				Constraint: "odd number of unpaired players remained after bye assignment",
			}
		}
		leader := remaining[0]
		candidates := make([]swissCandidate, 0, len(remaining)-1)
		for _, q := range remaining[1:] {
			if HaveMet(histories[leader.ID], q.ID) {
				continue
			}
			if tried[leader.ID][q.ID] {
				continue
			}
			if absoluteColorViolation(histories[leader.ID], histories[q.ID]) {
				continue
			}
			candidates = append(candidates, swissCandidate{player: q, score: scoreCandidate(leader, q, histories, points, rating)})
		}
		if len(candidates) == 0 {
			if budget <= 0 {
				return &domain.PairingImpossibleError{
					ScoreGroup: fmt.Sprintf("%.1f", points(leader)),
					Constraint: "backtrack budget exhausted finding a legal opponent for " + fmt.Sprint(leader.ID),
				}
			}
			if len(pairs) == 0 {
				return &domain.PairingImpossibleError{
					ScoreGroup: fmt.Sprintf("%.1f", points(leader)),
					Constraint: "no legal opponent available and nothing to backtrack",
				}
			}
			// Backtrack: undo the most recent match and retry its
			// leader against its next-best candidate.
			budget--
			last := pairs[len(pairs)-1]
			pairs = pairs[:len(pairs)-1]
			if tried[last[0].ID] == nil {
				tried[last[0].ID] = make(map[domain.PlayerID]bool)
			}
			tried[last[0].ID][last[1].ID] = true
			remaining = append([]*domain.Player{last[0], last[1]}, remaining...)
			return pair()
		}
		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
		best := candidates[0].player
		pairs = append(pairs, [2]*domain.Player{leader, best})
		remaining = removePlayer(removePlayer(remaining, leader.ID), best.ID)
		return pair()
	}

	if err := pair(); err != nil {
		return nil, err
	}
	return pairs, nil
}

func removePlayer(list []*domain.Player, id domain.PlayerID) []*domain.Player {
	out := make([]*domain.Player, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// absoluteColorViolation reports whether pairing p against q would force
// two Strong-White or two Strong-Black players together (spec.md §4.1
// step 3's hard color constraint).
func absoluteColorViolation(a, b *History) bool {
	pa, pb := a.Preference(), b.Preference()
	if pa == PreferenceStrongWhite && pb == PreferenceStrongWhite {
		return true
	}
	if pa == PreferenceStrongBlack && pb == PreferenceStrongBlack {
		return true
	}
	return false
}

// scoreCandidate weighs rating proximity, opposing color preference, and
// score-group float distance (spec.md §4.1 step 4).
func scoreCandidate(p, q *domain.Player, histories map[domain.PlayerID]*History, points func(*domain.Player) float64, rating func(*domain.Player) int) float64 {
	ratingDiff := math.Abs(float64(rating(p) - rating(q)))
	ratingBonus := 100 - math.Min(ratingDiff, 100)

	colorBonus := 0.0
	pp, pq := histories[p.ID].Preference(), histories[q.ID].Preference()
	if opposingPreferences(pp, pq) {
		colorBonus = 20
	}

	floatPenalty := math.Abs(points(p)-points(q)) * 50

	return ratingBonus + colorBonus - floatPenalty
}

func opposingPreferences(a, b ColorPreference) bool {
	whiteLike := func(c ColorPreference) bool { return c == PreferenceMildWhite || c == PreferenceStrongWhite }
	blackLike := func(c ColorPreference) bool { return c == PreferenceMildBlack || c == PreferenceStrongBlack }
	return (whiteLike(a) && blackLike(b)) || (blackLike(a) && whiteLike(b))
}

// assignColors picks white/black for a confirmed pair per spec.md §4.1
// step 5: stronger preference wins; tie -> higher-rated player's history
// decides; equal ratings -> whoever last played white yields it (when
// History.LastColor differs); further tie -> lower (better) seed gets white.
func assignColors(a, b *domain.Player, histories map[domain.PlayerID]*History, rating func(*domain.Player) int) (white, black *domain.Player) {
	pa, pb := histories[a.ID].Preference(), histories[b.ID].Preference()
	strength := func(c ColorPreference) int {
		switch c {
		case PreferenceStrongWhite, PreferenceStrongBlack:
			return 2
		case PreferenceMildWhite, PreferenceMildBlack:
			return 1
		default:
			return 0
		}
	}
	wantsWhite := func(c ColorPreference) bool { return c == PreferenceMildWhite || c == PreferenceStrongWhite }
	wantsBlack := func(c ColorPreference) bool { return c == PreferenceMildBlack || c == PreferenceStrongBlack }

	sa, sb := strength(pa), strength(pb)
	switch {
	case sa > sb:
		if wantsWhite(pa) {
			return a, b
		}
		return b, a
	case sb > sa:
		if wantsWhite(pb) {
			return b, a
		}
		return a, b
	}

	// Equal strength (including both None): higher-rated player's
	// history decides which color balances them better.
	if rating(a) != rating(b) {
		higher, lower := a, b
		if rating(b) > rating(a) {
			higher, lower = b, a
		}
		if histories[higher.ID].Whites <= histories[higher.ID].Blacks {
			return higher, lower
		}
		return lower, higher
	}

	// Full tie on rating: whoever is known to have played white most
	// recently gives way to the other.
	la, lb := histories[a.ID].LastColor, histories[b.ID].LastColor
	if la != nil && lb != nil && *la != *lb {
		if *la {
			return b, a
		}
		return a, b
	}

	// Full tie: lower (better) seed gets white.
	if a.Seed <= b.Seed {
		return a, b
	}
	return b, a
}
