package pairing

import "github.com/pawnengine/core/internal/domain"

// generateScheveningen implements spec.md §4.1's team dialect: board i
// pairs TeamA[i] vs TeamB[i], with colors alternating by (round parity,
// board parity) so each player alternates colors round to round. Team
// selection itself is delegated to a layer outside this core; Input
// supplies the two rosters already matched board-for-board.
func generateScheveningen(in Input) ([]domain.Pairing, error) {
	if len(in.TeamA) == 0 || len(in.TeamA) != len(in.TeamB) {
		return nil, &domain.ValidationError{Reasons: []string{"scheveningen requires two equal-size, non-empty team rosters"}}
	}
	if in.Config.TeamSize > 0 && len(in.TeamA) != in.Config.TeamSize {
		return nil, &domain.ValidationError{Reasons: []string{"scheveningen roster size does not match the configured team size"}}
	}

	pairings := make([]domain.Pairing, 0, len(in.TeamA))
	for i := range in.TeamA {
		white, black := in.TeamA[i], in.TeamB[i]
		if (in.RoundNumber+i)%2 == 0 {
			white, black = in.TeamB[i], in.TeamA[i]
		}
		pairings = append(pairings, domain.Pairing{White: white, Black: &black, Board: i + 1})
	}
	return pairings, nil
}
