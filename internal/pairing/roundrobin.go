package pairing

import (
	"sort"
	"strconv"

	"github.com/pawnengine/core/internal/domain"
)

// generateRoundRobin implements spec.md §4.1's round-robin dialect via
// the circle method: fix player 0, rotate the rest once per round, pair
// position i with M-1-i (grounded on the teacher's
// RoundRobinGenerator.Generate / rotateParticipants).
func generateRoundRobin(in Input, active []*domain.Player) ([]domain.Pairing, error) {
	players := append([]*domain.Player(nil), active...)
	sort.SliceStable(players, func(i, j int) bool { return players[i].Seed < players[j].Seed })

	n := len(players)
	ids := make([]domain.PlayerID, n)
	for i, p := range players {
		ids[i] = p.ID
	}
	padded := n%2 != 0
	if padded {
		ids = append(ids, domain.VirtualByePlayerID)
	}
	m := len(ids)
	totalRounds := m - 1

	if in.RoundNumber < 1 || in.RoundNumber > totalRounds {
		return nil, &domain.InvalidRoundError{
			Round:  in.RoundNumber,
			Reason: "round-robin schedule spans rounds 1.." + strconv.Itoa(totalRounds),
		}
	}

	// Rotate m-1 indices (all but index 0) by (RoundNumber-1) steps.
	indices := make([]int, m)
	for i := range indices {
		indices[i] = i
	}
	for step := 0; step < in.RoundNumber-1; step++ {
		rotateIndices(indices)
	}

	pairings := make([]domain.Pairing, 0, m/2)
	board := 1
	for i := 0; i < m/2; i++ {
		home := indices[i]
		away := indices[m-1-i]
		homeID, awayID := ids[home], ids[away]

		if homeID == domain.VirtualByePlayerID || awayID == domain.VirtualByePlayerID {
			realID := homeID
			if realID == domain.VirtualByePlayerID {
				realID = awayID
			}
			pairings = append(pairings, domain.Pairing{White: realID, Black: nil, Board: board})
			board++
			continue
		}

		white, black := homeID, awayID
		if (i+in.RoundNumber)%2 != 0 {
			white, black = awayID, homeID
		}
		pairings = append(pairings, domain.Pairing{White: white, Black: &black, Board: board})
		board++
	}
	return pairings, nil
}

// rotateIndices rotates all elements except index 0 by one step, the
// standard circle-method step (grounded on the teacher's
// rotateParticipants).
func rotateIndices(indices []int) {
	n := len(indices)
	if n <= 2 {
		return
	}
	last := indices[n-1]
	for i := n - 1; i > 1; i-- {
		indices[i] = indices[i-1]
	}
	indices[1] = last
}
