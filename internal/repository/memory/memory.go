// Package memory is an in-process, map-backed implementation of the
// repository contract (internal/repository). It backs the test suite
// (cmd/server always uses the Postgres repositories); no pack repo ships an in-memory
// fake for this domain, so this package has no direct teacher ancestor
// (see DESIGN.md).
package memory

import (
	"context"
	"sync"

	"github.com/pawnengine/core/internal/domain"
	"github.com/pawnengine/core/internal/repository"
)

// Store is a single in-memory backing store shared by all the
// sub-repositories it constructs, so writes through one are visible to
// reads through another -- matching how a single database connection
// pool backs every repository in the teacher's Postgres adapter.
type Store struct {
	mu sync.Mutex

	tournaments map[domain.TournamentID]*domain.Tournament
	players     map[domain.PlayerID]*domain.Player
	rounds      map[domain.RoundID]*domain.Round
	games       map[domain.GameID]*domain.Game
	audit       []*domain.AuditEntry

	nextTournamentID domain.TournamentID
	nextPlayerID     domain.PlayerID
	nextRoundID      domain.RoundID
	nextGameID       domain.GameID
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		tournaments: make(map[domain.TournamentID]*domain.Tournament),
		players:     make(map[domain.PlayerID]*domain.Player),
		rounds:      make(map[domain.RoundID]*domain.Round),
		games:       make(map[domain.GameID]*domain.Game),
	}
}

// Repositories returns a repository.Repositories bundle backed by s.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Tournaments:   &tournamentRepo{s},
		Players:       &playerRepo{s},
		Rounds:        &roundRepo{s},
		Games:         &gameRepo{s},
		PlayerResults: &playerResultRepo{},
	}
}
