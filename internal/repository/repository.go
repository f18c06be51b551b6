// Package repository declares the persistence contract the core
// consumes (spec.md §6). The core never reaches into a concrete
// database; it calls these interfaces, which return either the typed
// result or a domain.RepositoryError.
package repository

import (
	"context"

	"github.com/pawnengine/core/internal/domain"
)

// TournamentRepository persists Tournament aggregates.
type TournamentRepository interface {
	List(ctx context.Context) ([]*domain.Tournament, error)
	Get(ctx context.Context, id domain.TournamentID) (*domain.Tournament, error)
	Create(ctx context.Context, t *domain.Tournament) error
	Update(ctx context.Context, t *domain.Tournament) error
	Delete(ctx context.Context, id domain.TournamentID) error
}

// PlayerRepository persists Player rows scoped to a tournament.
type PlayerRepository interface {
	Get(ctx context.Context, id domain.PlayerID) (*domain.Player, error)
	ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.Player, error)
	Create(ctx context.Context, p *domain.Player) error
	Update(ctx context.Context, p *domain.Player) error
	Delete(ctx context.Context, id domain.PlayerID) error
}

// RoundRepository persists Round rows.
type RoundRepository interface {
	Get(ctx context.Context, id domain.RoundID) (*domain.Round, error)
	ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.Round, error)
	Create(ctx context.Context, r *domain.Round) error
	Update(ctx context.Context, r *domain.Round) error
}

// GameRepository persists Game rows and their audit trail.
type GameRepository interface {
	Get(ctx context.Context, id domain.GameID) (*domain.Game, error)
	ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.Game, error)
	ListByRound(ctx context.Context, tournamentID domain.TournamentID, round int) ([]*domain.Game, error)
	Create(ctx context.Context, g *domain.Game) error
	Update(ctx context.Context, g *domain.Game) error
	AppendAudit(ctx context.Context, entry *domain.AuditEntry) error
}

// PlayerResultRepository exposes pre-aggregated PlayerResults, should a
// caller want them without recomputing from Games (spec.md §6 "list
// player results"). The core's own standings calculator never depends on
// this -- it always derives PlayerResults from Games directly, per
// spec.md §3's "Standings and PlayerResults are projections" rule --
// this interface exists only so repository-level callers (e.g. a reports
// UI) can fetch a cached projection without the engine in the loop.
type PlayerResultRepository interface {
	ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.PlayerResult, error)
}

// Repositories bundles the full contract the coordinator needs.
type Repositories struct {
	Tournaments   TournamentRepository
	Players       PlayerRepository
	Rounds        RoundRepository
	Games         GameRepository
	PlayerResults PlayerResultRepository
}
