package memory

import (
	"context"
	"time"

	"github.com/pawnengine/core/internal/domain"
)

type gameRepo struct{ s *Store }

func (r *gameRepo) Get(ctx context.Context, id domain.GameID) (*domain.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.games[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "game", ID: id}
	}
	cp := *g
	return &cp, nil
}

func (r *gameRepo) ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Game, 0)
	for _, g := range r.s.games {
		if g.TournamentID == tournamentID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *gameRepo) ListByRound(ctx context.Context, tournamentID domain.TournamentID, round int) ([]*domain.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Game, 0)
	for _, g := range r.s.games {
		if g.TournamentID == tournamentID && g.Round == round {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *gameRepo) Create(ctx context.Context, g *domain.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextGameID++
	g.ID = r.s.nextGameID
	now := time.Now()
	g.CreatedAt, g.UpdatedAt = now, now
	cp := *g
	r.s.games[g.ID] = &cp
	return nil
}

func (r *gameRepo) Update(ctx context.Context, g *domain.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.games[g.ID]; !ok {
		return &domain.NotFoundError{Kind: "game", ID: g.ID}
	}
	g.UpdatedAt = time.Now()
	cp := *g
	r.s.games[g.ID] = &cp
	return nil
}

func (r *gameRepo) AppendAudit(ctx context.Context, entry *domain.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, entry)
	return nil
}

type playerResultRepo struct{}

func (playerResultRepo) ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.PlayerResult, error) {
	return nil, nil
}
