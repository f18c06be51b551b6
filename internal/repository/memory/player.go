package memory

import (
	"context"
	"time"

	"github.com/pawnengine/core/internal/domain"
)

type playerRepo struct{ s *Store }

func (r *playerRepo) Get(ctx context.Context, id domain.PlayerID) (*domain.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.players[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "player", ID: id}
	}
	cp := *p
	return &cp, nil
}

func (r *playerRepo) ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Player, 0)
	for _, p := range r.s.players {
		if p.TournamentID == tournamentID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *playerRepo) Create(ctx context.Context, p *domain.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextPlayerID++
	p.ID = r.s.nextPlayerID
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	r.s.players[p.ID] = &cp
	return nil
}

func (r *playerRepo) Update(ctx context.Context, p *domain.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[p.ID]; !ok {
		return &domain.NotFoundError{Kind: "player", ID: p.ID}
	}
	p.UpdatedAt = time.Now()
	cp := *p
	r.s.players[p.ID] = &cp
	return nil
}

func (r *playerRepo) Delete(ctx context.Context, id domain.PlayerID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[id]; !ok {
		return &domain.NotFoundError{Kind: "player", ID: id}
	}
	delete(r.s.players, id)
	return nil
}
