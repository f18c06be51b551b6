package memory

import (
	"context"
	"time"

	"github.com/pawnengine/core/internal/domain"
)

type roundRepo struct{ s *Store }

func (r *roundRepo) Get(ctx context.Context, id domain.RoundID) (*domain.Round, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rd, ok := r.s.rounds[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "round", ID: id}
	}
	cp := *rd
	return &cp, nil
}

func (r *roundRepo) ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.Round, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Round, 0)
	for _, rd := range r.s.rounds {
		if rd.TournamentID == tournamentID {
			cp := *rd
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *roundRepo) Create(ctx context.Context, rd *domain.Round) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextRoundID++
	rd.ID = r.s.nextRoundID
	now := time.Now()
	rd.CreatedAt, rd.UpdatedAt = now, now
	cp := *rd
	r.s.rounds[rd.ID] = &cp
	return nil
}

func (r *roundRepo) Update(ctx context.Context, rd *domain.Round) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rounds[rd.ID]; !ok {
		return &domain.NotFoundError{Kind: "round", ID: rd.ID}
	}
	rd.UpdatedAt = time.Now()
	cp := *rd
	r.s.rounds[rd.ID] = &cp
	return nil
}
