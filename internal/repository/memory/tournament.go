package memory

import (
	"context"
	"time"

	"github.com/pawnengine/core/internal/domain"
)

type tournamentRepo struct{ s *Store }

func (r *tournamentRepo) List(ctx context.Context) ([]*domain.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Tournament, 0, len(r.s.tournaments))
	for _, t := range r.s.tournaments {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *tournamentRepo) Get(ctx context.Context, id domain.TournamentID) (*domain.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "tournament", ID: id}
	}
	cp := *t
	return &cp, nil
}

func (r *tournamentRepo) Create(ctx context.Context, t *domain.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextTournamentID++
	t.ID = r.s.nextTournamentID
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	r.s.tournaments[t.ID] = &cp
	return nil
}

func (r *tournamentRepo) Update(ctx context.Context, t *domain.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[t.ID]; !ok {
		return &domain.NotFoundError{Kind: "tournament", ID: t.ID}
	}
	t.UpdatedAt = time.Now()
	cp := *t
	r.s.tournaments[t.ID] = &cp
	return nil
}

func (r *tournamentRepo) Delete(ctx context.Context, id domain.TournamentID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[id]; !ok {
		return &domain.NotFoundError{Kind: "tournament", ID: id}
	}
	delete(r.s.tournaments, id)
	return nil
}
