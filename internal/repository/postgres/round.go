package postgres

import (
	"context"
	"database/sql"

	"github.com/pawnengine/core/internal/domain"
)

type roundRepo struct{ db *sql.DB }

const roundColumns = `id, tournament_id, number, status, published_at, completed_at, verified_at, created_at, updated_at`

func scanRound(scanner interface{ Scan(dest ...interface{}) error }) (*domain.Round, error) {
	var r domain.Round
	var published, completed, verified sql.NullTime

	if err := scanner.Scan(
		&r.ID, &r.TournamentID, &r.Number, &r.Status,
		&published, &completed, &verified, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if published.Valid {
		r.PublishedAt = &published.Time
	}
	if completed.Valid {
		r.CompletedAt = &completed.Time
	}
	if verified.Valid {
		r.VerifiedAt = &verified.Time
	}
	return &r, nil
}

func (r *roundRepo) Get(ctx context.Context, id domain.RoundID) (*domain.Round, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+roundColumns+` FROM rounds WHERE id = $1`, id)
	round, err := scanRound(row)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Kind: "round", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return round, nil
}

func (r *roundRepo) ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.Round, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+roundColumns+` FROM rounds WHERE tournament_id = $1 ORDER BY number ASC`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Round
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, round)
	}
	return out, rows.Err()
}

func (r *roundRepo) Create(ctx context.Context, round *domain.Round) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO rounds (tournament_id, number, status, published_at, completed_at, verified_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, created_at, updated_at
	`,
		round.TournamentID, round.Number, round.Status,
		round.PublishedAt, round.CompletedAt, round.VerifiedAt,
	).Scan(&round.ID, &round.CreatedAt, &round.UpdatedAt)
}

func (r *roundRepo) Update(ctx context.Context, round *domain.Round) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE rounds SET
			status = $1, published_at = $2, completed_at = $3, verified_at = $4, updated_at = now()
		WHERE id = $5
	`, round.Status, round.PublishedAt, round.CompletedAt, round.VerifiedAt, round.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Kind: "round", ID: round.ID}
	}
	return nil
}
