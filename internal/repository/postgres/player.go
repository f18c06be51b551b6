package postgres

import (
	"context"
	"database/sql"

	"github.com/pawnengine/core/internal/domain"
)

type playerRepo struct{ db *sql.DB }

const playerColumns = `id, tournament_id, name, rating, title, status, seed, withdrawn_from_round, late_entry_from_round, created_at, updated_at`

func scanPlayer(scanner interface{ Scan(dest ...interface{}) error }) (*domain.Player, error) {
	var p domain.Player
	var rating sql.NullInt64
	var title sql.NullString
	var withdrawnFrom, lateFrom sql.NullInt64

	if err := scanner.Scan(
		&p.ID, &p.TournamentID, &p.Name, &rating, &title, &p.Status, &p.Seed,
		&withdrawnFrom, &lateFrom, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		p.Rating = &v
	}
	if title.Valid {
		t := domain.Title(title.String)
		p.Title = &t
	}
	if withdrawnFrom.Valid {
		v := int(withdrawnFrom.Int64)
		p.WithdrawnFromRound = &v
	}
	if lateFrom.Valid {
		v := int(lateFrom.Int64)
		p.LateEntryFromRound = &v
	}
	return &p, nil
}

func (r *playerRepo) Get(ctx context.Context, id domain.PlayerID) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Kind: "player", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *playerRepo) ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.Player, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players WHERE tournament_id = $1 ORDER BY seed ASC`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *playerRepo) Create(ctx context.Context, p *domain.Player) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO players (tournament_id, name, rating, title, status, seed, withdrawn_from_round, late_entry_from_round, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING id, created_at, updated_at
	`,
		p.TournamentID, p.Name, p.Rating, p.Title, p.Status, p.Seed,
		p.WithdrawnFromRound, p.LateEntryFromRound,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *playerRepo) Update(ctx context.Context, p *domain.Player) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE players SET
			name = $1, rating = $2, title = $3, status = $4, seed = $5,
			withdrawn_from_round = $6, late_entry_from_round = $7, updated_at = now()
		WHERE id = $8
	`, p.Name, p.Rating, p.Title, p.Status, p.Seed, p.WithdrawnFromRound, p.LateEntryFromRound, p.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Kind: "player", ID: p.ID}
	}
	return nil
}

func (r *playerRepo) Delete(ctx context.Context, id domain.PlayerID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Kind: "player", ID: id}
	}
	return nil
}
