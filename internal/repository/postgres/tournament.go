package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pawnengine/core/internal/domain"
)

type tournamentRepo struct{ db *sql.DB }

func scanTournament(scanner interface{ Scan(dest ...interface{}) error }) (*domain.Tournament, error) {
	var t domain.Tournament
	var configJSON []byte
	if err := scanner.Scan(
		&t.ID, &t.Name, &t.Format, &t.TotalRounds, &t.RoundsPlayed, &t.Status,
		&t.SeedingMethod, &t.PairingNumberMethod, &t.RNGSeed,
		&configJSON, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(configJSON) > 0 {
		if err := json.Unmarshal(configJSON, &t.TiebreakConfig); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

const tournamentColumns = `id, name, format, total_rounds, rounds_played, status, seeding_method, pairing_number_method, rng_seed, tiebreak_config, created_at, updated_at`

func (r *tournamentRepo) List(ctx context.Context) ([]*domain.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tournamentColumns+` FROM tournaments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tournamentRepo) Get(ctx context.Context, id domain.TournamentID) (*domain.Tournament, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id)
	t, err := scanTournament(row)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Kind: "tournament", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tournamentRepo) Create(ctx context.Context, t *domain.Tournament) error {
	configJSON, err := json.Marshal(t.TiebreakConfig)
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO tournaments (name, format, total_rounds, rounds_played, status, seeding_method, pairing_number_method, rng_seed, tiebreak_config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING id, created_at, updated_at
	`,
		t.Name, t.Format, t.TotalRounds, t.RoundsPlayed, t.Status,
		t.SeedingMethod, t.PairingNumberMethod, t.RNGSeed, configJSON,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *tournamentRepo) Update(ctx context.Context, t *domain.Tournament) error {
	configJSON, err := json.Marshal(t.TiebreakConfig)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE tournaments SET
			name = $1, total_rounds = $2, rounds_played = $3, status = $4,
			tiebreak_config = $5, updated_at = now()
		WHERE id = $6
	`, t.Name, t.TotalRounds, t.RoundsPlayed, t.Status, configJSON, t.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Kind: "tournament", ID: t.ID}
	}
	return nil
}

func (r *tournamentRepo) Delete(ctx context.Context, id domain.TournamentID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Kind: "tournament", ID: id}
	}
	return nil
}
