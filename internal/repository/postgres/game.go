package postgres

import (
	"context"
	"database/sql"

	"github.com/pawnengine/core/internal/domain"
	"github.com/pawnengine/core/internal/standings"
)

type gameRepo struct{ db *sql.DB }

const gameColumns = `id, tournament_id, round_id, round, board, white_id, black_id, result, result_type, status, recorded_by, approved_by, created_at, updated_at`

func scanGame(scanner interface{ Scan(dest ...interface{}) error }) (*domain.Game, error) {
	var g domain.Game
	var resultType sql.NullString
	var recordedBy, approvedBy sql.NullString

	if err := scanner.Scan(
		&g.ID, &g.TournamentID, &g.RoundID, &g.Round, &g.Board,
		&g.White, &g.Black, &g.Result, &resultType, &g.Status,
		&recordedBy, &approvedBy, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if resultType.Valid {
		rt := domain.ResultType(resultType.String)
		g.ResultType = &rt
	}
	if recordedBy.Valid {
		if id, err := uuidParse(recordedBy.String); err == nil {
			g.RecordedBy = &id
		}
	}
	if approvedBy.Valid {
		if id, err := uuidParse(approvedBy.String); err == nil {
			g.ApprovedBy = &id
		}
	}
	return &g, nil
}

func (r *gameRepo) Get(ctx context.Context, id domain.GameID) (*domain.Game, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Kind: "game", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *gameRepo) ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.Game, error) {
	return r.query(ctx, `SELECT `+gameColumns+` FROM games WHERE tournament_id = $1 ORDER BY round ASC, board ASC`, tournamentID)
}

func (r *gameRepo) ListByRound(ctx context.Context, tournamentID domain.TournamentID, round int) ([]*domain.Game, error) {
	return r.query(ctx, `SELECT `+gameColumns+` FROM games WHERE tournament_id = $1 AND round = $2 ORDER BY board ASC`, tournamentID, round)
}

func (r *gameRepo) query(ctx context.Context, q string, args ...interface{}) ([]*domain.Game, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *gameRepo) Create(ctx context.Context, g *domain.Game) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO games (tournament_id, round_id, round, board, white_id, black_id, result, result_type, status, recorded_by, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		RETURNING id, created_at, updated_at
	`,
		g.TournamentID, g.RoundID, g.Round, g.Board, g.White, g.Black,
		g.Result, g.ResultType, g.Status, uuidPtrString(g.RecordedBy), uuidPtrString(g.ApprovedBy),
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *gameRepo) Update(ctx context.Context, g *domain.Game) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE games SET
			result = $1, result_type = $2, status = $3, recorded_by = $4, approved_by = $5, updated_at = now()
		WHERE id = $6
	`, g.Result, g.ResultType, g.Status, uuidPtrString(g.RecordedBy), uuidPtrString(g.ApprovedBy), g.ID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Kind: "game", ID: g.ID}
	}
	return nil
}

func (r *gameRepo) AppendAudit(ctx context.Context, entry *domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO game_audit_entries (id, game_id, actor, before_result, after_result, at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.ID, entry.GameID, entry.Actor, entry.Before, entry.After, entry.At)
	return err
}

// playerResultRepo serves PlayerResultRepository.ListByTournament by
// deriving the projection from players+games on demand, rather than
// keeping a separate materialised table in sync -- the engine's own
// standings calculator never depends on this path (spec.md §3 "Standings
// and PlayerResults are projections"); it exists only for callers outside
// the engine that want the aggregate without re-running it themselves.
type playerResultRepo struct{ db *sql.DB }

func (r *playerResultRepo) ListByTournament(ctx context.Context, tournamentID domain.TournamentID) ([]*domain.PlayerResult, error) {
	players, err := (&playerRepo{db: r.db}).ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	games, err := (&gameRepo{db: r.db}).ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	maxRound := 0
	for _, g := range games {
		if g.Round > maxRound {
			maxRound = g.Round
		}
	}
	agg := standings.Aggregate(players, games, maxRound)
	out := make([]*domain.PlayerResult, 0, len(agg))
	for _, p := range players {
		if pr, ok := agg[p.ID]; ok {
			out = append(out, pr)
		}
	}
	return out, nil
}
