// Package postgres is a database/sql + lib/pq implementation of the
// repository contracts in internal/repository, grounded on the
// teacher's internal/repository/*.go (manual SQL, scan-helper functions,
// sql.NullTime for optional timestamps). Schema and queries are
// rewritten for Tournament/Player/Round/Game instead of
// Tournament/Match/Participant.
package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/pawnengine/core/internal/repository"
)

// Open connects to Postgres and pings it, matching the teacher's
// cmd/main.go connection sequence.
func Open(host, port, user, pass, dbname, sslmode string) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, dbname, sslmode)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return db, nil
}

// schema is applied by Migrate. Every statement is idempotent so Migrate
// is safe to run on every process start, matching how small services in
// this family skip a dedicated migration tool.
const schema = `
CREATE TABLE IF NOT EXISTS tournaments (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	format TEXT NOT NULL,
	total_rounds INT NOT NULL,
	rounds_played INT NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	seeding_method TEXT NOT NULL,
	pairing_number_method TEXT NOT NULL,
	rng_seed BIGINT NOT NULL,
	tiebreak_config JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS players (
	id BIGSERIAL PRIMARY KEY,
	tournament_id BIGINT NOT NULL REFERENCES tournaments(id),
	name TEXT NOT NULL,
	rating INT,
	title TEXT,
	status TEXT NOT NULL,
	seed INT NOT NULL,
	withdrawn_from_round INT,
	late_entry_from_round INT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_players_tournament ON players(tournament_id);

CREATE TABLE IF NOT EXISTS rounds (
	id BIGSERIAL PRIMARY KEY,
	tournament_id BIGINT NOT NULL REFERENCES tournaments(id),
	number INT NOT NULL,
	status TEXT NOT NULL,
	published_at TIMESTAMPTZ,
	completed_at TIMESTAMPTZ,
	verified_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	UNIQUE(tournament_id, number)
);

CREATE TABLE IF NOT EXISTS games (
	id BIGSERIAL PRIMARY KEY,
	tournament_id BIGINT NOT NULL REFERENCES tournaments(id),
	round_id BIGINT NOT NULL REFERENCES rounds(id),
	round INT NOT NULL,
	board INT NOT NULL,
	white_id BIGINT NOT NULL,
	black_id BIGINT NOT NULL,
	result TEXT NOT NULL,
	result_type TEXT,
	status TEXT NOT NULL,
	recorded_by UUID,
	approved_by UUID,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_games_tournament ON games(tournament_id);
CREATE INDEX IF NOT EXISTS idx_games_round ON games(tournament_id, round);

CREATE TABLE IF NOT EXISTS game_audit_entries (
	id UUID PRIMARY KEY,
	game_id BIGINT NOT NULL REFERENCES games(id),
	actor UUID NOT NULL,
	before_result TEXT NOT NULL,
	after_result TEXT NOT NULL,
	at TIMESTAMPTZ NOT NULL
);
`

// Migrate creates every table the repositories need, if not already
// present.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

// Repositories builds the full repository.Repositories set backed by db.
func Repositories(db *sql.DB) repository.Repositories {
	return repository.Repositories{
		Tournaments:   &tournamentRepo{db: db},
		Players:       &playerRepo{db: db},
		Rounds:        &roundRepo{db: db},
		Games:         &gameRepo{db: db},
		PlayerResults: &playerResultRepo{db: db},
	}
}
