// Package lifecycle implements C5, the tournament lifecycle coordinator:
// the state machine on Tournament.status and the operations that drive
// it, orchestrating calls into C1 (pairing), C2 (results), C3/C4
// (standings + cache) behind a per-tournament lock (spec.md §4.5, §5).
// Grounded on the teacher's tournamentService -- a single struct holding
// every repository plus the cross-cutting services it calls out to on
// each mutating method.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawnengine/core/internal/cache"
	"github.com/pawnengine/core/internal/domain"
	"github.com/pawnengine/core/internal/metrics"
	"github.com/pawnengine/core/internal/pairing"
	"github.com/pawnengine/core/internal/repository"
	"github.com/pawnengine/core/internal/results"
	"github.com/pawnengine/core/internal/standings"
)

// Coordinator is C5. One instance serves every tournament; it keeps a
// mutex per tournament id so writes to different tournaments never
// block each other (spec.md §5 "single-threaded per tournament for
// writes").
type Coordinator struct {
	repos repository.Repositories
	cache *cache.Cache

	locksMu sync.Mutex
	locks   map[domain.TournamentID]*sync.Mutex
}

// New builds a Coordinator. standingsTTL is handed straight to the
// internal cache (spec.md §4.4).
func New(repos repository.Repositories, standingsTTL time.Duration) *Coordinator {
	c := &Coordinator{repos: repos, locks: make(map[domain.TournamentID]*sync.Mutex)}
	c.cache = cache.New(standingsTTL, c.computeStandings)
	return c
}

// Standings exposes the underlying cache for reads.
func (c *Coordinator) Standings() *cache.Cache { return c.cache }

func (c *Coordinator) lockFor(id domain.TournamentID) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()
	m, ok := c.locks[id]
	if !ok {
		m = &sync.Mutex{}
		c.locks[id] = m
	}
	return m
}

func (c *Coordinator) computeStandings(ctx context.Context, id domain.TournamentID) (*domain.StandingsResult, error) {
	tournament, err := c.repos.Tournaments.Get(ctx, id)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.computeStandings.tournament", err)
	}
	players, err := c.repos.Players.ListByTournament(ctx, id)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.computeStandings.players", err)
	}
	games, err := c.repos.Games.ListByTournament(ctx, id)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.computeStandings.games", err)
	}
	return standings.Compute(ctx, id, players, games, tournament.RoundsPlayed, tournament.TiebreakConfig)
}

func (c *Coordinator) roundByNumber(ctx context.Context, tournamentID domain.TournamentID, number int) (*domain.Round, error) {
	rounds, err := c.repos.Rounds.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.roundByNumber", err)
	}
	for _, r := range rounds {
		if r.Number == number {
			return r, nil
		}
	}
	return nil, &domain.NotFoundError{Kind: "round", ID: fmt.Sprintf("tournament %d round %d", tournamentID, number)}
}

// CreateRound creates a Planned round shell for the given round number.
func (c *Coordinator) CreateRound(ctx context.Context, tournamentID domain.TournamentID, number int) (*domain.Round, error) {
	mu := c.lockFor(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	now := time.Now()
	round := &domain.Round{
		TournamentID: tournamentID,
		Number:       number,
		Status:       domain.RoundPlanned,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.repos.Rounds.Create(ctx, round); err != nil {
		return nil, domain.NewRepositoryError("lifecycle.CreateRound", err)
	}
	return round, nil
}

// CreateNextRound creates round RoundsPlayed+1 for the tournament.
func (c *Coordinator) CreateNextRound(ctx context.Context, tournamentID domain.TournamentID) (*domain.Round, error) {
	tournament, err := c.repos.Tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.CreateNextRound", err)
	}
	return c.CreateRound(ctx, tournamentID, tournament.RoundsPlayed+1)
}

// PublishRound invokes C1 to generate round's pairings and persists them
// as Games, transitioning the round to Published (spec.md §4.5).
func (c *Coordinator) PublishRound(ctx context.Context, tournamentID domain.TournamentID, number int) (*domain.Round, []*domain.Game, error) {
	mu := c.lockFor(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	tournament, err := c.repos.Tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, nil, domain.NewRepositoryError("lifecycle.PublishRound.tournament", err)
	}
	round, err := c.roundByNumber(ctx, tournamentID, number)
	if err != nil {
		return nil, nil, err
	}
	if round.Status != domain.RoundPlanned {
		return nil, nil, &domain.ValidationError{Reasons: []string{fmt.Sprintf("round %d is %s, not planned", number, round.Status)}}
	}
	if number > 1 {
		prev, err := c.roundByNumber(ctx, tournamentID, number-1)
		if err != nil {
			return nil, nil, err
		}
		if !domain.CanPublish(number, prev.Status) {
			return nil, nil, &domain.ValidationError{Reasons: []string{fmt.Sprintf("round %d cannot publish: round %d is %s", number, number-1, prev.Status)}}
		}
	}

	players, err := c.repos.Players.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, nil, domain.NewRepositoryError("lifecycle.PublishRound.players", err)
	}
	eligible := make([]*domain.Player, 0, len(players))
	for _, p := range players {
		if p.IsEligibleForRound(number) {
			eligible = append(eligible, p)
		}
	}

	games, err := c.repos.Games.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, nil, domain.NewRepositoryError("lifecycle.PublishRound.games", err)
	}
	playerResults := standings.Aggregate(eligible, games, number-1)

	var knockoutBracket []*domain.Game
	if tournament.Format == domain.FormatKnockout && number > 1 {
		knockoutBracket, err = c.repos.Games.ListByRound(ctx, tournamentID, number-1)
		if err != nil {
			return nil, nil, domain.NewRepositoryError("lifecycle.PublishRound.knockoutBracket", err)
		}
	}

	pairings, err := pairing.GeneratePairings(pairing.Input{
		Format:          tournament.Format,
		Players:         eligible,
		PlayerResults:   playerResults,
		History:         games,
		RoundNumber:     number,
		Config:          pairing.Config{RNGSeed: tournament.RNGSeed, BacktrackBudget: 64, PairingNumberMethod: tournament.PairingNumberMethod},
		KnockoutBracket: knockoutBracket,
	})
	if err != nil {
		return nil, nil, err
	}
	metrics.RecordPairingGenerated(string(tournament.Format))

	now := time.Now()
	created := make([]*domain.Game, 0, len(pairings))
	byeAwarded := false
	for _, p := range pairings {
		black := domain.VirtualByePlayerID
		status := domain.GameOngoing
		result := domain.ResultOngoing
		if p.IsBye() {
			if tournament.Format == domain.FormatRoundRobin {
				// Round-robin's virtual bye is an internal scheduling
				// artifact only: the sitting-out player gets no game
				// row and no point (glossary: "0 in round-robin's
				// virtual form").
				continue
			}
			status = domain.GameDecided
			result = domain.ResultWhiteWins
			byeAwarded = true
		} else {
			black = *p.Black
		}
		g := &domain.Game{
			TournamentID: tournamentID,
			RoundID:      round.ID,
			Round:        number,
			Board:        p.Board,
			White:        p.White,
			Black:        black,
			Result:       result,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := c.repos.Games.Create(ctx, g); err != nil {
			return nil, nil, domain.NewRepositoryError("lifecycle.PublishRound.createGame", err)
		}
		created = append(created, g)
	}

	round.Status = domain.RoundPublished
	round.PublishedAt = &now
	round.UpdatedAt = now
	if err := c.repos.Rounds.Update(ctx, round); err != nil {
		return nil, nil, domain.NewRepositoryError("lifecycle.PublishRound.round", err)
	}

	if tournament.Status == domain.TournamentUpcoming {
		tournament.Status = domain.TournamentInProgress
		tournament.UpdatedAt = now
		if err := c.repos.Tournaments.Update(ctx, tournament); err != nil {
			return nil, nil, domain.NewRepositoryError("lifecycle.PublishRound.tournament.update", err)
		}
	}

	if byeAwarded {
		if _, err := c.cache.ForceRecompute(ctx, tournamentID, domain.EventRoundCompleted, nil); err != nil {
			return nil, nil, err
		}
	}

	return round, created, nil
}

// RecordResult invokes C2 to validate and write a submitted result, then
// forces a standings recompute and broadcast.
func (c *Coordinator) RecordResult(ctx context.Context, tournamentID domain.TournamentID, req domain.RecordResultRequest) (*domain.Game, error) {
	mu := c.lockFor(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	game, err := c.repos.Games.Get(ctx, req.GameID)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.RecordResult.game", err)
	}
	if game.TournamentID != tournamentID {
		return nil, &domain.NotFoundError{Kind: "game", ID: req.GameID}
	}
	round, err := c.repos.Rounds.Get(ctx, game.RoundID)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.RecordResult.round", err)
	}

	white, err := c.repos.Players.Get(ctx, game.White)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.RecordResult.white", err)
	}
	var black *domain.Player
	if !game.Black.IsVirtual() {
		black, err = c.repos.Players.Get(ctx, game.Black)
		if err != nil {
			return nil, domain.NewRepositoryError("lifecycle.RecordResult.black", err)
		}
	}

	updated, err := results.Write(ctx, c.repos.Games, req, game, round, white, black)
	if err != nil {
		return nil, err
	}
	metrics.RecordResultRecorded(string(req.Result), updated.Status == domain.GamePendingApproval)

	affected := []domain.PlayerID{game.White}
	if !game.Black.IsVirtual() {
		affected = append(affected, game.Black)
	}
	if _, err := c.cache.ForceRecompute(ctx, tournamentID, domain.EventGameResultUpdated, affected); err != nil {
		return nil, err
	}
	return updated, nil
}

// ApproveResult moves a Pending-Approval game to Decided.
func (c *Coordinator) ApproveResult(ctx context.Context, tournamentID domain.TournamentID, gameID domain.GameID, actor uuid.UUID) (*domain.Game, error) {
	mu := c.lockFor(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	game, err := c.repos.Games.Get(ctx, gameID)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.ApproveResult.game", err)
	}
	if game.TournamentID != tournamentID {
		return nil, &domain.NotFoundError{Kind: "game", ID: gameID}
	}

	updated, err := results.Approve(ctx, c.repos.Games, game, actor)
	if err != nil {
		return nil, err
	}

	affected := []domain.PlayerID{game.White}
	if !game.Black.IsVirtual() {
		affected = append(affected, game.Black)
	}
	if _, err := c.cache.ForceRecompute(ctx, tournamentID, domain.EventGameResultUpdated, affected); err != nil {
		return nil, err
	}
	return updated, nil
}

// CompleteRound verifies every game in the round is Decided, marks the
// round Completed, and advances the tournament to Finished if this was
// its last round.
func (c *Coordinator) CompleteRound(ctx context.Context, tournamentID domain.TournamentID, number int) (*domain.Round, error) {
	mu := c.lockFor(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	round, err := c.roundByNumber(ctx, tournamentID, number)
	if err != nil {
		return nil, err
	}
	games, err := c.repos.Games.ListByRound(ctx, tournamentID, number)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.CompleteRound.games", err)
	}
	var pending int
	for _, g := range games {
		if g.Status != domain.GameDecided {
			pending++
		}
	}
	if pending > 0 {
		return nil, &domain.ValidationError{Reasons: []string{fmt.Sprintf("round %d still has %d game(s) not decided", number, pending)}}
	}

	now := time.Now()
	round.Status = domain.RoundCompleted
	round.CompletedAt = &now
	round.UpdatedAt = now
	if err := c.repos.Rounds.Update(ctx, round); err != nil {
		return nil, domain.NewRepositoryError("lifecycle.CompleteRound.round", err)
	}

	tournament, err := c.repos.Tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.CompleteRound.tournament", err)
	}
	if number > tournament.RoundsPlayed {
		tournament.RoundsPlayed = number
	}
	if tournament.RoundsPlayed >= tournament.TotalRounds {
		tournament.Status = domain.TournamentFinished
	}
	tournament.UpdatedAt = now
	if err := c.repos.Tournaments.Update(ctx, tournament); err != nil {
		return nil, domain.NewRepositoryError("lifecycle.CompleteRound.tournament.update", err)
	}

	if _, err := c.cache.ForceRecompute(ctx, tournamentID, domain.EventRoundCompleted, nil); err != nil {
		return nil, err
	}
	return round, nil
}

// WithdrawPlayer marks a player Withdrawn as of fromRound. Past games
// remain scored; future pairings skip them (spec.md §4.5).
func (c *Coordinator) WithdrawPlayer(ctx context.Context, tournamentID domain.TournamentID, playerID domain.PlayerID, fromRound int) (*domain.Player, error) {
	mu := c.lockFor(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	player, err := c.repos.Players.Get(ctx, playerID)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.WithdrawPlayer.get", err)
	}
	player.Status = domain.PlayerWithdrawn
	player.WithdrawnFromRound = &fromRound
	player.UpdatedAt = time.Now()
	if err := c.repos.Players.Update(ctx, player); err != nil {
		return nil, domain.NewRepositoryError("lifecycle.WithdrawPlayer.update", err)
	}

	if _, err := c.cache.ForceRecompute(ctx, tournamentID, domain.EventPlayerUpdated, []domain.PlayerID{playerID}); err != nil {
		return nil, err
	}
	return player, nil
}

// AddLateEntry appends a new player starting from fromRound, with no
// retroactive bye credit (spec.md §4.5).
func (c *Coordinator) AddLateEntry(ctx context.Context, tournamentID domain.TournamentID, req domain.PlayerRequest, fromRound int) (*domain.Player, error) {
	mu := c.lockFor(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := c.repos.Players.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, domain.NewRepositoryError("lifecycle.AddLateEntry.list", err)
	}
	seed := len(existing) + 1
	if req.Seed != nil {
		seed = *req.Seed
	}

	now := time.Now()
	player := &domain.Player{
		TournamentID:       tournamentID,
		Name:               req.Name,
		Rating:             req.Rating,
		Title:              req.Title,
		Status:             domain.PlayerLateEntry,
		Seed:               seed,
		LateEntryFromRound: &fromRound,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := c.repos.Players.Create(ctx, player); err != nil {
		return nil, domain.NewRepositoryError("lifecycle.AddLateEntry.create", err)
	}

	if _, err := c.cache.ForceRecompute(ctx, tournamentID, domain.EventPlayerUpdated, []domain.PlayerID{player.ID}); err != nil {
		return nil, err
	}
	return player, nil
}
