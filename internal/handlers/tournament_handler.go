// Package handlers wires gin HTTP routes onto the core's lifecycle
// coordinator and repositories. Grounded on the teacher's cmd/main.go
// (its actual wiring uses inline gin closures with uuid.Parse path
// params, ShouldBindJSON bodies, and gin.H error bodies -- the teacher's
// internal/handlers package itself was gorilla/mux-based and never
// imported by main.go, so it is replaced here rather than ported).
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pawnengine/core/internal/domain"
	"github.com/pawnengine/core/internal/lifecycle"
	"github.com/pawnengine/core/internal/middleware"
	"github.com/pawnengine/core/internal/repository"
)

// TournamentHandler serves every tournament/round/game/standings route.
type TournamentHandler struct {
	repos repository.Repositories
	coord *lifecycle.Coordinator
}

func NewTournamentHandler(repos repository.Repositories, coord *lifecycle.Coordinator) *TournamentHandler {
	return &TournamentHandler{repos: repos, coord: coord}
}

// RegisterRoutes attaches public and actor-protected routes to router.
func (h *TournamentHandler) RegisterRoutes(router *gin.Engine, authSecret string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/tournaments", h.ListTournaments)
	router.GET("/tournaments/:tournamentId", h.GetTournament)
	router.GET("/tournaments/:tournamentId/players", h.ListPlayers)
	router.GET("/tournaments/:tournamentId/rounds", h.ListRounds)
	router.GET("/tournaments/:tournamentId/games", h.ListGames)
	router.GET("/tournaments/:tournamentId/standings", h.GetStandings)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(authSecret))
	{
		protected.POST("/tournaments", h.CreateTournament)
		protected.PUT("/tournaments/:tournamentId", h.UpdateTournament)
		protected.POST("/tournaments/:tournamentId/players", h.AddPlayer)
		protected.POST("/tournaments/:tournamentId/players/:playerId/withdraw", h.WithdrawPlayer)
		protected.POST("/tournaments/:tournamentId/rounds", h.CreateNextRound)
		protected.POST("/tournaments/:tournamentId/rounds/:number/publish", h.PublishRound)
		protected.POST("/tournaments/:tournamentId/rounds/:number/complete", h.CompleteRound)
		protected.POST("/tournaments/:tournamentId/games/:gameId/result", h.RecordResult)
		protected.POST("/tournaments/:tournamentId/games/:gameId/approve", h.ApproveResult)
	}
}

func parseTournamentID(c *gin.Context) (domain.TournamentID, error) {
	id, err := strconv.ParseInt(c.Param("tournamentId"), 10, 64)
	return domain.TournamentID(id), err
}

func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	var req domain.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}
	if req.TiebreakConfig.Tiebreaks == nil {
		req.TiebreakConfig = domain.DefaultTiebreakConfig()
	}

	tournament := &domain.Tournament{
		Name:                req.Name,
		Format:              req.Format,
		TotalRounds:         req.TotalRounds,
		Status:              domain.TournamentUpcoming,
		SeedingMethod:       req.SeedingMethod,
		PairingNumberMethod: domain.PairingNumberBySeed,
		RNGSeed:             req.RNGSeed,
		TiebreakConfig:      req.TiebreakConfig,
	}
	if err := h.repos.Tournaments.Create(c.Request.Context(), tournament); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, tournament)
}

func (h *TournamentHandler) ListTournaments(c *gin.Context) {
	tournaments, err := h.repos.Tournaments.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tournaments": tournaments})
}

func (h *TournamentHandler) GetTournament(c *gin.Context) {
	id, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	tournament, err := h.repos.Tournaments.Get(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

func (h *TournamentHandler) UpdateTournament(c *gin.Context) {
	id, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	var req domain.UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tournament, err := h.repos.Tournaments.Get(c.Request.Context(), id)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if req.Name != nil {
		tournament.Name = *req.Name
	}
	if req.TotalRounds != nil {
		tournament.TotalRounds = *req.TotalRounds
	}
	if req.TiebreakConfig != nil {
		tournament.TiebreakConfig = *req.TiebreakConfig
	}
	if err := h.repos.Tournaments.Update(c.Request.Context(), tournament); err != nil {
		writeRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

func (h *TournamentHandler) ListPlayers(c *gin.Context) {
	id, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	players, err := h.repos.Players.ListByTournament(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func (h *TournamentHandler) AddPlayer(c *gin.Context) {
	tournamentID, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	var req domain.PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.repos.Tournaments.Get(c.Request.Context(), tournamentID)
	if err != nil {
		writeRepoError(c, err)
		return
	}
	if tournament.Status == domain.TournamentUpcoming {
		existing, err := h.repos.Players.ListByTournament(c.Request.Context(), tournamentID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		seed := len(existing) + 1
		if req.Seed != nil {
			seed = *req.Seed
		}
		player := &domain.Player{
			TournamentID: tournamentID,
			Name:         req.Name,
			Rating:       req.Rating,
			Title:        req.Title,
			Status:       domain.PlayerActive,
			Seed:         seed,
		}
		if err := h.repos.Players.Create(c.Request.Context(), player); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, player)
		return
	}

	player, err := h.coord.AddLateEntry(c.Request.Context(), tournamentID, req, tournament.RoundsPlayed+1)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, player)
}

func (h *TournamentHandler) WithdrawPlayer(c *gin.Context) {
	tournamentID, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	playerID, err := strconv.ParseInt(c.Param("playerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
		return
	}
	var req struct {
		FromRound int `json:"from_round" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	player, err := h.coord.WithdrawPlayer(c.Request.Context(), tournamentID, domain.PlayerID(playerID), req.FromRound)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

func (h *TournamentHandler) ListRounds(c *gin.Context) {
	id, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	rounds, err := h.repos.Rounds.ListByTournament(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

func (h *TournamentHandler) CreateNextRound(c *gin.Context) {
	id, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	round, err := h.coord.CreateNextRound(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, round)
}

func (h *TournamentHandler) PublishRound(c *gin.Context) {
	id, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid round number"})
		return
	}
	round, games, err := h.coord.PublishRound(c.Request.Context(), id, number)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"round": round, "games": games})
}

func (h *TournamentHandler) CompleteRound(c *gin.Context) {
	id, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid round number"})
		return
	}
	round, err := h.coord.CompleteRound(c.Request.Context(), id, number)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, round)
}

func (h *TournamentHandler) ListGames(c *gin.Context) {
	id, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	games, err := h.repos.Games.ListByTournament(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (h *TournamentHandler) RecordResult(c *gin.Context) {
	tournamentID, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	gameID, err := strconv.ParseInt(c.Param("gameId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}
	var body struct {
		Result     domain.ResultToken `json:"result" binding:"required"`
		ResultType *domain.ResultType `json:"result_type,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := domain.RecordResultRequest{GameID: domain.GameID(gameID), Result: body.Result, ResultType: body.ResultType}
	if actor, ok := middleware.Actor(c); ok {
		req.Actor = &actor
	}

	game, err := h.coord.RecordResult(c.Request.Context(), tournamentID, req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func (h *TournamentHandler) ApproveResult(c *gin.Context) {
	tournamentID, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	gameID, err := strconv.ParseInt(c.Param("gameId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}
	actor, ok := middleware.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required to approve a result"})
		return
	}
	game, err := h.coord.ApproveResult(c.Request.Context(), tournamentID, domain.GameID(gameID), actor)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func (h *TournamentHandler) GetStandings(c *gin.Context) {
	id, err := parseTournamentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}
	result, err := h.coord.Standings().Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func writeRepoError(c *gin.Context, err error) {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func writeDomainError(c *gin.Context, err error) {
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
