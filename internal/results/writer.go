package results

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pawnengine/core/internal/domain"
	"github.com/pawnengine/core/internal/repository"
)

// Write runs Validate, then applies req to game through repo, appending
// an audit entry when RequiresAudit says a correction is being recorded
// (spec.md §4.2). It returns the updated Game.
//
// Write never decides approval state on its own authority beyond what
// the result token dictates: a token that RequiresApproval lands the
// game in Pending-Approval regardless of who is applying it; Approve is
// the only path from there to Decided.
func Write(ctx context.Context, repo repository.GameRepository, req domain.RecordResultRequest, game *domain.Game, round *domain.Round, white, black *domain.Player) (*domain.Game, error) {
	if err := Validate(req, game, round, white, black); err != nil {
		return nil, err
	}
	if game.Status == domain.GameDecided && game.Result == req.Result {
		return game, nil // duplicate no-op, per Validate step 3
	}

	needsAudit := RequiresAudit(req, game)
	before := game.Result

	updated := *game
	updated.Result = req.Result
	updated.ResultType = req.ResultType
	updated.RecordedBy = req.Actor
	updated.UpdatedAt = time.Now()
	if req.Result.RequiresApproval() {
		updated.Status = domain.GamePendingApproval
	} else {
		updated.Status = domain.GameDecided
	}

	if err := repo.Update(ctx, &updated); err != nil {
		return nil, domain.NewRepositoryError("results.Write", err)
	}

	if needsAudit {
		entry := &domain.AuditEntry{
			ID:     uuid.New(),
			GameID: game.ID,
			Actor:  *req.Actor,
			Before: before,
			After:  req.Result,
			At:     updated.UpdatedAt,
		}
		if err := repo.AppendAudit(ctx, entry); err != nil {
			return nil, domain.NewRepositoryError("results.Write.audit", err)
		}
	}

	return &updated, nil
}

// Approve moves a Pending-Approval game to Decided. actor must be
// distinct from whoever recorded the result (spec.md §4.2 step 5
// "a subsequent approval by a distinct actor").
func Approve(ctx context.Context, repo repository.GameRepository, game *domain.Game, actor uuid.UUID) (*domain.Game, error) {
	if game.Status != domain.GamePendingApproval {
		return nil, &domain.ValidationError{Reasons: []string{"game is not pending approval"}}
	}
	if game.RecordedBy != nil && *game.RecordedBy == actor {
		return nil, &domain.ValidationError{Reasons: []string{"approval must come from an actor distinct from the recorder"}}
	}

	updated := *game
	updated.Status = domain.GameDecided
	updated.ApprovedBy = &actor
	updated.UpdatedAt = time.Now()

	if err := repo.Update(ctx, &updated); err != nil {
		return nil, domain.NewRepositoryError("results.Approve", err)
	}
	return &updated, nil
}
