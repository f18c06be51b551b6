// Package results implements C2, the result validator and writer:
// record_result composes an ordered chain of checks, short-circuiting on
// the first hard failure, then applies the write and, where the
// approval policy requires it, parks the game in Pending-Approval
// (spec.md §4.2).
package results

import (
	"fmt"

	"github.com/pawnengine/core/internal/domain"
)

// Validate runs spec.md §4.2's ordered check chain against req and the
// game/round/players it refers to. It never touches a repository --
// callers (C5) fetch the arguments first so this stays a pure function.
func Validate(req domain.RecordResultRequest, game *domain.Game, round *domain.Round, white, black *domain.Player) error {
	var reasons []string

	// 1. Format check.
	if !domain.ValidResultToken(req.Result) {
		reasons = append(reasons, fmt.Sprintf("%q is not a recognised result token", req.Result))
	} else if !domain.ResultTypeCompatible(req.Result, req.ResultType) {
		reasons = append(reasons, fmt.Sprintf("result type %v is not compatible with token %q", req.ResultType, req.Result))
	}
	if len(reasons) > 0 {
		return &domain.ValidationError{Reasons: reasons}
	}

	// 2. Existence: the round the game belongs to must be Published.
	if round.Status != domain.RoundPublished {
		return &domain.ValidationError{Reasons: []string{
			fmt.Sprintf("round %d is %s, not published", round.Number, round.Status),
		}}
	}

	// 3. Duplicate detection.
	if game.Status == domain.GameDecided {
		if game.Result == req.Result {
			return nil // identical re-submission: a no-op, not an error
		}
		if game.Status != domain.GamePendingApproval && req.Actor == nil {
			return &domain.ValidationError{Reasons: []string{
				"changing an already-decided result requires an actor with authority",
			}}
		}
	}

	// 4. Participant sanity.
	if !game.IsBye() {
		if white == nil || black == nil {
			return &domain.ValidationError{Reasons: []string{"both players must exist for a non-bye game"}}
		}
		if white.ID == black.ID {
			return &domain.ValidationError{Reasons: []string{"white and black must be distinct players"}}
		}
		if !white.IsEligibleForRound(round.Number) {
			reasons = append(reasons, fmt.Sprintf("white player %d is not eligible for round %d", white.ID, round.Number))
		}
		if !black.IsEligibleForRound(round.Number) {
			reasons = append(reasons, fmt.Sprintf("black player %d is not eligible for round %d", black.ID, round.Number))
		}
	}
	if len(reasons) > 0 {
		return &domain.ValidationError{Reasons: reasons}
	}

	// 5. Approval policy.
	if req.Result.RequiresApproval() && req.Actor == nil {
		return &domain.ValidationError{Reasons: []string{
			fmt.Sprintf("result %q requires an actor and enters pending approval", req.Result),
		}}
	}

	return nil
}

// RequiresAudit reports whether applying req to game should append an
// AuditEntry (spec.md §4.2 step 3: a differing correction to an
// already-decided game).
func RequiresAudit(req domain.RecordResultRequest, game *domain.Game) bool {
	return game.Status == domain.GameDecided && game.Result != req.Result
}
