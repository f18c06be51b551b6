package domain

import "time"

// RoundStatus is the lifecycle state of a Round.
type RoundStatus string

// Round statuses.
const (
	RoundPlanned   RoundStatus = "planned"
	RoundPublished RoundStatus = "published"
	RoundCompleted RoundStatus = "completed"
	RoundVerified  RoundStatus = "verified"
)

// Round groups the Games played in one ordinal round of a Tournament.
type Round struct {
	ID           RoundID
	TournamentID TournamentID
	Number       int
	Status       RoundStatus

	PublishedAt *time.Time
	CompletedAt *time.Time
	VerifiedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanPublish reports whether round r-1's status allows this round to be
// published, per spec.md §3's Round invariant ("round r may be Published
// only when round r-1 is Completed or Verified, or r=1").
func CanPublish(thisRoundNumber int, previousRoundStatus RoundStatus) bool {
	if thisRoundNumber == 1 {
		return true
	}
	return previousRoundStatus == RoundCompleted || previousRoundStatus == RoundVerified
}
