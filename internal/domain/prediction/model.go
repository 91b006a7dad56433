package prediction

import "time"

// Prediction is one user's guessed final score for one fixture. There is at most one
// row per (user, fixture); resubmitting overwrites the scores until kickoff.
type Prediction struct {
	ID        string
	UserID    string
	FixtureID int64
	HomeScore int
	AwayScore int
	CreatedAt time.Time
	UpdatedAt time.Time
}
