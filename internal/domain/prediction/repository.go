package prediction

import "context"

// Repository exposes prediction storage operations.
type Repository interface {
	// Upsert inserts or overwrites the caller's prediction for the fixture and
	// returns the persisted row.
	Upsert(ctx context.Context, p Prediction) (Prediction, error)

	// UpsertWhenOpen behaves like Upsert but re-verifies inside the same statement
	// that the fixture is still open for predictions. The second return value is
	// false when the guard rejected the write.
	UpsertWhenOpen(ctx context.Context, p Prediction) (Prediction, bool, error)

	GetByUserAndFixture(ctx context.Context, userID string, fixtureID int64) (Prediction, bool, error)

	ListByUser(ctx context.Context, userID string) ([]Prediction, error)
}
