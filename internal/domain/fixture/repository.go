package fixture

import (
	"context"
	"time"
)

// Repository exposes fixture storage operations.
type Repository interface {
	// UpsertBatch writes the full batch in one transaction, keyed by fixture id.
	// Existing rows are overwritten and their processed flag reset to false.
	UpsertBatch(ctx context.Context, fixtures []Fixture) error

	GetByID(ctx context.Context, id int64) (Fixture, bool, error)

	// ListUpdatable selects fixtures that are imminent (still NS with kickoff at most
	// `lead` away from `now`) or currently in progress.
	ListUpdatable(ctx context.Context, now time.Time, lead time.Duration) ([]Fixture, error)

	// UpdateLiveState is a targeted write of status, scores and updated_at for one
	// fixture. It is a no-op snapshot write, safe to repeat.
	UpdateLiveState(ctx context.Context, id int64, state LiveState) error

	// ListWindow returns fixtures ordered by kickoff inside [from, to].
	ListWindow(ctx context.Context, from, to time.Time) ([]Fixture, error)
}
