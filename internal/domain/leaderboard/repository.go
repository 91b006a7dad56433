package leaderboard

import "context"

type Repository interface {
	// ListTop returns at most limit entries ordered by total points descending.
	ListTop(ctx context.Context, limit int) ([]Entry, error)
}
