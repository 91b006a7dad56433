package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bolao-app/bolao-api/internal/domain/leaderboard"
	qb "github.com/bolao-app/bolao-api/internal/platform/querybuilder"
)

// LeaderboardRepository reads the leaderboard view. Points per settled
// prediction are computed inside the view, not here.
type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) ListTop(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	if limit < 1 {
		limit = 50
	}

	query, args, err := qb.Select("user_id", "total_points").From("leaderboard").
		OrderBy("total_points DESC", "user_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leaderboard query: %w", err)
	}

	var rows []struct {
		UserID      string `db:"user_id"`
		TotalPoints int    `db:"total_points"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboard.Entry{
			UserID:      row.UserID,
			TotalPoints: row.TotalPoints,
		})
	}

	return out, nil
}
