package postgres

import (
	"time"

	"github.com/bolao-app/bolao-api/internal/domain/prediction"
)

type predictionTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	FixtureID int64     `db:"fixture_id"`
	HomeScore int       `db:"home_score"`
	AwayScore int       `db:"away_score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m predictionTableModel) toDomain() prediction.Prediction {
	return prediction.Prediction{
		ID:        m.ID,
		UserID:    m.UserID,
		FixtureID: m.FixtureID,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

var predictionColumns = []string{
	"id",
	"user_id",
	"fixture_id",
	"home_score",
	"away_score",
	"created_at",
	"updated_at",
}
