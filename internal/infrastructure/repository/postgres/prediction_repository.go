package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bolao-app/bolao-api/internal/domain/prediction"
	qb "github.com/bolao-app/bolao-api/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Upsert(ctx context.Context, p prediction.Prediction) (prediction.Prediction, error) {
	const query = `
INSERT INTO predictions (user_id, fixture_id, home_score, away_score)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, fixture_id) DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    updated_at = NOW()
RETURNING id, user_id, fixture_id, home_score, away_score, created_at, updated_at`

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, p.UserID, p.FixtureID, p.HomeScore, p.AwayScore); err != nil {
		return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
	}

	return row.toDomain(), nil
}

// UpsertWhenOpen re-checks inside the statement that the fixture has not kicked
// off, so a status flip between the application check and this write cannot slip
// a late prediction through.
func (r *PredictionRepository) UpsertWhenOpen(ctx context.Context, p prediction.Prediction) (prediction.Prediction, bool, error) {
	const query = `
INSERT INTO predictions (user_id, fixture_id, home_score, away_score)
SELECT $1, $2, $3, $4
WHERE EXISTS (
    SELECT 1 FROM fixtures
    WHERE id = $2 AND status_short IN ('NS', 'TBD')
)
ON CONFLICT (user_id, fixture_id) DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    updated_at = NOW()
WHERE EXISTS (
    SELECT 1 FROM fixtures
    WHERE id = predictions.fixture_id AND status_short IN ('NS', 'TBD')
)
RETURNING id, user_id, fixture_id, home_score, away_score, created_at, updated_at`

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, p.UserID, p.FixtureID, p.HomeScore, p.AwayScore); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("guarded upsert prediction: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PredictionRepository) GetByUserAndFixture(ctx context.Context, userID string, fixtureID int64) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select(predictionColumns...).From("predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("fixture_id", fixtureID),
		).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build select prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select(predictionColumns...).From("predictions").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions by user query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select predictions by user: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
