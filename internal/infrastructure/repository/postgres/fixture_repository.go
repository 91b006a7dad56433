package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bolao-app/bolao-api/internal/domain/fixture"
	qb "github.com/bolao-app/bolao-api/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

const fixtureUpsertConflict = `
ON CONFLICT (id) DO UPDATE SET
    date_time = EXCLUDED.date_time,
    status_short = EXCLUDED.status_short,
    home_team_id = EXCLUDED.home_team_id,
    home_team_name = EXCLUDED.home_team_name,
    home_team_logo = EXCLUDED.home_team_logo,
    away_team_id = EXCLUDED.away_team_id,
    away_team_name = EXCLUDED.away_team_name,
    away_team_logo = EXCLUDED.away_team_logo,
    league_id = EXCLUDED.league_id,
    round = EXCLUDED.round,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    processed = FALSE,
    updated_at = NOW()`

func (r *FixtureRepository) UpsertBatch(ctx context.Context, fixtures []fixture.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}

	builder := qb.InsertInto("fixtures").
		Columns(
			"id",
			"date_time",
			"status_short",
			"home_team_id",
			"home_team_name",
			"home_team_logo",
			"away_team_id",
			"away_team_name",
			"away_team_logo",
			"league_id",
			"round",
			"home_score",
			"away_score",
		).
		Suffix(fixtureUpsertConflict)
	for _, item := range fixtures {
		builder.Values(
			item.ID,
			item.DateTime,
			item.StatusShort,
			item.HomeTeamID,
			item.HomeTeamName,
			item.HomeTeamLogo,
			item.AwayTeamID,
			item.AwayTeamName,
			item.AwayTeamLogo,
			item.LeagueID,
			item.Round,
			intPtrToNull(item.HomeScore),
			intPtrToNull(item.AwayScore),
		)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert fixtures query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for fixture upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fixtures: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fixture upsert: %w", err)
	}

	return nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *FixtureRepository) ListUpdatable(ctx context.Context, now time.Time, lead time.Duration) ([]fixture.Fixture, error) {
	inProgress := fixture.InProgressStatuses()
	statuses := make([]any, 0, len(inProgress))
	for _, status := range inProgress {
		statuses = append(statuses, status)
	}

	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(qb.Or(
			qb.And(
				qb.Eq("status_short", fixture.StatusNotStarted),
				qb.Lte("date_time", now.Add(lead)),
			),
			qb.In("status_short", statuses),
		)).
		OrderBy("date_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select updatable fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select updatable fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// UpdateLiveState writes status and scores for one fixture. Nil scores keep the
// stored values instead of clearing them.
func (r *FixtureRepository) UpdateLiveState(ctx context.Context, id int64, state fixture.LiveState) error {
	builder := qb.Update("fixtures").
		Set("status_short", state.StatusShort).
		SetExpr("updated_at", "NOW()")
	if state.HomeScore != nil {
		builder.Set("home_score", *state.HomeScore)
	}
	if state.AwayScore != nil {
		builder.Set("away_score", *state.AwayScore)
	}
	query, args, err := builder.Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build update live state query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update live state: %w", err)
	}

	return nil
}

func (r *FixtureRepository) ListWindow(ctx context.Context, from, to time.Time) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(
			qb.Expr("date_time >= ?", from),
			qb.Lte("date_time", to),
		).
		OrderBy("date_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures window query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures window: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
