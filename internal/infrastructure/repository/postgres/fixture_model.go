package postgres

import (
	"database/sql"
	"time"

	"github.com/bolao-app/bolao-api/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID           int64         `db:"id"`
	DateTime     time.Time     `db:"date_time"`
	StatusShort  string        `db:"status_short"`
	HomeTeamID   int64         `db:"home_team_id"`
	HomeTeamName string        `db:"home_team_name"`
	HomeTeamLogo string        `db:"home_team_logo"`
	AwayTeamID   int64         `db:"away_team_id"`
	AwayTeamName string        `db:"away_team_name"`
	AwayTeamLogo string        `db:"away_team_logo"`
	LeagueID     int64         `db:"league_id"`
	Round        string        `db:"round"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	Processed    bool          `db:"processed"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:           m.ID,
		DateTime:     m.DateTime,
		StatusShort:  m.StatusShort,
		HomeTeamID:   m.HomeTeamID,
		HomeTeamName: m.HomeTeamName,
		HomeTeamLogo: m.HomeTeamLogo,
		AwayTeamID:   m.AwayTeamID,
		AwayTeamName: m.AwayTeamName,
		AwayTeamLogo: m.AwayTeamLogo,
		LeagueID:     m.LeagueID,
		Round:        m.Round,
		HomeScore:    nullIntPtr(m.HomeScore),
		AwayScore:    nullIntPtr(m.AwayScore),
		Processed:    m.Processed,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

var fixtureColumns = []string{
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
	"processed",
	"created_at",
	"updated_at",
}
