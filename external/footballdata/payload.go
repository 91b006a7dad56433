package footballdata

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bolao-app/bolao-api/internal/usecase"
)

// API-Football wraps every payload in the same envelope. The errors field is
// an empty array on success and an object keyed by error kind on failure.
type fixturesEnvelope struct {
	Errors   any           `json:"errors"`
	Results  int           `json:"results"`
	Response []fixtureItem `json:"response"`
}

func (e fixturesEnvelope) errorMessage() string {
	switch errs := e.Errors.(type) {
	case map[string]any:
		if len(errs) == 0 {
			return ""
		}
		keys := make([]string, 0, len(errs))
		for key := range errs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", key, errs[key]))
		}
		return strings.Join(parts, "; ")
	case []any:
		if len(errs) == 0 {
			return ""
		}
		parts := make([]string, 0, len(errs))
		for _, item := range errs {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

type fixtureItem struct {
	Fixture fixtureCore   `json:"fixture"`
	League  fixtureLeague `json:"league"`
	Teams   fixtureTeams  `json:"teams"`
	Goals   fixtureGoals  `json:"goals"`
}

type fixtureCore struct {
	ID        int64         `json:"id"`
	Date      string        `json:"date"`
	Timestamp int64         `json:"timestamp"`
	Status    fixtureStatus `json:"status"`
}

type fixtureStatus struct {
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type fixtureLeague struct {
	ID    int64  `json:"id"`
	Round string `json:"round"`
}

type fixtureTeams struct {
	Home fixtureTeam `json:"home"`
	Away fixtureTeam `json:"away"`
}

type fixtureTeam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type fixtureGoals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

func (item fixtureItem) toExternal() usecase.ExternalFixture {
	return usecase.ExternalFixture{
		ID:           item.Fixture.ID,
		KickoffAt:    item.Fixture.kickoffAt(),
		StatusShort:  strings.TrimSpace(item.Fixture.Status.Short),
		StatusElapse: cloneIntPtr(item.Fixture.Status.Elapsed),
		HomeTeamID:   item.Teams.Home.ID,
		HomeTeamName: strings.TrimSpace(item.Teams.Home.Name),
		HomeTeamLogo: strings.TrimSpace(item.Teams.Home.Logo),
		AwayTeamID:   item.Teams.Away.ID,
		AwayTeamName: strings.TrimSpace(item.Teams.Away.Name),
		AwayTeamLogo: strings.TrimSpace(item.Teams.Away.Logo),
		LeagueID:     item.League.ID,
		Round:        strings.TrimSpace(item.League.Round),
		HomeScore:    cloneIntPtr(item.Goals.Home),
		AwayScore:    cloneIntPtr(item.Goals.Away),
	}
}

// kickoffAt prefers the RFC3339 date and falls back to the unix timestamp the
// provider sends alongside it.
func (core fixtureCore) kickoffAt() time.Time {
	if raw := strings.TrimSpace(core.Date); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			return parsed
		}
	}
	if core.Timestamp > 0 {
		return time.Unix(core.Timestamp, 0).UTC()
	}
	return time.Time{}
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
