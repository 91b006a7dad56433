package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bolao-app/bolao-api/internal/domain/fixture"
	"github.com/bolao-app/bolao-api/internal/platform/cache"
	"github.com/bolao-app/bolao-api/internal/platform/logging"
)

// FixtureProvider fetches fixture data from the external football API.
type FixtureProvider interface {
	FetchUpcomingByTeam(ctx context.Context, query UpcomingFixturesQuery) ([]ExternalFixture, error)
	FetchByID(ctx context.Context, fixtureID int64) (ExternalFixture, bool, error)
}

type UpcomingFixturesQuery struct {
	TeamID   int64
	Season   int
	Next     int
	Timezone string
}

type ExternalFixture struct {
	ID           int64
	KickoffAt    time.Time
	StatusShort  string
	StatusElapse *int
	HomeTeamID   int64
	HomeTeamName string
	HomeTeamLogo string
	AwayTeamID   int64
	AwayTeamName string
	AwayTeamLogo string
	LeagueID     int64
	Round        string
	HomeScore    *int
	AwayScore    *int
}

type SyncedFixture struct {
	ID   int64  `json:"id"`
	Home string `json:"home"`
	Away string `json:"away"`
}

type SyncResult struct {
	Synced   int             `json:"synced"`
	Fixtures []SyncedFixture `json:"fixtures"`
}

type FixtureSyncConfig struct {
	TeamID    int64
	Season    int
	NextCount int
	Timezone  string
}

type FixtureSyncService struct {
	provider    FixtureProvider
	fixtureRepo fixture.Repository
	cfg         FixtureSyncConfig
	cache       *cache.Store
	logger      *logging.Logger
}

func NewFixtureSyncService(
	provider FixtureProvider,
	fixtureRepo fixture.Repository,
	cfg FixtureSyncConfig,
	store *cache.Store,
	logger *logging.Logger,
) *FixtureSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureSyncService{
		provider:    provider,
		fixtureRepo: fixtureRepo,
		cfg:         cfg,
		cache:       store,
		logger:      logger,
	}
}

// SyncUpcoming pulls the next scheduled matches for the configured team and
// upserts them in one transaction. Restored rows come back with processed=false
// so finished-match scoring picks them up again.
func (s *FixtureSyncService) SyncUpcoming(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureSyncService.SyncUpcoming")
	defer span.End()

	if s.provider == nil || s.fixtureRepo == nil {
		return SyncResult{}, fmt.Errorf("%w: fixture sync is not fully configured", ErrDependencyUnavailable)
	}

	query := UpcomingFixturesQuery{
		TeamID:   s.cfg.TeamID,
		Season:   s.cfg.Season,
		Next:     s.cfg.NextCount,
		Timezone: s.cfg.Timezone,
	}
	items, err := s.provider.FetchUpcomingByTeam(ctx, query)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch upcoming fixtures team_id=%d season=%d: %w", query.TeamID, query.Season, err)
	}

	mapped := mapExternalFixturesToDomain(items)
	if len(mapped) > 0 {
		if err := s.fixtureRepo.UpsertBatch(ctx, mapped); err != nil {
			return SyncResult{}, fmt.Errorf("upsert fixtures team_id=%d: %w", query.TeamID, err)
		}
	}
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, "fixtures:")
	}

	result := SyncResult{
		Synced:   len(mapped),
		Fixtures: make([]SyncedFixture, 0, len(mapped)),
	}
	for _, item := range mapped {
		result.Fixtures = append(result.Fixtures, SyncedFixture{
			ID:   item.ID,
			Home: item.HomeTeamName,
			Away: item.AwayTeamName,
		})
	}

	s.logger.InfoContext(ctx, "fixture sync completed", "team_id", query.TeamID, "synced", result.Synced)
	return result, nil
}

func mapExternalFixturesToDomain(items []ExternalFixture) []fixture.Fixture {
	if len(items) == 0 {
		return nil
	}

	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		if item.ID <= 0 || item.KickoffAt.IsZero() {
			continue
		}

		out = append(out, fixture.Fixture{
			ID:           item.ID,
			DateTime:     item.KickoffAt.UTC(),
			StatusShort:  fixture.NormalizeStatus(item.StatusShort),
			HomeTeamID:   item.HomeTeamID,
			HomeTeamName: strings.TrimSpace(item.HomeTeamName),
			HomeTeamLogo: strings.TrimSpace(item.HomeTeamLogo),
			AwayTeamID:   item.AwayTeamID,
			AwayTeamName: strings.TrimSpace(item.AwayTeamName),
			AwayTeamLogo: strings.TrimSpace(item.AwayTeamLogo),
			LeagueID:     item.LeagueID,
			Round:        strings.TrimSpace(item.Round),
			HomeScore:    cloneIntPtr(item.HomeScore),
			AwayScore:    cloneIntPtr(item.AwayScore),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].DateTime.Before(out[j].DateTime)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
