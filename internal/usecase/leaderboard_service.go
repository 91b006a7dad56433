package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bolao-app/bolao-api/internal/domain/leaderboard"
	"github.com/bolao-app/bolao-api/internal/domain/profile"
	"github.com/bolao-app/bolao-api/internal/platform/cache"
	"github.com/bolao-app/bolao-api/internal/platform/logging"
)

type LeaderboardConfig struct {
	Limit int
}

type LeaderboardService struct {
	leaderboardRepo leaderboard.Repository
	profileRepo     profile.Repository
	cfg             LeaderboardConfig
	cache           *cache.Store
	logger          *logging.Logger
}

func NewLeaderboardService(
	leaderboardRepo leaderboard.Repository,
	profileRepo profile.Repository,
	cfg LeaderboardConfig,
	store *cache.Store,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Limit < 1 {
		cfg.Limit = 50
	}

	return &LeaderboardService{
		leaderboardRepo: leaderboardRepo,
		profileRepo:     profileRepo,
		cfg:             cfg,
		cache:           store,
		logger:          logger,
	}
}

// ListTop returns the ranked leaderboard joined with display profiles. Ties share
// the points ordering from the database view; positions are assigned 1..n.
func (s *LeaderboardService) ListTop(ctx context.Context) ([]leaderboard.RankedEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ListTop")
	defer span.End()

	if s.leaderboardRepo == nil || s.profileRepo == nil {
		return nil, fmt.Errorf("%w: leaderboard service is not fully configured", ErrDependencyUnavailable)
	}

	loader := func(ctx context.Context) (any, error) {
		return s.loadRanked(ctx)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]leaderboard.RankedEntry), nil
	}

	value, err := s.cache.GetOrLoad(ctx, fmt.Sprintf("leaderboard:top:%d", s.cfg.Limit), loader)
	if err != nil {
		return nil, err
	}

	return value.([]leaderboard.RankedEntry), nil
}

func (s *LeaderboardService) loadRanked(ctx context.Context) ([]leaderboard.RankedEntry, error) {
	entries, err := s.leaderboardRepo.ListTop(ctx, s.cfg.Limit)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	if len(entries) == 0 {
		return []leaderboard.RankedEntry{}, nil
	}

	userIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if id := strings.TrimSpace(entry.UserID); id != "" {
			userIDs = append(userIDs, id)
		}
	}

	profilesByID := make(map[string]profile.Profile, len(userIDs))
	if len(userIDs) > 0 {
		profiles, err := s.profileRepo.ListByIDs(ctx, userIDs)
		if err != nil {
			return nil, fmt.Errorf("list profiles for leaderboard: %w", err)
		}
		for _, item := range profiles {
			profilesByID[item.ID] = item
		}
	}

	out := make([]leaderboard.RankedEntry, 0, len(entries))
	for index, entry := range entries {
		row := leaderboard.RankedEntry{
			Position:    index + 1,
			UserID:      entry.UserID,
			TotalPoints: entry.TotalPoints,
		}
		if prof, ok := profilesByID[entry.UserID]; ok {
			row.Username = prof.Username
			row.AvatarURL = prof.AvatarURL
		}
		out = append(out, row)
	}

	return out, nil
}
