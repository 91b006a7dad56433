package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bolao-app/bolao-api/internal/domain/fixture"
	"github.com/bolao-app/bolao-api/internal/platform/cache"
	"github.com/bolao-app/bolao-api/internal/platform/logging"
)

const (
	defaultFixtureLookback  = 7 * 24 * time.Hour
	defaultFixtureLookahead = 30 * 24 * time.Hour
)

// FixtureQueryService serves read paths for the fixtures screen.
type FixtureQueryService struct {
	fixtureRepo fixture.Repository
	cache       *cache.Store
	logger      *logging.Logger
	now         func() time.Time
}

func NewFixtureQueryService(fixtureRepo fixture.Repository, store *cache.Store, logger *logging.Logger) *FixtureQueryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureQueryService{
		fixtureRepo: fixtureRepo,
		cache:       store,
		logger:      logger,
		now:         time.Now,
	}
}

// ListWindow returns fixtures with kickoff inside [from, to], ordered by kickoff.
// Zero bounds fall back to a week back and a month ahead.
func (s *FixtureQueryService) ListWindow(ctx context.Context, from, to time.Time) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureQueryService.ListWindow")
	defer span.End()

	if s.fixtureRepo == nil {
		return nil, fmt.Errorf("%w: fixture query service is not fully configured", ErrDependencyUnavailable)
	}

	now := s.now().UTC()
	if from.IsZero() {
		from = now.Add(-defaultFixtureLookback)
	}
	if to.IsZero() {
		to = now.Add(defaultFixtureLookahead)
	}
	from = from.UTC()
	to = to.UTC()
	if to.Before(from) {
		return nil, fmt.Errorf("%w: window end precedes start", ErrInvalidInput)
	}

	loader := func(ctx context.Context) (any, error) {
		items, err := s.fixtureRepo.ListWindow(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("list fixtures window: %w", err)
		}
		return items, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]fixture.Fixture), nil
	}

	key := fmt.Sprintf("fixtures:window:%d:%d", from.Unix(), to.Unix())
	value, err := s.cache.GetOrLoad(ctx, key, loader)
	if err != nil {
		return nil, err
	}

	return value.([]fixture.Fixture), nil
}

func (s *FixtureQueryService) GetByID(ctx context.Context, fixtureID int64) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureQueryService.GetByID")
	defer span.End()

	if s.fixtureRepo == nil {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture query service is not fully configured", ErrDependencyUnavailable)
	}
	if fixtureID <= 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	match, found, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture id=%d: %w", fixtureID, err)
	}
	if !found {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id=%d", ErrNotFound, fixtureID)
	}

	return match, nil
}
