package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/bolao-app/bolao-api/internal/domain/fixture"
	"github.com/bolao-app/bolao-api/internal/platform/cache"
	"github.com/bolao-app/bolao-api/internal/platform/logging"
)

// LiveJobNotifier schedules the next live sweep while matches are still running.
type LiveJobNotifier interface {
	ScheduleLiveCheck(ctx context.Context, fixtureIDs []int64) error
}

type LiveUpdateResult struct {
	Checked    int     `json:"checked"`
	Updated    int     `json:"updated"`
	UpdatedIDs []int64 `json:"updatedIds"`
}

type LiveUpdateConfig struct {
	LeadWindow time.Duration
	MaxWorkers int
}

type LiveUpdateService struct {
	provider    FixtureProvider
	fixtureRepo fixture.Repository
	cfg         LiveUpdateConfig
	cache       *cache.Store
	notifier    LiveJobNotifier
	logger      *logging.Logger
	now         func() time.Time
}

func NewLiveUpdateService(
	provider FixtureProvider,
	fixtureRepo fixture.Repository,
	cfg LiveUpdateConfig,
	store *cache.Store,
	notifier LiveJobNotifier,
	logger *logging.Logger,
) *LiveUpdateService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}
	if cfg.LeadWindow <= 0 {
		cfg.LeadWindow = 10 * time.Minute
	}

	return &LiveUpdateService{
		provider:    provider,
		fixtureRepo: fixtureRepo,
		cfg:         cfg,
		cache:       store,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Run refreshes status and score for every fixture that is about to kick off or
// is currently in play. One upstream failure never aborts the sweep: the fixture
// is counted as checked and skipped. A fixture row is written only when the
// fresh status differs or a score is present, and never against the status
// state machine.
func (s *LiveUpdateService) Run(ctx context.Context) (LiveUpdateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveUpdateService.Run")
	defer span.End()

	if s.provider == nil || s.fixtureRepo == nil {
		return LiveUpdateResult{}, fmt.Errorf("%w: live update is not fully configured", ErrDependencyUnavailable)
	}

	candidates, err := s.fixtureRepo.ListUpdatable(ctx, s.now().UTC(), s.cfg.LeadWindow)
	if err != nil {
		return LiveUpdateResult{}, fmt.Errorf("list updatable fixtures: %w", err)
	}

	result := LiveUpdateResult{
		Checked:    len(candidates),
		UpdatedIDs: []int64{},
	}
	if len(candidates) == 0 {
		return result, nil
	}

	workerCount := s.cfg.MaxWorkers
	if workerCount > len(candidates) {
		workerCount = len(candidates)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return LiveUpdateResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	updatedIDs := make(chan int64, len(candidates))
	var stillRunning atomic.Int32

	var workers sync.WaitGroup
	for _, candidate := range candidates {
		candidate := candidate
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			updated, inProgress := s.refreshFixture(ctx, candidate)
			if updated {
				updatedIDs <- candidate.ID
			}
			if inProgress {
				stillRunning.Add(1)
			}
		}); err != nil {
			workers.Done()
			return LiveUpdateResult{}, fmt.Errorf("submit fixture to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(updatedIDs)

	for id := range updatedIDs {
		result.UpdatedIDs = append(result.UpdatedIDs, id)
	}
	sort.Slice(result.UpdatedIDs, func(i, j int) bool { return result.UpdatedIDs[i] < result.UpdatedIDs[j] })
	result.Updated = len(result.UpdatedIDs)

	if result.Updated > 0 && s.cache != nil {
		s.cache.DeletePrefix(ctx, "fixtures:")
		s.cache.DeletePrefix(ctx, "leaderboard:")
	}

	if stillRunning.Load() > 0 && s.notifier != nil {
		if err := s.notifier.ScheduleLiveCheck(ctx, result.UpdatedIDs); err != nil {
			s.logger.WarnContext(ctx, "schedule next live check failed", "error", err)
		}
	}

	s.logger.InfoContext(ctx, "live sweep completed", "checked", result.Checked, "updated", result.Updated)
	return result, nil
}

// refreshFixture returns whether the row was written and whether the fixture is
// still in play after the refresh.
func (s *LiveUpdateService) refreshFixture(ctx context.Context, current fixture.Fixture) (bool, bool) {
	fresh, found, err := s.provider.FetchByID(ctx, current.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch live fixture failed", "fixture_id", current.ID, "error", err)
		return false, fixture.IsInProgress(current.StatusShort)
	}
	if !found {
		s.logger.WarnContext(ctx, "fixture missing upstream", "fixture_id", current.ID)
		return false, fixture.IsInProgress(current.StatusShort)
	}

	freshStatus := fixture.NormalizeStatus(fresh.StatusShort)
	statusChanged := freshStatus != fixture.NormalizeStatus(current.StatusShort)
	hasScore := fresh.HomeScore != nil || fresh.AwayScore != nil
	if !statusChanged && !hasScore {
		return false, fixture.IsInProgress(current.StatusShort)
	}

	if !fixture.AllowsTransition(current.StatusShort, freshStatus) {
		s.logger.WarnContext(ctx,
			"rejected status transition",
			"fixture_id", current.ID,
			"from", fixture.NormalizeStatus(current.StatusShort),
			"to", freshStatus,
		)
		return false, fixture.IsInProgress(current.StatusShort)
	}

	state := fixture.LiveState{
		StatusShort: freshStatus,
		HomeScore:   cloneIntPtr(fresh.HomeScore),
		AwayScore:   cloneIntPtr(fresh.AwayScore),
	}
	if err := s.fixtureRepo.UpdateLiveState(ctx, current.ID, state); err != nil {
		s.logger.WarnContext(ctx, "update live state failed", "fixture_id", current.ID, "error", err)
		return false, fixture.IsInProgress(current.StatusShort)
	}

	return true, fixture.IsInProgress(freshStatus)
}
