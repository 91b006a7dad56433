package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bolao-app/bolao-api/internal/domain/fixture"
	"github.com/bolao-app/bolao-api/internal/domain/prediction"
	"github.com/bolao-app/bolao-api/internal/domain/user"
	"github.com/bolao-app/bolao-api/internal/platform/cache"
	"github.com/bolao-app/bolao-api/internal/platform/logging"
)

type SubmitPredictionInput struct {
	FixtureID int64
	HomeScore int
	AwayScore int
}

type PredictionConfig struct {
	// StrictLock verifies inside the upsert statement that the fixture is still
	// open, closing the race between the kickoff check and the write.
	StrictLock bool
}

type PredictionService struct {
	predictionRepo prediction.Repository
	fixtureRepo    fixture.Repository
	cfg            PredictionConfig
	cache          *cache.Store
	logger         *logging.Logger
}

func NewPredictionService(
	predictionRepo prediction.Repository,
	fixtureRepo fixture.Repository,
	cfg PredictionConfig,
	store *cache.Store,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PredictionService{
		predictionRepo: predictionRepo,
		fixtureRepo:    fixtureRepo,
		cfg:            cfg,
		cache:          store,
		logger:         logger,
	}
}

// Submit stores the caller's score prediction for a fixture. One prediction per
// user per fixture: resubmitting overwrites the previous guess as long as the
// match has not kicked off.
func (s *PredictionService) Submit(ctx context.Context, principal user.Principal, input SubmitPredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	if s.predictionRepo == nil || s.fixtureRepo == nil {
		return prediction.Prediction{}, fmt.Errorf("%w: prediction service is not fully configured", ErrDependencyUnavailable)
	}

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: missing authenticated user", ErrUnauthorized)
	}
	if input.FixtureID <= 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: home=%d away=%d", ErrNegativeScore, input.HomeScore, input.AwayScore)
	}

	row := prediction.Prediction{
		UserID:    userID,
		FixtureID: input.FixtureID,
		HomeScore: input.HomeScore,
		AwayScore: input.AwayScore,
	}

	if s.cfg.StrictLock {
		return s.submitStrict(ctx, row)
	}

	match, found, err := s.fixtureRepo.GetByID(ctx, input.FixtureID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: get fixture id=%d: %v", ErrFixtureLookup, input.FixtureID, err)
	}
	if !found {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture id=%d", ErrNotFound, input.FixtureID)
	}
	if !fixture.IsScheduled(match.StatusShort) {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture id=%d status=%s", ErrPredictionsClosed, input.FixtureID, fixture.NormalizeStatus(match.StatusShort))
	}

	saved, err := s.predictionRepo.Upsert(ctx, row)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: upsert fixture_id=%d user_id=%s: %v", ErrPredictionSave, input.FixtureID, userID, err)
	}
	s.invalidate(ctx, userID)

	return saved, nil
}

// submitStrict pushes the open-for-predictions check into the upsert statement.
// When the guard rejects the write, a fixture lookup decides between not-found
// and closed.
func (s *PredictionService) submitStrict(ctx context.Context, row prediction.Prediction) (prediction.Prediction, error) {
	saved, ok, err := s.predictionRepo.UpsertWhenOpen(ctx, row)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: guarded upsert fixture_id=%d user_id=%s: %v", ErrPredictionSave, row.FixtureID, row.UserID, err)
	}
	if ok {
		s.invalidate(ctx, row.UserID)
		return saved, nil
	}

	_, found, err := s.fixtureRepo.GetByID(ctx, row.FixtureID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: get fixture id=%d: %v", ErrFixtureLookup, row.FixtureID, err)
	}
	if !found {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture id=%d", ErrNotFound, row.FixtureID)
	}

	return prediction.Prediction{}, fmt.Errorf("%w: fixture id=%d", ErrPredictionsClosed, row.FixtureID)
}

// ListMine returns all predictions the caller has ever submitted.
func (s *PredictionService) ListMine(ctx context.Context, principal user.Principal) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListMine")
	defer span.End()

	if s.predictionRepo == nil {
		return nil, fmt.Errorf("%w: prediction service is not fully configured", ErrDependencyUnavailable)
	}

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: missing authenticated user", ErrUnauthorized)
	}

	loader := func(ctx context.Context) (any, error) {
		items, err := s.predictionRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list predictions user_id=%s: %w", userID, err)
		}
		return items, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]prediction.Prediction), nil
	}

	value, err := s.cache.GetOrLoad(ctx, "predictions:"+userID, loader)
	if err != nil {
		return nil, err
	}

	return value.([]prediction.Prediction), nil
}

func (s *PredictionService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, "predictions:"+userID)
	s.cache.DeletePrefix(ctx, "leaderboard:")
}
