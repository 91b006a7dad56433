package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bolao-app/bolao-api/internal/domain/fixture"
	"github.com/bolao-app/bolao-api/internal/domain/leaderboard"
	"github.com/bolao-app/bolao-api/internal/domain/prediction"
	"github.com/bolao-app/bolao-api/internal/domain/profile"
)

type fakeFixtureRepo struct {
	mu sync.Mutex

	fixtures map[int64]fixture.Fixture

	upsertBatches [][]fixture.Fixture
	upsertErr     error

	getErr error

	updatable    []fixture.Fixture
	updatableErr error

	liveWrites    map[int64]fixture.LiveState
	liveWriteErr  map[int64]error
	windowResults []fixture.Fixture
	windowErr     error
}

func newFakeFixtureRepo() *fakeFixtureRepo {
	return &fakeFixtureRepo{
		fixtures:     make(map[int64]fixture.Fixture),
		liveWrites:   make(map[int64]fixture.LiveState),
		liveWriteErr: make(map[int64]error),
	}
}

func (f *fakeFixtureRepo) UpsertBatch(_ context.Context, fixtures []fixture.Fixture) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upsertBatches = append(f.upsertBatches, fixtures)
	for _, item := range fixtures {
		f.fixtures[item.ID] = item
	}
	return nil
}

func (f *fakeFixtureRepo) GetByID(_ context.Context, id int64) (fixture.Fixture, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return fixture.Fixture{}, false, f.getErr
	}
	item, ok := f.fixtures[id]
	return item, ok, nil
}

func (f *fakeFixtureRepo) ListUpdatable(_ context.Context, _ time.Time, _ time.Duration) ([]fixture.Fixture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updatableErr != nil {
		return nil, f.updatableErr
	}
	return f.updatable, nil
}

func (f *fakeFixtureRepo) UpdateLiveState(_ context.Context, id int64, state fixture.LiveState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.liveWriteErr[id]; err != nil {
		return err
	}
	f.liveWrites[id] = state
	return nil
}

func (f *fakeFixtureRepo) ListWindow(_ context.Context, _, _ time.Time) ([]fixture.Fixture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.windowErr != nil {
		return nil, f.windowErr
	}
	return f.windowResults, nil
}

type fakeFixtureProvider struct {
	mu sync.Mutex

	upcoming    []ExternalFixture
	upcomingErr error

	byID    map[int64]ExternalFixture
	byIDErr map[int64]error

	fetchedIDs []int64
}

func newFakeFixtureProvider() *fakeFixtureProvider {
	return &fakeFixtureProvider{
		byID:    make(map[int64]ExternalFixture),
		byIDErr: make(map[int64]error),
	}
}

func (f *fakeFixtureProvider) FetchUpcomingByTeam(_ context.Context, _ UpcomingFixturesQuery) ([]ExternalFixture, error) {
	if f.upcomingErr != nil {
		return nil, f.upcomingErr
	}
	return f.upcoming, nil
}

func (f *fakeFixtureProvider) FetchByID(_ context.Context, fixtureID int64) (ExternalFixture, bool, error) {
	f.mu.Lock()
	f.fetchedIDs = append(f.fetchedIDs, fixtureID)
	f.mu.Unlock()
	if err := f.byIDErr[fixtureID]; err != nil {
		return ExternalFixture{}, false, err
	}
	item, ok := f.byID[fixtureID]
	return item, ok, nil
}

type fakePredictionRepo struct {
	mu sync.Mutex

	rows map[string]prediction.Prediction

	upsertErr error

	whenOpenAllowed bool
	whenOpenErr     error
}

func newFakePredictionRepo() *fakePredictionRepo {
	return &fakePredictionRepo{rows: make(map[string]prediction.Prediction)}
}

func predictionKey(userID string, fixtureID int64) string {
	return fmt.Sprintf("%s/%d", userID, fixtureID)
}

func (f *fakePredictionRepo) Upsert(_ context.Context, p prediction.Prediction) (prediction.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return prediction.Prediction{}, f.upsertErr
	}
	p.ID = "pred-1"
	f.rows[predictionKey(p.UserID, p.FixtureID)] = p
	return p, nil
}

func (f *fakePredictionRepo) UpsertWhenOpen(_ context.Context, p prediction.Prediction) (prediction.Prediction, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.whenOpenErr != nil {
		return prediction.Prediction{}, false, f.whenOpenErr
	}
	if !f.whenOpenAllowed {
		return prediction.Prediction{}, false, nil
	}
	p.ID = "pred-1"
	f.rows[predictionKey(p.UserID, p.FixtureID)] = p
	return p, true, nil
}

func (f *fakePredictionRepo) GetByUserAndFixture(_ context.Context, userID string, fixtureID int64) (prediction.Prediction, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[predictionKey(userID, fixtureID)]
	return row, ok, nil
}

func (f *fakePredictionRepo) ListByUser(_ context.Context, userID string) ([]prediction.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]prediction.Prediction, 0, len(f.rows))
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeLeaderboardRepo struct {
	entries []leaderboard.Entry
	err     error
}

func (f *fakeLeaderboardRepo) ListTop(_ context.Context, _ int) ([]leaderboard.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeProfileRepo struct {
	profiles []profile.Profile
	err      error
}

func (f *fakeProfileRepo) ListByIDs(_ context.Context, _ []string) ([]profile.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles, nil
}

type fakeLiveNotifier struct {
	mu    sync.Mutex
	calls [][]int64
	err   error
}

func (f *fakeLiveNotifier) ScheduleLiveCheck(_ context.Context, fixtureIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fixtureIDs)
	return f.err
}
