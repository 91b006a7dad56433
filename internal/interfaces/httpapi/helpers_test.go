package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/bolao-app/bolao-api/internal/domain/fixture"
	"github.com/bolao-app/bolao-api/internal/domain/leaderboard"
	"github.com/bolao-app/bolao-api/internal/domain/prediction"
	"github.com/bolao-app/bolao-api/internal/domain/profile"
	"github.com/bolao-app/bolao-api/internal/domain/user"
	"github.com/bolao-app/bolao-api/internal/usecase"
)

const testJobToken = "job-secret"

type memFixtureRepo struct {
	mu       sync.Mutex
	fixtures map[int64]fixture.Fixture
	getErr   error
}

func newMemFixtureRepo(fixtures ...fixture.Fixture) *memFixtureRepo {
	repo := &memFixtureRepo{fixtures: make(map[int64]fixture.Fixture)}
	for _, f := range fixtures {
		repo.fixtures[f.ID] = f
	}
	return repo
}

func (r *memFixtureRepo) UpsertBatch(_ context.Context, fixtures []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range fixtures {
		r.fixtures[f.ID] = f
	}
	return nil
}

func (r *memFixtureRepo) GetByID(_ context.Context, id int64) (fixture.Fixture, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return fixture.Fixture{}, false, r.getErr
	}
	f, ok := r.fixtures[id]
	return f, ok, nil
}

func (r *memFixtureRepo) ListUpdatable(_ context.Context, now time.Time, lead time.Duration) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		imminent := fixture.NormalizeStatus(f.StatusShort) == fixture.StatusNotStarted && !f.DateTime.After(now.Add(lead))
		if imminent || fixture.IsInProgress(f.StatusShort) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memFixtureRepo) UpdateLiveState(_ context.Context, id int64, state fixture.LiveState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fixtures[id]
	if !ok {
		return fmt.Errorf("fixture %d not found", id)
	}
	f.StatusShort = state.StatusShort
	if state.HomeScore != nil {
		f.HomeScore = state.HomeScore
	}
	if state.AwayScore != nil {
		f.AwayScore = state.AwayScore
	}
	r.fixtures[id] = f
	return nil
}

func (r *memFixtureRepo) ListWindow(_ context.Context, from, to time.Time) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		if !f.DateTime.Before(from) && !f.DateTime.After(to) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

type memPredictionRepo struct {
	mu   sync.Mutex
	rows map[string]prediction.Prediction
	seq  int
}

func newMemPredictionRepo() *memPredictionRepo {
	return &memPredictionRepo{rows: make(map[string]prediction.Prediction)}
}

func predictionKey(userID string, fixtureID int64) string {
	return fmt.Sprintf("%s/%d", userID, fixtureID)
}

func (r *memPredictionRepo) Upsert(_ context.Context, p prediction.Prediction) (prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := predictionKey(p.UserID, p.FixtureID)
	if existing, ok := r.rows[key]; ok {
		existing.HomeScore = p.HomeScore
		existing.AwayScore = p.AwayScore
		existing.UpdatedAt = time.Now()
		r.rows[key] = existing
		return existing, nil
	}
	r.seq++
	p.ID = fmt.Sprintf("pred-%d", r.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.rows[key] = p
	return p, nil
}

func (r *memPredictionRepo) UpsertWhenOpen(ctx context.Context, p prediction.Prediction) (prediction.Prediction, bool, error) {
	saved, err := r.Upsert(ctx, p)
	return saved, err == nil, err
}

func (r *memPredictionRepo) GetByUserAndFixture(_ context.Context, userID string, fixtureID int64) (prediction.Prediction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[predictionKey(userID, fixtureID)]
	return p, ok, nil
}

func (r *memPredictionRepo) ListByUser(_ context.Context, userID string) ([]prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]prediction.Prediction, 0, len(r.rows))
	for _, p := range r.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FixtureID < out[j].FixtureID })
	return out, nil
}

type memLeaderboardRepo struct {
	entries []leaderboard.Entry
}

func (r *memLeaderboardRepo) ListTop(_ context.Context, limit int) ([]leaderboard.Entry, error) {
	if limit > 0 && len(r.entries) > limit {
		return r.entries[:limit], nil
	}
	return r.entries, nil
}

type memProfileRepo struct {
	profiles map[string]profile.Profile
}

func (r *memProfileRepo) ListByIDs(_ context.Context, ids []string) ([]profile.Profile, error) {
	out := make([]profile.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubVerifier struct {
	principals map[string]user.Principal
}

func (v *stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	}
	return p, nil
}

type stubProvider struct {
	mu       sync.Mutex
	upcoming []usecase.ExternalFixture
	byID     map[int64]usecase.ExternalFixture
	err      error
}

func (p *stubProvider) FetchUpcomingByTeam(_ context.Context, _ usecase.UpcomingFixturesQuery) ([]usecase.ExternalFixture, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return p.upcoming, nil
}

func (p *stubProvider) FetchByID(_ context.Context, id int64) (usecase.ExternalFixture, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return usecase.ExternalFixture{}, false, p.err
	}
	f, ok := p.byID[id]
	return f, ok, nil
}

type stubNotifier struct{}

func (stubNotifier) ScheduleLiveCheck(context.Context, []int64) error { return nil }

type routerFixtures struct {
	fixtureRepo    *memFixtureRepo
	predictionRepo *memPredictionRepo
	provider       *stubProvider
}

func newTestRouter(deps routerFixtures) http.Handler {
	if deps.fixtureRepo == nil {
		deps.fixtureRepo = newMemFixtureRepo()
	}
	if deps.predictionRepo == nil {
		deps.predictionRepo = newMemPredictionRepo()
	}
	if deps.provider == nil {
		deps.provider = &stubProvider{}
	}

	syncService := usecase.NewFixtureSyncService(deps.provider, deps.fixtureRepo, usecase.FixtureSyncConfig{
		TeamID:    121,
		Season:    2026,
		NextCount: 3,
		Timezone:  "America/Sao_Paulo",
	}, nil, nil)
	liveService := usecase.NewLiveUpdateService(deps.provider, deps.fixtureRepo, usecase.LiveUpdateConfig{
		LeadWindow: 10 * time.Minute,
		MaxWorkers: 2,
	}, nil, stubNotifier{}, nil)
	predictionService := usecase.NewPredictionService(deps.predictionRepo, deps.fixtureRepo, usecase.PredictionConfig{}, nil, nil)
	fixtureService := usecase.NewFixtureQueryService(deps.fixtureRepo, nil, nil)
	leaderboardService := usecase.NewLeaderboardService(
		&memLeaderboardRepo{entries: []leaderboard.Entry{{UserID: "user-1", TotalPoints: 9}}},
		&memProfileRepo{profiles: map[string]profile.Profile{"user-1": {ID: "user-1", Username: "palmeirense"}}},
		usecase.LeaderboardConfig{Limit: 10},
		nil,
		nil,
	)

	handler := NewHandler(syncService, liveService, predictionService, fixtureService, leaderboardService, nil)
	verifier := &stubVerifier{principals: map[string]user.Principal{
		"token-u": {UserID: "user-u", Email: "u@example.com"},
	}}

	return NewRouter(handler, verifier, nil, []string{"*"}, testJobToken)
}
