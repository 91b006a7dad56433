package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/bolao-app/bolao-api/internal/domain/fixture"
	"github.com/bolao-app/bolao-api/internal/domain/user"
	"github.com/bolao-app/bolao-api/internal/platform/logging"
)

func newPredictionService(repo *fakePredictionRepo, fixtures *fakeFixtureRepo, strict bool) *PredictionService {
	return NewPredictionService(repo, fixtures, PredictionConfig{StrictLock: strict}, nil, logging.NewNop())
}

func TestPredictionService_SubmitHappyPath(t *testing.T) {
	t.Parallel()

	fixtures := newFakeFixtureRepo()
	fixtures.fixtures[100] = fixture.Fixture{ID: 100, StatusShort: fixture.StatusNotStarted}
	repo := newFakePredictionRepo()
	svc := newPredictionService(repo, fixtures, false)

	saved, err := svc.Submit(context.Background(), user.Principal{UserID: "user-1"}, SubmitPredictionInput{
		FixtureID: 100,
		HomeScore: 2,
		AwayScore: 1,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if saved.ID == "" || saved.UserID != "user-1" || saved.FixtureID != 100 {
		t.Fatalf("unexpected saved prediction: %+v", saved)
	}

	// Resubmitting before kickoff overwrites the previous guess.
	saved, err = svc.Submit(context.Background(), user.Principal{UserID: "user-1"}, SubmitPredictionInput{
		FixtureID: 100,
		HomeScore: 0,
		AwayScore: 0,
	})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if saved.HomeScore != 0 || saved.AwayScore != 0 {
		t.Fatalf("resubmit must overwrite scores: %+v", saved)
	}
	stored, ok, _ := repo.GetByUserAndFixture(context.Background(), "user-1", 100)
	if !ok || stored.HomeScore != 0 {
		t.Fatalf("stored row not overwritten: %+v", stored)
	}
}

func TestPredictionService_SubmitValidationOrder(t *testing.T) {
	t.Parallel()

	fixtures := newFakeFixtureRepo()
	fixtures.fixtures[100] = fixture.Fixture{ID: 100, StatusShort: fixture.StatusFirstHalf}
	repo := newFakePredictionRepo()
	svc := newPredictionService(repo, fixtures, false)
	ctx := context.Background()

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := svc.Submit(ctx, user.Principal{}, SubmitPredictionInput{FixtureID: 100, HomeScore: 1, AwayScore: 1})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("missing fixture id", func(t *testing.T) {
		_, err := svc.Submit(ctx, user.Principal{UserID: "user-1"}, SubmitPredictionInput{HomeScore: 1, AwayScore: 1})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative score", func(t *testing.T) {
		_, err := svc.Submit(ctx, user.Principal{UserID: "user-1"}, SubmitPredictionInput{FixtureID: 100, HomeScore: -1, AwayScore: 0})
		if !errors.Is(err, ErrNegativeScore) {
			t.Fatalf("expected ErrNegativeScore, got %v", err)
		}
	})

	t.Run("unknown fixture", func(t *testing.T) {
		_, err := svc.Submit(ctx, user.Principal{UserID: "user-1"}, SubmitPredictionInput{FixtureID: 999, HomeScore: 1, AwayScore: 1})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("kickoff passed", func(t *testing.T) {
		_, err := svc.Submit(ctx, user.Principal{UserID: "user-1"}, SubmitPredictionInput{FixtureID: 100, HomeScore: 1, AwayScore: 1})
		if !errors.Is(err, ErrPredictionsClosed) {
			t.Fatalf("expected ErrPredictionsClosed, got %v", err)
		}
	})
}

func TestPredictionService_SubmitClosedForEveryNonScheduledStatus(t *testing.T) {
	t.Parallel()

	closed := []string{
		fixture.StatusFirstHalf, fixture.StatusHalfTime, fixture.StatusSecondHalf,
		fixture.StatusFullTime, fixture.StatusPenalties, fixture.StatusLive,
		fixture.StatusPostponed, fixture.StatusCancelled,
	}
	for _, status := range closed {
		fixtures := newFakeFixtureRepo()
		fixtures.fixtures[100] = fixture.Fixture{ID: 100, StatusShort: status}
		svc := newPredictionService(newFakePredictionRepo(), fixtures, false)

		_, err := svc.Submit(context.Background(), user.Principal{UserID: "user-1"}, SubmitPredictionInput{FixtureID: 100})
		if !errors.Is(err, ErrPredictionsClosed) {
			t.Fatalf("status %s: expected ErrPredictionsClosed, got %v", status, err)
		}
	}
}

func TestPredictionService_SubmitErrorSentinels(t *testing.T) {
	t.Parallel()

	t.Run("fixture lookup failure", func(t *testing.T) {
		fixtures := newFakeFixtureRepo()
		fixtures.getErr = errors.New("db down")
		svc := newPredictionService(newFakePredictionRepo(), fixtures, false)

		_, err := svc.Submit(context.Background(), user.Principal{UserID: "user-1"}, SubmitPredictionInput{FixtureID: 100})
		if !errors.Is(err, ErrFixtureLookup) {
			t.Fatalf("expected ErrFixtureLookup, got %v", err)
		}
	})

	t.Run("save failure", func(t *testing.T) {
		fixtures := newFakeFixtureRepo()
		fixtures.fixtures[100] = fixture.Fixture{ID: 100, StatusShort: fixture.StatusNotStarted}
		repo := newFakePredictionRepo()
		repo.upsertErr = errors.New("db down")
		svc := newPredictionService(repo, fixtures, false)

		_, err := svc.Submit(context.Background(), user.Principal{UserID: "user-1"}, SubmitPredictionInput{FixtureID: 100})
		if !errors.Is(err, ErrPredictionSave) {
			t.Fatalf("expected ErrPredictionSave, got %v", err)
		}
	})
}

func TestPredictionService_SubmitStrictLock(t *testing.T) {
	t.Parallel()

	t.Run("guard accepts while open", func(t *testing.T) {
		fixtures := newFakeFixtureRepo()
		fixtures.fixtures[100] = fixture.Fixture{ID: 100, StatusShort: fixture.StatusNotStarted}
		repo := newFakePredictionRepo()
		repo.whenOpenAllowed = true
		svc := newPredictionService(repo, fixtures, true)

		saved, err := svc.Submit(context.Background(), user.Principal{UserID: "user-1"}, SubmitPredictionInput{FixtureID: 100, HomeScore: 1})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if saved.ID == "" {
			t.Fatalf("expected persisted prediction")
		}
	})

	t.Run("guard rejects after kickoff", func(t *testing.T) {
		fixtures := newFakeFixtureRepo()
		fixtures.fixtures[100] = fixture.Fixture{ID: 100, StatusShort: fixture.StatusFirstHalf}
		repo := newFakePredictionRepo()
		svc := newPredictionService(repo, fixtures, true)

		_, err := svc.Submit(context.Background(), user.Principal{UserID: "user-1"}, SubmitPredictionInput{FixtureID: 100})
		if !errors.Is(err, ErrPredictionsClosed) {
			t.Fatalf("expected ErrPredictionsClosed, got %v", err)
		}
	})

	t.Run("guard rejects unknown fixture", func(t *testing.T) {
		repo := newFakePredictionRepo()
		svc := newPredictionService(repo, newFakeFixtureRepo(), true)

		_, err := svc.Submit(context.Background(), user.Principal{UserID: "user-1"}, SubmitPredictionInput{FixtureID: 999})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPredictionService_ListMineRequiresAuth(t *testing.T) {
	t.Parallel()

	svc := newPredictionService(newFakePredictionRepo(), newFakeFixtureRepo(), false)
	if _, err := svc.ListMine(context.Background(), user.Principal{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
