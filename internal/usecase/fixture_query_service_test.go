package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bolao-app/bolao-api/internal/domain/fixture"
	"github.com/bolao-app/bolao-api/internal/platform/logging"
)

func TestFixtureQueryService_ListWindow(t *testing.T) {
	t.Parallel()

	repo := newFakeFixtureRepo()
	repo.windowResults = []fixture.Fixture{{ID: 1}, {ID: 2}}
	svc := NewFixtureQueryService(repo, nil, logging.NewNop())

	items, err := svc.ListWindow(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("ListWindow: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
}

func TestFixtureQueryService_ListWindowInvertedBounds(t *testing.T) {
	t.Parallel()

	svc := NewFixtureQueryService(newFakeFixtureRepo(), nil, logging.NewNop())
	from := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	if _, err := svc.ListWindow(context.Background(), from, to); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixtureQueryService_GetByID(t *testing.T) {
	t.Parallel()

	repo := newFakeFixtureRepo()
	repo.fixtures[7] = fixture.Fixture{ID: 7, StatusShort: fixture.StatusNotStarted}
	svc := NewFixtureQueryService(repo, nil, logging.NewNop())

	match, err := svc.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if match.ID != 7 {
		t.Fatalf("unexpected fixture: %+v", match)
	}

	if _, err := svc.GetByID(context.Background(), 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
