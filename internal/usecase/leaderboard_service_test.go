package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/bolao-app/bolao-api/internal/domain/leaderboard"
	"github.com/bolao-app/bolao-api/internal/domain/profile"
	"github.com/bolao-app/bolao-api/internal/platform/logging"
)

func TestLeaderboardService_ListTop(t *testing.T) {
	t.Parallel()

	boards := &fakeLeaderboardRepo{entries: []leaderboard.Entry{
		{UserID: "user-a", TotalPoints: 9},
		{UserID: "user-b", TotalPoints: 4},
		{UserID: "user-c", TotalPoints: 4},
	}}
	profiles := &fakeProfileRepo{profiles: []profile.Profile{
		{ID: "user-a", Username: "ana", AvatarURL: "https://cdn.example/a.png"},
		{ID: "user-b", Username: "bruno"},
	}}

	svc := NewLeaderboardService(boards, profiles, LeaderboardConfig{Limit: 10}, nil, logging.NewNop())
	ranked, err := svc.ListTop(context.Background())
	if err != nil {
		t.Fatalf("ListTop: %v", err)
	}

	if len(ranked) != 3 {
		t.Fatalf("ranked = %d, want 3", len(ranked))
	}
	if ranked[0].Position != 1 || ranked[0].Username != "ana" || ranked[0].TotalPoints != 9 {
		t.Fatalf("unexpected first entry: %+v", ranked[0])
	}
	if ranked[2].Position != 3 || ranked[2].UserID != "user-c" {
		t.Fatalf("unexpected third entry: %+v", ranked[2])
	}
	// Missing profile keeps the row with empty display fields.
	if ranked[2].Username != "" {
		t.Fatalf("user without profile should rank with empty username: %+v", ranked[2])
	}
}

func TestLeaderboardService_ListTopEmpty(t *testing.T) {
	t.Parallel()

	svc := NewLeaderboardService(&fakeLeaderboardRepo{}, &fakeProfileRepo{}, LeaderboardConfig{}, nil, logging.NewNop())
	ranked, err := svc.ListTop(context.Background())
	if err != nil {
		t.Fatalf("ListTop: %v", err)
	}
	if ranked == nil || len(ranked) != 0 {
		t.Fatalf("expected empty slice, got %+v", ranked)
	}
}

func TestLeaderboardService_ListTopRepoFailure(t *testing.T) {
	t.Parallel()

	boards := &fakeLeaderboardRepo{err: errors.New("view missing")}
	svc := NewLeaderboardService(boards, &fakeProfileRepo{}, LeaderboardConfig{}, nil, logging.NewNop())
	if _, err := svc.ListTop(context.Background()); err == nil {
		t.Fatalf("expected repo error to propagate")
	}
}
