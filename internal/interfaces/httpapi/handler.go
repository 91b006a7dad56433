package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/bolao-app/bolao-api/internal/domain/fixture"
	"github.com/bolao-app/bolao-api/internal/domain/leaderboard"
	"github.com/bolao-app/bolao-api/internal/domain/prediction"
	"github.com/bolao-app/bolao-api/internal/platform/logging"
	"github.com/bolao-app/bolao-api/internal/usecase"
)

type Handler struct {
	syncService        *usecase.FixtureSyncService
	liveService        *usecase.LiveUpdateService
	predictionService  *usecase.PredictionService
	fixtureService     *usecase.FixtureQueryService
	leaderboardService *usecase.LeaderboardService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	syncService *usecase.FixtureSyncService,
	liveService *usecase.LiveUpdateService,
	predictionService *usecase.PredictionService,
	fixtureService *usecase.FixtureQueryService,
	leaderboardService *usecase.LeaderboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		syncService:        syncService,
		liveService:        liveService,
		predictionService:  predictionService,
		fixtureService:     fixtureService,
		leaderboardService: leaderboardService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type fixtureDTO struct {
	ID           int64     `json:"id"`
	DateTime     time.Time `json:"date_time"`
	StatusShort  string    `json:"status_short"`
	HomeTeamID   int64     `json:"home_team_id"`
	HomeTeamName string    `json:"home_team_name"`
	HomeTeamLogo string    `json:"home_team_logo"`
	AwayTeamID   int64     `json:"away_team_id"`
	AwayTeamName string    `json:"away_team_name"`
	AwayTeamLogo string    `json:"away_team_logo"`
	LeagueID     int64     `json:"league_id"`
	Round        string    `json:"round"`
	HomeScore    *int      `json:"home_score"`
	AwayScore    *int      `json:"away_score"`
}

func fixtureToDTO(f fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:           f.ID,
		DateTime:     f.DateTime,
		StatusShort:  f.StatusShort,
		HomeTeamID:   f.HomeTeamID,
		HomeTeamName: f.HomeTeamName,
		HomeTeamLogo: f.HomeTeamLogo,
		AwayTeamID:   f.AwayTeamID,
		AwayTeamName: f.AwayTeamName,
		AwayTeamLogo: f.AwayTeamLogo,
		LeagueID:     f.LeagueID,
		Round:        f.Round,
		HomeScore:    f.HomeScore,
		AwayScore:    f.AwayScore,
	}
}

type predictionDTO struct {
	ID        string    `json:"id"`
	FixtureID int64     `json:"fixture_id"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func predictionToDTO(p prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:        p.ID,
		FixtureID: p.FixtureID,
		HomeScore: p.HomeScore,
		AwayScore: p.AwayScore,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type leaderboardEntryDTO struct {
	Position    int    `json:"position"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	AvatarURL   string `json:"avatar_url"`
	TotalPoints int    `json:"total_points"`
}

func leaderboardEntryToDTO(entry leaderboard.RankedEntry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Position:    entry.Position,
		UserID:      entry.UserID,
		Username:    entry.Username,
		AvatarURL:   entry.AvatarURL,
		TotalPoints: entry.TotalPoints,
	}
}
