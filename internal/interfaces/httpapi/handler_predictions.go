package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/bolao-app/bolao-api/internal/usecase"
)

type submitPredictionRequest struct {
	FixtureID int64 `json:"fixture_id" validate:"required,gt=0"`
	HomeScore *int  `json:"home_score" validate:"required"`
	AwayScore *int  `json:"away_score" validate:"required"`
}

type submitPredictionResponse struct {
	Success    bool          `json:"success"`
	Prediction predictionDTO `json:"prediction"`
}

// SubmitPrediction stores the caller's score guess for a fixture, as long as
// the fixture has not kicked off yet.
func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{Error: msgUserNotAuthenticated})
		return
	}

	// Unknown body fields are tolerated; the validator decides what a valid
	// payload is.
	var req submitPredictionRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.predictionService.Submit(ctx, principal, usecase.SubmitPredictionInput{
		FixtureID: req.FixtureID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit prediction rejected",
			"user_id", principal.UserID,
			"fixture_id", req.FixtureID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, submitPredictionResponse{
		Success:    true,
		Prediction: predictionToDTO(saved),
	})
}

// ListMyPredictions returns every prediction the caller has submitted.
func (h *Handler) ListMyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{Error: msgUserNotAuthenticated})
		return
	}

	predictions, err := h.predictionService.ListMine(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "list predictions failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]predictionDTO, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, predictionToDTO(p))
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"predictions": items})
}
