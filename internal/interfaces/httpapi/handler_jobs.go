package httpapi

import (
	"net/http"

	"github.com/bolao-app/bolao-api/internal/usecase"
)

type syncFixturesResponse struct {
	Success  bool                    `json:"success"`
	Synced   int                     `json:"synced"`
	Fixtures []usecase.SyncedFixture `json:"fixtures"`
}

type syncFixturesErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type liveUpdateResponse struct {
	Message    string  `json:"message"`
	Checked    int     `json:"checked"`
	Updated    int     `json:"updated"`
	UpdatedIDs []int64 `json:"updatedIds"`
}

// RunSyncFixturesJob pulls the next fixtures of the configured team from the
// football API and upserts them into the store.
func (h *Handler) RunSyncFixturesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncFixturesJob")
	defer span.End()

	result, err := h.syncService.SyncUpcoming(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "fixture sync job failed", "error", err)
		mapped := mapError(ctx, err)
		writeJSON(ctx, w, mapped.HTTPStatus, syncFixturesErrorResponse{Success: false, Error: mapped.Message})
		return
	}

	h.logger.InfoContext(ctx, "fixture sync job finished", "synced", result.Synced)
	writeJSON(ctx, w, http.StatusOK, syncFixturesResponse{
		Success:  true,
		Synced:   result.Synced,
		Fixtures: result.Fixtures,
	})
}

// RunUpdateLiveJob sweeps fixtures that are live or about to kick off and
// refreshes their status and score from the football API.
func (h *Handler) RunUpdateLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunUpdateLiveJob")
	defer span.End()

	result, err := h.liveService.Run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "live update job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "live update job finished",
		"checked", result.Checked,
		"updated", result.Updated,
	)
	writeJSON(ctx, w, http.StatusOK, liveUpdateResponse{
		Message:    "Partidas ao vivo verificadas",
		Checked:    result.Checked,
		Updated:    result.Updated,
		UpdatedIDs: result.UpdatedIDs,
	})
}
