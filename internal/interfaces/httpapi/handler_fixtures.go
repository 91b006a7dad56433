package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bolao-app/bolao-api/internal/usecase"
)

// ListFixtures returns the followed team's fixtures inside an optional
// from/to window. Bounds default to a recent-past to near-future range.
func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	from, err := parseTimeParam(r, "from")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.fixtureService.ListWindow(ctx, from, to)
	if err != nil {
		h.logger.ErrorContext(ctx, "list fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"fixtures": items})
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	fixtureID, err := strconv.ParseInt(r.PathValue("fixtureID"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: fixture id must be an integer", usecase.ErrInvalidInput))
		return
	}

	found, err := h.fixtureService.GetByID(ctx, fixtureID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"fixture": fixtureToDTO(found)})
}

func parseTimeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be RFC3339", usecase.ErrInvalidInput, name)
	}
	return parsed, nil
}
