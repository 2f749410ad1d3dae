package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/joestump/cuecard/internal/store"
)

type statsAPIHandler struct {
	events *store.EventStore
	log    *zap.Logger
}

// Get returns generation outcome totals.
// GET /api/v1/stats
//
// @Summary      Generation statistics
// @Description  Totals of recorded submissions by outcome. No athlete answers are stored.
// @Tags         Stats
// @Produce      json
// @Param        recent  query     int  false  "Number of recent events to include (default 20, max 100)"
// @Success      200  {object}  StatsResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /stats [get]
func (h *statsAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.events.Stats(r.Context())
	if err != nil {
		h.log.Error("api: load stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp := StatsResponse{
		Total:        st.Total,
		Last7d:       st.Last7d,
		ByOutcome:    make([]OutcomeCountResponse, 0, len(st.ByOutcome)),
		AvgCueCount:  st.AvgCueCount,
		SkippedLines: st.SkippedLines,
	}
	for _, oc := range st.ByOutcome {
		resp.ByOutcome = append(resp.ByOutcome, OutcomeCountResponse{Outcome: oc.Outcome, Count: oc.Count})
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("recent"))
	recent, err := h.events.ListRecent(r.Context(), limit)
	if err != nil {
		h.log.Error("api: list recent events", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	resp.Recent = make([]EventResponse, 0, len(recent))
	for _, e := range recent {
		resp.Recent = append(resp.Recent, EventResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}
