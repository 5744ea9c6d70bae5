// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/qxf2/acc-model-app/cliparse"
	"github.com/qxf2/acc-model-app/history"
	"github.com/qxf2/acc-model-app/middleware"
	"github.com/qxf2/acc-model-app/models"
	"github.com/qxf2/acc-model-app/store"
)

type HistoryHandler struct {
	resolver *history.Resolver
	composer *history.Composer
	cfg      cliparse.Config
}

func NewHistoryHandler(db *sql.DB, cfg cliparse.Config) *HistoryHandler {
	s := store.New(db)
	resolver := history.NewResolver(s, cfg.Location)
	return &HistoryHandler{
		resolver: resolver,
		composer: history.NewComposer(s, resolver),
		cfg:      cfg,
	}
}

func parseDay(w http.ResponseWriter, field, value string) (history.Day, bool) {
	d, err := history.ParseDate(value)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, field+": "+err.Error())
		return history.Day{}, false
	}
	return d, true
}

// HistoricalRatings handles POST /capability-assessments/historical-ratings
// It returns each user's last change on target_date for the given assessments.
func (h *HistoryHandler) HistoricalRatings(w http.ResponseWriter, r *http.Request) {
	var req models.HistoricalRatingsRequest
	if !parseBody(w, r, &req) || !checkIDs(w, "capability_assessment_ids", len(req.CapabilityAssessmentIDs)) {
		return
	}
	day, ok := parseDay(w, "target_date", req.TargetDate)
	if !ok {
		return
	}

	rows, err := h.resolver.Resolve(r.Context(), req.CapabilityAssessmentIDs, day)
	if err != nil {
		slog.Error("failed to resolve historical ratings", "target_date", day.String(), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rows)
}

// HistoricalGraphData handles POST /capability-assessments/historical-graph-data
func (h *HistoryHandler) HistoricalGraphData(w http.ResponseWriter, r *http.Request) {
	var req models.HistoricalGraphRequest
	if !parseBody(w, r, &req) || !checkIDs(w, "capability_assessment_ids", len(req.CapabilityAssessmentIDs)) {
		return
	}
	start, ok := parseDay(w, "start_date", req.StartDate)
	if !ok {
		return
	}
	end, ok := parseDay(w, "end_date", req.EndDate)
	if !ok {
		return
	}

	graph, err := h.composer.Compose(r.Context(), req.CapabilityAssessmentIDs, start, end)
	if err != nil {
		slog.Error("failed to compose historical graph",
			"start_date", start.String(),
			"end_date", end.String(),
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, graph)
}
