// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/qxf2/acc-model-app/cliparse"
	"github.com/qxf2/acc-model-app/middleware"
	"github.com/qxf2/acc-model-app/models"
	"github.com/qxf2/acc-model-app/rating"
	"github.com/qxf2/acc-model-app/store"
)

const assessmentNotFound = "Capability Assessment not found"

type AssessmentHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewAssessmentHandler(db *sql.DB, cfg cliparse.Config) *AssessmentHandler {
	return &AssessmentHandler{store: store.New(db), cfg: cfg}
}

func validLabel(w http.ResponseWriter, label string) bool {
	if !rating.Valid(label) {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity,
			"rating must be one of the options listed at /rating-options/")
		return false
	}
	return true
}

// SubmitRating handles POST /capability-assessments/{id}/ (requires auth)
// It creates or replaces the caller's rating of the assessment.
func (h *AssessmentHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.RatingRequest
	if !parseBody(w, r, &req) || !validLabel(w, req.Rating) {
		return
	}
	req.CapabilityAssessmentID = id

	user, _ := middleware.UserFromContext(r.Context())
	saved, updated, err := h.store.UpsertRating(r.Context(), user.ID, req)
	if err != nil {
		storeError(w, err, "submit the rating", assessmentNotFound, "")
		return
	}

	slog.Info("rating submitted",
		"capability_assessment_id", id,
		"user_id", user.ID,
		"rating", saved.Rating,
		"updated", updated,
	)
	middleware.JSONResponse(w, http.StatusOK, saved)
}

// SubmitRatingsBatch handles POST /capability-assessments/batch/ (requires auth)
// Missing assessments are reported per id; the rest are saved.
func (h *AssessmentHandler) SubmitRatingsBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRatingRequest
	if !parseBody(w, r, &req) || !checkIDs(w, "ratings", len(req.Ratings)) {
		return
	}

	ids := make([]int64, 0, len(req.Ratings))
	for _, rr := range req.Ratings {
		if !validLabel(w, rr.Rating) {
			return
		}
		ids = append(ids, rr.CapabilityAssessmentID)
	}

	found, err := h.store.ExistingAssessments(r.Context(), ids)
	if err != nil {
		storeError(w, err, "submit the ratings", "", "")
		return
	}

	user, _ := middleware.UserFromContext(r.Context())
	resp := models.BatchRatingResponse{Ratings: []models.Rating{}}
	for _, rr := range req.Ratings {
		if !found[rr.CapabilityAssessmentID] {
			if resp.Errors == nil {
				resp.Errors = make(map[int64]string)
			}
			resp.Errors[rr.CapabilityAssessmentID] = assessmentNotFound
			continue
		}

		saved, _, err := h.store.UpsertRating(r.Context(), user.ID, rr)
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between the existence check and the write
			if resp.Errors == nil {
				resp.Errors = make(map[int64]string)
			}
			resp.Errors[rr.CapabilityAssessmentID] = assessmentNotFound
			continue
		}
		if err != nil {
			storeError(w, err, "submit the ratings", "", "")
			return
		}
		resp.Ratings = append(resp.Ratings, saved)
	}

	slog.Info("rating batch submitted",
		"user_id", user.ID,
		"saved", len(resp.Ratings),
		"failed", len(resp.Errors),
	)
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// UpdateRating handles PUT /capability-assessments/ratings/{rating_id}/ (requires auth)
func (h *AssessmentHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "rating_id")
	if !ok {
		return
	}

	var req models.RatingUpdateRequest
	if !parseBody(w, r, &req) {
		return
	}

	saved, err := h.store.UpdateRating(r.Context(), id, req)
	if err != nil {
		storeError(w, err, "update the rating", "Rating not found", "")
		return
	}

	user, _ := middleware.UserFromContext(r.Context())
	slog.Info("rating updated", "rating_id", id, "user_id", user.ID)
	middleware.JSONResponse(w, http.StatusOK, saved)
}

// GetAssessmentByPair handles GET /capability-assessments/?capability_id=&attribute_id=
func (h *AssessmentHandler) GetAssessmentByPair(w http.ResponseWriter, r *http.Request) {
	capabilityID, ok := queryID(w, r, "capability_id")
	if !ok {
		return
	}
	attributeID, ok := queryID(w, r, "attribute_id")
	if !ok {
		return
	}

	a, err := h.store.GetAssessmentByPair(r.Context(), capabilityID, attributeID)
	if err != nil {
		storeError(w, err, "retrieve the capability assessment", assessmentNotFound, "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, a)
}

// BulkAssessmentIDs handles POST /capability-assessments/bulk/ids
func (h *AssessmentHandler) BulkAssessmentIDs(w http.ResponseWriter, r *http.Request) {
	var req models.AssessmentBulkRequest
	if !parseBody(w, r, &req) ||
		!checkIDs(w, "capability_ids", len(req.CapabilityIDs)) ||
		!checkIDs(w, "attribute_ids", len(req.AttributeIDs)) {
		return
	}

	ids, err := h.store.BulkAssessmentIDs(r.Context(), req.CapabilityIDs, req.AttributeIDs)
	if err != nil {
		storeError(w, err, "retrieve capability assessment IDs", "", "")
		return
	}
	if len(ids) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No capability assessments found for the provided IDs")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ids)
}

// ListRatings handles GET /capability-assessments/{id}/
func (h *AssessmentHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ratings, err := h.store.ListRatingsByAssessment(r.Context(), id)
	if err != nil {
		storeError(w, err, "retrieve the ratings", assessmentNotFound, "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ratings)
}

// ListUserRatings handles GET /capability-assessments/{id}/user/{user_id}/
func (h *AssessmentHandler) ListUserRatings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	ratings, err := h.store.ListRatingsByUserAndAssessment(r.Context(), userID, id)
	if err != nil {
		storeError(w, err, "retrieve the ratings", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ratings)
}

// ListUserRatingsBatch handles POST /capability-assessments/ratings/batch/?user_id=N
// with a JSON array of assessment ids.
func (h *AssessmentHandler) ListUserRatingsBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryID(w, r, "user_id")
	if !ok {
		return
	}

	var ids []int64
	if !parseBody(w, r, &ids) || !checkIDs(w, "body", len(ids)) {
		return
	}

	ratings, err := h.store.ListRatingsByUserAndAssessments(r.Context(), userID, ids)
	if err != nil {
		storeError(w, err, "retrieve the ratings", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ratings)
}

// GetAggregate handles GET /capability-assessments/{id}/aggregate
func (h *AssessmentHandler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.store.GetAssessment(r.Context(), id); err != nil {
		storeError(w, err, "aggregate the ratings", assessmentNotFound, "")
		return
	}

	labels, err := h.store.RatingLabels(r.Context(), []int64{id})
	if err != nil {
		storeError(w, err, "aggregate the ratings", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rating.Aggregate(id, labels[id]))
}

// ListAggregates handles POST /capability-assessments/aggregates with a
// JSON array of ids. Results follow the input order; ids without ratings,
// including unknown ids, get a null average.
func (h *AssessmentHandler) ListAggregates(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if !parseBody(w, r, &ids) || !checkIDs(w, "body", len(ids)) {
		return
	}

	labels, err := h.store.RatingLabels(r.Context(), ids)
	if err != nil {
		storeError(w, err, "aggregate the ratings", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rating.AggregateMany(ids, labels))
}

// RatingOptions handles GET /rating-options/
func RatingOptions(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, rating.Options())
}
