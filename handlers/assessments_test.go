// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/qxf2/acc-model-app/middleware"
	"github.com/qxf2/acc-model-app/models"
	"github.com/qxf2/acc-model-app/testutil"
)

func asUser(r *http.Request, u models.User) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), u))
}

// seqIDs returns 1..n
func seqIDs(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}

func TestSubmitRating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAssessmentHandler(db, testutil.GetTestConfig())
	h := testutil.CreateTestHierarchy(t, db, "Rate")
	userID := testutil.CreateTestUser(t, db, "alice", "secret123")
	alice := models.User{ID: userID, Username: "alice"}

	tests := []struct {
		name           string
		pathID         string
		requestBody    interface{}
		expectedStatus int
		expectedLabel  string
	}{
		{
			name:           "first rating",
			pathID:         idString(h.AssessmentID),
			requestBody:    models.RatingRequest{Rating: models.RatingAcceptable},
			expectedStatus: http.StatusOK,
			expectedLabel:  models.RatingAcceptable,
		},
		{
			name:           "second rating replaces the first",
			pathID:         idString(h.AssessmentID),
			requestBody:    models.RatingRequest{Rating: models.RatingStable},
			expectedStatus: http.StatusOK,
			expectedLabel:  models.RatingStable,
		},
		{
			name:           "path id wins over body id",
			pathID:         idString(h.AssessmentID),
			requestBody:    models.RatingRequest{CapabilityAssessmentID: 999, Rating: models.RatingLowImpact},
			expectedStatus: http.StatusOK,
			expectedLabel:  models.RatingLowImpact,
		},
		{
			name:           "unknown label",
			pathID:         idString(h.AssessmentID),
			requestBody:    models.RatingRequest{Rating: "Excellent"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "missing assessment",
			pathID:         "999",
			requestBody:    models.RatingRequest{Rating: models.RatingStable},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(t, "POST", "/capability-assessments/"+tt.pathID+"/", tt.requestBody)
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			handler.SubmitRating(w, asUser(req, alice))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var r models.Rating
			testutil.AssertJSON(t, w, &r)
			if r.Rating != tt.expectedLabel || r.CapabilityAssessmentID != h.AssessmentID || r.UserID != userID {
				t.Errorf("Unexpected rating %+v", r)
			}
		})
	}

	var current, history int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ratings`).Scan(&current); err != nil {
		t.Fatalf("Failed to count ratings: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM rating_history`).Scan(&history); err != nil {
		t.Fatalf("Failed to count history: %v", err)
	}
	if current != 1 || history != 3 {
		t.Errorf("Expected 1 current rating and 3 history rows, got %d and %d", current, history)
	}
}

func TestSubmitRatingsBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAssessmentHandler(db, testutil.GetTestConfig())
	a := testutil.CreateTestHierarchy(t, db, "A")
	b := testutil.CreateTestHierarchy(t, db, "B")
	userID := testutil.CreateTestUser(t, db, "alice", "secret123")

	body := models.BatchRatingRequest{Ratings: []models.RatingRequest{
		{CapabilityAssessmentID: a.AssessmentID, Rating: models.RatingStable},
		{CapabilityAssessmentID: 999, Rating: models.RatingStable},
		{CapabilityAssessmentID: b.AssessmentID, Rating: models.RatingCriticalConcern},
	}}
	req := jsonRequest(t, "POST", "/capability-assessments/batch/", body)
	w := httptest.NewRecorder()

	handler.SubmitRatingsBatch(w, asUser(req, models.User{ID: userID, Username: "alice"}))

	testutil.AssertStatus(t, w, http.StatusOK)
	res := gjson.Parse(w.Body.String())
	if n := len(res.Get("ratings").Array()); n != 2 {
		t.Errorf("Expected 2 saved ratings, got %d", n)
	}
	if msg := res.Get("errors.999").String(); msg != assessmentNotFound {
		t.Errorf("Expected error for id 999, got %q", msg)
	}

	t.Run("all saved reports null errors", func(t *testing.T) {
		body := models.BatchRatingRequest{Ratings: []models.RatingRequest{
			{CapabilityAssessmentID: a.AssessmentID, Rating: models.RatingAcceptable},
		}}
		req := jsonRequest(t, "POST", "/capability-assessments/batch/", body)
		w := httptest.NewRecorder()

		handler.SubmitRatingsBatch(w, asUser(req, models.User{ID: userID, Username: "alice"}))

		testutil.AssertStatus(t, w, http.StatusOK)
		if errs := gjson.Get(w.Body.String(), "errors"); errs.Type != gjson.Null {
			t.Errorf("Expected null errors, got %s", errs.Raw)
		}
	})

	t.Run("one bad label rejects the batch", func(t *testing.T) {
		body := models.BatchRatingRequest{Ratings: []models.RatingRequest{
			{CapabilityAssessmentID: a.AssessmentID, Rating: models.RatingStable},
			{CapabilityAssessmentID: b.AssessmentID, Rating: "Great"},
		}}
		req := jsonRequest(t, "POST", "/capability-assessments/batch/", body)
		w := httptest.NewRecorder()

		handler.SubmitRatingsBatch(w, asUser(req, models.User{ID: userID, Username: "alice"}))

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}

func TestUpdateRating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAssessmentHandler(db, testutil.GetTestConfig())
	h := testutil.CreateTestHierarchy(t, db, "Upd")
	userID := testutil.CreateTestUser(t, db, "alice", "secret123")
	ratingID := testutil.InsertTestRating(t, db, h.AssessmentID, userID, models.RatingStable,
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	alice := models.User{ID: userID, Username: "alice"}

	comment := "flaky under load"
	req := jsonRequest(t, "PUT", "/capability-assessments/ratings/"+idString(ratingID)+"/",
		models.RatingUpdateRequest{Comments: &comment})
	req.SetPathValue("rating_id", idString(ratingID))
	w := httptest.NewRecorder()

	handler.UpdateRating(w, asUser(req, alice))

	testutil.AssertStatus(t, w, http.StatusOK)
	res := gjson.Parse(w.Body.String())
	if res.Get("comments").String() != comment || res.Get("rating").String() != models.RatingStable {
		t.Errorf("Unexpected update result: %s", w.Body.String())
	}

	req = jsonRequest(t, "PUT", "/capability-assessments/ratings/999/", models.RatingUpdateRequest{Comments: &comment})
	req.SetPathValue("rating_id", "999")
	w = httptest.NewRecorder()

	handler.UpdateRating(w, asUser(req, alice))

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAssessmentLookups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAssessmentHandler(db, testutil.GetTestConfig())
	h := testutil.CreateTestHierarchy(t, db, "Look")
	userID := testutil.CreateTestUser(t, db, "alice", "secret123")
	testutil.InsertTestRating(t, db, h.AssessmentID, userID, models.RatingAcceptable,
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	t.Run("by pair", func(t *testing.T) {
		path := "/capability-assessments/?capability_id=" + idString(h.CapabilityID) + "&attribute_id=" + idString(h.AttributeID)
		w := httptest.NewRecorder()

		handler.GetAssessmentByPair(w, httptest.NewRequest("GET", path, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		if got := gjson.Get(w.Body.String(), "id").Int(); got != h.AssessmentID {
			t.Errorf("Expected assessment %d, got %d", h.AssessmentID, got)
		}
	})

	t.Run("by pair missing", func(t *testing.T) {
		path := "/capability-assessments/?capability_id=" + idString(h.CapabilityID) + "&attribute_id=999"
		w := httptest.NewRecorder()

		handler.GetAssessmentByPair(w, httptest.NewRequest("GET", path, nil))

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("bulk ids", func(t *testing.T) {
		req := jsonRequest(t, "POST", "/capability-assessments/bulk/ids", models.AssessmentBulkRequest{
			CapabilityIDs: []int64{h.CapabilityID},
			AttributeIDs:  []int64{h.AttributeID, 999},
		})
		w := httptest.NewRecorder()

		handler.BulkAssessmentIDs(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var ids []models.AssessmentIDs
		testutil.AssertJSON(t, w, &ids)
		if len(ids) != 1 || ids[0].CapabilityAssessmentID != h.AssessmentID {
			t.Errorf("Unexpected ids %+v", ids)
		}
	})

	t.Run("bulk ids with no match", func(t *testing.T) {
		req := jsonRequest(t, "POST", "/capability-assessments/bulk/ids", models.AssessmentBulkRequest{
			CapabilityIDs: []int64{},
			AttributeIDs:  []int64{h.AttributeID},
		})
		w := httptest.NewRecorder()

		handler.BulkAssessmentIDs(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("ratings of missing assessment", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/capability-assessments/999/", nil)
		req.SetPathValue("id", "999")
		w := httptest.NewRecorder()

		handler.ListRatings(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("user ratings batch", func(t *testing.T) {
		req := jsonRequest(t, "POST", "/capability-assessments/ratings/batch/?user_id="+idString(userID),
			[]int64{h.AssessmentID, 999})
		w := httptest.NewRecorder()

		handler.ListUserRatingsBatch(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var list []models.Rating
		testutil.AssertJSON(t, w, &list)
		if len(list) != 1 || list[0].Rating != models.RatingAcceptable {
			t.Errorf("Unexpected ratings %+v", list)
		}
	})

	t.Run("user ratings batch without user_id", func(t *testing.T) {
		req := jsonRequest(t, "POST", "/capability-assessments/ratings/batch/", []int64{h.AssessmentID})
		w := httptest.NewRecorder()

		handler.ListUserRatingsBatch(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}

func TestAggregates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAssessmentHandler(db, testutil.GetTestConfig())
	rated := testutil.CreateTestHierarchy(t, db, "Rated")
	na := testutil.CreateTestHierarchy(t, db, "NA")
	alice := testutil.CreateTestUser(t, db, "alice", "secret123")
	bob := testutil.CreateTestUser(t, db, "bob", "secret123")
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	testutil.InsertTestRating(t, db, rated.AssessmentID, alice, models.RatingStable, ts)
	testutil.InsertTestRating(t, db, rated.AssessmentID, bob, models.RatingLowImpact, ts)
	testutil.InsertTestRating(t, db, na.AssessmentID, alice, models.RatingNotApplicable, ts)

	t.Run("single", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/capability-assessments/"+idString(rated.AssessmentID)+"/aggregate", nil)
		req.SetPathValue("id", idString(rated.AssessmentID))
		w := httptest.NewRecorder()

		handler.GetAggregate(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		res := gjson.Parse(w.Body.String())
		if res.Get("average_rating").Float() != 3 || res.Get("rating_label").String() != models.RatingAcceptable {
			t.Errorf("Unexpected aggregate: %s", w.Body.String())
		}
	})

	t.Run("missing assessment", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/capability-assessments/999/aggregate", nil)
		req.SetPathValue("id", "999")
		w := httptest.NewRecorder()

		handler.GetAggregate(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("many keeps input order", func(t *testing.T) {
		req := jsonRequest(t, "POST", "/capability-assessments/aggregates",
			[]int64{na.AssessmentID, 999, rated.AssessmentID})
		w := httptest.NewRecorder()

		handler.ListAggregates(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		res := gjson.Parse(w.Body.String()).Array()
		if len(res) != 3 {
			t.Fatalf("Expected 3 aggregates, got %d", len(res))
		}
		for i, want := range []int64{na.AssessmentID, 999, rated.AssessmentID} {
			if got := res[i].Get("capability_assessment_id").Int(); got != want {
				t.Errorf("Position %d: expected id %d, got %d", i, want, got)
			}
		}
		if res[0].Get("average_rating").Type != gjson.Null || res[1].Get("rating_label").Type != gjson.Null {
			t.Errorf("Expected null averages for unrated ids: %s", w.Body.String())
		}
		if res[2].Get("average_rating").Float() != 3 {
			t.Errorf("Expected average 3, got %s", res[2].Get("average_rating").Raw)
		}
	})

	t.Run("id list at the cap", func(t *testing.T) {
		w := httptest.NewRecorder()

		handler.ListAggregates(w, jsonRequest(t, "POST", "/capability-assessments/aggregates", seqIDs(maxIDs)))

		testutil.AssertStatus(t, w, http.StatusOK)
		if n := len(gjson.Parse(w.Body.String()).Array()); n != maxIDs {
			t.Errorf("Expected %d aggregates, got %d", maxIDs, n)
		}
	})

	t.Run("id list past the cap", func(t *testing.T) {
		w := httptest.NewRecorder()

		handler.ListAggregates(w, jsonRequest(t, "POST", "/capability-assessments/aggregates", seqIDs(maxIDs+1)))

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})
}

func TestIDListsPastTheCap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAssessmentHandler(db, testutil.GetTestConfig())
	alice := models.User{ID: testutil.CreateTestUser(t, db, "alice", "secret123"), Username: "alice"}
	tooMany := seqIDs(maxIDs + 1)

	ratings := make([]models.RatingRequest, len(tooMany))
	for i, id := range tooMany {
		ratings[i] = models.RatingRequest{CapabilityAssessmentID: id, Rating: models.RatingStable}
	}

	tests := []struct {
		name    string
		path    string
		body    interface{}
		handle  http.HandlerFunc
		message string
	}{
		{
			name:    "bulk capability ids",
			path:    "/capability-assessments/bulk/ids",
			body:    models.AssessmentBulkRequest{CapabilityIDs: tooMany, AttributeIDs: []int64{1}},
			handle:  handler.BulkAssessmentIDs,
			message: "capability_ids may hold at most 1000 ids",
		},
		{
			name:    "bulk attribute ids",
			path:    "/capability-assessments/bulk/ids",
			body:    models.AssessmentBulkRequest{CapabilityIDs: []int64{1}, AttributeIDs: tooMany},
			handle:  handler.BulkAssessmentIDs,
			message: "attribute_ids may hold at most 1000 ids",
		},
		{
			name:    "user ratings batch",
			path:    "/capability-assessments/ratings/batch/?user_id=1",
			body:    tooMany,
			handle:  handler.ListUserRatingsBatch,
			message: "body may hold at most 1000 ids",
		},
		{
			name:    "batch submit",
			path:    "/capability-assessments/batch/",
			body:    models.BatchRatingRequest{Ratings: ratings},
			handle:  handler.SubmitRatingsBatch,
			message: "ratings may hold at most 1000 ids",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			tt.handle(w, asUser(jsonRequest(t, "POST", tt.path, tt.body), alice))

			testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
			if got := gjson.Get(w.Body.String(), "message").String(); got != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, got)
			}
		})
	}
}

func TestRatingOptions(t *testing.T) {
	w := httptest.NewRecorder()

	RatingOptions(w, httptest.NewRequest("GET", "/rating-options/", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var options []string
	testutil.AssertJSON(t, w, &options)
	if len(options) != 5 || options[0] != models.RatingStable || options[4] != models.RatingNotApplicable {
		t.Errorf("Unexpected options %v", options)
	}
}
