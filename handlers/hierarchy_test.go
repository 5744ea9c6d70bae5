// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/qxf2/acc-model-app/models"
	"github.com/qxf2/acc-model-app/testutil"
)

// jsonRequest builds a request whose body is either a raw string or the
// JSON encoding of body
func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var raw []byte
	if str, ok := body.(string); ok {
		raw = []byte(str)
	} else {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestCreateAccModel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAccModelHandler(db, testutil.GetTestConfig())
	testutil.CreateTestAccModel(t, db, "Existing")

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{"valid model", models.AccModelRequest{Name: "Checkout"}, http.StatusOK},
		{"duplicate name in another case", models.AccModelRequest{Name: "EXISTING"}, http.StatusBadRequest},
		{"name too short", models.AccModelRequest{Name: "ab"}, http.StatusUnprocessableEntity},
		{"name too long", models.AccModelRequest{Name: strings.Repeat("x", 101)}, http.StatusUnprocessableEntity},
		{"invalid JSON", "invalid json", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(t, "POST", "/acc-models/", tt.requestBody)
			w := httptest.NewRecorder()

			handler.CreateAccModel(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				var m models.AccModel
				testutil.AssertJSON(t, w, &m)
				if m.ID == 0 || m.CreatedAt.IsZero() {
					t.Errorf("Expected id and created_at, got %+v", m)
				}
			}
		})
	}
}

func TestAccModelLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAccModelHandler(db, testutil.GetTestConfig())
	id := testutil.CreateTestAccModel(t, db, "Storefront")
	testutil.CreateTestAccModel(t, db, "Backoffice")

	t.Run("get", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/acc-models/"+idString(id), nil)
		req.SetPathValue("id", idString(id))
		w := httptest.NewRecorder()

		handler.GetAccModel(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("get missing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/acc-models/999", nil)
		req.SetPathValue("id", "999")
		w := httptest.NewRecorder()

		handler.GetAccModel(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/acc-models/abc", nil)
		req.SetPathValue("id", "abc")
		w := httptest.NewRecorder()

		handler.GetAccModel(w, req)

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("list with limit", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/acc-models/?limit=1", nil)
		w := httptest.NewRecorder()

		handler.ListAccModels(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var list []models.AccModel
		testutil.AssertJSON(t, w, &list)
		if len(list) != 1 {
			t.Errorf("Expected 1 model, got %d", len(list))
		}
	})

	t.Run("rename onto another model", func(t *testing.T) {
		req := jsonRequest(t, "PUT", "/acc-models/"+idString(id), models.AccModelRequest{Name: "backoffice"})
		req.SetPathValue("id", idString(id))
		w := httptest.NewRecorder()

		handler.UpdateAccModel(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("delete returns the record", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/acc-models/"+idString(id), nil)
		req.SetPathValue("id", idString(id))
		w := httptest.NewRecorder()

		handler.DeleteAccModel(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var m models.AccModel
		testutil.AssertJSON(t, w, &m)
		if m.Name != "Storefront" {
			t.Errorf("Expected deleted model 'Storefront', got '%s'", m.Name)
		}
	})
}

func TestComponentHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewComponentHandler(db, testutil.GetTestConfig())
	modelID := testutil.CreateTestAccModel(t, db, "Storefront")
	testutil.CreateTestComponent(t, db, modelID, "Search")

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{"valid component", models.ComponentRequest{Name: "Cart", AccModelID: modelID}, http.StatusOK},
		{"single character name", models.ComponentRequest{Name: "X", AccModelID: modelID}, http.StatusOK},
		{"missing model", models.ComponentRequest{Name: "Cart", AccModelID: modelID + 99}, http.StatusNotFound},
		{"duplicate in model", models.ComponentRequest{Name: "search", AccModelID: modelID}, http.StatusBadRequest},
		{"empty name", models.ComponentRequest{AccModelID: modelID}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(t, "POST", "/components/", tt.requestBody)
			w := httptest.NewRecorder()

			handler.CreateComponent(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	t.Run("list by model includes model name", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/components/acc_model/"+idString(modelID), nil)
		req.SetPathValue("id", idString(modelID))
		w := httptest.NewRecorder()

		handler.ListComponentsByAccModel(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var list []models.Component
		testutil.AssertJSON(t, w, &list)
		if len(list) != 3 {
			t.Fatalf("Expected 3 components, got %d", len(list))
		}
		if list[0].AccModelName == nil || *list[0].AccModelName != "Storefront" {
			t.Errorf("Expected acc_model_name 'Storefront', got %v", list[0].AccModelName)
		}
	})
}

func TestAttributeHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAttributeHandler(db, testutil.GetTestConfig())
	modelID := testutil.CreateTestAccModel(t, db, "Storefront")
	compID := testutil.CreateTestComponent(t, db, modelID, "Cart")
	testutil.CreateTestCapability(t, db, compID, "Add item")
	testutil.CreateTestCapability(t, db, compID, "Remove item")

	req := jsonRequest(t, "POST", "/attributes/", models.AttributeRequest{Name: "Reliable"})
	w := httptest.NewRecorder()
	handler.CreateAttribute(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var attr models.Attribute
	testutil.AssertJSON(t, w, &attr)

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM capability_assessments WHERE attribute_id = $1`, attr.ID).Scan(&n); err != nil {
		t.Fatalf("Failed to count assessments: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 assessments for the new attribute, got %d", n)
	}

	req = jsonRequest(t, "POST", "/attributes/", models.AttributeRequest{Name: "reliable"})
	w = httptest.NewRecorder()
	handler.CreateAttribute(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	req = jsonRequest(t, "POST", "/attributes/", models.AttributeRequest{Name: "ok"})
	w = httptest.NewRecorder()
	handler.CreateAttribute(w, req)
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
}

func TestCapabilityHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewCapabilityHandler(db, testutil.GetTestConfig())
	modelID := testutil.CreateTestAccModel(t, db, "Storefront")
	compID := testutil.CreateTestComponent(t, db, modelID, "Cart")
	testutil.CreateTestAttribute(t, db, "Fast")
	testutil.CreateTestAttribute(t, db, "Secure")
	testutil.CreateTestAttribute(t, db, "Usable")

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		wantFanOut     int
	}{
		{"valid capability", models.CapabilityRequest{Name: "Checkout", ComponentID: compID}, http.StatusOK, 3},
		{"missing component", models.CapabilityRequest{Name: "Refund", ComponentID: compID + 99}, http.StatusNotFound, 0},
		{"duplicate in component", models.CapabilityRequest{Name: "CHECKOUT", ComponentID: compID}, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(t, "POST", "/capabilities/", tt.requestBody)
			w := httptest.NewRecorder()

			handler.CreateCapability(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var c models.Capability
			testutil.AssertJSON(t, w, &c)
			var n int
			if err := db.QueryRow(`SELECT COUNT(*) FROM capability_assessments WHERE capability_id = $1`, c.ID).Scan(&n); err != nil {
				t.Fatalf("Failed to count assessments: %v", err)
			}
			if n != tt.wantFanOut {
				t.Errorf("Expected %d assessments, got %d", tt.wantFanOut, n)
			}
		})
	}

	t.Run("list for missing component", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/capabilities/component/999", nil)
		req.SetPathValue("id", "999")
		w := httptest.NewRecorder()

		handler.ListCapabilitiesByComponent(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
