// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/qxf2/acc-model-app/auth"
	"github.com/qxf2/acc-model-app/cliparse"
	"github.com/qxf2/acc-model-app/db"
)

// TestDBURL opens a private in-memory SQLite database
const TestDBURL = "file::memory:"

// TestSecret signs tokens in tests
const TestSecret = "test-secret-key"

// SetupTestDB creates a fresh in-memory database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), GetTestConfig())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  TestDBURL,
		DatabaseType: cliparse.DatabaseSQLite,
		SecretKey:    TestSecret,
		TokenTTL:     time.Hour,
		Location:     time.UTC,
	}
}

func insertID(t *testing.T, conn *sql.DB, what, query string, args ...any) int64 {
	t.Helper()

	var id int64
	if err := conn.QueryRow(query, args...).Scan(&id); err != nil {
		t.Fatalf("Failed to create test %s: %v", what, err)
	}
	return id
}

// CreateTestAccModel inserts an ACC model and returns its ID
func CreateTestAccModel(t *testing.T, conn *sql.DB, name string) int64 {
	t.Helper()
	now := time.Now().UTC()
	return insertID(t, conn, "acc model", `
		INSERT INTO acc_models (name, description, created_at, updated_at)
		VALUES ($1, 'A test model', $2, $3)
		RETURNING id
	`, name, now, now)
}

// CreateTestComponent inserts a component under an ACC model and returns its ID
func CreateTestComponent(t *testing.T, conn *sql.DB, accModelID int64, name string) int64 {
	t.Helper()
	return insertID(t, conn, "component", `
		INSERT INTO components (name, description, acc_model_id)
		VALUES ($1, 'A test component', $2)
		RETURNING id
	`, name, accModelID)
}

// CreateTestCapability inserts a capability without creating assessments
func CreateTestCapability(t *testing.T, conn *sql.DB, componentID int64, name string) int64 {
	t.Helper()
	return insertID(t, conn, "capability", `
		INSERT INTO capabilities (name, description, component_id)
		VALUES ($1, 'A test capability', $2)
		RETURNING id
	`, name, componentID)
}

// CreateTestAttribute inserts an attribute without creating assessments
func CreateTestAttribute(t *testing.T, conn *sql.DB, name string) int64 {
	t.Helper()
	return insertID(t, conn, "attribute", `
		INSERT INTO attributes (name, description)
		VALUES ($1, 'A test attribute')
		RETURNING id
	`, name)
}

// CreateTestAssessment links a capability and an attribute and returns the assessment ID
func CreateTestAssessment(t *testing.T, conn *sql.DB, capabilityID, attributeID int64) int64 {
	t.Helper()
	return insertID(t, conn, "capability assessment", `
		INSERT INTO capability_assessments (capability_id, attribute_id)
		VALUES ($1, $2)
		RETURNING id
	`, capabilityID, attributeID)
}

// Hierarchy is a model, component, capability, attribute and the
// assessment joining them
type Hierarchy struct {
	AccModelID   int64
	ComponentID  int64
	CapabilityID int64
	AttributeID  int64
	AssessmentID int64
}

// CreateTestHierarchy builds one assessment with every parent named after prefix
func CreateTestHierarchy(t *testing.T, conn *sql.DB, prefix string) Hierarchy {
	t.Helper()

	var h Hierarchy
	h.AccModelID = CreateTestAccModel(t, conn, prefix+" Model")
	h.ComponentID = CreateTestComponent(t, conn, h.AccModelID, prefix+" Component")
	h.CapabilityID = CreateTestCapability(t, conn, h.ComponentID, prefix+" Capability")
	h.AttributeID = CreateTestAttribute(t, conn, prefix+" Attribute")
	h.AssessmentID = CreateTestAssessment(t, conn, h.CapabilityID, h.AttributeID)
	return h
}

// CreateTestUser registers a user with a bcrypt-hashed password and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, username, password string) int64 {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return insertID(t, conn, "user", `
		INSERT INTO users (username, email, hashed_password, designation)
		VALUES ($1, $2, $3, 'Tester')
		RETURNING id
	`, username, username+"@example.com", hash)
}

// TestToken issues a valid access token for username
func TestToken(t *testing.T, cfg cliparse.Config, username string) string {
	t.Helper()

	token, err := auth.IssueToken(username, cfg.SecretKey, cfg.TokenTTL, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// BearerHeader returns request headers carrying token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// InsertTestRating stores a current rating and its history row at ts
func InsertTestRating(t *testing.T, conn *sql.DB, assessmentID, userID int64, label string, ts time.Time) int64 {
	t.Helper()

	id := insertID(t, conn, "rating", `
		INSERT INTO ratings (capability_assessment_id, user_id, rating, comments, timestamp)
		VALUES ($1, $2, $3, NULL, $4)
		RETURNING id
	`, assessmentID, userID, label, ts.UTC())
	InsertTestHistory(t, conn, assessmentID, userID, label, ts)
	return id
}

// InsertTestHistory appends a rating history row changed at ts
func InsertTestHistory(t *testing.T, conn *sql.DB, assessmentID, userID int64, label string, ts time.Time) int64 {
	t.Helper()
	return insertID(t, conn, "rating history", `
		INSERT INTO rating_history (capability_assessment_id, user_id, rating, comments, change_timestamp)
		VALUES ($1, $2, $3, NULL, $4)
		RETURNING id
	`, assessmentID, userID, label, ts.UTC())
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
