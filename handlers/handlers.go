// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/qxf2/acc-model-app/middleware"
	"github.com/qxf2/acc-model-app/store"
)

// pathID parses a positive integer path value. On failure it writes a 422
// and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// queryID parses a required positive integer query parameter
func queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, name+" is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// maxIDs caps the length of id arrays in request bodies. Each id becomes
// one SQL placeholder.
const maxIDs = 1000

// checkIDs writes a 422 and returns false when ids is longer than maxIDs
func checkIDs(w http.ResponseWriter, field string, n int) bool {
	if n > maxIDs {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("%s may hold at most %d ids", field, maxIDs))
		return false
	}
	return true
}

// limitParam reads ?limit=, falling back to the store default
func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return store.DefaultLimit
	}
	return n
}

// checkLength validates the rune length of a field and returns a message
// describing the violation, or "".
func checkLength(field, value string, min, max int) string {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min:
		return fmt.Sprintf("%s must be at least %d characters", field, min)
	case n > max:
		return fmt.Sprintf("%s must be at most %d characters", field, max)
	}
	return ""
}

// parseBody decodes the JSON body into v, writing a 422 on failure
func parseBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Invalid JSON")
		return false
	}
	return true
}

// storeError maps a store error onto the response. notFound and conflict
// are the client-facing messages for those cases; op names the operation
// in logs and in the 500 message.
func storeError(w http.ResponseWriter, err error, op, notFound, conflict string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusBadRequest, conflict)
	default:
		slog.Error("failed to "+op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError,
			"An unexpected error occurred while trying to "+op)
	}
}
