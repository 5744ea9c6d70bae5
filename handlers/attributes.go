// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/qxf2/acc-model-app/cliparse"
	"github.com/qxf2/acc-model-app/middleware"
	"github.com/qxf2/acc-model-app/models"
	"github.com/qxf2/acc-model-app/store"
)

type AttributeHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewAttributeHandler(db *sql.DB, cfg cliparse.Config) *AttributeHandler {
	return &AttributeHandler{store: store.New(db), cfg: cfg}
}

func validAttribute(w http.ResponseWriter, req models.AttributeRequest) bool {
	if msg := checkLength("name", req.Name, 3, 100); msg != "" {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, msg)
		return false
	}
	return true
}

// CreateAttribute handles POST /attributes/
// Every existing capability gets an assessment for the new attribute.
func (h *AttributeHandler) CreateAttribute(w http.ResponseWriter, r *http.Request) {
	var req models.AttributeRequest
	if !parseBody(w, r, &req) || !validAttribute(w, req) {
		return
	}

	a, n, err := h.store.CreateAttribute(r.Context(), req)
	if err != nil {
		storeError(w, err, "create the attribute", "Attribute not found", "Attribute with this name already exists")
		return
	}

	slog.Info("attribute created", "attribute_id", a.ID, "assessments_created", n)
	middleware.JSONResponse(w, http.StatusOK, a)
}

// ListAttributes handles GET /attributes/
func (h *AttributeHandler) ListAttributes(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListAttributes(r.Context(), limitParam(r))
	if err != nil {
		storeError(w, err, "fetch the attributes", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// GetAttribute handles GET /attributes/{id}
func (h *AttributeHandler) GetAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	a, err := h.store.GetAttribute(r.Context(), id)
	if err != nil {
		storeError(w, err, "fetch the attribute", "Attribute not found", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, a)
}

// UpdateAttribute handles PUT /attributes/{id}
func (h *AttributeHandler) UpdateAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.AttributeRequest
	if !parseBody(w, r, &req) || !validAttribute(w, req) {
		return
	}

	a, err := h.store.UpdateAttribute(r.Context(), id, req)
	if err != nil {
		storeError(w, err, "update the attribute", "Attribute not found", "Attribute name already in use")
		return
	}

	slog.Info("attribute updated", "attribute_id", a.ID)
	middleware.JSONResponse(w, http.StatusOK, a)
}

// DeleteAttribute handles DELETE /attributes/{id}
func (h *AttributeHandler) DeleteAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	a, err := h.store.DeleteAttribute(r.Context(), id)
	if err != nil {
		storeError(w, err, "delete the attribute", "Attribute not found", "")
		return
	}

	slog.Info("attribute deleted", "attribute_id", a.ID)
	middleware.JSONResponse(w, http.StatusOK, a)
}
