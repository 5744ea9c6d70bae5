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

type AccModelHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewAccModelHandler(db *sql.DB, cfg cliparse.Config) *AccModelHandler {
	return &AccModelHandler{store: store.New(db), cfg: cfg}
}

func validAccModel(w http.ResponseWriter, req models.AccModelRequest) bool {
	if msg := checkLength("name", req.Name, 3, 100); msg != "" {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, msg)
		return false
	}
	return true
}

// CreateAccModel handles POST /acc-models/
func (h *AccModelHandler) CreateAccModel(w http.ResponseWriter, r *http.Request) {
	var req models.AccModelRequest
	if !parseBody(w, r, &req) || !validAccModel(w, req) {
		return
	}

	m, err := h.store.CreateAccModel(r.Context(), req)
	if err != nil {
		storeError(w, err, "create the ACC model", "ACC model not found", "ACC model with this name already exists")
		return
	}

	slog.Info("acc model created", "acc_model_id", m.ID, "name", m.Name)
	middleware.JSONResponse(w, http.StatusOK, m)
}

// ListAccModels handles GET /acc-models/
func (h *AccModelHandler) ListAccModels(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListAccModels(r.Context(), limitParam(r))
	if err != nil {
		storeError(w, err, "fetch the ACC models", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// GetAccModel handles GET /acc-models/{id}
func (h *AccModelHandler) GetAccModel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	m, err := h.store.GetAccModel(r.Context(), id)
	if err != nil {
		storeError(w, err, "fetch the ACC model", "ACC model not found", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, m)
}

// UpdateAccModel handles PUT /acc-models/{id}
func (h *AccModelHandler) UpdateAccModel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.AccModelRequest
	if !parseBody(w, r, &req) || !validAccModel(w, req) {
		return
	}

	m, err := h.store.UpdateAccModel(r.Context(), id, req)
	if err != nil {
		storeError(w, err, "update the ACC model", "ACC model not found", "ACC model name already in use")
		return
	}

	slog.Info("acc model updated", "acc_model_id", m.ID)
	middleware.JSONResponse(w, http.StatusOK, m)
}

// DeleteAccModel handles DELETE /acc-models/{id}
// Components, capabilities and their assessments go with it.
func (h *AccModelHandler) DeleteAccModel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	m, err := h.store.DeleteAccModel(r.Context(), id)
	if err != nil {
		storeError(w, err, "delete the ACC model", "ACC model not found", "")
		return
	}

	slog.Info("acc model deleted", "acc_model_id", m.ID)
	middleware.JSONResponse(w, http.StatusOK, m)
}
