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
	"github.com/qxf2/acc-model-app/store"
)

type ComponentHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewComponentHandler(db *sql.DB, cfg cliparse.Config) *ComponentHandler {
	return &ComponentHandler{store: store.New(db), cfg: cfg}
}

func validComponent(w http.ResponseWriter, req models.ComponentRequest) bool {
	if msg := checkLength("name", req.Name, 1, 100); msg != "" {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, msg)
		return false
	}
	return true
}

// componentWriteError handles the errors shared by create and update
func componentWriteError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, store.ErrParentNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "ACC model not found")
		return
	}
	storeError(w, err, op, "Component not found", "Component with this name already exists")
}

// CreateComponent handles POST /components/
func (h *ComponentHandler) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var req models.ComponentRequest
	if !parseBody(w, r, &req) || !validComponent(w, req) {
		return
	}

	c, err := h.store.CreateComponent(r.Context(), req)
	if err != nil {
		componentWriteError(w, err, "create the component")
		return
	}

	slog.Info("component created", "component_id", c.ID, "acc_model_id", c.AccModelID)
	middleware.JSONResponse(w, http.StatusOK, c)
}

// ListComponents handles GET /components/
func (h *ComponentHandler) ListComponents(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListComponents(r.Context(), limitParam(r))
	if err != nil {
		storeError(w, err, "fetch the components", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// ListComponentsByAccModel handles GET /components/acc_model/{id}
func (h *ComponentHandler) ListComponentsByAccModel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.store.ListComponentsByAccModel(r.Context(), id, limitParam(r))
	if err != nil {
		storeError(w, err, "fetch the components", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// GetComponent handles GET /components/id/{id}
func (h *ComponentHandler) GetComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.store.GetComponent(r.Context(), id)
	if err != nil {
		storeError(w, err, "fetch the component", "Component not found", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// UpdateComponent handles PUT /components/id/{id}
func (h *ComponentHandler) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.ComponentRequest
	if !parseBody(w, r, &req) || !validComponent(w, req) {
		return
	}

	c, err := h.store.UpdateComponent(r.Context(), id, req)
	if err != nil {
		componentWriteError(w, err, "update the component")
		return
	}

	slog.Info("component updated", "component_id", c.ID)
	middleware.JSONResponse(w, http.StatusOK, c)
}

// DeleteComponent handles DELETE /components/{id}
func (h *ComponentHandler) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.store.DeleteComponent(r.Context(), id)
	if err != nil {
		storeError(w, err, "delete the component", "Component not found", "")
		return
	}

	slog.Info("component deleted", "component_id", c.ID)
	middleware.JSONResponse(w, http.StatusOK, c)
}
