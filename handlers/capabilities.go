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

type CapabilityHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewCapabilityHandler(db *sql.DB, cfg cliparse.Config) *CapabilityHandler {
	return &CapabilityHandler{store: store.New(db), cfg: cfg}
}

func validCapability(w http.ResponseWriter, req models.CapabilityRequest) bool {
	if msg := checkLength("name", req.Name, 1, 100); msg != "" {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, msg)
		return false
	}
	return true
}

func capabilityWriteError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, store.ErrParentNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Component not found")
		return
	}
	storeError(w, err, op, "Capability not found", "Capability name already in use in this component")
}

// CreateCapability handles POST /capabilities/
// Every existing attribute gets an assessment for the new capability.
func (h *CapabilityHandler) CreateCapability(w http.ResponseWriter, r *http.Request) {
	var req models.CapabilityRequest
	if !parseBody(w, r, &req) || !validCapability(w, req) {
		return
	}

	c, n, err := h.store.CreateCapability(r.Context(), req)
	if err != nil {
		capabilityWriteError(w, err, "create the capability")
		return
	}

	slog.Info("capability created", "capability_id", c.ID, "component_id", c.ComponentID, "assessments_created", n)
	middleware.JSONResponse(w, http.StatusOK, c)
}

// ListCapabilities handles GET /capabilities/
func (h *CapabilityHandler) ListCapabilities(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListCapabilities(r.Context(), limitParam(r))
	if err != nil {
		storeError(w, err, "retrieve the capabilities", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// ListCapabilitiesByComponent handles GET /capabilities/component/{id}
func (h *CapabilityHandler) ListCapabilitiesByComponent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.store.ListCapabilitiesByComponent(r.Context(), id)
	if err != nil {
		storeError(w, err, "retrieve the capabilities of the component", "Component not found", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// GetCapability handles GET /capabilities/{id}
func (h *CapabilityHandler) GetCapability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.store.GetCapability(r.Context(), id)
	if err != nil {
		storeError(w, err, "retrieve the capability", "Capability not found", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// UpdateCapability handles PUT /capabilities/{id}
func (h *CapabilityHandler) UpdateCapability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CapabilityRequest
	if !parseBody(w, r, &req) || !validCapability(w, req) {
		return
	}

	c, err := h.store.UpdateCapability(r.Context(), id, req)
	if err != nil {
		capabilityWriteError(w, err, "update the capability")
		return
	}

	slog.Info("capability updated", "capability_id", c.ID)
	middleware.JSONResponse(w, http.StatusOK, c)
}

// DeleteCapability handles DELETE /capabilities/{id}
func (h *CapabilityHandler) DeleteCapability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.store.DeleteCapability(r.Context(), id)
	if err != nil {
		storeError(w, err, "delete the capability", "Capability not found", "")
		return
	}

	slog.Info("capability deleted", "capability_id", c.ID)
	middleware.JSONResponse(w, http.StatusOK, c)
}
