// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/qxf2/acc-model-app/auth"
	"github.com/qxf2/acc-model-app/cliparse"
	"github.com/qxf2/acc-model-app/middleware"
	"github.com/qxf2/acc-model-app/models"
	"github.com/qxf2/acc-model-app/store"
)

type UserHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{store: store.New(db), cfg: cfg}
}

// CreateUser handles POST /users/
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !parseBody(w, r, &req) {
		return
	}

	for _, msg := range []string{
		checkLength("username", req.Username, 3, 100),
		checkLength("email", req.Email, 3, 100),
		checkLength("password", req.Password, 6, auth.MaxPasswordBytes),
	} {
		if msg != "" {
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, msg)
			return
		}
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "password must be at most 72 bytes")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "An unexpected error occurred while creating the user")
		return
	}

	u, err := h.store.CreateUser(r.Context(), req.Username, req.Email, hash, req.Designation)
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		middleware.ErrorResponse(w, http.StatusBadRequest, "User with this username already exists")
		return
	case errors.Is(err, store.ErrEmailTaken):
		middleware.ErrorResponse(w, http.StatusBadRequest, "User with this email already exists")
		return
	case err != nil:
		storeError(w, err, "create the user", "", "")
		return
	}

	slog.Info("user created", "user_id", u.ID, "username", u.Username)
	middleware.JSONResponse(w, http.StatusOK, u)
}

// ListUsers handles GET /users/
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListUsers(r.Context(), limitParam(r))
	if err != nil {
		storeError(w, err, "retrieve the users", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	u, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		storeError(w, err, "retrieve the user", "User not found", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /users/{id} (requires auth)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	u, err := h.store.DeleteUser(r.Context(), id)
	if err != nil {
		storeError(w, err, "delete the user", "User not found", "")
		return
	}

	caller, _ := middleware.UserFromContext(r.Context())
	slog.Info("user deleted", "user_id", u.ID, "by", caller.Username)
	middleware.JSONResponse(w, http.StatusOK, u)
}

// GetCurrentUser handles GET /users/users/me/ (requires auth)
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.Unauthorized(w, "Not authenticated")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, u)
}

// Login handles POST /token with form fields username and password
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing username or password")
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if username == "" || password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	u, err := h.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		storeError(w, err, "log in", "User does not exist", "")
		return
	}

	if err := auth.CheckPassword(u.HashedPassword, password); err != nil {
		if !errors.Is(err, auth.ErrInvalidPassword) {
			slog.Error("failed to check password", "user_id", u.ID, "error", err)
		}
		middleware.Unauthorized(w, "Incorrect username or password")
		return
	}

	h.issueToken(w, u.Username)
}

// RefreshToken handles POST /refresh-token?refresh_token=...
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	username, err := auth.ParseToken(r.URL.Query().Get("refresh_token"), h.cfg.SecretKey)
	if err != nil {
		middleware.Unauthorized(w, "Invalid refresh token")
		return
	}

	u, err := h.store.GetUserByUsername(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		middleware.Unauthorized(w, "Invalid refresh token")
		return
	}
	if err != nil {
		storeError(w, err, "refresh the token", "", "")
		return
	}

	h.issueToken(w, u.Username)
}

func (h *UserHandler) issueToken(w http.ResponseWriter, username string) {
	token, err := auth.IssueToken(username, h.cfg.SecretKey, h.cfg.TokenTTL, time.Now())
	if err != nil {
		slog.Error("failed to issue token", "username", username, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "An unexpected error occurred while creating the JWT token.")
		return
	}

	slog.Info("token issued", "username", username)
	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   models.TokenTypeBearer,
	})
}
