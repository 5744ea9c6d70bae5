// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ACC model API.

# Handler Types

Each handler is a struct built from the database and config:

  - AccModelHandler, ComponentHandler, AttributeHandler, CapabilityHandler:
    hierarchy CRUD
  - AssessmentHandler: ratings, lookups and aggregates
  - HistoryHandler: ratings as of a date and the start/end trend view
  - UserHandler: registration, login and token refresh

	accModelHandler := handlers.NewAccModelHandler(db, cfg)

# Errors

Store errors map to status codes in one place (storeError):

	store.ErrNotFound, ErrParentNotFound  404
	store.ErrConflict                     400
	bad path, query or body               422
	anything else                         500, detail logged only

# Authentication

Handlers mounted behind middleware.RequireAuth read the caller with
middleware.UserFromContext. Rating writes attribute the rating to that user.
*/
package handlers
