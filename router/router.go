// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/qxf2/acc-model-app/cliparse"
	"github.com/qxf2/acc-model-app/handlers"
	"github.com/qxf2/acc-model-app/middleware"
	"github.com/qxf2/acc-model-app/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accModelHandler := handlers.NewAccModelHandler(db, cfg)
	componentHandler := handlers.NewComponentHandler(db, cfg)
	attributeHandler := handlers.NewAttributeHandler(db, cfg)
	capabilityHandler := handlers.NewCapabilityHandler(db, cfg)
	assessmentHandler := handlers.NewAssessmentHandler(db, cfg)
	historyHandler := handlers.NewHistoryHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)

	users := store.New(db)
	public := middleware.WithLogging
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(users, cfg.SecretKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// ACC models
	mux.HandleFunc("POST /acc-models/{$}", public(accModelHandler.CreateAccModel))
	mux.HandleFunc("GET /acc-models/{$}", public(accModelHandler.ListAccModels))
	mux.HandleFunc("GET /acc-models/{id}", public(accModelHandler.GetAccModel))
	mux.HandleFunc("PUT /acc-models/{id}", public(accModelHandler.UpdateAccModel))
	mux.HandleFunc("DELETE /acc-models/{id}", public(accModelHandler.DeleteAccModel))

	// Components
	mux.HandleFunc("POST /components/{$}", public(componentHandler.CreateComponent))
	mux.HandleFunc("GET /components/{$}", public(componentHandler.ListComponents))
	mux.HandleFunc("GET /components/acc_model/{id}", public(componentHandler.ListComponentsByAccModel))
	mux.HandleFunc("GET /components/id/{id}", public(componentHandler.GetComponent))
	mux.HandleFunc("PUT /components/id/{id}", public(componentHandler.UpdateComponent))
	mux.HandleFunc("DELETE /components/{id}", public(componentHandler.DeleteComponent))

	// Attributes (writes require a token)
	mux.HandleFunc("POST /attributes/{$}", protected(attributeHandler.CreateAttribute))
	mux.HandleFunc("GET /attributes/{$}", public(attributeHandler.ListAttributes))
	mux.HandleFunc("GET /attributes/{id}", public(attributeHandler.GetAttribute))
	mux.HandleFunc("PUT /attributes/{id}", protected(attributeHandler.UpdateAttribute))
	mux.HandleFunc("DELETE /attributes/{id}", protected(attributeHandler.DeleteAttribute))

	// Capabilities (writes require a token)
	mux.HandleFunc("POST /capabilities/{$}", protected(capabilityHandler.CreateCapability))
	mux.HandleFunc("GET /capabilities/{$}", public(capabilityHandler.ListCapabilities))
	mux.HandleFunc("GET /capabilities/component/{id}", public(capabilityHandler.ListCapabilitiesByComponent))
	mux.HandleFunc("GET /capabilities/{id}", public(capabilityHandler.GetCapability))
	mux.HandleFunc("PUT /capabilities/{id}", protected(capabilityHandler.UpdateCapability))
	mux.HandleFunc("DELETE /capabilities/{id}", protected(capabilityHandler.DeleteCapability))

	// Capability assessments and ratings
	mux.HandleFunc("GET /capability-assessments/{$}", public(assessmentHandler.GetAssessmentByPair))
	mux.HandleFunc("POST /capability-assessments/bulk/ids", public(assessmentHandler.BulkAssessmentIDs))
	mux.HandleFunc("POST /capability-assessments/batch/{$}", protected(assessmentHandler.SubmitRatingsBatch))
	mux.HandleFunc("POST /capability-assessments/ratings/batch/{$}", public(assessmentHandler.ListUserRatingsBatch))
	mux.HandleFunc("PUT /capability-assessments/ratings/{rating_id}/{$}", protected(assessmentHandler.UpdateRating))
	mux.HandleFunc("POST /capability-assessments/{id}/{$}", protected(assessmentHandler.SubmitRating))
	mux.HandleFunc("GET /capability-assessments/{id}/{$}", public(assessmentHandler.ListRatings))
	mux.HandleFunc("GET /capability-assessments/{id}/user/{user_id}/{$}", public(assessmentHandler.ListUserRatings))

	// Aggregates and history
	mux.HandleFunc("GET /capability-assessments/{id}/aggregate", public(assessmentHandler.GetAggregate))
	mux.HandleFunc("POST /capability-assessments/aggregates", public(assessmentHandler.ListAggregates))
	mux.HandleFunc("POST /capability-assessments/historical-ratings", public(historyHandler.HistoricalRatings))
	mux.HandleFunc("POST /capability-assessments/historical-graph-data", public(historyHandler.HistoricalGraphData))
	mux.HandleFunc("GET /rating-options/{$}", public(handlers.RatingOptions))

	// Users and tokens
	mux.HandleFunc("POST /users/{$}", public(userHandler.CreateUser))
	mux.HandleFunc("GET /users/{$}", public(userHandler.ListUsers))
	mux.HandleFunc("GET /users/users/me/{$}", protected(userHandler.GetCurrentUser))
	mux.HandleFunc("GET /users/{id}", public(userHandler.GetUser))
	mux.HandleFunc("DELETE /users/{id}", protected(userHandler.DeleteUser))
	mux.HandleFunc("POST /token", public(userHandler.Login))
	mux.HandleFunc("POST /refresh-token", public(userHandler.RefreshToken))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{
			"message": "Welcome to the ACC Model App",
		})
	})

	return mux
}
