// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (request id, method, path, client IP) and completion
(status, response size, duration_ms). The request id comes from the
X-Request-ID header or is generated, and is echoed on the response.

# Authentication

Protect a handler with a bearer token:

	mux.HandleFunc("POST /attributes/", middleware.WithLogging(
		middleware.RequireAuth(store, cfg.SecretKey, h.CreateAttribute)))

Inside the handler:

	user, _ := middleware.UserFromContext(r.Context())

Missing, malformed and expired tokens, and tokens for deleted users, get
401 with WWW-Authenticate: Bearer.

# Recovery and CORS

	server := http.Server{
		Handler: middleware.CORS(middleware.WithRecover(mux)),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.AttributeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Invalid JSON")
		return
	}
*/
package middleware
