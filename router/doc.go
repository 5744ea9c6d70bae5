// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ACC model API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

Every route is wrapped in request logging. Routes marked (auth) also
require an Authorization: Bearer token for an existing user.

# Endpoints

Hierarchy:

	/acc-models/                  POST, GET; /{id} GET, PUT, DELETE
	/components/                  POST, GET
	/components/acc_model/{id}    GET
	/components/id/{id}           GET, PUT
	/components/{id}              DELETE
	/attributes/                  POST (auth), GET; /{id} GET, PUT (auth), DELETE (auth)
	/capabilities/                POST (auth), GET; /{id} GET, PUT (auth), DELETE (auth)
	/capabilities/component/{id}  GET

Ratings:

	GET  /capability-assessments/?capability_id=&attribute_id=
	POST /capability-assessments/bulk/ids
	POST /capability-assessments/{id}/                (auth) rate
	POST /capability-assessments/batch/               (auth) rate many
	PUT  /capability-assessments/ratings/{rating_id}/ (auth)
	GET  /capability-assessments/{id}/
	GET  /capability-assessments/{id}/user/{user_id}/
	POST /capability-assessments/ratings/batch/?user_id=
	GET  /rating-options/

Aggregates and history:

	GET  /capability-assessments/{id}/aggregate
	POST /capability-assessments/aggregates
	POST /capability-assessments/historical-ratings
	POST /capability-assessments/historical-graph-data

Users:

	POST /users/, GET /users/, GET /users/{id}, DELETE /users/{id} (auth)
	GET  /users/users/me/ (auth)
	POST /token           form fields username, password
	POST /refresh-token?refresh_token=
*/
package router
