// Copyright (c) 2026 KU Polls Authors. All rights reserved.

/*
Package router defines HTTP routes for the KU Polls API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, voteMetrics)

# Endpoints

Health:

	GET /health

Polls (public):

	GET /questions              - Published questions, open before closed
	GET /questions/{id}         - Question detail with choices
	GET /questions/{id}/results - Live per-choice counts

Voting (login required):

	POST /questions/{id}/vote   - Cast or change a vote

Accounts:

	POST /auth/signup
	POST /auth/login
	POST /auth/logout
	GET  /auth/me

Question management (staff only):

	POST   /questions               - Create question
	POST   /questions/{id}/choices  - Add choice
	DELETE /questions/{id}          - Delete question (cascades)

Observability:

	GET /metrics - Prometheus counters

# Handler Initialization

The router creates handler instances with dependency injection; the
session store and the voting engine are shared across handlers.
*/
package router
