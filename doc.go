// Copyright (c) 2026 KU Polls Authors. All rights reserved.

/*
Package main provides the entry point for the KU Polls API server.

KU Polls is a polling service: questions are published inside a time
window, logged-in users cast one vote per question (re-voting changes
the vote), and results are computed live from the vote ledger.

# Starting the Server

The server reads environment variables, an optional .env file, or CLI
flags for configuration:

	DATABASE_URL=postgres://... SESSION_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8000 -t sqlite -d "file:kupolls.db" -session-secret s3cret

# Configuration

Required settings:

  - SESSION_SECRET (-session-secret): secret for session cookies

Optional settings:

  - PORT (-p): server port (default: 8000)
  - DATABASE_URL (-d): connection string (default: file:kupolls.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_USERNAME / ADMIN_PASSWORD: staff account seeded at startup
  - HIDE_CLOSED (-hide-closed): exclude ended questions from the index

# Architecture

The server uses a handler-based architecture with dependency injection:

  - polls: eligibility evaluation, vote ledger, result aggregation
  - handlers: HTTP request handlers (questions, voting, auth, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, JSON helpers, client IP extraction
  - auth: password hashing and session cookies
  - metrics: Prometheus vote counters
  - db: connection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
