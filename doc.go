// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ACC model API server.

The server tracks Attribute-Component-Capability models: capabilities are
rated by users against quality attributes, ratings are averaged into a
label, and every change is kept so past states can be compared.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=acc.db SECRET_KEY=... go run .

Or against PostgreSQL:

	go run . --database-type postgres --database-url "postgres://..." --secret-key ...

# Configuration

Required settings:

  - DATABASE_URL (--database-url): SQLite path or PostgreSQL URL
  - SECRET_KEY (--secret-key): JWT signing secret

Optional settings:

  - PORT (--port): Server port (default: 8000)
  - DATABASE_TYPE (--database-type): sqlite or postgres (default: sqlite)
  - TIMEZONE (--timezone): location for date queries (default: UTC)
  - SEED_FILE (--seed-file): YAML bootstrap data

# Architecture

  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, bearer auth, JSON helpers
  - store: SQL persistence
  - rating: Label scores and aggregation
  - history: Date resolution and trend composition
  - auth: Password hashing and JWTs
  - seed: YAML bootstrap
  - models: Request/response types
  - db: Connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
