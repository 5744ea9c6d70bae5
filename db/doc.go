// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open picks the driver from cfg.DatabaseType (lib/pq for postgres,
modernc.org/sqlite for sqlite) and pings before returning:

	conn, err := db.Open(ctx, cfg)

SQLite connections enable foreign keys and use a single connection.

# Schema Creation

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Relationships

	acc_models 1──* components 1──* capabilities
	capabilities *──* attributes (via capability_assessments)
	capability_assessments 1──* ratings *──1 users

Foreign keys use ON DELETE CASCADE. rating_history has none, so history
outlives the rows it describes.
*/
package db
