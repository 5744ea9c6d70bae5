// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/qxf2/acc-model-app/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	_, err := db.Exec(Schema(dialect))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Schema returns the DDL for the given dialect. Only the auto-increment
// primary key differs between PostgreSQL and SQLite. Names are unique
// case-insensitively through LOWER() expression indexes.
func Schema(dialect string) string {
	pk := "BIGSERIAL PRIMARY KEY"
	if dialect == cliparse.DatabaseSQLite {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return strings.ReplaceAll(schema, "{{pk}}", pk)
}

const schema = `
-- ACC models
CREATE TABLE IF NOT EXISTS acc_models (
    id {{pk}},
    name TEXT NOT NULL,
    description TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_acc_models_lower_name ON acc_models(LOWER(name));

-- Components
CREATE TABLE IF NOT EXISTS components (
    id {{pk}},
    name TEXT NOT NULL,
    description TEXT,
    acc_model_id BIGINT NOT NULL REFERENCES acc_models(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_components_lower_name ON components(acc_model_id, LOWER(name));

-- Attributes
CREATE TABLE IF NOT EXISTS attributes (
    id {{pk}},
    name TEXT NOT NULL,
    description TEXT
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_attributes_lower_name ON attributes(LOWER(name));

-- Capabilities
CREATE TABLE IF NOT EXISTS capabilities (
    id {{pk}},
    name TEXT NOT NULL,
    description TEXT,
    component_id BIGINT NOT NULL REFERENCES components(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_capabilities_lower_name ON capabilities(component_id, LOWER(name));

-- Capability assessments: one row per (capability, attribute)
CREATE TABLE IF NOT EXISTS capability_assessments (
    id {{pk}},
    capability_id BIGINT NOT NULL REFERENCES capabilities(id) ON DELETE CASCADE,
    attribute_id BIGINT NOT NULL REFERENCES attributes(id) ON DELETE CASCADE,
    UNIQUE (capability_id, attribute_id)
);

CREATE INDEX IF NOT EXISTS idx_capability_assessments_attribute_id ON capability_assessments(attribute_id);

-- Users
CREATE TABLE IF NOT EXISTS users (
    id {{pk}},
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    designation TEXT
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_lower_username ON users(LOWER(username));
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_lower_email ON users(LOWER(email));

-- Ratings: a user's current rating of an assessment
CREATE TABLE IF NOT EXISTS ratings (
    id {{pk}},
    capability_assessment_id BIGINT NOT NULL REFERENCES capability_assessments(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    rating TEXT NOT NULL,
    comments TEXT,
    timestamp TIMESTAMP NOT NULL,
    UNIQUE (user_id, capability_assessment_id)
);

CREATE INDEX IF NOT EXISTS idx_ratings_capability_assessment_id ON ratings(capability_assessment_id);

-- Rating history: append-only, no foreign keys so it outlives its subjects
CREATE TABLE IF NOT EXISTS rating_history (
    id {{pk}},
    capability_assessment_id BIGINT NOT NULL,
    user_id BIGINT NOT NULL,
    rating TEXT NOT NULL,
    comments TEXT,
    change_timestamp TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rating_history_assessment ON rating_history(capability_assessment_id, change_timestamp);
`
