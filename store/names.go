// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Name lookups match case-insensitively, like the uniqueness checks.

func (s *Store) idByName(ctx context.Context, what, query string, args ...any) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up %s: %w", what, err)
	}
	return id, nil
}

func (s *Store) AccModelIDByName(ctx context.Context, name string) (int64, error) {
	return s.idByName(ctx, "acc model",
		`SELECT id FROM acc_models WHERE LOWER(name) = LOWER($1)`, name)
}

func (s *Store) ComponentIDByName(ctx context.Context, accModelID int64, name string) (int64, error) {
	return s.idByName(ctx, "component",
		`SELECT id FROM components WHERE acc_model_id = $1 AND LOWER(name) = LOWER($2)`, accModelID, name)
}

func (s *Store) CapabilityIDByName(ctx context.Context, componentID int64, name string) (int64, error) {
	return s.idByName(ctx, "capability",
		`SELECT id FROM capabilities WHERE component_id = $1 AND LOWER(name) = LOWER($2)`, componentID, name)
}

func (s *Store) AttributeIDByName(ctx context.Context, name string) (int64, error) {
	return s.idByName(ctx, "attribute",
		`SELECT id FROM attributes WHERE LOWER(name) = LOWER($1)`, name)
}
