// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/qxf2/acc-model-app/models"
)

const capabilitySelect = `
	SELECT c.id, c.name, c.description, c.component_id, co.name
	FROM capabilities c
	LEFT JOIN components co ON co.id = c.component_id`

func scanCapability(row interface{ Scan(...any) error }) (models.Capability, error) {
	var c models.Capability
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ComponentID, &c.ComponentName)
	return c, err
}

func (s *Store) GetCapability(ctx context.Context, id int64) (models.Capability, error) {
	c, err := scanCapability(s.db.QueryRowContext(ctx, capabilitySelect+` WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Capability{}, ErrNotFound
	}
	if err != nil {
		return models.Capability{}, fmt.Errorf("failed to query capability: %w", err)
	}
	return c, nil
}

func (s *Store) ListCapabilities(ctx context.Context, limit int) ([]models.Capability, error) {
	return s.queryCapabilities(ctx, capabilitySelect+` ORDER BY c.id LIMIT $1`, limitOrDefault(limit))
}

// ListCapabilitiesByComponent returns ErrNotFound when the component itself
// does not exist, and an empty list when it has no capabilities.
func (s *Store) ListCapabilitiesByComponent(ctx context.Context, componentID int64) ([]models.Capability, error) {
	if _, err := s.GetComponent(ctx, componentID); err != nil {
		return nil, err
	}
	return s.queryCapabilities(ctx, capabilitySelect+` WHERE c.component_id = $1 ORDER BY c.id`, componentID)
}

func (s *Store) queryCapabilities(ctx context.Context, query string, args ...any) ([]models.Capability, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query capabilities: %w", err)
	}
	defer rows.Close()

	out := []models.Capability{}
	for rows.Next() {
		c, err := scanCapability(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan capability: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// checkCapabilityWrite verifies the parent component exists and the name is
// free within it. q lets the check run inside a transaction.
func (s *Store) checkCapabilityWrite(ctx context.Context, q querier, req models.CapabilityRequest, excludeID int64) error {
	found, err := exists(ctx, q, `SELECT EXISTS(SELECT 1 FROM components WHERE id = $1)`, req.ComponentID)
	if err != nil {
		return fmt.Errorf("failed to check component: %w", err)
	}
	if !found {
		return ErrParentNotFound
	}

	taken, err := exists(ctx, q, `
		SELECT EXISTS(
			SELECT 1 FROM capabilities
			WHERE LOWER(name) = LOWER($1) AND component_id = $2 AND id <> $3
		)`, req.Name, req.ComponentID, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check capability name: %w", err)
	}
	if taken {
		return ErrConflict
	}
	return nil
}

// CreateCapability inserts a capability and one capability assessment for
// every existing attribute in one transaction. It returns the capability and
// the number of assessments created.
func (s *Store) CreateCapability(ctx context.Context, req models.CapabilityRequest) (models.Capability, int64, error) {
	var (
		id     int64
		fanOut int64
	)

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.checkCapabilityWrite(ctx, tx, req, 0); err != nil {
			return err
		}

		err := tx.QueryRowContext(ctx, `
			INSERT INTO capabilities (name, description, component_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, req.Name, req.Description, req.ComponentID).Scan(&id)
		if err != nil {
			return writeError("insert capability", err)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO capability_assessments (capability_id, attribute_id)
			SELECT CAST($1 AS BIGINT), id FROM attributes
		`, id)
		if err != nil {
			return fmt.Errorf("failed to create capability assessments: %w", err)
		}
		fanOut, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return models.Capability{}, 0, err
	}

	c, err := s.GetCapability(ctx, id)
	if err != nil {
		return models.Capability{}, 0, err
	}
	return c, fanOut, nil
}

func (s *Store) UpdateCapability(ctx context.Context, id int64, req models.CapabilityRequest) (models.Capability, error) {
	if _, err := s.GetCapability(ctx, id); err != nil {
		return models.Capability{}, err
	}
	if err := s.checkCapabilityWrite(ctx, s.db, req, id); err != nil {
		return models.Capability{}, err
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE capabilities
		SET name = $1, description = $2, component_id = $3
		WHERE id = $4
	`, req.Name, req.Description, req.ComponentID, id)
	if err != nil {
		return models.Capability{}, writeError("update capability", err)
	}
	return s.GetCapability(ctx, id)
}

// DeleteCapability removes a capability and its assessments and ratings.
// Rating history is kept.
func (s *Store) DeleteCapability(ctx context.Context, id int64) (models.Capability, error) {
	c, err := s.GetCapability(ctx, id)
	if err != nil {
		return models.Capability{}, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM capabilities WHERE id = $1`, id); err != nil {
		return models.Capability{}, fmt.Errorf("failed to delete capability: %w", err)
	}
	return c, nil
}
