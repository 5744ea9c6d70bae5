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

const attributeColumns = `id, name, description`

func scanAttribute(row interface{ Scan(...any) error }) (models.Attribute, error) {
	var a models.Attribute
	err := row.Scan(&a.ID, &a.Name, &a.Description)
	return a, err
}

func (s *Store) GetAttribute(ctx context.Context, id int64) (models.Attribute, error) {
	a, err := scanAttribute(s.db.QueryRowContext(ctx,
		`SELECT `+attributeColumns+` FROM attributes WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Attribute{}, ErrNotFound
	}
	if err != nil {
		return models.Attribute{}, fmt.Errorf("failed to query attribute: %w", err)
	}
	return a, nil
}

func (s *Store) ListAttributes(ctx context.Context, limit int) ([]models.Attribute, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+attributeColumns+` FROM attributes ORDER BY id LIMIT $1`, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query attributes: %w", err)
	}
	defer rows.Close()

	out := []models.Attribute{}
	for rows.Next() {
		a, err := scanAttribute(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attribute: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) attributeNameTaken(ctx context.Context, q querier, name string, excludeID int64) (bool, error) {
	return exists(ctx, q, `
		SELECT EXISTS(
			SELECT 1 FROM attributes WHERE LOWER(name) = LOWER($1) AND id <> $2
		)`, name, excludeID)
}

// CreateAttribute inserts an attribute and one capability assessment for
// every existing capability, atomically. It returns the attribute and the
// number of assessments created.
func (s *Store) CreateAttribute(ctx context.Context, req models.AttributeRequest) (models.Attribute, int64, error) {
	var (
		attr   models.Attribute
		fanOut int64
	)

	errTx := s.withTx(ctx, func(tx *sql.Tx) error {
		taken, err := s.attributeNameTaken(ctx, tx, req.Name, 0)
		if err != nil {
			return fmt.Errorf("failed to check attribute name: %w", err)
		}
		if taken {
			return ErrConflict
		}

		attr, err = scanAttribute(tx.QueryRowContext(ctx, `
			INSERT INTO attributes (name, description)
			VALUES ($1, $2)
			RETURNING `+attributeColumns,
			req.Name, req.Description))
		if err != nil {
			return writeError("insert attribute", err)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO capability_assessments (capability_id, attribute_id)
			SELECT id, CAST($1 AS BIGINT) FROM capabilities
		`, attr.ID)
		if err != nil {
			return fmt.Errorf("failed to create capability assessments: %w", err)
		}
		fanOut, err = res.RowsAffected()
		return err
	})
	if errTx != nil {
		return models.Attribute{}, 0, errTx
	}
	return attr, fanOut, nil
}

func (s *Store) UpdateAttribute(ctx context.Context, id int64, req models.AttributeRequest) (models.Attribute, error) {
	if _, err := s.GetAttribute(ctx, id); err != nil {
		return models.Attribute{}, err
	}

	taken, err := s.attributeNameTaken(ctx, s.db, req.Name, id)
	if err != nil {
		return models.Attribute{}, fmt.Errorf("failed to check attribute name: %w", err)
	}
	if taken {
		return models.Attribute{}, ErrConflict
	}

	a, err := scanAttribute(s.db.QueryRowContext(ctx, `
		UPDATE attributes SET name = $1, description = $2
		WHERE id = $3
		RETURNING `+attributeColumns,
		req.Name, req.Description, id))
	if err != nil {
		return models.Attribute{}, writeError("update attribute", err)
	}
	return a, nil
}

// DeleteAttribute removes an attribute and its capability assessments.
// Rating history for those assessments is kept.
func (s *Store) DeleteAttribute(ctx context.Context, id int64) (models.Attribute, error) {
	a, err := s.GetAttribute(ctx, id)
	if err != nil {
		return models.Attribute{}, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attributes WHERE id = $1`, id); err != nil {
		return models.Attribute{}, fmt.Errorf("failed to delete attribute: %w", err)
	}
	return a, nil
}
