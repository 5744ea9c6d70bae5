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

const componentSelect = `
	SELECT c.id, c.name, c.description, c.acc_model_id, m.name
	FROM components c
	LEFT JOIN acc_models m ON m.id = c.acc_model_id`

func scanComponent(row interface{ Scan(...any) error }) (models.Component, error) {
	var c models.Component
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.AccModelID, &c.AccModelName)
	return c, err
}

func (s *Store) GetComponent(ctx context.Context, id int64) (models.Component, error) {
	c, err := scanComponent(s.db.QueryRowContext(ctx, componentSelect+` WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Component{}, ErrNotFound
	}
	if err != nil {
		return models.Component{}, fmt.Errorf("failed to query component: %w", err)
	}
	return c, nil
}

func (s *Store) ListComponents(ctx context.Context, limit int) ([]models.Component, error) {
	return s.queryComponents(ctx, componentSelect+` ORDER BY c.id LIMIT $1`, limitOrDefault(limit))
}

func (s *Store) ListComponentsByAccModel(ctx context.Context, accModelID int64, limit int) ([]models.Component, error) {
	return s.queryComponents(ctx,
		componentSelect+` WHERE c.acc_model_id = $1 ORDER BY c.id LIMIT $2`,
		accModelID, limitOrDefault(limit))
}

func (s *Store) queryComponents(ctx context.Context, query string, args ...any) ([]models.Component, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query components: %w", err)
	}
	defer rows.Close()

	out := []models.Component{}
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan component: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) componentNameTaken(ctx context.Context, name string, accModelID, excludeID int64) (bool, error) {
	return exists(ctx, s.db, `
		SELECT EXISTS(
			SELECT 1 FROM components
			WHERE LOWER(name) = LOWER($1) AND acc_model_id = $2 AND id <> $3
		)`, name, accModelID, excludeID)
}

func (s *Store) checkComponentWrite(ctx context.Context, req models.ComponentRequest, excludeID int64) error {
	if _, err := s.GetAccModel(ctx, req.AccModelID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrParentNotFound
		}
		return err
	}

	taken, err := s.componentNameTaken(ctx, req.Name, req.AccModelID, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check component name: %w", err)
	}
	if taken {
		return ErrConflict
	}
	return nil
}

func (s *Store) CreateComponent(ctx context.Context, req models.ComponentRequest) (models.Component, error) {
	if err := s.checkComponentWrite(ctx, req, 0); err != nil {
		return models.Component{}, err
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO components (name, description, acc_model_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, req.Name, req.Description, req.AccModelID).Scan(&id)
	if err != nil {
		return models.Component{}, writeError("insert component", err)
	}
	return s.GetComponent(ctx, id)
}

func (s *Store) UpdateComponent(ctx context.Context, id int64, req models.ComponentRequest) (models.Component, error) {
	if _, err := s.GetComponent(ctx, id); err != nil {
		return models.Component{}, err
	}
	if err := s.checkComponentWrite(ctx, req, id); err != nil {
		return models.Component{}, err
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE components
		SET name = $1, description = $2, acc_model_id = $3
		WHERE id = $4
	`, req.Name, req.Description, req.AccModelID, id)
	if err != nil {
		return models.Component{}, writeError("update component", err)
	}
	return s.GetComponent(ctx, id)
}

func (s *Store) DeleteComponent(ctx context.Context, id int64) (models.Component, error) {
	c, err := s.GetComponent(ctx, id)
	if err != nil {
		return models.Component{}, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM components WHERE id = $1`, id); err != nil {
		return models.Component{}, fmt.Errorf("failed to delete component: %w", err)
	}
	return c, nil
}
