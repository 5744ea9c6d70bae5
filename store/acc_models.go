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

const accModelColumns = `id, name, description, created_at, updated_at`

func scanAccModel(row interface{ Scan(...any) error }) (models.AccModel, error) {
	var m models.AccModel
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (s *Store) GetAccModel(ctx context.Context, id int64) (models.AccModel, error) {
	m, err := scanAccModel(s.db.QueryRowContext(ctx,
		`SELECT `+accModelColumns+` FROM acc_models WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.AccModel{}, ErrNotFound
	}
	if err != nil {
		return models.AccModel{}, fmt.Errorf("failed to query acc model: %w", err)
	}
	return m, nil
}

func (s *Store) ListAccModels(ctx context.Context, limit int) ([]models.AccModel, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+accModelColumns+` FROM acc_models ORDER BY id LIMIT $1`, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query acc models: %w", err)
	}
	defer rows.Close()

	out := []models.AccModel{}
	for rows.Next() {
		m, err := scanAccModel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan acc model: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// accModelNameTaken reports whether another model (not excludeID) uses name,
// compared case-insensitively
func (s *Store) accModelNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	return exists(ctx, s.db, `
		SELECT EXISTS(
			SELECT 1 FROM acc_models WHERE LOWER(name) = LOWER($1) AND id <> $2
		)`, name, excludeID)
}

func (s *Store) CreateAccModel(ctx context.Context, req models.AccModelRequest) (models.AccModel, error) {
	taken, err := s.accModelNameTaken(ctx, req.Name, 0)
	if err != nil {
		return models.AccModel{}, fmt.Errorf("failed to check acc model name: %w", err)
	}
	if taken {
		return models.AccModel{}, ErrConflict
	}

	now := s.timestamp()
	m, err := scanAccModel(s.db.QueryRowContext(ctx, `
		INSERT INTO acc_models (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+accModelColumns,
		req.Name, req.Description, now, now))
	if err != nil {
		return models.AccModel{}, writeError("insert acc model", err)
	}
	return m, nil
}

func (s *Store) UpdateAccModel(ctx context.Context, id int64, req models.AccModelRequest) (models.AccModel, error) {
	if _, err := s.GetAccModel(ctx, id); err != nil {
		return models.AccModel{}, err
	}

	taken, err := s.accModelNameTaken(ctx, req.Name, id)
	if err != nil {
		return models.AccModel{}, fmt.Errorf("failed to check acc model name: %w", err)
	}
	if taken {
		return models.AccModel{}, ErrConflict
	}

	m, err := scanAccModel(s.db.QueryRowContext(ctx, `
		UPDATE acc_models
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4
		RETURNING `+accModelColumns,
		req.Name, req.Description, s.timestamp(), id))
	if err != nil {
		return models.AccModel{}, writeError("update acc model", err)
	}
	return m, nil
}

// DeleteAccModel removes a model and, by cascade, its components,
// capabilities and their assessments. It returns the deleted row.
func (s *Store) DeleteAccModel(ctx context.Context, id int64) (models.AccModel, error) {
	m, err := s.GetAccModel(ctx, id)
	if err != nil {
		return models.AccModel{}, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM acc_models WHERE id = $1`, id); err != nil {
		return models.AccModel{}, fmt.Errorf("failed to delete acc model: %w", err)
	}
	return m, nil
}
