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

const userColumns = `id, username, email, hashed_password, designation`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.Designation)
	return u, err
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	return s.getUser(ctx, `id = $1`, id)
}

// GetUserByUsername matches case-insensitively
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.getUser(ctx, `LOWER(username) = LOWER($1)`, username)
}

func (s *Store) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1`, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CreateUser stores a user whose password has already been hashed.
// Username and email must each be unused, compared case-insensitively.
func (s *Store) CreateUser(ctx context.Context, username, email, hashedPassword string, designation *string) (models.User, error) {
	var u models.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		taken, err := exists(ctx, tx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`, username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return ErrUsernameTaken
		}

		taken, err = exists(ctx, tx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return ErrEmailTaken
		}

		u, err = scanUser(tx.QueryRowContext(ctx, `
			INSERT INTO users (username, email, hashed_password, designation)
			VALUES ($1, $2, $3, $4)
			RETURNING `+userColumns,
			username, email, hashedPassword, designation))
		if err != nil {
			return userWriteError(err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// DeleteUser removes a user and their current ratings. Their rating
// history is kept.
func (s *Store) DeleteUser(ctx context.Context, id int64) (models.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return models.User{}, fmt.Errorf("failed to delete user: %w", err)
	}
	return u, nil
}
