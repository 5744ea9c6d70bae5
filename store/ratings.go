// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/qxf2/acc-model-app/models"
)

const ratingColumns = `id, capability_assessment_id, user_id, rating, comments, timestamp`

func scanRating(row interface{ Scan(...any) error }) (models.Rating, error) {
	var r models.Rating
	err := row.Scan(&r.ID, &r.CapabilityAssessmentID, &r.UserID, &r.Rating, &r.Comments, &r.Timestamp)
	return r, err
}

func (s *Store) GetRating(ctx context.Context, id int64) (models.Rating, error) {
	r, err := scanRating(s.db.QueryRowContext(ctx,
		`SELECT `+ratingColumns+` FROM ratings WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Rating{}, ErrNotFound
	}
	if err != nil {
		return models.Rating{}, fmt.Errorf("failed to query rating: %w", err)
	}
	return r, nil
}

// UpsertRating stores userID's rating of req.CapabilityAssessmentID,
// replacing any earlier one, and appends the change to rating history.
// The returned bool is true when an existing rating was replaced.
// Concurrent submissions for the same pair resolve last-write-wins.
func (s *Store) UpsertRating(ctx context.Context, userID int64, req models.RatingRequest) (models.Rating, bool, error) {
	ts := s.ratingTime(req.Timestamp)

	var (
		rating  models.Rating
		updated bool
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		found, err := exists(ctx, tx,
			`SELECT EXISTS(SELECT 1 FROM capability_assessments WHERE id = $1)`, req.CapabilityAssessmentID)
		if err != nil {
			return fmt.Errorf("failed to check capability assessment: %w", err)
		}
		if !found {
			return ErrNotFound
		}

		updated, err = exists(ctx, tx, `
			SELECT EXISTS(
				SELECT 1 FROM ratings WHERE user_id = $1 AND capability_assessment_id = $2
			)`, userID, req.CapabilityAssessmentID)
		if err != nil {
			return fmt.Errorf("failed to check existing rating: %w", err)
		}

		rating, err = scanRating(tx.QueryRowContext(ctx, `
			INSERT INTO ratings (capability_assessment_id, user_id, rating, comments, timestamp)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, capability_assessment_id) DO UPDATE
			SET rating = excluded.rating,
			    comments = excluded.comments,
			    timestamp = excluded.timestamp
			RETURNING `+ratingColumns,
			req.CapabilityAssessmentID, userID, req.Rating, req.Comments, ts))
		if err != nil {
			return fmt.Errorf("failed to upsert rating: %w", err)
		}

		return appendHistory(ctx, tx, rating)
	})
	if err != nil {
		return models.Rating{}, false, err
	}
	return rating, updated, nil
}

// UpdateRating replaces the comments (when given) and timestamp of a rating.
// The label is unchanged; the edit is still recorded in rating history.
func (s *Store) UpdateRating(ctx context.Context, id int64, req models.RatingUpdateRequest) (models.Rating, error) {
	ts := s.ratingTime(req.Timestamp)

	var rating models.Rating
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		rating, err = scanRating(tx.QueryRowContext(ctx, `
			UPDATE ratings
			SET comments = COALESCE($1, comments), timestamp = $2
			WHERE id = $3
			RETURNING `+ratingColumns,
			req.Comments, ts, id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update rating: %w", err)
		}
		return appendHistory(ctx, tx, rating)
	})
	if err != nil {
		return models.Rating{}, err
	}
	return rating, nil
}

func appendHistory(ctx context.Context, tx *sql.Tx, r models.Rating) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO rating_history (capability_assessment_id, user_id, rating, comments, change_timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`, r.CapabilityAssessmentID, r.UserID, r.Rating, r.Comments, r.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("failed to append rating history: %w", err)
	}
	return nil
}

// ListRatingsByAssessment returns ErrNotFound when the assessment is absent
// and an empty list when it has no ratings.
func (s *Store) ListRatingsByAssessment(ctx context.Context, assessmentID int64) ([]models.Rating, error) {
	if _, err := s.GetAssessment(ctx, assessmentID); err != nil {
		return nil, err
	}
	return s.queryRatings(ctx, `
		SELECT `+ratingColumns+` FROM ratings
		WHERE capability_assessment_id = $1
		ORDER BY id`, assessmentID)
}

func (s *Store) ListRatingsByUserAndAssessment(ctx context.Context, userID, assessmentID int64) ([]models.Rating, error) {
	return s.queryRatings(ctx, `
		SELECT `+ratingColumns+` FROM ratings
		WHERE user_id = $1 AND capability_assessment_id = $2
		ORDER BY id`, userID, assessmentID)
}

func (s *Store) ListRatingsByUserAndAssessments(ctx context.Context, userID int64, assessmentIDs []int64) ([]models.Rating, error) {
	if len(assessmentIDs) == 0 {
		return []models.Rating{}, nil
	}
	list, args := inList(2, assessmentIDs)
	return s.queryRatings(ctx, `
		SELECT `+ratingColumns+` FROM ratings
		WHERE user_id = $1 AND capability_assessment_id IN (`+list+`)
		ORDER BY capability_assessment_id, id`, append([]any{userID}, args...)...)
}

func (s *Store) queryRatings(ctx context.Context, query string, args ...any) ([]models.Rating, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	out := []models.Rating{}
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RatingLabels returns the current rating labels of each assessment,
// keyed by assessment id. Assessments with no ratings are absent.
func (s *Store) RatingLabels(ctx context.Context, assessmentIDs []int64) (map[int64][]string, error) {
	labels := make(map[int64][]string, len(assessmentIDs))
	if len(assessmentIDs) == 0 {
		return labels, nil
	}

	list, args := inList(1, assessmentIDs)
	rows, err := s.db.QueryContext(ctx, `
		SELECT capability_assessment_id, rating FROM ratings
		WHERE capability_assessment_id IN (`+list+`)
		ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			label string
		)
		if err := rows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("failed to scan rating label: %w", err)
		}
		labels[id] = append(labels[id], label)
	}
	return labels, rows.Err()
}

// ratingTime is the timestamp a new rating row would carry
func (s *Store) ratingTime(t *time.Time) time.Time {
	if t != nil {
		return t.UTC()
	}
	return s.timestamp()
}
