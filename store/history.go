// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/qxf2/acc-model-app/models"
)

// RatingHistory returns every history row for the given assessments,
// oldest change first.
func (s *Store) RatingHistory(ctx context.Context, assessmentIDs []int64) ([]models.RatingHistory, error) {
	out := []models.RatingHistory{}
	if len(assessmentIDs) == 0 {
		return out, nil
	}

	list, args := inList(1, assessmentIDs)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, capability_assessment_id, user_id, rating, comments, change_timestamp
		FROM rating_history
		WHERE capability_assessment_id IN (`+list+`)
		ORDER BY change_timestamp, id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h models.RatingHistory
		if err := rows.Scan(&h.ID, &h.CapabilityAssessmentID, &h.UserID,
			&h.Rating, &h.Comments, &h.ChangeTimestamp); err != nil {
			return nil, fmt.Errorf("failed to scan rating history: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
