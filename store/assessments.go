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

func (s *Store) GetAssessment(ctx context.Context, id int64) (models.CapabilityAssessment, error) {
	var a models.CapabilityAssessment
	err := s.db.QueryRowContext(ctx, `
		SELECT id, capability_id, attribute_id
		FROM capability_assessments
		WHERE id = $1
	`, id).Scan(&a.ID, &a.CapabilityID, &a.AttributeID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CapabilityAssessment{}, ErrNotFound
	}
	if err != nil {
		return models.CapabilityAssessment{}, fmt.Errorf("failed to query capability assessment: %w", err)
	}
	return a, nil
}

// GetAssessmentByPair returns the anchor row for a (capability, attribute) pair
func (s *Store) GetAssessmentByPair(ctx context.Context, capabilityID, attributeID int64) (models.CapabilityAssessment, error) {
	var a models.CapabilityAssessment
	err := s.db.QueryRowContext(ctx, `
		SELECT id, capability_id, attribute_id
		FROM capability_assessments
		WHERE capability_id = $1 AND attribute_id = $2
	`, capabilityID, attributeID).Scan(&a.ID, &a.CapabilityID, &a.AttributeID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CapabilityAssessment{}, ErrNotFound
	}
	if err != nil {
		return models.CapabilityAssessment{}, fmt.Errorf("failed to query capability assessment: %w", err)
	}
	return a, nil
}

// BulkAssessmentIDs returns the assessments whose capability is in capIDs
// and whose attribute is in attrIDs.
func (s *Store) BulkAssessmentIDs(ctx context.Context, capIDs, attrIDs []int64) ([]models.AssessmentIDs, error) {
	out := []models.AssessmentIDs{}
	if len(capIDs) == 0 || len(attrIDs) == 0 {
		return out, nil
	}

	capList, args := inList(1, capIDs)
	attrList, attrArgs := inList(len(capIDs)+1, attrIDs)
	args = append(args, attrArgs...)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, capability_id, attribute_id
		FROM capability_assessments
		WHERE capability_id IN (`+capList+`) AND attribute_id IN (`+attrList+`)
		ORDER BY capability_id, attribute_id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query capability assessments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.AssessmentIDs
		if err := rows.Scan(&a.CapabilityAssessmentID, &a.CapabilityID, &a.AttributeID); err != nil {
			return nil, fmt.Errorf("failed to scan capability assessment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ExistingAssessments returns the subset of ids that name an assessment
func (s *Store) ExistingAssessments(ctx context.Context, ids []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	list, args := inList(1, ids)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM capability_assessments WHERE id IN (`+list+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query capability assessments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan capability assessment: %w", err)
		}
		found[id] = true
	}
	return found, rows.Err()
}

// AssessmentMetadata joins each assessment to its capability, attribute,
// component and model names. Ids with no assessment are absent from the result.
func (s *Store) AssessmentMetadata(ctx context.Context, ids []int64) ([]models.AssessmentMetadata, error) {
	out := []models.AssessmentMetadata{}
	if len(ids) == 0 {
		return out, nil
	}

	list, args := inList(1, ids)
	rows, err := s.db.QueryContext(ctx, `
		SELECT ca.id, c.name, a.name, co.name, m.name
		FROM capability_assessments ca
		JOIN capabilities c ON c.id = ca.capability_id
		JOIN attributes a ON a.id = ca.attribute_id
		JOIN components co ON co.id = c.component_id
		JOIN acc_models m ON m.id = co.acc_model_id
		WHERE ca.id IN (`+list+`)
		ORDER BY ca.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessment metadata: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.AssessmentMetadata
		if err := rows.Scan(&m.CapabilityAssessmentID, &m.CapabilityName,
			&m.AttributeName, &m.ComponentName, &m.AccModelName); err != nil {
			return nil, fmt.Errorf("failed to scan assessment metadata: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
