// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package history

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/qxf2/acc-model-app/models"
	"github.com/qxf2/acc-model-app/rating"
)

// Composer builds the two-day trend view of a set of assessments
type Composer struct {
	src      Source
	resolver *Resolver
}

func NewComposer(src Source, resolver *Resolver) *Composer {
	return &Composer{src: src, resolver: resolver}
}

// Compose aggregates the ratings that changed on start and on end for each
// id and attaches the names of the hierarchy each assessment sits in.
// Both days carry exactly one entry per id, in the order given. Any read
// error fails the whole call.
func (c *Composer) Compose(ctx context.Context, ids []int64, start, end Day) (models.TrendGraph, error) {
	var (
		startRows, endRows []models.RatingHistory
		metadata           []models.AssessmentMetadata
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		startRows, err = c.resolver.Resolve(gctx, ids, start)
		return err
	})
	if end != start {
		g.Go(func() error {
			var err error
			endRows, err = c.resolver.Resolve(gctx, ids, end)
			return err
		})
	}
	g.Go(func() error {
		var err error
		metadata, err = c.src.AssessmentMetadata(gctx, ids)
		if err != nil {
			return fmt.Errorf("failed to read assessment metadata: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.TrendGraph{}, err
	}

	names := make(map[int64]models.AssessmentMetadata, len(metadata))
	for _, m := range metadata {
		names[m.CapabilityAssessmentID] = m
	}

	startEntries := entries(ids, startRows, names)
	if end == start {
		return models.TrendGraph{StartDate: startEntries, EndDate: startEntries}, nil
	}
	return models.TrendGraph{
		StartDate: startEntries,
		EndDate:   entries(ids, endRows, names),
	}, nil
}

func entries(ids []int64, rows []models.RatingHistory, names map[int64]models.AssessmentMetadata) []models.TrendEntry {
	labels := make(map[int64][]string)
	for _, h := range rows {
		labels[h.CapabilityAssessmentID] = append(labels[h.CapabilityAssessmentID], h.Rating)
	}

	aggregates := rating.AggregateMany(ids, labels)
	out := make([]models.TrendEntry, len(aggregates))
	for i, agg := range aggregates {
		e := models.TrendEntry{
			CapabilityAssessmentID: agg.CapabilityAssessmentID,
			AverageRating:          agg.AverageRating,
			RatingLabel:            agg.RatingLabel,
		}
		if m, ok := names[agg.CapabilityAssessmentID]; ok {
			e.CapabilityName = &m.CapabilityName
			e.AttributeName = &m.AttributeName
			e.ComponentName = &m.ComponentName
			e.AccModelName = &m.AccModelName
		}
		out[i] = e
	}
	return out
}
