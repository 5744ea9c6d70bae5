// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/qxf2/acc-model-app/models"
)

// DateLayout is the only accepted calendar date format
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Source supplies the rows the resolver and composer read
type Source interface {
	RatingHistory(ctx context.Context, assessmentIDs []int64) ([]models.RatingHistory, error)
	AssessmentMetadata(ctx context.Context, assessmentIDs []int64) ([]models.AssessmentMetadata, error)
}

// Day is a calendar date with no time of day
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Day, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// contains reports whether t falls on d in loc
func (d Day) contains(t time.Time, loc *time.Location) bool {
	y, m, dd := t.In(loc).Date()
	return y == d.Year && m == d.Month && dd == d.Day
}

// Resolver finds the rating each user held on a given day
type Resolver struct {
	src Source
	loc *time.Location
}

// NewResolver interprets days in loc; nil means UTC
func NewResolver(src Source, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{src: src, loc: loc}
}

type pairKey struct {
	assessmentID int64
	userID       int64
}

// Resolve returns, for every (user, assessment) pair that changed on day,
// the last change made that day. Pairs with no change on day are absent.
// Rows are ordered by the position of their assessment in ids, then by user.
func (r *Resolver) Resolve(ctx context.Context, ids []int64, day Day) ([]models.RatingHistory, error) {
	out := []models.RatingHistory{}
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.src.RatingHistory(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to read rating history for %s: %w", day, err)
	}

	latest := make(map[pairKey]models.RatingHistory)
	for _, h := range rows {
		if !day.contains(h.ChangeTimestamp, r.loc) {
			continue
		}
		k := pairKey{h.CapabilityAssessmentID, h.UserID}
		cur, ok := latest[k]
		if !ok || later(h, cur) {
			latest[k] = h
		}
	}

	position := make(map[int64]int, len(ids))
	for i, id := range ids {
		if _, seen := position[id]; !seen {
			position[id] = i
		}
	}

	for _, h := range latest {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := position[out[i].CapabilityAssessmentID], position[out[j].CapabilityAssessmentID]
		if pi != pj {
			return pi < pj
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

// later orders history rows by change time, then by id
func later(a, b models.RatingHistory) bool {
	if !a.ChangeTimestamp.Equal(b.ChangeTimestamp) {
		return a.ChangeTimestamp.After(b.ChangeTimestamp)
	}
	return a.ID > b.ID
}
