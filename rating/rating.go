// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import "github.com/qxf2/acc-model-app/models"

// scores maps each rating label to its ordinal score (higher is better)
var scores = map[string]int{
	models.RatingStable:          4,
	models.RatingAcceptable:      3,
	models.RatingLowImpact:       2,
	models.RatingCriticalConcern: 1,
	models.RatingNotApplicable:   0,
}

// options lists the labels in descending score order
var options = [...]string{
	models.RatingStable,
	models.RatingAcceptable,
	models.RatingLowImpact,
	models.RatingCriticalConcern,
	models.RatingNotApplicable,
}

type bucket struct {
	label    string
	min, max float64
}

// buckets are tested in order; the first inclusive match wins.
// Critical Concern shadows Not Applicable at 0, and values between
// buckets (e.g. 3.495) match nothing.
var buckets = [...]bucket{
	{models.RatingStable, 3.5, 4},
	{models.RatingAcceptable, 2.5, 3.49},
	{models.RatingLowImpact, 1.5, 2.49},
	{models.RatingCriticalConcern, 0, 1.49},
	{models.RatingNotApplicable, 0, 0},
}

// ScoreOf returns the numeric score for a rating label
func ScoreOf(label string) (int, bool) {
	score, ok := scores[label]
	return score, ok
}

// LabelOf returns the label whose range contains score
func LabelOf(score float64) (string, bool) {
	for _, b := range buckets {
		if score >= b.min && score <= b.max {
			return b.label, true
		}
	}
	return "", false
}

// Valid reports whether label is one of the enumerated rating labels
func Valid(label string) bool {
	_, ok := scores[label]
	return ok
}

// Options returns the rating labels, best first
func Options() []string {
	out := make([]string, len(options))
	copy(out, options[:])
	return out
}
