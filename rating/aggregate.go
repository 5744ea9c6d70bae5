// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import "github.com/qxf2/acc-model-app/models"

// Aggregate computes the mean score of the given rating labels for one
// capability assessment. Labels that are unknown or score zero
// (Not Applicable) are left out. With nothing left, AverageRating is nil.
func Aggregate(assessmentID int64, labels []string) models.AggregateRating {
	result := models.AggregateRating{CapabilityAssessmentID: assessmentID}

	avg, ok := mean(labels)
	if !ok {
		return result
	}
	result.AverageRating = &avg

	if label, ok := LabelOf(avg); ok {
		result.RatingLabel = &label
	}
	return result
}

// AggregateMany aggregates each id independently, preserving input order.
// Ids missing from labelsByID get a nil average.
func AggregateMany(ids []int64, labelsByID map[int64][]string) []models.AggregateRating {
	results := make([]models.AggregateRating, 0, len(ids))
	for _, id := range ids {
		results = append(results, Aggregate(id, labelsByID[id]))
	}
	return results
}

func mean(labels []string) (float64, bool) {
	var sum, n int
	for _, label := range labels {
		score, ok := ScoreOf(label)
		if !ok || score <= 0 {
			continue
		}
		sum += score
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}
