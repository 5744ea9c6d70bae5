// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rating maps categorical rating labels to scores and aggregates them.

# Scores

Each label has a fixed ordinal score:

	Stable           4
	Acceptable       3
	Low impact       2
	Critical Concern 1
	Not Applicable   0

An average maps back to a label through inclusive ranges, tested in this
order: Stable [3.5, 4], Acceptable [2.5, 3.49], Low impact [1.5, 2.49],
Critical Concern [0, 1.49], Not Applicable [0, 0].

# Aggregation

	agg := rating.Aggregate(assessmentID, []string{"Stable", "Acceptable"})
	// *agg.AverageRating == 3.5, *agg.RatingLabel == "Stable"

Not Applicable and unknown labels do not count toward the mean. An
assessment with no countable ratings has a nil average.
*/
package rating
