// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - AccModelRequest, ComponentRequest: name, description, parent id
  - AttributeRequest, CapabilityRequest: name, description, parent id
  - CreateUserRequest: username, email, password, designation
  - RatingRequest, BatchRatingRequest, RatingUpdateRequest: rating submissions
  - AssessmentBulkRequest: capability_ids × attribute_ids lookup
  - HistoricalRatingsRequest, HistoricalGraphRequest: trend queries

# Response Types

  - TokenResponse: access_token, token_type
  - BatchRatingResponse: ratings, errors
  - AggregateRating: capability_assessment_id, average_rating, rating_label
  - TrendGraph: start_date and end_date lists of TrendEntry
  - ErrorResponse: error, message

# Domain Types

  - AccModel → Component → Capability: the assessed hierarchy
  - Attribute: a quality dimension every capability is assessed against
  - CapabilityAssessment: anchor row for one (capability, attribute) pair
  - Rating: a user's current judgment of one assessment
  - RatingHistory: append-only record of every rating change
  - User: account with a bcrypt password hash (never serialized)

# Constants

Rating labels, best first:

	RatingStable          = "Stable"
	RatingAcceptable      = "Acceptable"
	RatingLowImpact       = "Low impact"
	RatingCriticalConcern = "Critical Concern"
	RatingNotApplicable   = "Not Applicable"
*/
package models
