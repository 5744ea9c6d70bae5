package models

import "time"

// Rating labels, highest score first
const (
	RatingStable          = "Stable"
	RatingAcceptable      = "Acceptable"
	RatingLowImpact       = "Low impact"
	RatingCriticalConcern = "Critical Concern"
	RatingNotApplicable   = "Not Applicable"
)

// Token type returned by the token endpoints
const TokenTypeBearer = "bearer"

// Request types

type AccModelRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type ComponentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	AccModelID  int64   `json:"acc_model_id"`
}

type AttributeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CapabilityRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ComponentID int64   `json:"component_id"`
}

type CreateUserRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Designation *string `json:"designation"`
}

type RatingRequest struct {
	CapabilityAssessmentID int64      `json:"capability_assessment_id"`
	Rating                 string     `json:"rating"`
	Comments               *string    `json:"comments"`
	Timestamp              *time.Time `json:"timestamp"`
}

type BatchRatingRequest struct {
	Ratings []RatingRequest `json:"ratings"`
}

type RatingUpdateRequest struct {
	Comments  *string    `json:"comments"`
	Timestamp *time.Time `json:"timestamp"`
}

type AssessmentBulkRequest struct {
	CapabilityIDs []int64 `json:"capability_ids"`
	AttributeIDs  []int64 `json:"attribute_ids"`
}

// Dates are calendar days in YYYY-MM-DD form
type HistoricalRatingsRequest struct {
	CapabilityAssessmentIDs []int64 `json:"capability_assessment_ids"`
	TargetDate              string  `json:"target_date"`
}

type HistoricalGraphRequest struct {
	CapabilityAssessmentIDs []int64 `json:"capability_assessment_ids"`
	StartDate               string  `json:"start_date"`
	EndDate                 string  `json:"end_date"`
}

// Response types

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type BatchRatingResponse struct {
	Ratings []Rating         `json:"ratings"`
	Errors  map[int64]string `json:"errors"`
}

type AssessmentIDs struct {
	CapabilityAssessmentID int64 `json:"capability_assessment_id"`
	CapabilityID           int64 `json:"capability_id"`
	AttributeID            int64 `json:"attribute_id"`
}

// AggregateRating is the mean score of an assessment's ratings.
// AverageRating is nil when no rating maps to a positive score.
type AggregateRating struct {
	CapabilityAssessmentID int64    `json:"capability_assessment_id"`
	AverageRating          *float64 `json:"average_rating"`
	RatingLabel            *string  `json:"rating_label"`
}

// TrendEntry is one assessment's aggregate on one day, with names attached
type TrendEntry struct {
	CapabilityAssessmentID int64    `json:"capability_assessment_id"`
	AverageRating          *float64 `json:"average_rating"`
	RatingLabel            *string  `json:"rating_label"`
	CapabilityName         *string  `json:"capability_name"`
	AttributeName          *string  `json:"attribute_name"`
	ComponentName          *string  `json:"component_name"`
	AccModelName           *string  `json:"acc_model_name"`
}

type TrendGraph struct {
	StartDate []TrendEntry `json:"start_date"`
	EndDate   []TrendEntry `json:"end_date"`
}

// Domain types

type AccModel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Component struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	AccModelID   int64   `json:"acc_model_id"`
	AccModelName *string `json:"acc_model_name,omitempty"`
}

type Attribute struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type Capability struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	ComponentID   int64   `json:"component_id"`
	ComponentName *string `json:"component_name,omitempty"`
}

type CapabilityAssessment struct {
	ID           int64 `json:"id"`
	CapabilityID int64 `json:"capability_id"`
	AttributeID  int64 `json:"attribute_id"`
}

// AssessmentMetadata names the hierarchy an assessment belongs to
type AssessmentMetadata struct {
	CapabilityAssessmentID int64  `json:"capability_assessment_id"`
	CapabilityName         string `json:"capability_name"`
	AttributeName          string `json:"attribute_name"`
	ComponentName          string `json:"component_name"`
	AccModelName           string `json:"acc_model_name"`
}

type Rating struct {
	ID                     int64     `json:"id"`
	CapabilityAssessmentID int64     `json:"capability_assessment_id"`
	UserID                 int64     `json:"user_id"`
	Rating                 string    `json:"rating"`
	Comments               *string   `json:"comments"`
	Timestamp              time.Time `json:"timestamp"`
}

type RatingHistory struct {
	ID                     int64     `json:"id"`
	CapabilityAssessmentID int64     `json:"capability_assessment_id"`
	UserID                 int64     `json:"user_id"`
	Rating                 string    `json:"rating"`
	Comments               *string   `json:"comments"`
	ChangeTimestamp        time.Time `json:"change_timestamp"`
}

type User struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	HashedPassword string  `json:"-"` // Never expose in JSON
	Designation    *string `json:"designation"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
