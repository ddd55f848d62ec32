package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleUserInfo holds user information obtained from Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenResponse represents the response containing access and refresh tokens.
// @Description Response body for authentication tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRequest represents the request body for refreshing a token.
// @Description Request body for refreshing JWT tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// QuotaStatus reports the remaining allowance for one feature.
// Remaining is -1 for unlimited plans.
type QuotaStatus struct {
	Limit     int `json:"limit"`
	UsedToday int `json:"used_today"`
	Remaining int `json:"remaining"`
}

// UserProfileResponse defines the structure for a user's profile information.
// @Description User profile with subscription and quota state
type UserProfileResponse struct {
	ID                  string      `json:"id"`
	Email               string      `json:"email"`
	Name                string      `json:"name,omitempty"`
	ProfilePictureURL   string      `json:"profile_picture_url,omitempty"`
	Plan                string      `json:"plan"`
	SubscriptionState   string      `json:"subscription_state"`
	FeaturesUnlocked    bool        `json:"features_unlocked"`
	ExpiryDate          *time.Time  `json:"expiry_date,omitempty"`
	SubscriptionExpired bool        `json:"subscription_expired,omitempty"`
	QuizQuota           QuotaStatus `json:"quiz_quota"`
	AskTeacherQuota     QuotaStatus `json:"ask_teacher_quota"`
	UnreadNotifications int         `json:"unread_notifications"`
	IsAdmin             bool        `json:"is_admin,omitempty"`
}

// UpgradeRequest represents a user's request to move to a paid plan.
// @Description Request body for a plan upgrade
type UpgradeRequest struct {
	Plan string `json:"plan" validate:"required"` // "basic" or "premium"
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Pagination defines parameters for paginated requests.
// These are typically query parameters.
type Pagination struct {
	Limit  int `query:"limit"`  // Number of items per page
	Offset int `query:"offset"` // Number of items to skip
}

// PaginationInfo defines pagination details for responses.
type PaginationInfo struct {
	TotalItems int64 `json:"total_items"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}
