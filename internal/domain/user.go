package domain

import (
	"context"
	"time"
)

// Plan is a subscription tier. It determines daily quota limits and which
// features are gated behind staff validation.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
)

// ParsePlan validates a raw plan value.
func ParsePlan(s string) (Plan, error) {
	switch Plan(s) {
	case PlanFree, PlanBasic, PlanPremium:
		return Plan(s), nil
	default:
		return "", NewInvalidPlanError(s)
	}
}

// IsPaid reports whether the plan requires staff validation.
func (p Plan) IsPaid() bool {
	return p == PlanBasic || p == PlanPremium
}

// SubscriptionState is the effective state derived from plan, validation flag
// and expiry timestamp.
type SubscriptionState string

const (
	StateFree              SubscriptionState = "free"
	StatePendingValidation SubscriptionState = "pending_validation"
	StateActive            SubscriptionState = "active"
	StateExpired           SubscriptionState = "expired"
)

// UserProfile is the per-identity record. It is the only contended document:
// the owning user writes quota counters and plan-upgrade requests, staff write
// validation fields. All updates are field-level, never whole-row replaces.
type UserProfile struct {
	ID                    string
	GoogleID              string
	Email                 string
	Name                  string
	ProfilePictureURL     string
	Plan                  Plan
	Validated             bool
	ExpiryDate            *time.Time
	QuizCountToday        int
	LastQuizDate          *time.Time
	AskTeacherCount       int
	LastAskTeacherDate    *time.Time
	UnreadNotifications   int
	LastNotificationCheck *time.Time
	IsAdmin               bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time
}

// NewUserProfile creates a fresh free-plan profile for a first-time login.
func NewUserProfile(googleID, email string) *UserProfile {
	now := time.Now()
	return &UserProfile{
		GoogleID:  googleID,
		Email:     email,
		Plan:      PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the profile
func (u *UserProfile) Validate() error {
	if u.GoogleID == "" {
		return NewInvalidInputError("google_id is required")
	}
	if u.Email == "" {
		return NewInvalidInputError("email is required")
	}
	if _, err := ParsePlan(string(u.Plan)); err != nil {
		return err
	}
	return nil
}

// State derives the subscription state at the given instant.
func (u *UserProfile) State(now time.Time) SubscriptionState {
	if u.Plan == PlanFree {
		return StateFree
	}
	if !u.Validated {
		return StatePendingValidation
	}
	if u.ExpiryDate != nil && now.After(*u.ExpiryDate) {
		return StateExpired
	}
	return StateActive
}

// FeaturesUnlocked is the derived entitlement every feature gate consults.
// Free plans are always unlocked; paid plans require staff validation.
func (u *UserProfile) FeaturesUnlocked() bool {
	return u.Plan == PlanFree || u.Validated
}

// PremiumUnlocked reports whether premium-only features are available.
func (u *UserProfile) PremiumUnlocked() bool {
	return u.Plan == PlanPremium && u.Validated
}

// EvaluateExpiry applies the passive expiry check. If the validated paid plan
// has passed its expiry date the profile drops back to pending validation
// (validated=false, expiry cleared). Returns whether a transition occurred so
// the caller can surface an expiry notice. Idempotent: a second call on an
// already-transitioned profile is a no-op.
func (u *UserProfile) EvaluateExpiry(now time.Time) bool {
	if !u.Validated || u.ExpiryDate == nil {
		return false
	}
	if !now.After(*u.ExpiryDate) {
		return false
	}
	u.Validated = false
	u.ExpiryDate = nil
	return true
}

// RequestUpgrade moves the profile onto a paid plan awaiting validation.
// Selecting the free plan clears validation state entirely.
func (u *UserProfile) RequestUpgrade(plan Plan) {
	u.Plan = plan
	u.Validated = false
	u.ExpiryDate = nil
}

// Activate applies a staff validation for the given duration.
func (u *UserProfile) Activate(durationWeeks int, now time.Time) {
	expiry := now.Add(time.Duration(durationWeeks) * 7 * 24 * time.Hour)
	u.Validated = true
	u.ExpiryDate = &expiry
}

// Deactivate reverts a staff validation.
func (u *UserProfile) Deactivate() {
	u.Validated = false
	u.ExpiryDate = nil
}

// UserProfileRepository defines the interface for profile persistence.
// Reads return (nil, nil) when no row matches. All Update* methods are
// field-level so concurrent writers never clobber unrelated fields.
type UserProfileRepository interface {
	CreateProfile(ctx context.Context, profile *UserProfile) error
	GetProfileByID(ctx context.Context, userID string) (*UserProfile, error)
	GetProfileByGoogleID(ctx context.Context, googleID string) (*UserProfile, error)
	UpdateIdentity(ctx context.Context, profile *UserProfile) error
	UpdateSubscription(ctx context.Context, userID string, plan Plan, validated bool, expiry *time.Time) error
	UpdateQuizQuota(ctx context.Context, userID string, count int, lastDate time.Time) error
	UpdateAskTeacherQuota(ctx context.Context, userID string, count int, lastDate time.Time) error
	IncrementUnreadNotifications(ctx context.Context, userID string) error
	ClearNotifications(ctx context.Context, userID string, checkedAt time.Time) error
	ListProfiles(ctx context.Context) ([]UserProfile, error)
}
