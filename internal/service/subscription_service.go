package service

import (
	"context"
	"fmt"
	"time"

	"pariksha/internal/domain"
	"pariksha/internal/logger"

	"go.uber.org/zap"
)

// SubscriptionService owns the plan lifecycle: user-driven upgrade requests,
// staff validation, and the passive expiry check that runs whenever a profile
// is read on a trusted path.
type SubscriptionService interface {
	// EvaluateExpiry applies the passive expiry transition and persists it
	// if one occurred. Safe to call on every profile read.
	EvaluateExpiry(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error)
	// RequestUpgrade moves a user onto a paid plan awaiting staff validation.
	RequestUpgrade(ctx context.Context, userID string, plan domain.Plan) (*domain.UserProfile, error)
	// Validate activates a pending paid subscription for durationWeeks.
	Validate(ctx context.Context, userID string, durationWeeks int) (*domain.UserProfile, error)
	// Invalidate reverts a validation, returning the user to pending.
	Invalidate(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type subscriptionServiceImpl struct {
	profileRepo domain.UserProfileRepository
}

// NewSubscriptionService creates a new instance of SubscriptionService.
func NewSubscriptionService(profileRepo domain.UserProfileRepository) SubscriptionService {
	return &subscriptionServiceImpl{profileRepo: profileRepo}
}

func (s *subscriptionServiceImpl) EvaluateExpiry(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if !profile.EvaluateExpiry(time.Now()) {
		return profile, nil
	}

	if err := s.profileRepo.UpdateSubscription(ctx, profile.ID, profile.Plan, profile.Validated, profile.ExpiryDate); err != nil {
		return nil, domain.NewInternalError("failed to persist subscription expiry", err)
	}
	logger.Get().Info("Subscription expired",
		zap.String("userID", profile.ID),
		zap.String("plan", string(profile.Plan)))
	return profile, nil
}

func (s *subscriptionServiceImpl) RequestUpgrade(ctx context.Context, userID string, plan domain.Plan) (*domain.UserProfile, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.RequestUpgrade(plan)
	if err := s.profileRepo.UpdateSubscription(ctx, profile.ID, profile.Plan, profile.Validated, profile.ExpiryDate); err != nil {
		return nil, domain.NewInternalError("failed to persist plan upgrade", err)
	}

	logger.Get().Info("Plan upgrade requested",
		zap.String("userID", profile.ID),
		zap.String("plan", string(plan)))
	return profile, nil
}

func (s *subscriptionServiceImpl) Validate(ctx context.Context, userID string, durationWeeks int) (*domain.UserProfile, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.Plan.IsPaid() {
		return nil, domain.NewInvalidPlanError(string(profile.Plan))
	}

	profile.Activate(durationWeeks, time.Now())
	if err := s.profileRepo.UpdateSubscription(ctx, profile.ID, profile.Plan, profile.Validated, profile.ExpiryDate); err != nil {
		return nil, domain.NewInternalError("failed to persist subscription validation", err)
	}

	logger.Get().Info("Subscription validated",
		zap.String("userID", profile.ID),
		zap.String("plan", string(profile.Plan)),
		zap.Int("durationWeeks", durationWeeks))
	return profile, nil
}

func (s *subscriptionServiceImpl) Invalidate(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Deactivate()
	if err := s.profileRepo.UpdateSubscription(ctx, profile.ID, profile.Plan, profile.Validated, profile.ExpiryDate); err != nil {
		return nil, domain.NewInternalError("failed to persist subscription invalidation", err)
	}

	logger.Get().Info("Subscription invalidated", zap.String("userID", profile.ID))
	return profile, nil
}

func (s *subscriptionServiceImpl) getProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to fetch user profile", err)
	}
	if profile == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("User not found with ID: %s", userID))
	}
	return profile, nil
}
