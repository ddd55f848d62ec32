package service

import (
	"context"
	"testing"
	"time"

	"pariksha/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubscriptionService_EvaluateExpiry_NoTransition(t *testing.T) {
	mockRepo := new(MockUserProfileRepository)
	svc := NewSubscriptionService(mockRepo)

	future := time.Now().Add(7 * 24 * time.Hour)
	profile := freeProfile("u1")
	profile.Plan = domain.PlanBasic
	profile.Validated = true
	profile.ExpiryDate = &future

	got, err := svc.EvaluateExpiry(context.Background(), profile)

	assert.NoError(t, err)
	assert.True(t, got.Validated)
	mockRepo.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscriptionService_EvaluateExpiry_Transition(t *testing.T) {
	mockRepo := new(MockUserProfileRepository)
	svc := NewSubscriptionService(mockRepo)

	past := time.Now().Add(-time.Hour)
	profile := freeProfile("u1")
	profile.Plan = domain.PlanPremium
	profile.Validated = true
	profile.ExpiryDate = &past

	mockRepo.On("UpdateSubscription", mock.Anything, "u1", domain.PlanPremium, false, (*time.Time)(nil)).Return(nil)

	got, err := svc.EvaluateExpiry(context.Background(), profile)

	assert.NoError(t, err)
	assert.False(t, got.Validated)
	assert.Nil(t, got.ExpiryDate)
	// Plan is retained so the user can be re-validated without re-upgrading
	assert.Equal(t, domain.PlanPremium, got.Plan)
	mockRepo.AssertExpectations(t)
}

func TestSubscriptionService_RequestUpgrade(t *testing.T) {
	mockRepo := new(MockUserProfileRepository)
	svc := NewSubscriptionService(mockRepo)

	profile := freeProfile("u1")
	mockRepo.On("GetProfileByID", mock.Anything, "u1").Return(profile, nil)
	mockRepo.On("UpdateSubscription", mock.Anything, "u1", domain.PlanBasic, false, (*time.Time)(nil)).Return(nil)

	got, err := svc.RequestUpgrade(context.Background(), "u1", domain.PlanBasic)

	assert.NoError(t, err)
	assert.Equal(t, domain.PlanBasic, got.Plan)
	assert.False(t, got.Validated)
	mockRepo.AssertExpectations(t)
}

func TestSubscriptionService_Validate(t *testing.T) {
	mockRepo := new(MockUserProfileRepository)
	svc := NewSubscriptionService(mockRepo)

	profile := freeProfile("u1")
	profile.Plan = domain.PlanBasic
	mockRepo.On("GetProfileByID", mock.Anything, "u1").Return(profile, nil)
	mockRepo.On("UpdateSubscription", mock.Anything, "u1", domain.PlanBasic, true, mock.AnythingOfType("*time.Time")).Return(nil)

	before := time.Now()
	got, err := svc.Validate(context.Background(), "u1", 4)

	assert.NoError(t, err)
	assert.True(t, got.Validated)
	assert.NotNil(t, got.ExpiryDate)
	expectedExpiry := before.Add(4 * 7 * 24 * time.Hour)
	assert.WithinDuration(t, expectedExpiry, *got.ExpiryDate, time.Minute)
	mockRepo.AssertExpectations(t)
}

func TestSubscriptionService_Validate_FreePlan(t *testing.T) {
	mockRepo := new(MockUserProfileRepository)
	svc := NewSubscriptionService(mockRepo)

	mockRepo.On("GetProfileByID", mock.Anything, "u1").Return(freeProfile("u1"), nil)

	_, err := svc.Validate(context.Background(), "u1", 4)

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidPlan, domainErr.Code)
	mockRepo.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscriptionService_Validate_UserNotFound(t *testing.T) {
	mockRepo := new(MockUserProfileRepository)
	svc := NewSubscriptionService(mockRepo)

	mockRepo.On("GetProfileByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.Validate(context.Background(), "missing", 4)

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestSubscriptionService_Invalidate(t *testing.T) {
	mockRepo := new(MockUserProfileRepository)
	svc := NewSubscriptionService(mockRepo)

	expiry := time.Now().Add(time.Hour)
	profile := freeProfile("u1")
	profile.Plan = domain.PlanPremium
	profile.Validated = true
	profile.ExpiryDate = &expiry

	mockRepo.On("GetProfileByID", mock.Anything, "u1").Return(profile, nil)
	mockRepo.On("UpdateSubscription", mock.Anything, "u1", domain.PlanPremium, false, (*time.Time)(nil)).Return(nil)

	got, err := svc.Invalidate(context.Background(), "u1")

	assert.NoError(t, err)
	assert.False(t, got.Validated)
	assert.Nil(t, got.ExpiryDate)
	mockRepo.AssertExpectations(t)
}
