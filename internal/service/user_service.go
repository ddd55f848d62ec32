package service

import (
	"context"
	"fmt"
	"time"

	"pariksha/internal/domain"
	"pariksha/internal/dto"
	"pariksha/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UserService assembles profile views and handles the notification counter.
type UserService interface {
	// GetProfile returns the user's profile view. The passive expiry check
	// runs first, so SubscriptionExpired is set exactly once, on the read
	// that observed the transition.
	GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	// ClearNotifications zeroes the unread counter and stamps the check time.
	ClearNotifications(ctx context.Context, userID string) error
	// ListUsers is the staff view of all profiles with pending-question counts.
	ListUsers(ctx context.Context) (*dto.AdminUserListResponse, error)
}

type userServiceImpl struct {
	profileRepo  domain.UserProfileRepository
	teacherRepo  domain.TeacherQuestionRepository
	subscription SubscriptionService
	quota        QuotaService
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	profileRepo domain.UserProfileRepository,
	teacherRepo domain.TeacherQuestionRepository,
	subscription SubscriptionService,
	quota QuotaService,
) UserService {
	return &userServiceImpl{
		profileRepo:  profileRepo,
		teacherRepo:  teacherRepo,
		subscription: subscription,
		quota:        quota,
	}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	profile, err := s.profileRepo.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to fetch user profile", err)
	}
	if profile == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("User not found with ID: %s", userID))
	}

	wasActive := profile.Validated
	profile, err = s.subscription.EvaluateExpiry(ctx, profile)
	if err != nil {
		return nil, err
	}
	expiredNow := wasActive && !profile.Validated

	now := time.Now()
	return &dto.UserProfileResponse{
		ID:                  profile.ID,
		Email:               profile.Email,
		Name:                profile.Name,
		ProfilePictureURL:   profile.ProfilePictureURL,
		Plan:                string(profile.Plan),
		SubscriptionState:   string(profile.State(now)),
		FeaturesUnlocked:    profile.FeaturesUnlocked(),
		ExpiryDate:          profile.ExpiryDate,
		SubscriptionExpired: expiredNow,
		QuizQuota:           s.quotaStatus(profile, domain.FeatureQuizAttempt, now),
		AskTeacherQuota:     s.quotaStatus(profile, domain.FeatureAskTeacher, now),
		UnreadNotifications: profile.UnreadNotifications,
		IsAdmin:             profile.IsAdmin,
	}, nil
}

func (s *userServiceImpl) quotaStatus(profile *domain.UserProfile, feature domain.Feature, now time.Time) dto.QuotaStatus {
	limit := s.quota.LimitFor(profile, feature)
	remaining := s.quota.Remaining(profile, feature, now)
	used := 0
	if limit != domain.QuotaUnlimited {
		used = limit - remaining
	}
	return dto.QuotaStatus{Limit: limit, UsedToday: used, Remaining: remaining}
}

func (s *userServiceImpl) ClearNotifications(ctx context.Context, userID string) error {
	if err := s.profileRepo.ClearNotifications(ctx, userID, time.Now()); err != nil {
		return domain.NewInternalError("failed to clear notifications", err)
	}
	logger.Get().Debug("Notifications cleared", zap.String("userID", userID))
	return nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context) (*dto.AdminUserListResponse, error) {
	profiles, err := s.profileRepo.ListProfiles(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list user profiles", err)
	}

	now := time.Now()
	items := make([]dto.AdminUserItem, len(profiles))

	// Pending counts are independent lookups, fan them out
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range profiles {
		i := i
		g.Go(func() error {
			p := &profiles[i]
			pending, err := s.teacherRepo.CountPendingByUserID(gctx, p.ID)
			if err != nil {
				return fmt.Errorf("failed to count pending questions for %s: %w", p.ID, err)
			}
			items[i] = dto.AdminUserItem{
				ID:                  p.ID,
				Email:               p.Email,
				Name:                p.Name,
				Plan:                string(p.Plan),
				SubscriptionState:   string(p.State(now)),
				Validated:           p.Validated,
				ExpiryDate:          p.ExpiryDate,
				PendingQuestions:    pending,
				UnreadNotifications: p.UnreadNotifications,
				CreatedAt:           p.CreatedAt,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to assemble user listing", err)
	}

	return &dto.AdminUserListResponse{Users: items}, nil
}
