package service

import (
	"context"
	"fmt"
	"time"

	"pariksha/internal/config"
	"pariksha/internal/domain"
	"pariksha/internal/logger"

	"go.uber.org/zap"
)

// QuotaService enforces the per-plan daily usage caps. Counters live on the
// profile row and are lazily reset: a counter whose paired date is not today
// counts as zero, and the stale pair is only overwritten on the next consume.
type QuotaService interface {
	// Remaining reports how many uses of a feature are left today.
	// domain.QuotaUnlimited passes through unchanged.
	Remaining(profile *domain.UserProfile, feature domain.Feature, now time.Time) int
	// CheckAndConsume spends one use of a feature, persisting the new
	// counter pair. Returns a QUOTA_EXCEEDED domain error when nothing is
	// left today.
	CheckAndConsume(ctx context.Context, profile *domain.UserProfile, feature domain.Feature, now time.Time) error
	// LimitFor resolves the configured cap for a profile's plan.
	LimitFor(profile *domain.UserProfile, feature domain.Feature) int
}

type quotaServiceImpl struct {
	profileRepo domain.UserProfileRepository
	quotas      config.QuotaConfig
}

// NewQuotaService creates a new instance of QuotaService.
func NewQuotaService(profileRepo domain.UserProfileRepository, quotas config.QuotaConfig) QuotaService {
	return &quotaServiceImpl{profileRepo: profileRepo, quotas: quotas}
}

func (s *quotaServiceImpl) LimitFor(profile *domain.UserProfile, feature domain.Feature) int {
	planQuota := s.quotas.LimitsFor(string(profile.Plan))
	limits := domain.QuotaLimits{
		QuizPerDay:       planQuota.QuizPerDay,
		AskTeacherPerDay: planQuota.AskTeacherPerDay,
	}
	return limits.LimitFor(feature)
}

func (s *quotaServiceImpl) Remaining(profile *domain.UserProfile, feature domain.Feature, now time.Time) int {
	return domain.RemainingQuota(profile, feature, s.LimitFor(profile, feature), now)
}

func (s *quotaServiceImpl) CheckAndConsume(ctx context.Context, profile *domain.UserProfile, feature domain.Feature, now time.Time) error {
	limit := s.LimitFor(profile, feature)
	if limit == domain.QuotaUnlimited {
		return nil // Unlimited plans never track usage
	}

	count, lastDate := profile.QuotaCounters(feature)
	effective := domain.EffectiveQuotaCount(count, lastDate, now)
	if effective >= limit {
		logger.Get().Info("Quota exhausted",
			zap.String("userID", profile.ID),
			zap.String("feature", string(feature)),
			zap.Int("limit", limit))
		return domain.NewQuotaExceededError(feature)
	}

	newCount := effective + 1
	var err error
	switch feature {
	case domain.FeatureQuizAttempt:
		err = s.profileRepo.UpdateQuizQuota(ctx, profile.ID, newCount, now)
		if err == nil {
			profile.QuizCountToday = newCount
			profile.LastQuizDate = &now
		}
	case domain.FeatureAskTeacher:
		err = s.profileRepo.UpdateAskTeacherQuota(ctx, profile.ID, newCount, now)
		if err == nil {
			profile.AskTeacherCount = newCount
			profile.LastAskTeacherDate = &now
		}
	default:
		return domain.NewInvalidInputError(fmt.Sprintf("unknown feature: %s", feature))
	}
	if err != nil {
		return domain.NewInternalError("failed to persist quota counter", err)
	}
	return nil
}
