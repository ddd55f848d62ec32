package domain

import "time"

// Feature identifies a rate-limited action.
type Feature string

const (
	FeatureQuizAttempt Feature = "quiz_attempt"
	FeatureAskTeacher  Feature = "ask_teacher"
)

// QuotaUnlimited marks a feature with no daily cap for a plan.
const QuotaUnlimited = -1

// QuotaLimits holds the per-day cap for each rate-limited feature.
type QuotaLimits struct {
	QuizPerDay       int
	AskTeacherPerDay int
}

// LimitFor returns the cap for a feature.
func (l QuotaLimits) LimitFor(feature Feature) int {
	switch feature {
	case FeatureQuizAttempt:
		return l.QuizPerDay
	case FeatureAskTeacher:
		return l.AskTeacherPerDay
	default:
		return 0
	}
}

// SameCalendarDay reports whether two instants fall on the same local
// calendar day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// EffectiveQuotaCount returns the counter value that matters today. A stored
// counter whose paired date is not the current calendar day is logically zero;
// callers must never trust the raw number across a day boundary.
func EffectiveQuotaCount(count int, lastDate *time.Time, now time.Time) int {
	if lastDate == nil || !SameCalendarDay(*lastDate, now) {
		return 0
	}
	return count
}

// QuotaCounters reads the stored counter pair for a feature off a profile.
func (u *UserProfile) QuotaCounters(feature Feature) (count int, lastDate *time.Time) {
	switch feature {
	case FeatureQuizAttempt:
		return u.QuizCountToday, u.LastQuizDate
	case FeatureAskTeacher:
		return u.AskTeacherCount, u.LastAskTeacherDate
	default:
		return 0, nil
	}
}

// RemainingQuota reports how many uses of a feature are left today.
// QuotaUnlimited maps through unchanged.
func RemainingQuota(profile *UserProfile, feature Feature, limit int, now time.Time) int {
	if limit == QuotaUnlimited {
		return QuotaUnlimited
	}
	count, lastDate := profile.QuotaCounters(feature)
	remaining := limit - EffectiveQuotaCount(count, lastDate, now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
