package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pariksha/internal/domain"
	"pariksha/internal/repository/models"
	"pariksha/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxProfileRepository implements domain.UserProfileRepository using sqlx.
type sqlxProfileRepository struct {
	db *sqlx.DB
}

// NewSQLXProfileRepository creates a new instance of sqlxProfileRepository.
func NewSQLXProfileRepository(db *sqlx.DB) domain.UserProfileRepository {
	return &sqlxProfileRepository{db: db}
}

func toDomainProfile(m *models.UserProfile) *domain.UserProfile {
	if m == nil {
		return nil
	}
	return &domain.UserProfile{
		ID:                    m.ID,
		GoogleID:              m.GoogleID,
		Email:                 m.Email,
		Name:                  m.Name.String,
		ProfilePictureURL:     m.ProfilePictureURL.String,
		Plan:                  domain.Plan(m.Plan),
		Validated:             m.Validated,
		ExpiryDate:            util.NullTimeToTimePtr(m.ExpiryDate),
		QuizCountToday:        m.QuizCountToday,
		LastQuizDate:          util.NullTimeToTimePtr(m.LastQuizDate),
		AskTeacherCount:       m.AskTeacherCount,
		LastAskTeacherDate:    util.NullTimeToTimePtr(m.LastAskTeacherDate),
		UnreadNotifications:   m.UnreadNotifications,
		LastNotificationCheck: util.NullTimeToTimePtr(m.LastNotificationCheck),
		IsAdmin:               m.IsAdmin,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		DeletedAt:             util.NullTimeToTimePtr(m.DeletedAt),
	}
}

func fromDomainProfile(p *domain.UserProfile) *models.UserProfile {
	if p == nil {
		return nil
	}
	return &models.UserProfile{
		ID:                    p.ID,
		GoogleID:              p.GoogleID,
		Email:                 p.Email,
		Name:                  util.StringToNullString(p.Name),
		ProfilePictureURL:     util.StringToNullString(p.ProfilePictureURL),
		Plan:                  string(p.Plan),
		Validated:             p.Validated,
		ExpiryDate:            util.TimePtrToNullTime(p.ExpiryDate),
		QuizCountToday:        p.QuizCountToday,
		LastQuizDate:          util.TimePtrToNullTime(p.LastQuizDate),
		AskTeacherCount:       p.AskTeacherCount,
		LastAskTeacherDate:    util.TimePtrToNullTime(p.LastAskTeacherDate),
		UnreadNotifications:   p.UnreadNotifications,
		LastNotificationCheck: util.TimePtrToNullTime(p.LastNotificationCheck),
		IsAdmin:               p.IsAdmin,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
		DeletedAt:             util.TimePtrToNullTime(p.DeletedAt),
	}
}

// CreateProfile inserts a new profile row. This is the only full-row write a
// profile ever sees; everything after creation is field-level.
func (r *sqlxProfileRepository) CreateProfile(ctx context.Context, profile *domain.UserProfile) error {
	m := fromDomainProfile(profile)
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO user_profiles (id, google_id, email, name, profile_picture_url, plan, validated, expiry_date,
	            quiz_count_today, last_quiz_date, ask_teacher_count, last_ask_teacher_date,
	            unread_notifications, last_notification_check, is_admin, created_at, updated_at)
	          VALUES (:id, :google_id, :email, :name, :profile_picture_url, :plan, :validated, :expiry_date,
	            :quiz_count_today, :last_quiz_date, :ask_teacher_count, :last_ask_teacher_date,
	            :unread_notifications, :last_notification_check, :is_admin, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	return nil
}

// GetProfileByID retrieves a profile by its internal ID.
func (r *sqlxProfileRepository) GetProfileByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var m models.UserProfile
	query := `SELECT * FROM user_profiles WHERE id = :id AND deleted_at IS NULL`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetProfileByID: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &m, map[string]interface{}{"id": userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found: services decide whether that is an error
		}
		return nil, fmt.Errorf("failed to get user profile by id: %w", err)
	}
	return toDomainProfile(&m), nil
}

// GetProfileByGoogleID retrieves a profile by the identity provider's ID.
func (r *sqlxProfileRepository) GetProfileByGoogleID(ctx context.Context, googleID string) (*domain.UserProfile, error) {
	var m models.UserProfile
	query := `SELECT * FROM user_profiles WHERE google_id = :google_id AND deleted_at IS NULL`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetProfileByGoogleID: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &m, map[string]interface{}{"google_id": googleID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile by google_id: %w", err)
	}
	return toDomainProfile(&m), nil
}

// UpdateIdentity refreshes the identity-provider fields only. Quota,
// subscription and notification columns are deliberately untouched.
func (r *sqlxProfileRepository) UpdateIdentity(ctx context.Context, profile *domain.UserProfile) error {
	m := fromDomainProfile(profile)
	m.UpdatedAt = time.Now()

	query := `UPDATE user_profiles SET
	            email = :email,
	            name = :name,
	            profile_picture_url = :profile_picture_url,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	return r.execExpectingRow(ctx, query, m)
}

// UpdateSubscription writes the staff/user-driven subscription fields.
func (r *sqlxProfileRepository) UpdateSubscription(ctx context.Context, userID string, plan domain.Plan, validated bool, expiry *time.Time) error {
	query := `UPDATE user_profiles SET
	            plan = :plan,
	            validated = :validated,
	            expiry_date = :expiry_date,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	args := map[string]interface{}{
		"id":          userID,
		"plan":        string(plan),
		"validated":   validated,
		"expiry_date": util.TimePtrToNullTime(expiry),
		"updated_at":  time.Now(),
	}
	return r.execExpectingRow(ctx, query, args)
}

// UpdateQuizQuota writes the quiz counter pair.
func (r *sqlxProfileRepository) UpdateQuizQuota(ctx context.Context, userID string, count int, lastDate time.Time) error {
	query := `UPDATE user_profiles SET
	            quiz_count_today = :count,
	            last_quiz_date = :last_date,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	args := map[string]interface{}{
		"id":         userID,
		"count":      count,
		"last_date":  lastDate,
		"updated_at": time.Now(),
	}
	return r.execExpectingRow(ctx, query, args)
}

// UpdateAskTeacherQuota writes the ask-teacher counter pair.
func (r *sqlxProfileRepository) UpdateAskTeacherQuota(ctx context.Context, userID string, count int, lastDate time.Time) error {
	query := `UPDATE user_profiles SET
	            ask_teacher_count = :count,
	            last_ask_teacher_date = :last_date,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	args := map[string]interface{}{
		"id":         userID,
		"count":      count,
		"last_date":  lastDate,
		"updated_at": time.Now(),
	}
	return r.execExpectingRow(ctx, query, args)
}

// IncrementUnreadNotifications bumps the unread counter in a single
// statement so concurrent staff answers never lose an increment.
func (r *sqlxProfileRepository) IncrementUnreadNotifications(ctx context.Context, userID string) error {
	query := `UPDATE user_profiles SET
	            unread_notifications = unread_notifications + 1,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	args := map[string]interface{}{
		"id":         userID,
		"updated_at": time.Now(),
	}
	return r.execExpectingRow(ctx, query, args)
}

// ClearNotifications zeroes the unread counter and advances the check
// timestamp. Idempotent.
func (r *sqlxProfileRepository) ClearNotifications(ctx context.Context, userID string, checkedAt time.Time) error {
	query := `UPDATE user_profiles SET
	            unread_notifications = 0,
	            last_notification_check = :checked_at,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	args := map[string]interface{}{
		"id":         userID,
		"checked_at": checkedAt,
		"updated_at": time.Now(),
	}
	return r.execExpectingRow(ctx, query, args)
}

// ListProfiles returns all live profiles, newest first.
func (r *sqlxProfileRepository) ListProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	var rows []models.UserProfile
	query := `SELECT * FROM user_profiles WHERE deleted_at IS NULL ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list user profiles: %w", err)
	}

	profiles := make([]domain.UserProfile, len(rows))
	for i := range rows {
		profiles[i] = *toDomainProfile(&rows[i])
	}
	return profiles, nil
}

// execExpectingRow runs a named statement that must affect exactly one row.
func (r *sqlxProfileRepository) execExpectingRow(ctx context.Context, query string, arg interface{}) error {
	result, err := r.db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
