package service

import (
	"context"
	"testing"
	"time"

	"pariksha/internal/config"
	"pariksha/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "testsecretkeydontuseinproduction32bytes!",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
}

func newAuthServiceForTest(t *testing.T, profileRepo *MockUserProfileRepository) AuthService {
	t.Helper()
	subscription := NewSubscriptionService(profileRepo)
	svc, err := NewAuthService(profileRepo, subscription, testAuthConfig())
	assert.NoError(t, err)
	return svc
}

func TestNewAuthService_ShortSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWT.SecretKey = "tooshort"

	_, err := NewAuthService(new(MockUserProfileRepository), NewSubscriptionService(new(MockUserProfileRepository)), cfg)

	assert.Error(t, err)
}

func TestAuthService_CreateAndValidateJWT(t *testing.T) {
	profileRepo := new(MockUserProfileRepository)
	svc := newAuthServiceForTest(t, profileRepo)

	token, err := svc.CreateJWT(context.Background(), "u1", 15*time.Minute, tokenTypeAccess)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateJWT(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	assert.Equal(t, "u1", claims.Subject)
}

func TestAuthService_ValidateJWT_Garbage(t *testing.T) {
	profileRepo := new(MockUserProfileRepository)
	svc := newAuthServiceForTest(t, profileRepo)

	_, err := svc.ValidateJWT(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_ValidateJWT_Expired(t *testing.T) {
	profileRepo := new(MockUserProfileRepository)
	svc := newAuthServiceForTest(t, profileRepo)

	token, err := svc.CreateJWT(context.Background(), "u1", -time.Minute, tokenTypeAccess)
	assert.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	profileRepo := new(MockUserProfileRepository)
	svc := newAuthServiceForTest(t, profileRepo)

	profileRepo.On("GetProfileByID", mock.Anything, "u1").Return(freeProfile("u1"), nil)

	refresh, err := svc.CreateJWT(context.Background(), "u1", time.Hour, tokenTypeRefresh)
	assert.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshToken(context.Background(), refresh)

	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	claims, err := svc.ValidateJWT(context.Background(), newAccess)
	assert.NoError(t, err)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
}

func TestAuthService_RefreshToken_WrongType(t *testing.T) {
	profileRepo := new(MockUserProfileRepository)
	svc := newAuthServiceForTest(t, profileRepo)

	access, err := svc.CreateJWT(context.Background(), "u1", time.Hour, tokenTypeAccess)
	assert.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), access)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a refresh token")
}

func TestAuthService_RefreshToken_UserNotFound(t *testing.T) {
	profileRepo := new(MockUserProfileRepository)
	svc := newAuthServiceForTest(t, profileRepo)

	profileRepo.On("GetProfileByID", mock.Anything, "ghost").Return(nil, nil)

	refresh, err := svc.CreateJWT(context.Background(), "ghost", time.Hour, tokenTypeRefresh)
	assert.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), refresh)

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}
