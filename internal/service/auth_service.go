package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pariksha/internal/config"
	"pariksha/internal/domain"
	"pariksha/internal/dto"
	"pariksha/internal/logger"
	"pariksha/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code string, receivedState string, expectedState string) (accessToken string, refreshToken string, profile *domain.UserProfile, err error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken string, newRefreshToken string, err error)
}

type authServiceImpl struct {
	profileRepo  domain.UserProfileRepository
	subscription SubscriptionService
	oauth2Config *oauth2.Config
	appConfig    *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(profileRepo domain.UserProfileRepository, subscription SubscriptionService, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.JWT.SecretKey) < 32 {
		return nil, errors.New("jwt secret key must be at least 32 bytes long")
	}

	return &authServiceImpl{
		profileRepo:  profileRepo,
		subscription: subscription,
		oauth2Config: &oauth2.Config{
			ClientID:     appConfig.GoogleOAuth.ClientID,
			ClientSecret: appConfig.GoogleOAuth.ClientSecret,
			RedirectURL:  appConfig.GoogleOAuth.RedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		appConfig: appConfig,
	}, nil
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// HandleGoogleCallback completes the OAuth dance, upserts the profile, and
// runs the passive subscription expiry check before tokens are issued.
func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code string, receivedState string, expectedState string) (string, string, *domain.UserProfile, error) {
	appLogger := logger.Get()
	if receivedState != expectedState {
		return "", "", nil, ErrInvalidAuthState
	}

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	client := s.oauth2Config.Client(ctx, googleToken)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return "", "", nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	if userInfo.ID == "" || userInfo.Email == "" {
		return "", "", nil, errors.New("google user info is incomplete")
	}

	profile, err := s.profileRepo.GetProfileByGoogleID(ctx, userInfo.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("error fetching profile by google_id: %w", err)
	}

	if profile == nil { // First login: start on the free plan
		profile = domain.NewUserProfile(userInfo.ID, userInfo.Email)
		profile.ID = util.NewULID()
		profile.Name = userInfo.Name
		profile.ProfilePictureURL = userInfo.Picture
		if err := s.profileRepo.CreateProfile(ctx, profile); err != nil {
			return "", "", nil, fmt.Errorf("failed to create user profile: %w", err)
		}
		appLogger.Info("New user profile created via Google OAuth",
			zap.String("userID", profile.ID), zap.String("email", profile.Email))
	} else {
		profile.Email = userInfo.Email // Google is source of truth for email
		profile.Name = userInfo.Name
		profile.ProfilePictureURL = userInfo.Picture
		if err := s.profileRepo.UpdateIdentity(ctx, profile); err != nil {
			return "", "", nil, fmt.Errorf("failed to update user profile: %w", err)
		}

		profile, err = s.subscription.EvaluateExpiry(ctx, profile)
		if err != nil {
			return "", "", nil, fmt.Errorf("failed to evaluate subscription expiry: %w", err)
		}
		appLogger.Info("User logged in via Google OAuth",
			zap.String("userID", profile.ID), zap.String("email", profile.Email))
	}

	accessToken, err := s.CreateJWT(ctx, profile.ID, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, err := s.CreateJWT(ctx, profile.ID, s.appConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return accessToken, refreshToken, profile, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error) {
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		} else {
			appLogger.Warn("JWT validation failed",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	appLogger := logger.Get()
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		appLogger.Warn("Refresh token validation failed",
			zap.Error(err),
			zap.String("refresh_token_snippet", refreshTokenString[:min(len(refreshTokenString), 20)]+"..."))
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", "", errors.New("not a refresh token")
	}

	profile, err := s.profileRepo.GetProfileByID(ctx, claims.UserID)
	if err != nil {
		return "", "", fmt.Errorf("error fetching profile for refresh token: %w", err)
	}
	if profile == nil {
		appLogger.Error("Profile not found for refresh token", zap.String("userID", claims.UserID))
		return "", "", domain.NewNotFoundError(fmt.Sprintf("User %s not found for refresh token", claims.UserID))
	}

	newAccessToken, err := s.CreateJWT(ctx, profile.ID, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", fmt.Errorf("failed to create new access token: %w", err)
	}
	newRefreshToken, err := s.CreateJWT(ctx, profile.ID, s.appConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", fmt.Errorf("failed to create new refresh token: %w", err)
	}

	appLogger.Info("JWT token refreshed", zap.String("userID", profile.ID))
	return newAccessToken, newRefreshToken, nil
}
