package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	"github.com/teaminfinity/expense_management/internal/core/domain"
	portsrepo "github.com/teaminfinity/expense_management/internal/core/ports/repositories"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
	"github.com/teaminfinity/expense_management/internal/platform/config"
	"github.com/teaminfinity/expense_management/internal/utils"
)

// authService implements signup, login, token refresh and Google sign-in.
type authService struct {
	cfg            *config.Config
	userRepo       portsrepo.UserRepositoryFacade
	companyRepo    portsrepo.CompanyRepositoryFacade
	integrationSvc portssvc.IntegrationSvcFacade
	oauthConfig    *oauth2.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	userRepo portsrepo.UserRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
	integrationSvc portssvc.IntegrationSvcFacade,
) portssvc.AuthSvcFacade {
	return &authService{
		cfg:            cfg,
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		integrationSvc: integrationSvc,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Ensure authService implements the AuthSvcFacade interface.
var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Signup registers a new user. The first signup naming a company creates the
// company with its country's default currency; the initial role comes from
// the DecideInitialRole provisioning policy.
func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: user with this email already exists", apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	now := time.Now().UTC()
	newUserID := uuid.NewString()

	company, err := s.companyRepo.FindCompanyByName(ctx, req.CompanyName)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up company: %w", err)
		}

		currency, currErr := s.integrationSvc.GetDefaultCurrencyForCountry(ctx, req.Country)
		if currErr != nil {
			logger.Warn("Failed to resolve default currency for country, using USD", slog.String("country", req.Country), slog.String("error", currErr.Error()))
			currency = "USD"
		}

		newCompany := domain.Company{
			CompanyID:           uuid.NewString(),
			Name:                req.CompanyName,
			Country:             req.Country,
			DefaultCurrencyCode: currency,
			IsManagerApprover:   false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     newUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: newUserID,
			},
		}
		if err := s.companyRepo.SaveCompany(ctx, newCompany); err != nil {
			logger.Error("Failed to create company during signup", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to create company: %w", err)
		}
		company = &newCompany
		logger.Info("Company created", slog.String("company_id", company.CompanyID), slog.String("currency", currency))
	}

	userCount, err := s.userRepo.CountUsersByCompany(ctx, company.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count company users: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       newUserID,
		CompanyID:    company.CompanyID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Role:         DecideInitialRole(userCount),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user during signup", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User signed up", slog.String("new_user_id", user.UserID), slog.String("role", string(user.Role)))
	return s.issueTokens(ctx, &user)
}

// Login authenticates a user with email and password.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("email", req.Email))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return s.issueTokens(ctx, user)
}

// Refresh validates a refresh token and rotates the token pair.
func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(req.RefreshToken, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return s.issueTokens(ctx, user)
}

// ExchangeGoogleCode completes the Google authorization-code flow. Only
// existing users can sign in this way: Google provides no company context,
// so provisioning still happens through signup or an admin.
func (s *authService) ExchangeGoogleCode(ctx context.Context, code string) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: invalid authorization code", apperrors.ErrUnauthorized)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: id_token missing from Google token response", apperrors.ErrUnauthorized)
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, s.cfg.GoogleClientID)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: invalid Google ID token", apperrors.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: email missing from Google ID token", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Google sign-in for unknown user", slog.String("email", email))
			return nil, fmt.Errorf("%w: no account for this Google identity", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// GoogleAuthCodeURL builds the Google consent screen URL for the redirect flow.
func (s *authService) GoogleAuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// issueTokens generates an access token and a rotated refresh token for the
// user and stores the refresh token hash.
func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	accessExpiry := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshExpiry := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	refreshHash := utils.HashRefreshToken(refreshToken)

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, &refreshHash, &refreshExpiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessExpiry,
		RefreshToken:         refreshToken,
		User:                 dto.ToUserResponse(user),
	}, nil
}
