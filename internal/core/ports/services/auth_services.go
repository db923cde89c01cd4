package services

import (
	"context"

	"github.com/teaminfinity/expense_management/internal/dto"
)

// AuthSvcFacade defines the authentication flows.
type AuthSvcFacade interface {
	// Signup registers a user; the first signup for a company name creates the
	// company (with the country's default currency) and makes the user admin.
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)

	// Login authenticates with email/password.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.AuthResponse, error)

	// ExchangeGoogleCode completes the Google authorization-code flow and
	// signs in an existing user; unknown Google identities are rejected.
	ExchangeGoogleCode(ctx context.Context, code string) (*dto.AuthResponse, error)

	// GoogleAuthCodeURL builds the Google consent screen URL for the
	// redirect flow, carrying the given CSRF state.
	GoogleAuthCodeURL(state string) string
}
