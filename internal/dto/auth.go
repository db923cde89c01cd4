package dto

import "time"

// SignupRequest registers a new user; the first signup for a company name
// creates the company and makes the user its admin.
type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"required"`
	CompanyName string `json:"companyName" binding:"required"`
	Country     string `json:"country" binding:"required"`
}

// LoginRequest authenticates a user with email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleExchangeCodeRequest carries the authorization code returned by
// Google's consent screen.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// AuthResponse is returned by all successful authentication flows.
type AuthResponse struct {
	AccessToken          string       `json:"accessToken"`
	AccessTokenExpiresAt time.Time    `json:"accessTokenExpiresAt"`
	RefreshToken         string       `json:"refreshToken,omitempty"`
	User                 UserResponse `json:"user"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}
