package identity

import (
	"time"

	"github.com/google/uuid"
)

// SignUpCustomerInput contains the input for customer registration
type SignUpCustomerInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// SignUpVendorInput contains the input for vendor registration. The user
// account and the vendor record are created together.
type SignUpVendorInput struct {
	Email          string
	Password       string
	FullName       string
	BusinessName   string
	WhatsAppNumber string
	Description    string
}

// SignInInput contains the input for portal sign-in
type SignInInput struct {
	Email    string
	Password string
	// Portal is the surface the user is signing in from: customer,
	// vendor or admin. A role mismatch rejects the sign-in.
	Portal string
}

// AuthResult contains tokens and user info after signup or sign-in
type AuthResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned to clients
type UserInfo struct {
	ID            uuid.UUID
	Email         string
	Role          string
	FullName      string
	Phone         string
	AvatarURL     string
	MatricNumber  string
	EmailVerified bool
	VendorID      *uuid.UUID
	VendorStatus  string
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// SignOutInput contains the input for sign-out
type SignOutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}

// VerifyEmailInput contains the token from a verification link
type VerifyEmailInput struct {
	Token string
}

// UpdateProfileInput contains the input for profile updates. Nil fields are
// left unchanged.
type UpdateProfileInput struct {
	UserID       uuid.UUID
	FullName     *string
	Phone        *string
	AvatarURL    *string
	MatricNumber *string
}
