package handler

import (
	"time"

	appidentity "github.com/runmarket/backend/internal/application/identity"
)

// SignUpCustomerRequest is the customer registration payload.
type SignUpCustomerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"omitempty,max=200"`
	Phone    string `json:"phone" binding:"omitempty,max=50"`
}

// SignUpVendorRequest is the vendor registration payload.
type SignUpVendorRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	FullName       string `json:"full_name" binding:"omitempty,max=200"`
	BusinessName   string `json:"business_name" binding:"required,max=200"`
	WhatsAppNumber string `json:"whatsapp_number" binding:"required,max=50"`
	Description    string `json:"description" binding:"omitempty,max=2000"`
}

// SignInRequest is the portal sign-in payload.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Portal   string `json:"portal" binding:"required,oneof=customer vendor admin"`
}

// RefreshTokenRequest carries a refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// VerifyEmailRequest carries the token from a verification link.
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdateProfileRequest is a partial profile update. Omitted fields are left
// unchanged.
type UpdateProfileRequest struct {
	FullName     *string `json:"full_name" binding:"omitempty,max=200"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	AvatarURL    *string `json:"avatar_url" binding:"omitempty,max=500"`
	MatricNumber *string `json:"matric_number" binding:"omitempty,max=50"`
}

// ChangePasswordRequest rotates a password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// TokenResponse is the JWT pair returned on signup, sign-in and refresh.
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthUserResponse is the user payload inside auth responses.
type AuthUserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	FullName      string `json:"full_name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	MatricNumber  string `json:"matric_number,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	VendorID      string `json:"vendor_id,omitempty"`
	VendorStatus  string `json:"vendor_status,omitempty"`
}

// AuthResponse pairs tokens with user info.
type AuthResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

func authUserResponse(info appidentity.UserInfo) AuthUserResponse {
	resp := AuthUserResponse{
		ID:            info.ID.String(),
		Email:         info.Email,
		Role:          info.Role,
		FullName:      info.FullName,
		Phone:         info.Phone,
		AvatarURL:     info.AvatarURL,
		MatricNumber:  info.MatricNumber,
		EmailVerified: info.EmailVerified,
		VendorStatus:  info.VendorStatus,
	}
	if info.VendorID != nil {
		resp.VendorID = info.VendorID.String()
	}
	return resp
}

func authResponse(result *appidentity.AuthResult) AuthResponse {
	return AuthResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		User: authUserResponse(result.User),
	}
}
