package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/identity"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/infrastructure/auth"
	"github.com/runmarket/backend/internal/infrastructure/crypto"
	"go.uber.org/zap"
)

// emailVerificationTTL is how long a verification link stays valid.
const emailVerificationTTL = 48 * time.Hour

// AuthService handles registration, sign-in and session operations for all
// three portals.
type AuthService struct {
	userRepo    identity.UserRepository
	vendorRepo  partner.VendorRepository
	txScope     TransactionScope
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	phoneCipher *crypto.PhoneCipher
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	vendorRepo partner.VendorRepository,
	txScope TransactionScope,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	phoneCipher *crypto.PhoneCipher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		vendorRepo:  vendorRepo,
		txScope:     txScope,
		jwtService:  jwtService,
		blacklist:   blacklist,
		phoneCipher: phoneCipher,
		logger:      logger,
	}
}

// SignUpCustomer registers a customer account and signs them in.
func (s *AuthService) SignUpCustomer(ctx context.Context, input SignUpCustomerInput) (*AuthResult, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(input.Email, input.Password, identity.RoleCustomer)
	if err != nil {
		return nil, err
	}
	if input.FullName != "" {
		if err := user.SetFullName(input.FullName); err != nil {
			return nil, err
		}
	}
	if input.Phone != "" {
		encrypted, err := s.phoneCipher.Encrypt(input.Phone)
		if err != nil {
			s.logger.Error("Failed to encrypt phone during signup", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process phone number")
		}
		if err := user.SetPhone(input.Phone, encrypted); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.issueVerificationLink(user)
	s.logger.Info("Customer signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.buildAuthResult(ctx, user)
}

// SignUpVendor registers a vendor account. The user and the vendor record
// are created in one transaction; if the vendor cannot be created the user
// is not left behind.
func (s *AuthService) SignUpVendor(ctx context.Context, input SignUpVendorInput) (*AuthResult, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(input.Email, input.Password, identity.RoleVendor)
	if err != nil {
		return nil, err
	}
	if input.FullName != "" {
		if err := user.SetFullName(input.FullName); err != nil {
			return nil, err
		}
	}

	var vendor *partner.Vendor
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}

		vendor, err = partner.NewVendor(user.ID, input.BusinessName, input.WhatsAppNumber)
		if err != nil {
			return err
		}
		if input.Description != "" {
			if err := vendor.UpdateProfile(input.BusinessName, input.Description); err != nil {
				return err
			}
		}

		encrypted, err := s.phoneCipher.Encrypt(vendor.WhatsAppNumber)
		if err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to process WhatsApp number")
		}
		vendor.EncryptedWhatsApp = encrypted

		slug, err := s.uniqueVendorSlug(ctx, repos.VendorRepo(), vendor.Slug)
		if err != nil {
			return err
		}
		vendor.Slug = slug

		return repos.VendorRepo().Save(ctx, vendor)
	})
	if err != nil {
		return nil, err
	}

	s.issueVerificationLink(user)
	s.logger.Info("Vendor signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("business_name", vendor.BusinessName))

	return s.buildAuthResult(ctx, user)
}

// SignIn authenticates a user against the portal they came from. A valid
// password with the wrong role is rejected and any existing sessions for the
// account are revoked, so a stale session cannot linger on the other portal.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*AuthResult, error) {
	portal := identity.Role(input.Portal)
	if !portal.Valid() {
		return nil, shared.NewDomainError("INVALID_PORTAL", "Unknown sign-in portal")
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if user.Role != portal {
		s.logger.Warn("Sign-in at wrong portal",
			zap.String("user_id", user.ID.String()),
			zap.String("role", string(user.Role)),
			zap.String("portal", input.Portal))
		// Best effort: revoke whatever sessions the account still has.
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
			s.logger.Error("Failed to revoke sessions after portal mismatch", zap.Error(err))
		}
		return nil, shared.ErrWrongPortal
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Sign-in still succeeds; only the last_login timestamp is lost.
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User signed in",
		zap.String("user_id", user.ID.String()),
		zap.String("portal", input.Portal))

	return s.buildAuthResult(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
	}
	if !revoked {
		invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			s.logger.Error("Failed to check user token invalidation", zap.Error(err))
		}
		revoked = invalidated
	}
	if revoked {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh session")
	}

	return &RefreshTokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// SignOut revokes the current access token.
func (s *AuthService) SignOut(ctx context.Context, input SignOutInput) error {
	if input.TokenJTI == "" {
		return nil
	}
	ttl := input.TokenTTL
	if ttl <= 0 {
		ttl = s.jwtService.GetAccessTokenExpiration()
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
		s.logger.Error("Failed to blacklist token on sign-out", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to sign out")
	}
	s.logger.Info("User signed out", zap.String("user_id", input.UserID.String()))
	return nil
}

// VerifyEmail marks an account's email as verified using the token from the
// verification link. Verifying twice is harmless.
func (s *AuthService) VerifyEmail(ctx context.Context, input VerifyEmailInput) error {
	claims, err := s.jwtService.ValidateEmailVerificationToken(input.Token)
	if err != nil {
		return shared.NewDomainError("TOKEN_INVALID", "Invalid or expired verification link")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return shared.NewDomainError("TOKEN_INVALID", "Invalid verification link")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.ErrNotFound
	}

	user.VerifyEmail()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Email verified", zap.String("user_id", user.ID.String()))
	return nil
}

// GetCurrentUser returns the signed-in user's profile, including vendor
// details when the account owns a vendor.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := s.userInfo(ctx, user)
	return &info, nil
}

func (s *AuthService) buildAuthResult(ctx context.Context, user *identity.User) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create session")
	}

	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  s.userInfo(ctx, user),
	}, nil
}

func (s *AuthService) userInfo(ctx context.Context, user *identity.User) UserInfo {
	info := UserInfo{
		ID:            user.ID,
		Email:         user.Email,
		Role:          string(user.Role),
		FullName:      user.FullName,
		Phone:         user.Phone,
		AvatarURL:     user.AvatarURL,
		MatricNumber:  user.MatricNumber,
		EmailVerified: user.EmailVerified,
	}
	if user.IsVendor() {
		if vendor, err := s.vendorRepo.FindByUserID(ctx, user.ID); err == nil {
			info.VendorID = &vendor.ID
			info.VendorStatus = string(vendor.Status)
		}
	}
	return info
}

// issueVerificationLink generates the email verification token. There is no
// mailer yet, so the token is logged for the operator to relay.
// TODO: send through a transactional email provider once one is configured.
func (s *AuthService) issueVerificationLink(user *identity.User) {
	token, err := s.jwtService.GenerateEmailVerificationToken(user.ID, user.Email, emailVerificationTTL)
	if err != nil {
		s.logger.Error("Failed to generate verification token", zap.Error(err))
		return
	}
	s.logger.Info("Email verification token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("token", token))
}

// uniqueVendorSlug appends a numeric suffix until the slug is free.
func (s *AuthService) uniqueVendorSlug(ctx context.Context, repo partner.VendorRepository, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		exists, err := repo.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
