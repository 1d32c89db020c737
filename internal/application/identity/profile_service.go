package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/identity"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/infrastructure/crypto"
	"go.uber.org/zap"
)

// ProfileService handles profile reads and updates for signed-in users.
type ProfileService struct {
	userRepo    identity.UserRepository
	phoneCipher *crypto.PhoneCipher
	logger      *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo identity.UserRepository, phoneCipher *crypto.PhoneCipher, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		phoneCipher: phoneCipher,
		logger:      logger,
	}
}

// UpdateProfile applies the provided fields to the user's profile. Nil
// fields are left untouched, so a partial update never clears other fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if input.FullName != nil {
		if err := user.SetFullName(*input.FullName); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		encrypted := ""
		if *input.Phone != "" {
			encrypted, err = s.phoneCipher.Encrypt(*input.Phone)
			if err != nil {
				s.logger.Error("Failed to encrypt phone", zap.Error(err))
				return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process phone number")
			}
		}
		if err := user.SetPhone(*input.Phone, encrypted); err != nil {
			return nil, err
		}
	}
	if input.AvatarURL != nil {
		if err := user.SetAvatarURL(*input.AvatarURL); err != nil {
			return nil, err
		}
	}
	if input.MatricNumber != nil {
		if err := user.SetMatricNumber(*input.MatricNumber); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.String("user_id", user.ID.String()))

	return &UserInfo{
		ID:            user.ID,
		Email:         user.Email,
		Role:          string(user.Role),
		FullName:      user.FullName,
		Phone:         user.Phone,
		AvatarURL:     user.AvatarURL,
		MatricNumber:  user.MatricNumber,
		EmailVerified: user.EmailVerified,
	}, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *ProfileService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.ErrNotFound
	}

	if !user.VerifyPassword(currentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}
