package vendorapp

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/infrastructure/crypto"
	"go.uber.org/zap"
)

// VendorProfileService handles a vendor's edits to their own storefront
// profile. Suspended vendors may still edit their profile; only catalog
// mutations are gated on approval.
type VendorProfileService struct {
	vendorRepo  partner.VendorRepository
	phoneCipher *crypto.PhoneCipher
	logger      *zap.Logger
}

// NewVendorProfileService creates a new vendor profile service
func NewVendorProfileService(vendorRepo partner.VendorRepository, phoneCipher *crypto.PhoneCipher, logger *zap.Logger) *VendorProfileService {
	return &VendorProfileService{
		vendorRepo:  vendorRepo,
		phoneCipher: phoneCipher,
		logger:      logger,
	}
}

// GetBySlug returns a vendor's public storefront profile.
func (s *VendorProfileService) GetBySlug(ctx context.Context, slug string) (*VendorInfo, error) {
	vendor, err := s.vendorRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	info := vendorInfo(vendor)
	return &info, nil
}

// UpdateProfile applies the provided fields. Nil fields stay untouched.
func (s *VendorProfileService) UpdateProfile(ctx context.Context, input UpdateVendorProfileInput) (*VendorInfo, error) {
	vendor, err := s.vendorRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "No vendor account for this user")
	}

	if input.BusinessName != nil || input.Description != nil {
		name := vendor.BusinessName
		if input.BusinessName != nil {
			name = *input.BusinessName
		}
		description := vendor.Description
		if input.Description != nil {
			description = *input.Description
		}
		if err := vendor.UpdateProfile(name, description); err != nil {
			return nil, err
		}
	}

	if input.WhatsAppNumber != nil {
		encrypted, err := s.phoneCipher.Encrypt(*input.WhatsAppNumber)
		if err != nil {
			s.logger.Error("Failed to encrypt WhatsApp number", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process WhatsApp number")
		}
		if err := vendor.SetWhatsAppNumber(*input.WhatsAppNumber, encrypted); err != nil {
			return nil, err
		}
	}

	if input.LogoURL != nil {
		if err := vendor.SetLogoURL(*input.LogoURL); err != nil {
			return nil, err
		}
	}
	if input.BannerURL != nil {
		if err := vendor.SetBannerURL(*input.BannerURL); err != nil {
			return nil, err
		}
	}

	if input.InstagramURL != nil || input.FacebookURL != nil || input.TiktokURL != nil {
		instagram := vendor.InstagramURL
		if input.InstagramURL != nil {
			instagram = *input.InstagramURL
		}
		facebook := vendor.FacebookURL
		if input.FacebookURL != nil {
			facebook = *input.FacebookURL
		}
		tiktok := vendor.TiktokURL
		if input.TiktokURL != nil {
			tiktok = *input.TiktokURL
		}
		vendor.SetSocialLinks(instagram, facebook, tiktok)
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("Vendor profile updated", zap.String("vendor_id", vendor.ID.String()))

	info := vendorInfo(vendor)
	return &info, nil
}

// RequireApproved loads the vendor owned by userID and refuses anything but
// the approved state. Services performing catalog mutations call this so
// the check cannot be skipped by a stale client.
func RequireApproved(ctx context.Context, repo partner.VendorRepository, userID uuid.UUID) (*partner.Vendor, error) {
	vendor, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "No vendor account for this user")
	}
	if !vendor.IsApproved() {
		return nil, shared.ErrVendorNotApproved
	}
	return vendor, nil
}
