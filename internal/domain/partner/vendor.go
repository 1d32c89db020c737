package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/domain/shared/valueobject"
)

// VendorStatus represents the approval status of a vendor account.
// The vendor record is the single source of truth for approval; no
// duplicate flag is kept on the user profile.
type VendorStatus string

const (
	VendorStatusPending   VendorStatus = "pending"
	VendorStatusApproved  VendorStatus = "approved"
	VendorStatusSuspended VendorStatus = "suspended"
)

// Vendor represents a seller account, created alongside a vendor-role user.
// It is the aggregate root for vendor-related operations.
type Vendor struct {
	shared.BaseAggregateRoot
	UserID            uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	BusinessName      string       `gorm:"type:varchar(200);not null"`
	Slug              string       `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description       string       `gorm:"type:text"`
	WhatsAppNumber    string       `gorm:"type:varchar(50);not null"`
	EncryptedWhatsApp string       `gorm:"type:text"`
	LogoURL           string       `gorm:"type:varchar(500)"`
	BannerURL         string       `gorm:"type:varchar(500)"`
	InstagramURL      string       `gorm:"type:varchar(500)"`
	FacebookURL       string       `gorm:"type:varchar(500)"`
	TiktokURL         string       `gorm:"type:varchar(500)"`
	Status            VendorStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor in the pending state. The slug is derived
// from the business name; the repository enforces its uniqueness.
func NewVendor(userID uuid.UUID, businessName, whatsappNumber string) (*Vendor, error) {
	if err := validateBusinessName(businessName); err != nil {
		return nil, err
	}
	if _, ok := NormalizeWhatsAppNumber(whatsappNumber); !ok {
		return nil, shared.NewDomainError("INVALID_WHATSAPP", "WhatsApp number must contain at least one digit")
	}

	businessName = strings.TrimSpace(businessName)
	return &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		BusinessName:      businessName,
		Slug:              valueobject.Slugify(businessName),
		WhatsAppNumber:    strings.TrimSpace(whatsappNumber),
		Status:            VendorStatusPending,
	}, nil
}

// Approve moves a pending or suspended vendor to approved. Approval is an
// admin action and requires the owning account's email to be verified; that
// guard is enforced here, not in the UI.
func (v *Vendor) Approve(emailVerified bool) error {
	if v.Status == VendorStatusApproved {
		return shared.NewDomainError("ALREADY_APPROVED", "Vendor is already approved")
	}
	if !emailVerified {
		return shared.ErrEmailNotVerified
	}

	v.Status = VendorStatusApproved
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// Suspend moves an approved vendor to suspended. Pending vendors cannot be
// suspended; they simply remain unapproved.
func (v *Vendor) Suspend() error {
	if v.Status != VendorStatusApproved {
		return shared.NewDomainError("NOT_APPROVED", "Only an approved vendor can be suspended")
	}

	v.Status = VendorStatusSuspended
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// IsApproved reports whether the vendor may perform catalog mutations.
func (v *Vendor) IsApproved() bool {
	return v.Status == VendorStatusApproved
}

// IsSuspended reports whether the vendor has been suspended by an admin.
func (v *Vendor) IsSuspended() bool {
	return v.Status == VendorStatusSuspended
}

// UpdateProfile updates the vendor's public business details.
func (v *Vendor) UpdateProfile(businessName, description string) error {
	if err := validateBusinessName(businessName); err != nil {
		return err
	}

	v.BusinessName = strings.TrimSpace(businessName)
	v.Description = description
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// SetWhatsAppNumber replaces the contact number, keeping the encrypted copy
// in sync.
func (v *Vendor) SetWhatsAppNumber(raw, encrypted string) error {
	if _, ok := NormalizeWhatsAppNumber(raw); !ok {
		return shared.NewDomainError("INVALID_WHATSAPP", "WhatsApp number must contain at least one digit")
	}
	v.WhatsAppNumber = strings.TrimSpace(raw)
	v.EncryptedWhatsApp = encrypted
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// SetLogoURL sets the vendor logo image URL.
func (v *Vendor) SetLogoURL(url string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_LOGO", "Logo URL cannot exceed 500 characters")
	}
	v.LogoURL = url
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// SetBannerURL sets the vendor banner image URL.
func (v *Vendor) SetBannerURL(url string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_BANNER", "Banner URL cannot exceed 500 characters")
	}
	v.BannerURL = url
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// SetSocialLinks updates the optional social media URLs.
func (v *Vendor) SetSocialLinks(instagram, facebook, tiktok string) {
	v.InstagramURL = instagram
	v.FacebookURL = facebook
	v.TiktokURL = tiktok
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

func validateBusinessName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot exceed 200 characters")
	}
	return nil
}
