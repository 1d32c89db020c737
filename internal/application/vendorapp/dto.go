package vendorapp

import (
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
)

// VendorInfo is the admin-facing view of a vendor account.
type VendorInfo struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	BusinessName   string
	Slug           string
	Description    string
	WhatsAppNumber string
	LogoURL        string
	BannerURL      string
	Status         string
	Email          string
	EmailVerified  bool
	CreatedAt      time.Time
}

// ListVendorsInput filters the admin vendor list.
type ListVendorsInput struct {
	Status string
	Filter shared.Filter
}

// ListVendorsResult is a page of vendors with owner email attached.
type ListVendorsResult struct {
	Vendors    []VendorInfo
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// UpdateVendorProfileInput contains the vendor's own profile edits. Nil
// fields are left unchanged.
type UpdateVendorProfileInput struct {
	UserID         uuid.UUID
	BusinessName   *string
	Description    *string
	WhatsAppNumber *string
	LogoURL        *string
	BannerURL      *string
	InstagramURL   *string
	FacebookURL    *string
	TiktokURL      *string
}

// DashboardMetrics aggregates what a vendor sees at the top of their
// dashboard.
type DashboardMetrics struct {
	ProductCount    int64
	Views           int64
	OrderClicks     int64
	ManualPurchases int64
	PurchaseReports int64
}

// DashboardResult is the full vendor dashboard payload.
type DashboardResult struct {
	Vendor  VendorInfo
	Metrics DashboardMetrics
}

// PlatformMetrics aggregates the admin overview numbers.
type PlatformMetrics struct {
	TotalCustomers   int64
	TotalVendors     int64
	PendingVendors   int64
	ApprovedVendors  int64
	SuspendedVendors int64
}

func vendorInfo(v *partner.Vendor) VendorInfo {
	return VendorInfo{
		ID:             v.ID,
		UserID:         v.UserID,
		BusinessName:   v.BusinessName,
		Slug:           v.Slug,
		Description:    v.Description,
		WhatsAppNumber: v.WhatsAppNumber,
		LogoURL:        v.LogoURL,
		BannerURL:      v.BannerURL,
		Status:         string(v.Status),
		CreatedAt:      v.CreatedAt,
	}
}
