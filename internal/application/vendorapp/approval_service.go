package vendorapp

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/identity"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ApprovalService handles admin transitions of the vendor state machine.
// The vendor record is the only place approval is stored; approving or
// suspending is a single update with no profile flag to keep in sync.
type ApprovalService struct {
	vendorRepo partner.VendorRepository
	userRepo   identity.UserRepository
	logger     *zap.Logger
}

// NewApprovalService creates a new approval service
func NewApprovalService(vendorRepo partner.VendorRepository, userRepo identity.UserRepository, logger *zap.Logger) *ApprovalService {
	return &ApprovalService{
		vendorRepo: vendorRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// ListVendors returns vendors for the admin review queue, optionally
// narrowed to one status, with the owning account's email attached.
func (s *ApprovalService) ListVendors(ctx context.Context, input ListVendorsInput) (*ListVendorsResult, error) {
	var (
		page *shared.Paginated[partner.Vendor]
		err  error
	)
	if input.Status != "" {
		status := partner.VendorStatus(input.Status)
		switch status {
		case partner.VendorStatusPending, partner.VendorStatusApproved, partner.VendorStatusSuspended:
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown vendor status filter")
		}
		page, err = s.vendorRepo.FindByStatus(ctx, status, input.Filter)
	} else {
		page, err = s.vendorRepo.FindAll(ctx, input.Filter)
	}
	if err != nil {
		return nil, err
	}

	vendors := make([]VendorInfo, 0, len(page.Items))
	for i := range page.Items {
		v := &page.Items[i]
		info := vendorInfo(v)
		if user, err := s.userRepo.FindByID(ctx, v.UserID); err == nil {
			info.Email = user.Email
			info.EmailVerified = user.EmailVerified
		}
		vendors = append(vendors, info)
	}

	return &ListVendorsResult{
		Vendors:    vendors,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// Approve moves a vendor to approved. The email-verified requirement is
// checked here against the user record, never trusted from the client.
func (s *ApprovalService) Approve(ctx context.Context, vendorID uuid.UUID) (*VendorInfo, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "Vendor not found")
	}

	user, err := s.userRepo.FindByID(ctx, vendor.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Vendor's user account not found")
	}

	if err := vendor.Approve(user.EmailVerified); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("Vendor approved",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("business_name", vendor.BusinessName))

	info := vendorInfo(vendor)
	info.Email = user.Email
	info.EmailVerified = user.EmailVerified
	return &info, nil
}

// Suspend moves an approved vendor to suspended. The vendor keeps read
// access to their dashboard; catalog mutations are refused elsewhere.
func (s *ApprovalService) Suspend(ctx context.Context, vendorID uuid.UUID) (*VendorInfo, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "Vendor not found")
	}

	if err := vendor.Suspend(); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("Vendor suspended",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("business_name", vendor.BusinessName))

	info := vendorInfo(vendor)
	return &info, nil
}

// Unsuspend restores a suspended vendor to approved. It goes through the
// same guard as a first approval, so a vendor whose email verification was
// somehow revoked cannot slip back in.
func (s *ApprovalService) Unsuspend(ctx context.Context, vendorID uuid.UUID) (*VendorInfo, error) {
	return s.Approve(ctx, vendorID)
}

// PlatformMetrics returns the admin overview counters.
func (s *ApprovalService) PlatformMetrics(ctx context.Context) (*PlatformMetrics, error) {
	customers, err := s.userRepo.CountByRole(ctx, identity.RoleCustomer)
	if err != nil {
		return nil, err
	}
	vendors, err := s.userRepo.CountByRole(ctx, identity.RoleVendor)
	if err != nil {
		return nil, err
	}
	pending, err := s.vendorRepo.CountByStatus(ctx, partner.VendorStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.vendorRepo.CountByStatus(ctx, partner.VendorStatusApproved)
	if err != nil {
		return nil, err
	}
	suspended, err := s.vendorRepo.CountByStatus(ctx, partner.VendorStatusSuspended)
	if err != nil {
		return nil, err
	}

	return &PlatformMetrics{
		TotalCustomers:   customers,
		TotalVendors:     vendors,
		PendingVendors:   pending,
		ApprovedVendors:  approved,
		SuspendedVendors: suspended,
	}, nil
}
