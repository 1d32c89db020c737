package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/shared"
)

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Vendor, error)
	FindBySlug(ctx context.Context, slug string) (*Vendor, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Vendor], error)
	FindByStatus(ctx context.Context, status VendorStatus, filter shared.Filter) (*shared.Paginated[Vendor], error)
	CountByStatus(ctx context.Context, status VendorStatus) (int64, error)
	Save(ctx context.Context, vendor *Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
}
