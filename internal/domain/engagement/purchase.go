package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/domain/shared/valueobject"
)

// Purchase is a customer's own record that a WhatsApp deal was concluded.
// Money never moves through the platform, so this is self-reported history,
// with the price pinned at the moment of recording.
type Purchase struct {
	shared.BaseEntity
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	VendorID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	PriceAtPurchase valueobject.Naira `gorm:"not null"`
	Quantity        int               `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase records a purchase of quantity units at the given price.
func NewPurchase(userID, productID, vendorID uuid.UUID, price valueobject.Naira, quantity int) (*Purchase, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return &Purchase{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		ProductID:       productID,
		VendorID:        vendorID,
		PriceAtPurchase: price,
		Quantity:        quantity,
	}, nil
}

// Total returns the quantity-adjusted amount.
func (p *Purchase) Total() valueobject.Naira {
	return p.PriceAtPurchase.Mul(p.Quantity)
}

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[Purchase], error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (*shared.Paginated[Purchase], error)
	CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
	Save(ctx context.Context, purchase *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
}
