package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/shared"
)

// WishlistEntry links a customer to a saved product. The (user, product)
// pair is unique; toggling an existing pair removes it.
type WishlistEntry struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product"`
}

// TableName returns the table name for GORM
func (WishlistEntry) TableName() string {
	return "wishlist_entries"
}

// NewWishlistEntry creates a wishlist entry.
func NewWishlistEntry(userID, productID uuid.UUID) *WishlistEntry {
	return &WishlistEntry{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
	}
}

// WishlistRepository defines the interface for wishlist persistence
type WishlistRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]WishlistEntry, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Save(ctx context.Context, entry *WishlistEntry) error
	DeleteByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) error
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}
