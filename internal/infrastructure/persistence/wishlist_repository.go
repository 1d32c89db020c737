package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/engagement"
	"gorm.io/gorm"
)

// GormWishlistRepository implements WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// FindByUser returns a user's wishlist entries, newest first
func (r *GormWishlistRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]engagement.WishlistEntry, error) {
	var entries []engagement.WishlistEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Exists checks whether the user has saved the product
func (r *GormWishlistRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&engagement.WishlistEntry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates a wishlist entry
func (r *GormWishlistRepository) Save(ctx context.Context, entry *engagement.WishlistEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// DeleteByUserAndProduct removes a saved product. Removing an entry that does
// not exist is not an error; the toggle stays idempotent.
func (r *GormWishlistRepository) DeleteByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&engagement.WishlistEntry{}, "user_id = ? AND product_id = ?", userID, productID).Error
}

// CountByProduct counts how many users saved the product
func (r *GormWishlistRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&engagement.WishlistEntry{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ engagement.WishlistRepository = (*GormWishlistRepository)(nil)
