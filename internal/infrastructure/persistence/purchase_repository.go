package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Purchase, error) {
	var purchase engagement.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByUser returns a customer's purchase history
func (r *GormPurchaseRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[engagement.Purchase], error) {
	return r.findPaginated(ctx, "user_id = ?", userID, filter)
}

// FindByVendor returns the purchases recorded against a vendor's products
func (r *GormPurchaseRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (*shared.Paginated[engagement.Purchase], error) {
	return r.findPaginated(ctx, "vendor_id = ?", vendorID, filter)
}

// CountByVendor returns how many purchases were recorded against a vendor
func (r *GormPurchaseRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&engagement.Purchase{}).
		Where("vendor_id = ?", vendorID).
		Count(&count).Error
	return count, err
}

func (r *GormPurchaseRepository) findPaginated(ctx context.Context, cond string, id uuid.UUID, filter shared.Filter) (*shared.Paginated[engagement.Purchase], error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&engagement.Purchase{}).
		Where(cond, id).
		Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&engagement.Purchase{}).
		Where(cond, id)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	var purchases []engagement.Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(purchases, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Save creates or updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *engagement.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

// Delete deletes a purchase record
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&engagement.Purchase{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ engagement.PurchaseRepository = (*GormPurchaseRepository)(nil)
