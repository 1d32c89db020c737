package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	var vendor partner.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindByUserID finds the vendor owned by the given user
func (r *GormVendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*partner.Vendor, error) {
	var vendor partner.Vendor
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindBySlug finds a vendor by its public slug
func (r *GormVendorRepository) FindBySlug(ctx context.Context, slug string) (*partner.Vendor, error) {
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	var vendor partner.Vendor
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// ExistsBySlug checks if a vendor with the given slug exists
func (r *GormVendorRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if slug == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Vendor{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds all vendors matching the filter
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Vendor], error) {
	return r.findPaginated(ctx, filter, nil)
}

// FindByStatus finds vendors in the given approval status
func (r *GormVendorRepository) FindByStatus(ctx context.Context, status partner.VendorStatus, filter shared.Filter) (*shared.Paginated[partner.Vendor], error) {
	return r.findPaginated(ctx, filter, &status)
}

func (r *GormVendorRepository) findPaginated(ctx context.Context, filter shared.Filter, status *partner.VendorStatus) (*shared.Paginated[partner.Vendor], error) {
	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&partner.Vendor{})
		if status != nil {
			q = q.Where("status = ?", *status)
		}
		return q
	}

	var total int64
	if err := r.applyFilterWithoutPagination(scope(), filter).Count(&total).Error; err != nil {
		return nil, err
	}

	var vendors []partner.Vendor
	if err := r.applyFilter(scope(), filter).Find(&vendors).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(vendors, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CountByStatus counts vendors in the given approval status
func (r *GormVendorRepository) CountByStatus(ctx context.Context, status partner.VendorStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Vendor{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// Delete deletes a vendor
func (r *GormVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Vendor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormVendorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

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

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormVendorRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(business_name) LIKE ?", searchPattern)
	}
	return query
}

// Ensure GormVendorRepository implements VendorRepository
var _ partner.VendorRepository = (*GormVendorRepository)(nil)
