package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySlug finds a product by its public slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ExistsBySlug checks if a product with the given slug exists
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if slug == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByVendor finds a vendor's products, archived included. This backs the
// vendor dashboard, not the storefront.
func (r *GormProductRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&catalog.Product{}).
			Where("vendor_id = ?", vendorID)
	}

	var total int64
	if err := r.applyFilterWithoutPagination(scope(), filter).Count(&total).Error; err != nil {
		return nil, err
	}

	var products []catalog.Product
	if err := r.applyFilter(scope(), filter).Find(&products).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(products, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CountByVendor counts a vendor's products
func (r *GormProductRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("vendor_id = ?", vendorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindListed returns publicly visible products matching the query. All set
// conditions are combined with AND, and results are capped at
// catalog.MaxListingResults.
func (r *GormProductRepository) FindListed(ctx context.Context, query catalog.ListingQuery) ([]catalog.Product, error) {
	q := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("is_archived = ?", false).
		Where("status <> ?", catalog.ProductStatusInactive)

	if query.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query.Search)+"%")
	}
	if query.CategoryID != nil {
		q = q.Where("category_id = ?", *query.CategoryID)
	}
	if query.BrandID != nil {
		q = q.Where("brand_id = ?", *query.BrandID)
	}
	if query.VendorID != nil {
		q = q.Where("vendor_id = ?", *query.VendorID)
	}
	if query.MinPrice != nil {
		q = q.Where("price >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		q = q.Where("price <= ?", *query.MaxPrice)
	}

	switch query.Sort {
	case catalog.SortName:
		q = q.Order("name ASC")
	case catalog.SortPriceLow:
		q = q.Order("price ASC")
	case catalog.SortPriceHigh:
		q = q.Order("price DESC")
	default:
		q = q.Order("created_at DESC")
	}

	limit := query.Limit
	if limit <= 0 || limit > catalog.MaxListingResults {
		limit = catalog.MaxListingResults
	}
	q = q.Limit(limit)

	var products []catalog.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "is_archived":
			query = query.Where("is_archived = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		}
	}

	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
