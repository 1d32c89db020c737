package storefront

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ListingService serves the public catalog. Archived and deactivated
// products never leave this layer; a direct slug fetch of one returns not
// found, same as a listing miss.
type ListingService struct {
	productRepo   catalog.ProductRepository
	vendorRepo    partner.VendorRepository
	categoryRepo  catalog.CategoryRepository
	brandRepo     catalog.BrandRepository
	analyticsRepo engagement.AnalyticsRepository
	logger        *zap.Logger
}

// NewListingService creates a new listing service
func NewListingService(
	productRepo catalog.ProductRepository,
	vendorRepo partner.VendorRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	analyticsRepo engagement.AnalyticsRepository,
	logger *zap.Logger,
) *ListingService {
	return &ListingService{
		productRepo:   productRepo,
		vendorRepo:    vendorRepo,
		categoryRepo:  categoryRepo,
		brandRepo:     brandRepo,
		analyticsRepo: analyticsRepo,
		logger:        logger,
	}
}

// ListProducts runs a storefront search. Results are capped; past the cap
// the list is silently truncated, there is no cursor.
func (s *ListingService) ListProducts(ctx context.Context, input ListProductsInput) ([]ListedProduct, error) {
	query := catalog.ListingQuery{
		Search:   input.Search,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		Limit:    input.Limit,
	}

	switch input.Sort {
	case "", string(catalog.SortNewest):
		query.Sort = catalog.SortNewest
	case string(catalog.SortName), string(catalog.SortPriceLow), string(catalog.SortPriceHigh):
		query.Sort = catalog.ListingSort(input.Sort)
	default:
		return nil, shared.NewDomainError("INVALID_SORT", "Unknown sort order")
	}

	if input.CategorySlug != "" {
		category, err := s.categoryRepo.FindBySlug(ctx, input.CategorySlug)
		if err != nil {
			return []ListedProduct{}, nil
		}
		query.CategoryID = &category.ID
	}
	if input.BrandSlug != "" {
		brand, err := s.brandRepo.FindBySlug(ctx, input.BrandSlug)
		if err != nil {
			return []ListedProduct{}, nil
		}
		query.BrandID = &brand.ID
	}
	if input.VendorSlug != "" {
		vendor, err := s.vendorRepo.FindBySlug(ctx, input.VendorSlug)
		if err != nil {
			return []ListedProduct{}, nil
		}
		query.VendorID = &vendor.ID
	}

	products, err := s.productRepo.FindListed(ctx, query)
	if err != nil {
		return nil, err
	}

	return s.attachVendors(ctx, products), nil
}

// GetProduct returns one publicly visible product by slug and records a
// view event. The event write is best effort.
func (s *ListingService) GetProduct(ctx context.Context, slug string, viewerID *uuid.UUID) (*ListedProduct, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !product.IsPubliclyVisible() {
		return nil, shared.ErrNotFound
	}

	if event, err := engagement.NewAnalyticsEvent(product.ID, product.VendorID, viewerID, engagement.EventProductView); err == nil {
		if err := s.analyticsRepo.Save(ctx, event); err != nil {
			s.logger.Warn("Failed to record view event",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
		}
	}

	listed := listedProduct(product)
	if vendor, err := s.vendorRepo.FindByID(ctx, product.VendorID); err == nil {
		listed.VendorName = vendor.BusinessName
		listed.VendorSlug = vendor.Slug
	}
	return &listed, nil
}

func (s *ListingService) attachVendors(ctx context.Context, products []catalog.Product) []ListedProduct {
	type vendorNames struct {
		name string
		slug string
	}
	cache := make(map[uuid.UUID]vendorNames)

	listed := make([]ListedProduct, 0, len(products))
	for i := range products {
		item := listedProduct(&products[i])
		names, ok := cache[item.VendorID]
		if !ok {
			if vendor, err := s.vendorRepo.FindByID(ctx, item.VendorID); err == nil {
				names = vendorNames{name: vendor.BusinessName, slug: vendor.Slug}
			}
			cache[item.VendorID] = names
		}
		item.VendorName = names.name
		item.VendorSlug = names.slug
		listed = append(listed, item)
	}
	return listed
}
