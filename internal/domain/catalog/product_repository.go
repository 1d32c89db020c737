package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/shared"
)

// ListingSort names the supported orderings for public product listings.
type ListingSort string

const (
	SortNewest    ListingSort = "newest"
	SortName      ListingSort = "name"
	SortPriceLow  ListingSort = "price_low"
	SortPriceHigh ListingSort = "price_high"
)

// MaxListingResults caps how many products a single listing query returns.
const MaxListingResults = 50

// ListingQuery describes a public catalog search. All set conditions are
// combined with AND; zero values mean "no constraint".
type ListingQuery struct {
	Search     string
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
	VendorID   *uuid.UUID
	MinPrice   *int64
	MaxPrice   *int64
	Sort       ListingSort
	Limit      int
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (*shared.Paginated[Product], error)
	CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
	// FindListed returns publicly visible products matching the query.
	// Archived and inactive products never appear here.
	FindListed(ctx context.Context, query ListingQuery) ([]Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
