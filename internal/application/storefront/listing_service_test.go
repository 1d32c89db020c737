package storefront

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/domain/shared/valueobject"
)

type listingFixture struct {
	productRepo   *MockProductRepository
	vendorRepo    *MockVendorRepository
	categoryRepo  *MockCategoryRepository
	brandRepo     *MockBrandRepository
	analyticsRepo *MockAnalyticsRepository
	svc           *ListingService
}

func newListingFixture() *listingFixture {
	f := &listingFixture{
		productRepo:   new(MockProductRepository),
		vendorRepo:    new(MockVendorRepository),
		categoryRepo:  new(MockCategoryRepository),
		brandRepo:     new(MockBrandRepository),
		analyticsRepo: new(MockAnalyticsRepository),
	}
	f.svc = NewListingService(f.productRepo, f.vendorRepo, f.categoryRepo, f.brandRepo, f.analyticsRepo, zap.NewNop())
	return f
}

func TestListingService_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves slugs and attaches vendor names", func(t *testing.T) {
		f := newListingFixture()

		vendor, err := partner.NewVendor(uuid.New(), "Campus Kicks", "+2348031234567")
		require.NoError(t, err)
		category, err := catalog.NewCategory("Sneakers", nil)
		require.NoError(t, err)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 2)
		require.NoError(t, err)

		f.categoryRepo.On("FindBySlug", ctx, "sneakers").Return(category, nil)
		f.productRepo.On("FindListed", ctx, mock.MatchedBy(func(q catalog.ListingQuery) bool {
			return q.CategoryID != nil && *q.CategoryID == category.ID && q.Sort == catalog.SortNewest
		})).Return([]catalog.Product{*product}, nil)
		f.vendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)

		listed, err := f.svc.ListProducts(ctx, ListProductsInput{CategorySlug: "sneakers"})

		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "Campus Kicks", listed[0].VendorName)
		assert.Equal(t, vendor.Slug, listed[0].VendorSlug)
	})

	t.Run("an unknown category slug yields an empty list, not an error", func(t *testing.T) {
		f := newListingFixture()

		f.categoryRepo.On("FindBySlug", ctx, "nope").Return(nil, shared.ErrNotFound)

		listed, err := f.svc.ListProducts(ctx, ListProductsInput{CategorySlug: "nope"})

		require.NoError(t, err)
		assert.Empty(t, listed)
		f.productRepo.AssertNotCalled(t, "FindListed", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown sort order", func(t *testing.T) {
		f := newListingFixture()

		_, err := f.svc.ListProducts(ctx, ListProductsInput{Sort: "cheapest_first"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SORT", domainErr.Code)
	})

	t.Run("passes price bounds through to the query", func(t *testing.T) {
		f := newListingFixture()

		min := int64(10000)
		max := int64(50000)
		f.productRepo.On("FindListed", ctx, mock.MatchedBy(func(q catalog.ListingQuery) bool {
			return q.MinPrice != nil && *q.MinPrice == min && q.MaxPrice != nil && *q.MaxPrice == max
		})).Return([]catalog.Product{}, nil)

		listed, err := f.svc.ListProducts(ctx, ListProductsInput{MinPrice: &min, MaxPrice: &max, Sort: "price_low"})

		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

func TestListingService_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the product and records a view", func(t *testing.T) {
		f := newListingFixture()

		vendor, err := partner.NewVendor(uuid.New(), "Campus Kicks", "+2348031234567")
		require.NoError(t, err)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 2)
		require.NoError(t, err)

		f.productRepo.On("FindBySlug", ctx, "air-max-95").Return(product, nil)
		f.analyticsRepo.On("Save", ctx, mock.AnythingOfType("*engagement.AnalyticsEvent")).Return(nil)
		f.vendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)

		listed, err := f.svc.GetProduct(ctx, "air-max-95", nil)

		require.NoError(t, err)
		assert.Equal(t, "Air Max 95", listed.Name)
		assert.Equal(t, "Campus Kicks", listed.VendorName)
		f.analyticsRepo.AssertExpectations(t)
	})

	t.Run("archived and deactivated products read as not found", func(t *testing.T) {
		f := newListingFixture()

		archived, err := catalog.NewProduct(uuid.New(), "Old Lamp", valueobject.Naira(3000), 1)
		require.NoError(t, err)
		archived.Archive()
		inactive, err := catalog.NewProduct(uuid.New(), "Paused Hoodie", valueobject.Naira(9000), 4)
		require.NoError(t, err)
		inactive.Deactivate()

		f.productRepo.On("FindBySlug", ctx, archived.Slug).Return(archived, nil)
		f.productRepo.On("FindBySlug", ctx, inactive.Slug).Return(inactive, nil)

		_, archivedErr := f.svc.GetProduct(ctx, archived.Slug, nil)
		_, inactiveErr := f.svc.GetProduct(ctx, inactive.Slug, nil)

		assert.ErrorIs(t, archivedErr, shared.ErrNotFound)
		assert.ErrorIs(t, inactiveErr, shared.ErrNotFound)
		f.analyticsRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("an out of stock product is still viewable", func(t *testing.T) {
		f := newListingFixture()

		product, err := catalog.NewProduct(uuid.New(), "Sold Out Cap", valueobject.Naira(5000), 0)
		require.NoError(t, err)

		f.productRepo.On("FindBySlug", ctx, product.Slug).Return(product, nil)
		f.analyticsRepo.On("Save", ctx, mock.Anything).Return(nil)
		f.vendorRepo.On("FindByID", ctx, product.VendorID).Return(nil, shared.ErrNotFound)

		listed, err := f.svc.GetProduct(ctx, product.Slug, nil)

		require.NoError(t, err)
		assert.Equal(t, string(catalog.ProductStatusOutOfStock), listed.Status)
	})
}
