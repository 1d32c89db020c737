package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/domain/shared/valueobject"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, vendorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindListed(ctx context.Context, query catalog.ListingQuery) ([]catalog.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVendorRepository is a mock implementation of partner.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindBySlug(ctx context.Context, slug string) (*partner.Vendor, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Vendor], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[partner.Vendor]), args.Error(1)
}

func (m *MockVendorRepository) FindByStatus(ctx context.Context, status partner.VendorStatus, filter shared.Filter) (*shared.Paginated[partner.Vendor], error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[partner.Vendor]), args.Error(1)
}

func (m *MockVendorRepository) CountByStatus(ctx context.Context, status partner.VendorStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBrandRepository is a mock implementation of catalog.BrandRepository
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Brand, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindAll(ctx context.Context) ([]catalog.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAnalyticsRepository is a mock implementation of engagement.AnalyticsRepository
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) Save(ctx context.Context, event *engagement.AnalyticsEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID, since time.Time) (*engagement.EventCounts, error) {
	args := m.Called(ctx, vendorID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.EventCounts), args.Error(1)
}

func (m *MockAnalyticsRepository) CountByProduct(ctx context.Context, productID uuid.UUID, since time.Time) (*engagement.EventCounts, error) {
	args := m.Called(ctx, productID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.EventCounts), args.Error(1)
}

type productServiceFixture struct {
	productRepo   *MockProductRepository
	vendorRepo    *MockVendorRepository
	brandRepo     *MockBrandRepository
	categoryRepo  *MockCategoryRepository
	analyticsRepo *MockAnalyticsRepository
	svc           *ProductService
}

func newProductServiceFixture() *productServiceFixture {
	f := &productServiceFixture{
		productRepo:   new(MockProductRepository),
		vendorRepo:    new(MockVendorRepository),
		brandRepo:     new(MockBrandRepository),
		categoryRepo:  new(MockCategoryRepository),
		analyticsRepo: new(MockAnalyticsRepository),
	}
	f.svc = NewProductService(f.productRepo, f.vendorRepo, f.brandRepo, f.categoryRepo, f.analyticsRepo, nil, zap.NewNop())
	return f
}

func approvedVendor(t *testing.T, userID uuid.UUID) *partner.Vendor {
	t.Helper()
	vendor, err := partner.NewVendor(userID, "Campus Kicks", "+2348012345678")
	require.NoError(t, err)
	require.NoError(t, vendor.Approve(true))
	return vendor
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active product for an approved vendor", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.productRepo.On("ExistsBySlug", ctx, "air-max-95").Return(false, nil)
		f.productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		info, err := f.svc.CreateProduct(ctx, CreateProductInput{
			UserID:        userID,
			Name:          "Air Max 95",
			Price:         45000,
			StockQuantity: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, "air-max-95", info.Slug)
		assert.Equal(t, string(catalog.ProductStatusActive), info.Status)
		assert.Equal(t, vendor.ID, info.VendorID)
		assert.NotEmpty(t, info.PriceDisplay)
	})

	t.Run("starts out of stock when created with zero stock", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.productRepo.On("ExistsBySlug", ctx, mock.Anything).Return(false, nil)
		f.productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		info, err := f.svc.CreateProduct(ctx, CreateProductInput{
			UserID: userID,
			Name:   "Preorder Hoodie",
			Price:  12000,
		})

		require.NoError(t, err)
		assert.Equal(t, string(catalog.ProductStatusOutOfStock), info.Status)
	})

	t.Run("suffixes the slug when the name is taken", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.productRepo.On("ExistsBySlug", ctx, "air-max-95").Return(true, nil)
		f.productRepo.On("ExistsBySlug", ctx, "air-max-95-2").Return(true, nil)
		f.productRepo.On("ExistsBySlug", ctx, "air-max-95-3").Return(false, nil)
		f.productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		info, err := f.svc.CreateProduct(ctx, CreateProductInput{
			UserID:        userID,
			Name:          "Air Max 95",
			Price:         45000,
			StockQuantity: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, "air-max-95-3", info.Slug)
	})

	t.Run("rejects a vendor that is not approved", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor, err := partner.NewVendor(userID, "Campus Kicks", "+2348012345678")
		require.NoError(t, err)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)

		_, err = f.svc.CreateProduct(ctx, CreateProductInput{
			UserID:        userID,
			Name:          "Air Max 95",
			Price:         45000,
			StockQuantity: 1,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrVendorNotApproved)
		f.productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("reuses an existing brand matched by slug", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)

		existing, err := catalog.NewBrand("Nike")
		require.NoError(t, err)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.brandRepo.On("FindBySlug", ctx, "nike").Return(existing, nil)
		f.productRepo.On("ExistsBySlug", ctx, mock.Anything).Return(false, nil)
		f.productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		info, err := f.svc.CreateProduct(ctx, CreateProductInput{
			UserID:        userID,
			Name:          "Air Max 95",
			Price:         45000,
			StockQuantity: 1,
			BrandName:     "NIKE",
		})

		require.NoError(t, err)
		require.NotNil(t, info.BrandID)
		assert.Equal(t, existing.ID, *info.BrandID)
		f.brandRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)
		categoryID := uuid.New()

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.CreateProduct(ctx, CreateProductInput{
			UserID:        userID,
			Name:          "Air Max 95",
			Price:         45000,
			StockQuantity: 1,
			CategoryID:    &categoryID,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CATEGORY_NOT_FOUND", domainErr.Code)
	})
}

func TestProductService_UpdateStock(t *testing.T) {
	ctx := context.Background()

	t.Run("derives out_of_stock when stock hits zero", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 5)
		require.NoError(t, err)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)

		info, err := f.svc.UpdateStock(ctx, UpdateStockInput{UserID: userID, ProductID: product.ID, Quantity: 0})

		require.NoError(t, err)
		assert.Equal(t, string(catalog.ProductStatusOutOfStock), info.Status)
		assert.Equal(t, 0, info.StockQuantity)
	})

	t.Run("restocking reactivates the product", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 0)
		require.NoError(t, err)
		require.Equal(t, catalog.ProductStatusOutOfStock, product.Status)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)

		info, err := f.svc.UpdateStock(ctx, UpdateStockInput{UserID: userID, ProductID: product.ID, Quantity: 4})

		require.NoError(t, err)
		assert.Equal(t, string(catalog.ProductStatusActive), info.Status)
	})

	t.Run("a deactivated product stays inactive across stock changes", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 5)
		require.NoError(t, err)
		product.Deactivate()

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)

		info, err := f.svc.UpdateStock(ctx, UpdateStockInput{UserID: userID, ProductID: product.ID, Quantity: 9})

		require.NoError(t, err)
		assert.Equal(t, string(catalog.ProductStatusInactive), info.Status)
	})
}

func TestProductService_MarkAsSold(t *testing.T) {
	ctx := context.Background()

	t.Run("increments the counter and records an event", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 5)
		require.NoError(t, err)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)
		f.analyticsRepo.On("Save", ctx, mock.AnythingOfType("*engagement.AnalyticsEvent")).Return(nil)

		info, err := f.svc.MarkAsSold(ctx, userID, product.ID)

		require.NoError(t, err)
		assert.Equal(t, 1, info.ManualPurchases)
		f.analyticsRepo.AssertExpectations(t)
	})

	t.Run("keeps the sale when the event write fails", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 5)
		require.NoError(t, err)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)
		f.analyticsRepo.On("Save", ctx, mock.Anything).Return(errors.New("events table unavailable"))

		info, err := f.svc.MarkAsSold(ctx, userID, product.ID)

		require.NoError(t, err)
		assert.Equal(t, 1, info.ManualPurchases)
	})
}

func TestProductService_Ownership(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses mutations on another vendor's product", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)
		other, err := catalog.NewProduct(uuid.New(), "Not Yours", valueobject.Naira(10000), 1)
		require.NoError(t, err)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.productRepo.On("FindByID", ctx, other.ID).Return(other, nil)

		_, archiveErr := f.svc.Archive(ctx, userID, other.ID)
		deleteErr := f.svc.DeleteProduct(ctx, userID, other.ID)

		assert.ErrorIs(t, archiveErr, shared.ErrForbidden)
		assert.ErrorIs(t, deleteErr, shared.ErrForbidden)
		f.productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("archive then unarchive restores visibility", func(t *testing.T) {
		f := newProductServiceFixture()
		userID := uuid.New()
		vendor := approvedVendor(t, userID)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 5)
		require.NoError(t, err)

		f.vendorRepo.On("FindByUserID", ctx, userID).Return(vendor, nil)
		f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		f.productRepo.On("Save", ctx, product).Return(nil)

		archived, err := f.svc.Archive(ctx, userID, product.ID)
		require.NoError(t, err)
		assert.True(t, archived.IsArchived)
		assert.False(t, product.IsPubliclyVisible())

		restored, err := f.svc.Unarchive(ctx, userID, product.ID)
		require.NoError(t, err)
		assert.False(t, restored.IsArchived)
		assert.True(t, product.IsPubliclyVisible())
	})
}
