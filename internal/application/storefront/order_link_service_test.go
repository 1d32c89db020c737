package storefront

import (
	"context"
	"errors"
	"net/url"
	"strings"
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

func newOrderLinkFixture() (*MockProductRepository, *MockVendorRepository, *MockAnalyticsRepository, *OrderLinkService) {
	productRepo := new(MockProductRepository)
	vendorRepo := new(MockVendorRepository)
	analyticsRepo := new(MockAnalyticsRepository)
	svc := NewOrderLinkService(productRepo, vendorRepo, analyticsRepo, "https://runmarket.ng/", zap.NewNop())
	return productRepo, vendorRepo, analyticsRepo, svc
}

func TestOrderLinkService_ComposeOrderLink(t *testing.T) {
	ctx := context.Background()

	t.Run("composes the wa.me hand-off", func(t *testing.T) {
		productRepo, vendorRepo, analyticsRepo, svc := newOrderLinkFixture()

		vendor, err := partner.NewVendor(uuid.New(), "Campus Kicks", "0803 123 4567")
		require.NoError(t, err)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 2)
		require.NoError(t, err)
		product.Description = "Lightly worn, size 42"

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		vendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
		analyticsRepo.On("Save", ctx, mock.AnythingOfType("*engagement.AnalyticsEvent")).Return(nil)

		link, err := svc.ComposeOrderLink(ctx, product.ID, nil)

		require.NoError(t, err)
		assert.Equal(t, "2348031234567", link.WhatsAppNumber)
		assert.True(t, strings.HasPrefix(link.URL, "https://wa.me/2348031234567?text="), link.URL)

		assert.Contains(t, link.Message, "Hi! I'm interested in ordering *Air Max 95*")
		assert.Contains(t, link.Message, "Price: ₦45,000")
		assert.Contains(t, link.Message, "Product Link: https://runmarket.ng/product/air-max-95")
		assert.Contains(t, link.Message, "Description: Lightly worn, size 42")
		assert.Contains(t, link.Message, "availability and delivery options")

		// The URL carries the exact message, escaped once.
		encoded := strings.TrimPrefix(link.URL, "https://wa.me/2348031234567?text=")
		decoded, err := url.QueryUnescape(encoded)
		require.NoError(t, err)
		assert.Equal(t, link.Message, decoded)

		analyticsRepo.AssertExpectations(t)
	})

	t.Run("omits the description block when there is none", func(t *testing.T) {
		productRepo, vendorRepo, analyticsRepo, svc := newOrderLinkFixture()

		vendor, err := partner.NewVendor(uuid.New(), "Campus Kicks", "+2348031234567")
		require.NoError(t, err)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 2)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		vendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
		analyticsRepo.On("Save", ctx, mock.Anything).Return(nil)

		link, err := svc.ComposeOrderLink(ctx, product.ID, nil)

		require.NoError(t, err)
		assert.NotContains(t, link.Message, "Description:")
	})

	t.Run("a failed click event never blocks the link", func(t *testing.T) {
		productRepo, vendorRepo, analyticsRepo, svc := newOrderLinkFixture()

		vendor, err := partner.NewVendor(uuid.New(), "Campus Kicks", "+2348031234567")
		require.NoError(t, err)
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 2)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		vendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
		analyticsRepo.On("Save", ctx, mock.Anything).Return(errors.New("events table unavailable"))

		link, err := svc.ComposeOrderLink(ctx, product.ID, nil)

		require.NoError(t, err)
		assert.NotEmpty(t, link.URL)
	})

	t.Run("hidden products get no order link", func(t *testing.T) {
		productRepo, _, _, svc := newOrderLinkFixture()

		product, err := catalog.NewProduct(uuid.New(), "Air Max 95", valueobject.Naira(45000), 2)
		require.NoError(t, err)
		product.Archive()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err = svc.ComposeOrderLink(ctx, product.ID, nil)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("a vendor without a usable number is an error", func(t *testing.T) {
		productRepo, vendorRepo, _, svc := newOrderLinkFixture()

		vendor, err := partner.NewVendor(uuid.New(), "Campus Kicks", "+2348031234567")
		require.NoError(t, err)
		vendor.WhatsAppNumber = "no digits here"
		product, err := catalog.NewProduct(vendor.ID, "Air Max 95", valueobject.Naira(45000), 2)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		vendorRepo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)

		_, err = svc.ComposeOrderLink(ctx, product.ID, nil)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_WHATSAPP", domainErr.Code)
	})
}
