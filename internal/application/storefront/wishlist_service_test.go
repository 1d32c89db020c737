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
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/domain/shared/valueobject"
)

func newTestProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), name, valueobject.Naira(15000), 3)
	require.NoError(t, err)
	return product
}

func TestWishlistService_Toggle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("adds a product that is not saved yet", func(t *testing.T) {
		wishlistRepo := new(MockWishlistRepository)
		productRepo := new(MockProductRepository)
		svc := NewWishlistService(wishlistRepo, productRepo, zap.NewNop())

		product := newTestProduct(t, "Campus Tote")
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		wishlistRepo.On("Exists", ctx, userID, product.ID).Return(false, nil)
		wishlistRepo.On("Save", ctx, mock.AnythingOfType("*engagement.WishlistEntry")).Return(nil)

		result, err := svc.Toggle(ctx, userID, product.ID)

		require.NoError(t, err)
		assert.True(t, result.Saved)
		assert.Equal(t, product.ID, result.ProductID)
	})

	t.Run("removes a product that is already saved", func(t *testing.T) {
		wishlistRepo := new(MockWishlistRepository)
		productRepo := new(MockProductRepository)
		svc := NewWishlistService(wishlistRepo, productRepo, zap.NewNop())

		product := newTestProduct(t, "Campus Tote")
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		wishlistRepo.On("Exists", ctx, userID, product.ID).Return(true, nil)
		wishlistRepo.On("DeleteByUserAndProduct", ctx, userID, product.ID).Return(nil)

		result, err := svc.Toggle(ctx, userID, product.ID)

		require.NoError(t, err)
		assert.False(t, result.Saved)
		wishlistRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown product", func(t *testing.T) {
		wishlistRepo := new(MockWishlistRepository)
		productRepo := new(MockProductRepository)
		svc := NewWishlistService(wishlistRepo, productRepo, zap.NewNop())

		productID := uuid.New()
		productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err := svc.Toggle(ctx, userID, productID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		wishlistRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWishlistService_Merge(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("adds new products, skipping duplicates and unknowns", func(t *testing.T) {
		wishlistRepo := new(MockWishlistRepository)
		productRepo := new(MockProductRepository)
		svc := NewWishlistService(wishlistRepo, productRepo, zap.NewNop())

		fresh := newTestProduct(t, "Campus Tote")
		saved := newTestProduct(t, "Dorm Kettle")
		gone := uuid.New()

		productRepo.On("FindByID", ctx, fresh.ID).Return(fresh, nil)
		productRepo.On("FindByID", ctx, saved.ID).Return(saved, nil)
		productRepo.On("FindByID", ctx, gone).Return(nil, shared.ErrNotFound)
		wishlistRepo.On("Exists", ctx, userID, fresh.ID).Return(false, nil)
		wishlistRepo.On("Exists", ctx, userID, saved.ID).Return(true, nil)
		wishlistRepo.On("Save", ctx, mock.AnythingOfType("*engagement.WishlistEntry")).Return(nil).Once()
		wishlistRepo.On("FindByUser", ctx, userID).Return([]engagement.WishlistEntry{
			*engagement.NewWishlistEntry(userID, fresh.ID),
			*engagement.NewWishlistEntry(userID, saved.ID),
		}, nil)

		// fresh.ID appears twice; the repeat is a duplicate within the payload.
		result, err := svc.Merge(ctx, MergeWishlistInput{
			UserID:     userID,
			ProductIDs: []uuid.UUID{fresh.ID, saved.ID, gone, fresh.ID},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Added)
		assert.Equal(t, 3, result.Skipped)
		assert.Equal(t, 2, result.Total)
		wishlistRepo.AssertExpectations(t)
	})

	t.Run("merging an empty payload reports the current total", func(t *testing.T) {
		wishlistRepo := new(MockWishlistRepository)
		productRepo := new(MockProductRepository)
		svc := NewWishlistService(wishlistRepo, productRepo, zap.NewNop())

		wishlistRepo.On("FindByUser", ctx, userID).Return([]engagement.WishlistEntry{}, nil)

		result, err := svc.Merge(ctx, MergeWishlistInput{UserID: userID})

		require.NoError(t, err)
		assert.Zero(t, result.Added)
		assert.Zero(t, result.Skipped)
		assert.Zero(t, result.Total)
	})
}

func TestWishlistService_GetWishlist(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns hidden products as placeholders", func(t *testing.T) {
		wishlistRepo := new(MockWishlistRepository)
		productRepo := new(MockProductRepository)
		svc := NewWishlistService(wishlistRepo, productRepo, zap.NewNop())

		visible := newTestProduct(t, "Campus Tote")
		archived := newTestProduct(t, "Old Lamp")
		archived.Archive()

		entries := []engagement.WishlistEntry{
			*engagement.NewWishlistEntry(userID, visible.ID),
			*engagement.NewWishlistEntry(userID, archived.ID),
		}
		wishlistRepo.On("FindByUser", ctx, userID).Return(entries, nil)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{visible.ID, archived.ID}).
			Return([]catalog.Product{*visible, *archived}, nil)

		items, err := svc.GetWishlist(ctx, userID)

		require.NoError(t, err)
		require.Len(t, items, 2)
		require.NotNil(t, items[0].Product)
		assert.Equal(t, "Campus Tote", items[0].Product.Name)
		assert.Nil(t, items[1].Product)
	})

	t.Run("an empty wishlist is an empty slice, not nil", func(t *testing.T) {
		wishlistRepo := new(MockWishlistRepository)
		productRepo := new(MockProductRepository)
		svc := NewWishlistService(wishlistRepo, productRepo, zap.NewNop())

		wishlistRepo.On("FindByUser", ctx, userID).Return([]engagement.WishlistEntry{}, nil)

		items, err := svc.GetWishlist(ctx, userID)

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		productRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})
}
