package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func newTestProduct(t *testing.T, stock int) *Product {
	t.Helper()
	p, err := NewProduct(uuid.New(), "Infinix Hot 40", valueobject.Naira(185000), stock)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with stock", func(t *testing.T) {
		p := newTestProduct(t, 3)

		assert.Equal(t, "Infinix Hot 40", p.Name)
		assert.Equal(t, "infinix-hot-40", p.Slug)
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.False(t, p.IsArchived)
		assert.Zero(t, p.ManualPurchases)
	})

	t.Run("zero stock starts out of stock", func(t *testing.T) {
		p := newTestProduct(t, 0)
		assert.Equal(t, ProductStatusOutOfStock, p.Status)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Infinix Hot 40", valueobject.Naira(-1), 1)
		assertDomainCode(t, err, "INVALID_PRICE")
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Infinix Hot 40", valueobject.Naira(1000), -1)
		assertDomainCode(t, err, "INVALID_STOCK")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "  ", valueobject.Naira(1000), 1)
		assertDomainCode(t, err, "INVALID_NAME")
	})
}

func TestProductStockAndStatus(t *testing.T) {
	t.Run("stock going to zero marks out of stock", func(t *testing.T) {
		p := newTestProduct(t, 5)

		require.NoError(t, p.UpdateStock(0))
		assert.Equal(t, 0, p.StockQuantity)
		assert.Equal(t, ProductStatusOutOfStock, p.Status)
	})

	t.Run("restock reactivates", func(t *testing.T) {
		p := newTestProduct(t, 0)

		require.NoError(t, p.UpdateStock(7))
		assert.Equal(t, ProductStatusActive, p.Status)
	})

	t.Run("stock update does not override inactive", func(t *testing.T) {
		p := newTestProduct(t, 5)
		p.Deactivate()

		require.NoError(t, p.UpdateStock(10))
		assert.Equal(t, ProductStatusInactive, p.Status)
		assert.Equal(t, 10, p.StockQuantity)
	})

	t.Run("activate derives status from stock", func(t *testing.T) {
		p := newTestProduct(t, 5)
		p.Deactivate()
		require.NoError(t, p.UpdateStock(0))

		p.Activate()
		assert.Equal(t, ProductStatusOutOfStock, p.Status)

		require.NoError(t, p.UpdateStock(2))
		assert.Equal(t, ProductStatusActive, p.Status)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		p := newTestProduct(t, 5)
		err := p.UpdateStock(-3)
		assertDomainCode(t, err, "INVALID_STOCK")
		assert.Equal(t, 5, p.StockQuantity)
	})
}

func TestProductVisibility(t *testing.T) {
	t.Run("out of stock remains publicly visible", func(t *testing.T) {
		p := newTestProduct(t, 0)
		assert.True(t, p.IsPubliclyVisible())
	})

	t.Run("inactive is hidden", func(t *testing.T) {
		p := newTestProduct(t, 5)
		p.Deactivate()
		assert.False(t, p.IsPubliclyVisible())
	})

	t.Run("archived is hidden and restorable", func(t *testing.T) {
		p := newTestProduct(t, 5)
		p.Archive()
		assert.False(t, p.IsPubliclyVisible())
		assert.Equal(t, ProductStatusActive, p.Status)

		p.Unarchive()
		assert.True(t, p.IsPubliclyVisible())
	})
}

func TestProductDetails(t *testing.T) {
	t.Run("update keeps slug stable", func(t *testing.T) {
		p := newTestProduct(t, 5)

		require.NoError(t, p.UpdateDetails("Infinix Hot 40 Pro", "256GB", valueobject.Naira(210000)))
		assert.Equal(t, "Infinix Hot 40 Pro", p.Name)
		assert.Equal(t, "infinix-hot-40", p.Slug)
		assert.Equal(t, valueobject.Naira(210000), p.Price)
	})

	t.Run("manual purchases accumulate", func(t *testing.T) {
		p := newTestProduct(t, 5)
		p.RecordManualPurchase()
		p.RecordManualPurchase()
		assert.Equal(t, 2, p.ManualPurchases)
	})

	t.Run("image list is bounded", func(t *testing.T) {
		p := newTestProduct(t, 5)

		urls := make([]string, 11)
		for i := range urls {
			urls[i] = "https://cdn.example.com/p.jpg"
		}
		err := p.SetImages(urls)
		assertDomainCode(t, err, "TOO_MANY_IMAGES")

		require.NoError(t, p.SetImages(urls[:3]))
		assert.Len(t, p.Images, 3)
	})
}

func TestCategoryAndBrand(t *testing.T) {
	t.Run("category with parent", func(t *testing.T) {
		parent, err := NewCategory("Electronics", nil)
		require.NoError(t, err)
		assert.Equal(t, "electronics", parent.Slug)

		child, err := NewCategory("Phones & Tablets", &parent.ID)
		require.NoError(t, err)
		assert.Equal(t, "phones-tablets", child.Slug)
		assert.Equal(t, parent.ID, *child.ParentID)
	})

	t.Run("brand slug deduplicates casing", func(t *testing.T) {
		a, err := NewBrand("NIKE")
		require.NoError(t, err)
		b, err := NewBrand("nike")
		require.NoError(t, err)
		assert.Equal(t, a.Slug, b.Slug)
	})

	t.Run("empty names rejected", func(t *testing.T) {
		_, err := NewCategory(" ", nil)
		assertDomainCode(t, err, "INVALID_NAME")
		_, err = NewBrand("")
		assertDomainCode(t, err, "INVALID_NAME")
	})
}
