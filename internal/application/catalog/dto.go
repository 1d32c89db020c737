package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/shared"
)

// ProductInfo is the service-level view of a product.
type ProductInfo struct {
	ID              uuid.UUID
	VendorID        uuid.UUID
	Name            string
	Slug            string
	Description     string
	Price           int64
	PriceDisplay    string
	CategoryID      *uuid.UUID
	BrandID         *uuid.UUID
	Images          []string
	StockQuantity   int
	Status          string
	IsArchived      bool
	ManualPurchases int
	CreatedAt       time.Time
}

// CreateProductInput contains the input for creating a product. BrandName,
// when set, is resolved to a brand record, creating one on first use.
type CreateProductInput struct {
	UserID        uuid.UUID
	Name          string
	Description   string
	Price         int64
	StockQuantity int
	CategoryID    *uuid.UUID
	BrandName     string
	Images        []string
}

// UpdateProductInput contains the input for editing a product. Nil fields
// are left unchanged.
type UpdateProductInput struct {
	UserID      uuid.UUID
	ProductID   uuid.UUID
	Name        *string
	Description *string
	Price       *int64
	CategoryID  *uuid.UUID
	BrandName   *string
	Images      []string
}

// UpdateStockInput sets a product's stock level.
type UpdateStockInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// VendorProductsInput lists a vendor's own products, archived included.
type VendorProductsInput struct {
	UserID uuid.UUID
	Filter shared.Filter
}

// VendorProductsResult is a page of the vendor's catalog.
type VendorProductsResult struct {
	Products   []ProductInfo
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// CategoryInfo is the service-level view of a category.
type CategoryInfo struct {
	ID       uuid.UUID
	Name     string
	Slug     string
	ParentID *uuid.UUID
	ImageURL string
}

// CreateCategoryInput contains the input for an admin creating a category.
type CreateCategoryInput struct {
	Name     string
	ParentID *uuid.UUID
	ImageURL string
}

// BrandInfo is the service-level view of a brand.
type BrandInfo struct {
	ID   uuid.UUID
	Name string
	Slug string
}

func productInfo(p *catalog.Product) ProductInfo {
	return ProductInfo{
		ID:              p.ID,
		VendorID:        p.VendorID,
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		Price:           p.Price.Int64(),
		PriceDisplay:    p.Price.String(),
		CategoryID:      p.CategoryID,
		BrandID:         p.BrandID,
		Images:          []string(p.Images),
		StockQuantity:   p.StockQuantity,
		Status:          string(p.Status),
		IsArchived:      p.IsArchived,
		ManualPurchases: p.ManualPurchases,
		CreatedAt:       p.CreatedAt,
	}
}

func categoryInfo(c *catalog.Category) CategoryInfo {
	return CategoryInfo{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		ParentID: c.ParentID,
		ImageURL: c.ImageURL,
	}
}

func brandInfo(b *catalog.Brand) BrandInfo {
	return BrandInfo{
		ID:   b.ID,
		Name: b.Name,
		Slug: b.Slug,
	}
}
