package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/domain/shared/valueobject"
)

// ProductStatus tracks the availability of a listing. It is derived from
// stock on every stock update; archiving is tracked separately so a vendor
// can hide a product without losing it.
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
	ProductStatusInactive   ProductStatus = "inactive"
)

// Product is the aggregate root for a vendor's listing.
type Product struct {
	shared.BaseAggregateRoot
	VendorID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	Name            string             `gorm:"type:varchar(200);not null"`
	Slug            string             `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description     string             `gorm:"type:text"`
	Price           valueobject.Naira  `gorm:"not null"`
	CategoryID      *uuid.UUID         `gorm:"type:uuid;index"`
	BrandID         *uuid.UUID         `gorm:"type:uuid;index"`
	Images          pq.StringArray     `gorm:"type:text[]"`
	StockQuantity   int                `gorm:"not null;default:0"`
	Status          ProductStatus      `gorm:"type:varchar(20);not null;default:'active'"`
	IsArchived      bool               `gorm:"not null;default:false"`
	ManualPurchases int                `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product for a vendor. Stock determines the initial
// status: a product created with zero stock starts out_of_stock.
func NewProduct(vendorID uuid.UUID, name string, price valueobject.Naira, stockQuantity int) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stockQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	name = strings.TrimSpace(name)
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		Name:              name,
		Slug:              valueobject.Slugify(name),
		Price:             price,
		StockQuantity:     stockQuantity,
		Status:            ProductStatusActive,
	}
	if stockQuantity == 0 {
		p.Status = ProductStatusOutOfStock
	}
	return p, nil
}

// UpdateDetails updates the name, description and price. The slug is not
// regenerated; links to the product keep working after a rename.
func (p *Product) UpdateDetails(name, description string, price valueobject.Naira) error {
	if err := validateName(name); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// UpdateStock sets the stock quantity and derives the availability status
// from it. This is the only write path for active/out_of_stock, so the two
// fields can never disagree.
func (p *Product) UpdateStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	p.StockQuantity = quantity
	if p.Status != ProductStatusInactive {
		if quantity > 0 {
			p.Status = ProductStatusActive
		} else {
			p.Status = ProductStatusOutOfStock
		}
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate hides the product from the storefront without archiving it.
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate re-derives availability from stock after a deactivation.
func (p *Product) Activate() {
	if p.StockQuantity > 0 {
		p.Status = ProductStatusActive
	} else {
		p.Status = ProductStatusOutOfStock
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Archive removes the product from all public surfaces. Archived products
// remain queryable by their vendor.
func (p *Product) Archive() {
	p.IsArchived = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Unarchive restores an archived product.
func (p *Product) Unarchive() {
	p.IsArchived = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// RecordManualPurchase increments the off-platform sale counter. Sales are
// concluded on WhatsApp, so this is the vendor telling us a deal closed.
func (p *Product) RecordManualPurchase() {
	p.ManualPurchases++
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetCategory assigns or clears the category.
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetBrand assigns or clears the brand.
func (p *Product) SetBrand(brandID *uuid.UUID) {
	p.BrandID = brandID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetImages replaces the image URL list.
func (p *Product) SetImages(urls []string) error {
	if len(urls) > 10 {
		return shared.NewDomainError("TOO_MANY_IMAGES", "A product can have at most 10 images")
	}
	p.Images = pq.StringArray(urls)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsPubliclyVisible reports whether the product appears in storefront
// listings and search.
func (p *Product) IsPubliclyVisible() bool {
	return !p.IsArchived && p.Status != ProductStatusInactive
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
