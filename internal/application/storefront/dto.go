package storefront

import (
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/catalog"
)

// ListedProduct is the public storefront view of a product, with the vendor
// and taxonomy names resolved for display.
type ListedProduct struct {
	ID           uuid.UUID
	Name         string
	Slug         string
	Description  string
	Price        int64
	PriceDisplay string
	Images       []string
	Status       string
	VendorID     uuid.UUID
	VendorName   string
	VendorSlug   string
	CategoryID   *uuid.UUID
	BrandID      *uuid.UUID
	CreatedAt    time.Time
}

// ListProductsInput is a public catalog search. All set conditions are
// combined with AND.
type ListProductsInput struct {
	Search       string
	CategorySlug string
	BrandSlug    string
	VendorSlug   string
	MinPrice     *int64
	MaxPrice     *int64
	Sort         string
	Limit        int
}

// WishlistItem is one saved product with its current listing state.
type WishlistItem struct {
	ProductID uuid.UUID
	AddedAt   time.Time
	Product   *ListedProduct
}

// ToggleResult reports the wishlist state after a toggle.
type ToggleResult struct {
	ProductID uuid.UUID
	Saved     bool
}

// MergeWishlistInput carries the anonymous client-side wishlist to merge
// into the server's canonical one at login.
type MergeWishlistInput struct {
	UserID     uuid.UUID
	ProductIDs []uuid.UUID
}

// MergeWishlistResult reports how the merge went.
type MergeWishlistResult struct {
	Added   int
	Skipped int
	Total   int
}

// RecordPurchaseInput is the customer's self-reported record that a
// WhatsApp deal was concluded.
type RecordPurchaseInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// PurchaseInfo is one entry of a customer's purchase history.
type PurchaseInfo struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	VendorID        uuid.UUID
	PriceAtPurchase int64
	PriceDisplay    string
	Quantity        int
	Total           int64
	RecordedAt      time.Time
}

// OrderLink is the composed WhatsApp hand-off.
type OrderLink struct {
	URL            string
	WhatsAppNumber string
	Message        string
}

func listedProduct(p *catalog.Product) ListedProduct {
	return ListedProduct{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price.Int64(),
		PriceDisplay: p.Price.String(),
		Images:       []string(p.Images),
		Status:       string(p.Status),
		VendorID:     p.VendorID,
		CategoryID:   p.CategoryID,
		BrandID:      p.BrandID,
		CreatedAt:    p.CreatedAt,
	}
}
