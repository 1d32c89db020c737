package handler

import (
	"time"

	appcatalog "github.com/runmarket/backend/internal/application/catalog"
	"github.com/runmarket/backend/internal/application/storefront"
)

// ListProductsRequest is the public catalog search query.
type ListProductsRequest struct {
	Search   string `form:"search" binding:"omitempty,max=200"`
	Category string `form:"category" binding:"omitempty,max=100"`
	Brand    string `form:"brand" binding:"omitempty,max=100"`
	Vendor   string `form:"vendor" binding:"omitempty,max=200"`
	MinPrice *int64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice *int64 `form:"max_price" binding:"omitempty,min=0"`
	Sort     string `form:"sort" binding:"omitempty,oneof=newest name price_low price_high"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// ListedProductResponse is the public product view.
type ListedProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	PriceDisplay string    `json:"price_display"`
	Images       []string  `json:"images"`
	Status       string    `json:"status"`
	VendorID     string    `json:"vendor_id"`
	VendorName   string    `json:"vendor_name,omitempty"`
	VendorSlug   string    `json:"vendor_slug,omitempty"`
	CategoryID   string    `json:"category_id,omitempty"`
	BrandID      string    `json:"brand_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecordEventRequest reports a product interaction.
type RecordEventRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Type      string `json:"type" binding:"required,oneof=view order_click"`
}

// ToggleWishlistRequest toggles one product on the wishlist.
type ToggleWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// MergeWishlistRequest merges an anonymous wishlist at login.
type MergeWishlistRequest struct {
	ProductIDs []string `json:"product_ids" binding:"required,max=200,dive,uuid"`
}

// RecordPurchaseRequest records a self-reported purchase.
type RecordPurchaseRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=1000"`
}

// OrderLinkResponse is the composed WhatsApp hand-off.
type OrderLinkResponse struct {
	URL            string `json:"url"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Message        string `json:"message"`
}

// CategoryResponse is the public category view.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID string `json:"parent_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// BrandResponse is the public brand view.
type BrandResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func listedProductResponse(p storefront.ListedProduct) ListedProductResponse {
	resp := ListedProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		PriceDisplay: p.PriceDisplay,
		Images:       p.Images,
		Status:       p.Status,
		VendorID:     p.VendorID.String(),
		VendorName:   p.VendorName,
		VendorSlug:   p.VendorSlug,
		CreatedAt:    p.CreatedAt,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if p.CategoryID != nil {
		resp.CategoryID = p.CategoryID.String()
	}
	if p.BrandID != nil {
		resp.BrandID = p.BrandID.String()
	}
	return resp
}

func listedProductResponses(products []storefront.ListedProduct) []ListedProductResponse {
	out := make([]ListedProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, listedProductResponse(p))
	}
	return out
}

func categoryResponse(c appcatalog.CategoryInfo) CategoryResponse {
	resp := CategoryResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Slug:     c.Slug,
		ImageURL: c.ImageURL,
	}
	if c.ParentID != nil {
		resp.ParentID = c.ParentID.String()
	}
	return resp
}

func brandResponse(b appcatalog.BrandInfo) BrandResponse {
	return BrandResponse{ID: b.ID.String(), Name: b.Name, Slug: b.Slug}
}
