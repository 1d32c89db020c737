package handler

import (
	"time"

	appcatalog "github.com/runmarket/backend/internal/application/catalog"
	"github.com/runmarket/backend/internal/application/vendorapp"
)

// CreateProductRequest creates a listing.
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Description   string   `json:"description" binding:"omitempty,max=5000"`
	Price         int64    `json:"price" binding:"required,min=0"`
	StockQuantity int      `json:"stock_quantity" binding:"min=0"`
	CategoryID    string   `json:"category_id" binding:"omitempty,uuid"`
	BrandName     string   `json:"brand_name" binding:"omitempty,max=100"`
	Images        []string `json:"images" binding:"omitempty,max=10,dive,max=500"`
}

// UpdateProductRequest edits a listing. Omitted fields stay unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	Price       *int64   `json:"price" binding:"omitempty,min=0"`
	CategoryID  *string  `json:"category_id" binding:"omitempty,uuid"`
	BrandName   *string  `json:"brand_name" binding:"omitempty,max=100"`
	Images      []string `json:"images" binding:"omitempty,max=10,dive,max=500"`
}

// UpdateStockRequest sets a product's stock level.
type UpdateStockRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// UpdateVendorProfileRequest edits the vendor's storefront profile.
type UpdateVendorProfileRequest struct {
	BusinessName   *string `json:"business_name" binding:"omitempty,max=200"`
	Description    *string `json:"description" binding:"omitempty,max=2000"`
	WhatsAppNumber *string `json:"whatsapp_number" binding:"omitempty,max=50"`
	LogoURL        *string `json:"logo_url" binding:"omitempty,max=500"`
	BannerURL      *string `json:"banner_url" binding:"omitempty,max=500"`
	InstagramURL   *string `json:"instagram_url" binding:"omitempty,max=500"`
	FacebookURL    *string `json:"facebook_url" binding:"omitempty,max=500"`
	TiktokURL      *string `json:"tiktok_url" binding:"omitempty,max=500"`
}

// ImageUploadRequest asks for a presigned upload.
type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	Kind        string `json:"kind" binding:"omitempty,oneof=logo banner"`
}

// ProductResponse is the vendor-facing product view.
type ProductResponse struct {
	ID              string    `json:"id"`
	VendorID        string    `json:"vendor_id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description,omitempty"`
	Price           int64     `json:"price"`
	PriceDisplay    string    `json:"price_display"`
	CategoryID      string    `json:"category_id,omitempty"`
	BrandID         string    `json:"brand_id,omitempty"`
	Images          []string  `json:"images"`
	StockQuantity   int       `json:"stock_quantity"`
	Status          string    `json:"status"`
	IsArchived      bool      `json:"is_archived"`
	ManualPurchases int       `json:"manual_purchases"`
	CreatedAt       time.Time `json:"created_at"`
}

// VendorResponse is a vendor profile view.
type VendorResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	BusinessName   string    `json:"business_name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	WhatsAppNumber string    `json:"whatsapp_number,omitempty"`
	LogoURL        string    `json:"logo_url,omitempty"`
	BannerURL      string    `json:"banner_url,omitempty"`
	Status         string    `json:"status"`
	Email          string    `json:"email,omitempty"`
	EmailVerified  bool      `json:"email_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// DashboardResponse is the vendor dashboard payload.
type DashboardResponse struct {
	Vendor  VendorResponse  `json:"vendor"`
	Metrics MetricsResponse `json:"metrics"`
}

// MetricsResponse is the vendor metrics block.
type MetricsResponse struct {
	ProductCount    int64 `json:"product_count"`
	Views           int64 `json:"views"`
	OrderClicks     int64 `json:"order_clicks"`
	ManualPurchases int64 `json:"manual_purchases"`
	PurchaseReports int64 `json:"purchase_reports"`
}

func productResponse(p appcatalog.ProductInfo) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID.String(),
		VendorID:        p.VendorID.String(),
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		Price:           p.Price,
		PriceDisplay:    p.PriceDisplay,
		Images:          p.Images,
		StockQuantity:   p.StockQuantity,
		Status:          p.Status,
		IsArchived:      p.IsArchived,
		ManualPurchases: p.ManualPurchases,
		CreatedAt:       p.CreatedAt,
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

func vendorResponse(v vendorapp.VendorInfo) VendorResponse {
	return VendorResponse{
		ID:             v.ID.String(),
		UserID:         v.UserID.String(),
		BusinessName:   v.BusinessName,
		Slug:           v.Slug,
		Description:    v.Description,
		WhatsAppNumber: v.WhatsAppNumber,
		LogoURL:        v.LogoURL,
		BannerURL:      v.BannerURL,
		Status:         v.Status,
		Email:          v.Email,
		EmailVerified:  v.EmailVerified,
		CreatedAt:      v.CreatedAt,
	}
}

func metricsResponse(m vendorapp.DashboardMetrics) MetricsResponse {
	return MetricsResponse{
		ProductCount:    m.ProductCount,
		Views:           m.Views,
		OrderClicks:     m.OrderClicks,
		ManualPurchases: m.ManualPurchases,
		PurchaseReports: m.PurchaseReports,
	}
}
