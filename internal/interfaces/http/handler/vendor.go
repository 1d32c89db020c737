package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/runmarket/backend/internal/application/catalog"
	"github.com/runmarket/backend/internal/application/storefront"
	"github.com/runmarket/backend/internal/application/vendorapp"
	"github.com/runmarket/backend/internal/interfaces/http/dto"
)

// VendorHandler serves the vendor portal: dashboard, own catalog
// management, image uploads and sales history.
type VendorHandler struct {
	BaseHandler
	productService   *appcatalog.ProductService
	imageService     *appcatalog.ImageService
	dashboardService *vendorapp.DashboardService
	profileService   *vendorapp.VendorProfileService
	purchaseService  *storefront.PurchaseService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(
	productService *appcatalog.ProductService,
	imageService *appcatalog.ImageService,
	dashboardService *vendorapp.DashboardService,
	profileService *vendorapp.VendorProfileService,
	purchaseService *storefront.PurchaseService,
) *VendorHandler {
	return &VendorHandler{
		productService:   productService,
		imageService:     imageService,
		dashboardService: dashboardService,
		profileService:   profileService,
		purchaseService:  purchaseService,
	}
}

// GetDashboard returns the vendor's profile and aggregate metrics.
func (h *VendorHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DashboardResponse{
		Vendor:  vendorResponse(result.Vendor),
		Metrics: metricsResponse(result.Metrics),
	})
}

// UpdateProfile edits the vendor's storefront profile.
func (h *VendorHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateVendorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	info, err := h.profileService.UpdateProfile(c.Request.Context(), vendorapp.UpdateVendorProfileInput{
		UserID:         userID,
		BusinessName:   req.BusinessName,
		Description:    req.Description,
		WhatsAppNumber: req.WhatsAppNumber,
		LogoURL:        req.LogoURL,
		BannerURL:      req.BannerURL,
		InstagramURL:   req.InstagramURL,
		FacebookURL:    req.FacebookURL,
		TiktokURL:      req.TiktokURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendorResponse(*info))
}

// ListProducts returns the vendor's own catalog, archived included.
func (h *VendorHandler) ListProducts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err, "Invalid query parameters")
		return
	}

	result, err := h.productService.ListVendorProducts(c.Request.Context(), appcatalog.VendorProductsInput{
		UserID: userID,
		Filter: parseFilter(req),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ProductResponse, 0, len(result.Products))
	for _, p := range result.Products {
		out = append(out, productResponse(p))
	}
	h.SuccessWithMeta(c, out, result.Total, result.Page, result.PageSize)
}

// CreateProduct creates a listing in the vendor's catalog.
func (h *VendorHandler) CreateProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	input := appcatalog.CreateProductInput{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		BrandName:     req.BrandName,
		Images:        req.Images,
	}
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &id
	}

	info, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, productResponse(*info))
}

// UpdateProduct edits a listing. Omitted fields stay unchanged.
func (h *VendorHandler) UpdateProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.bindProductID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	input := appcatalog.UpdateProductInput{
		UserID:      userID,
		ProductID:   productID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		BrandName:   req.BrandName,
		Images:      req.Images,
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &id
	}

	info, err := h.productService.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, productResponse(*info))
}

// UpdateStock sets the stock level; listing status follows the quantity.
func (h *VendorHandler) UpdateStock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.bindProductID(c)
	if !ok {
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	info, err := h.productService.UpdateStock(c.Request.Context(), appcatalog.UpdateStockInput{
		UserID:    userID,
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, productResponse(*info))
}

// MarkSold records a sale the vendor concluded off-platform.
func (h *VendorHandler) MarkSold(c *gin.Context) {
	h.lifecycle(c, h.productService.MarkAsSold)
}

// Archive hides a listing from the public catalog.
func (h *VendorHandler) Archive(c *gin.Context) {
	h.lifecycle(c, h.productService.Archive)
}

// Unarchive restores an archived listing.
func (h *VendorHandler) Unarchive(c *gin.Context) {
	h.lifecycle(c, h.productService.Unarchive)
}

// Activate re-enables a deactivated listing.
func (h *VendorHandler) Activate(c *gin.Context) {
	h.lifecycle(c, h.productService.Activate)
}

// Deactivate takes a listing off the public catalog without archiving it.
func (h *VendorHandler) Deactivate(c *gin.Context) {
	h.lifecycle(c, h.productService.Deactivate)
}

// DeleteProduct removes a listing permanently.
func (h *VendorHandler) DeleteProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.bindProductID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), userID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetProductMetrics returns per-product event counts.
func (h *VendorHandler) GetProductMetrics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.bindProductID(c)
	if !ok {
		return
	}

	counts, err := h.dashboardService.ProductMetrics(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"views":            counts.Views,
		"order_clicks":     counts.OrderClicks,
		"manual_purchases": counts.ManualPurchases,
	})
}

// RequestProductImageUpload issues a presigned upload URL for a product
// image.
func (h *VendorHandler) RequestProductImageUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.bindProductID(c)
	if !ok {
		return
	}

	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	ticket, err := h.imageService.RequestProductImageUpload(c.Request.Context(), userID, productID, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// RequestVendorImageUpload issues a presigned upload URL for the vendor's
// logo or banner. Available to pending vendors so they can finish their
// profile before approval.
func (h *VendorHandler) RequestVendorImageUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}
	kind := req.Kind
	if kind == "" {
		kind = "logo"
	}

	ticket, err := h.imageService.RequestVendorImageUpload(c.Request.Context(), userID, kind, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ticket)
}

// ListSales returns purchases customers reported against this vendor.
func (h *VendorHandler) ListSales(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err, "Invalid query parameters")
		return
	}
	filter := parseFilter(req)

	sales, total, err := h.purchaseService.ListOwnSales(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]PurchaseResponse, 0, len(sales))
	for _, p := range sales {
		out = append(out, purchaseResponse(p))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}

func (h *VendorHandler) lifecycle(c *gin.Context, fn func(ctx context.Context, userID, productID uuid.UUID) (*appcatalog.ProductInfo, error)) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.bindProductID(c)
	if !ok {
		return
	}

	info, err := fn(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, productResponse(*info))
}

func (h *VendorHandler) bindProductID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}
