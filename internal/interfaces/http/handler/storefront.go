package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/runmarket/backend/internal/application/catalog"
	appengagement "github.com/runmarket/backend/internal/application/engagement"
	"github.com/runmarket/backend/internal/application/storefront"
	"github.com/runmarket/backend/internal/application/vendorapp"
	"github.com/runmarket/backend/internal/interfaces/http/dto"
)

// StorefrontHandler serves the public catalog and the WhatsApp hand-off.
type StorefrontHandler struct {
	BaseHandler
	listingService       *storefront.ListingService
	orderLinkService     *storefront.OrderLinkService
	categoryService      *appcatalog.CategoryService
	brandService         *appcatalog.BrandService
	analyticsService     *appengagement.AnalyticsService
	vendorProfileService *vendorapp.VendorProfileService
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(
	listingService *storefront.ListingService,
	orderLinkService *storefront.OrderLinkService,
	categoryService *appcatalog.CategoryService,
	brandService *appcatalog.BrandService,
	analyticsService *appengagement.AnalyticsService,
	vendorProfileService *vendorapp.VendorProfileService,
) *StorefrontHandler {
	return &StorefrontHandler{
		listingService:       listingService,
		orderLinkService:     orderLinkService,
		categoryService:      categoryService,
		brandService:         brandService,
		analyticsService:     analyticsService,
		vendorProfileService: vendorProfileService,
	}
}

// ListProducts runs a storefront search.
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err, "Invalid query parameters")
		return
	}

	products, err := h.listingService.ListProducts(c.Request.Context(), storefront.ListProductsInput{
		Search:       req.Search,
		CategorySlug: req.Category,
		BrandSlug:    req.Brand,
		VendorSlug:   req.Vendor,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Sort:         req.Sort,
		Limit:        req.Limit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listedProductResponses(products))
}

// GetProduct returns one product by slug and records a view.
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	var req dto.SlugRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product slug")
		return
	}

	product, err := h.listingService.GetProduct(c.Request.Context(), req.Slug, optionalUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listedProductResponse(*product))
}

// GetOrderLink composes the WhatsApp hand-off for a product.
func (h *StorefrontHandler) GetOrderLink(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	productID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	link, err := h.orderLinkService.ComposeOrderLink(c.Request.Context(), productID, optionalUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, OrderLinkResponse{
		URL:            link.URL,
		WhatsAppNumber: link.WhatsAppNumber,
		Message:        link.Message,
	})
}

// RecordEvent stores a client-reported interaction event.
func (h *StorefrontHandler) RecordEvent(c *gin.Context) {
	var req RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.analyticsService.RecordEvent(c.Request.Context(), appengagement.RecordEventInput{
		ProductID: productID,
		UserID:    optionalUserID(c),
		Type:      req.Type,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListCategories returns all categories.
func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, categoryResponse(cat))
	}
	h.Success(c, out)
}

// ListBrands returns all brands.
func (h *StorefrontHandler) ListBrands(c *gin.Context) {
	brands, err := h.brandService.ListBrands(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, brandResponse(b))
	}
	h.Success(c, out)
}

// ListCategoryProducts returns the listed products of one category.
func (h *StorefrontHandler) ListCategoryProducts(c *gin.Context) {
	var slugReq dto.SlugRequest
	if err := c.ShouldBindUri(&slugReq); err != nil {
		h.BadRequest(c, "Invalid category slug")
		return
	}
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err, "Invalid query parameters")
		return
	}

	products, err := h.listingService.ListProducts(c.Request.Context(), storefront.ListProductsInput{
		Search:       req.Search,
		CategorySlug: slugReq.Slug,
		BrandSlug:    req.Brand,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Sort:         req.Sort,
		Limit:        req.Limit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listedProductResponses(products))
}

// ListBrandProducts returns the listed products of one brand.
func (h *StorefrontHandler) ListBrandProducts(c *gin.Context) {
	var slugReq dto.SlugRequest
	if err := c.ShouldBindUri(&slugReq); err != nil {
		h.BadRequest(c, "Invalid brand slug")
		return
	}
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err, "Invalid query parameters")
		return
	}

	products, err := h.listingService.ListProducts(c.Request.Context(), storefront.ListProductsInput{
		Search:       req.Search,
		CategorySlug: req.Category,
		BrandSlug:    slugReq.Slug,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Sort:         req.Sort,
		Limit:        req.Limit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listedProductResponses(products))
}

// GetVendorStorefront returns a vendor's public profile with their listed
// products.
func (h *StorefrontHandler) GetVendorStorefront(c *gin.Context) {
	var slugReq dto.SlugRequest
	if err := c.ShouldBindUri(&slugReq); err != nil {
		h.BadRequest(c, "Invalid vendor slug")
		return
	}

	vendor, err := h.vendorProfileService.GetBySlug(c.Request.Context(), slugReq.Slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	products, err := h.listingService.ListProducts(c.Request.Context(), storefront.ListProductsInput{
		VendorSlug: slugReq.Slug,
		Sort:       "newest",
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"vendor":   vendorResponse(*vendor),
		"products": listedProductResponses(products),
	})
}
