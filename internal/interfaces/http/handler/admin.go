package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/runmarket/backend/internal/application/catalog"
	"github.com/runmarket/backend/internal/application/vendorapp"
	"github.com/runmarket/backend/internal/interfaces/http/dto"
)

// AdminHandler serves the admin portal: vendor moderation, category
// management and platform metrics.
type AdminHandler struct {
	BaseHandler
	approvalService *vendorapp.ApprovalService
	categoryService *appcatalog.CategoryService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(approvalService *vendorapp.ApprovalService, categoryService *appcatalog.CategoryService) *AdminHandler {
	return &AdminHandler{
		approvalService: approvalService,
		categoryService: categoryService,
	}
}

// ListVendorsRequest filters the admin vendor list.
type ListVendorsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved suspended"`
}

// CreateCategoryRequest creates a category, optionally under a parent.
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	ParentID string `json:"parent_id" binding:"omitempty,uuid"`
	ImageURL string `json:"image_url" binding:"omitempty,max=500"`
}

// RenameCategoryRequest renames a category. The slug stays stable.
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// PlatformMetricsResponse is the admin overview payload.
type PlatformMetricsResponse struct {
	TotalCustomers   int64 `json:"total_customers"`
	TotalVendors     int64 `json:"total_vendors"`
	PendingVendors   int64 `json:"pending_vendors"`
	ApprovedVendors  int64 `json:"approved_vendors"`
	SuspendedVendors int64 `json:"suspended_vendors"`
}

// ListVendors returns vendors for moderation, optionally by status.
func (h *AdminHandler) ListVendors(c *gin.Context) {
	var statusReq ListVendorsRequest
	if err := c.ShouldBindQuery(&statusReq); err != nil {
		h.BindingError(c, err, "Invalid query parameters")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err, "Invalid query parameters")
		return
	}

	result, err := h.approvalService.ListVendors(c.Request.Context(), vendorapp.ListVendorsInput{
		Status: statusReq.Status,
		Filter: parseFilter(req),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]VendorResponse, 0, len(result.Vendors))
	for _, v := range result.Vendors {
		out = append(out, vendorResponse(v))
	}
	h.SuccessWithMeta(c, out, result.Total, result.Page, result.PageSize)
}

// ApproveVendor moves a pending or suspended vendor to approved.
func (h *AdminHandler) ApproveVendor(c *gin.Context) {
	h.moderate(c, h.approvalService.Approve)
}

// SuspendVendor takes a vendor's storefront and catalog offline.
func (h *AdminHandler) SuspendVendor(c *gin.Context) {
	h.moderate(c, h.approvalService.Suspend)
}

// UnsuspendVendor restores a suspended vendor to approved.
func (h *AdminHandler) UnsuspendVendor(c *gin.Context) {
	h.moderate(c, h.approvalService.Unsuspend)
}

// GetPlatformMetrics returns platform-wide account counts.
func (h *AdminHandler) GetPlatformMetrics(c *gin.Context) {
	metrics, err := h.approvalService.PlatformMetrics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PlatformMetricsResponse{
		TotalCustomers:   metrics.TotalCustomers,
		TotalVendors:     metrics.TotalVendors,
		PendingVendors:   metrics.PendingVendors,
		ApprovedVendors:  metrics.ApprovedVendors,
		SuspendedVendors: metrics.SuspendedVendors,
	})
}

// CreateCategory adds a category to the shared taxonomy.
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	input := appcatalog.CreateCategoryInput{
		Name:     req.Name,
		ImageURL: req.ImageURL,
	}
	if req.ParentID != "" {
		id, err := uuid.Parse(req.ParentID)
		if err != nil {
			h.BadRequest(c, "Invalid parent category ID")
			return
		}
		input.ParentID = &id
	}

	info, err := h.categoryService.CreateCategory(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, categoryResponse(*info))
}

// RenameCategory renames a category without changing its slug.
func (h *AdminHandler) RenameCategory(c *gin.Context) {
	id, ok := h.bindID(c, "Invalid category ID")
	if !ok {
		return
	}

	var req RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	info, err := h.categoryService.RenameCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categoryResponse(*info))
}

// DeleteCategory removes a leaf category. Categories with children are
// rejected.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.bindID(c, "Invalid category ID")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *AdminHandler) moderate(c *gin.Context, fn func(ctx context.Context, vendorID uuid.UUID) (*vendorapp.VendorInfo, error)) {
	id, ok := h.bindID(c, "Invalid vendor ID")
	if !ok {
		return
	}

	info, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendorResponse(*info))
}

func (h *AdminHandler) bindID(c *gin.Context, message string) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, message)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}
