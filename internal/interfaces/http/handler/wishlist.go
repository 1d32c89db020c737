package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/application/storefront"
)

// WishlistHandler handles the customer's server-side wishlist.
type WishlistHandler struct {
	BaseHandler
	wishlistService *storefront.WishlistService
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *storefront.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// WishlistItemResponse is one saved product. Product is null when the
// listing is gone or hidden.
type WishlistItemResponse struct {
	ProductID string                 `json:"product_id"`
	AddedAt   time.Time              `json:"added_at"`
	Product   *ListedProductResponse `json:"product"`
}

// GetWishlist returns the user's wishlist, newest first.
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	items, err := h.wishlistService.GetWishlist(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]WishlistItemResponse, 0, len(items))
	for _, item := range items {
		resp := WishlistItemResponse{
			ProductID: item.ProductID.String(),
			AddedAt:   item.AddedAt,
		}
		if item.Product != nil {
			p := listedProductResponse(*item.Product)
			resp.Product = &p
		}
		out = append(out, resp)
	}
	h.Success(c, out)
}

// Toggle flips one product's wishlist membership.
func (h *WishlistHandler) Toggle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.wishlistService.Toggle(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"product_id": result.ProductID.String(),
		"saved":      result.Saved,
	})
}

// Merge folds an anonymous wishlist into the server one at login.
func (h *WishlistHandler) Merge(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req MergeWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	productIDs := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID in list")
			return
		}
		productIDs = append(productIDs, id)
	}

	result, err := h.wishlistService.Merge(c.Request.Context(), storefront.MergeWishlistInput{
		UserID:     userID,
		ProductIDs: productIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"added":   result.Added,
		"skipped": result.Skipped,
		"total":   result.Total,
	})
}
