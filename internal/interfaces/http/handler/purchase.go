package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/application/storefront"
	"github.com/runmarket/backend/internal/interfaces/http/dto"
)

// PurchaseHandler handles customers' self-reported purchase records.
type PurchaseHandler struct {
	BaseHandler
	purchaseService *storefront.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *storefront.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// PurchaseResponse is one purchase history entry.
type PurchaseResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	VendorID        string    `json:"vendor_id"`
	PriceAtPurchase int64     `json:"price_at_purchase"`
	PriceDisplay    string    `json:"price_display"`
	Quantity        int       `json:"quantity"`
	Total           int64     `json:"total"`
	RecordedAt      time.Time `json:"recorded_at"`
}

func purchaseResponse(p storefront.PurchaseInfo) PurchaseResponse {
	return PurchaseResponse{
		ID:              p.ID.String(),
		ProductID:       p.ProductID.String(),
		VendorID:        p.VendorID.String(),
		PriceAtPurchase: p.PriceAtPurchase,
		PriceDisplay:    p.PriceDisplay,
		Quantity:        p.Quantity,
		Total:           p.Total,
		RecordedAt:      p.RecordedAt,
	}
}

// RecordPurchase stores a purchase record at the product's current price.
func (h *PurchaseHandler) RecordPurchase(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	info, err := h.purchaseService.RecordPurchase(c.Request.Context(), storefront.RecordPurchaseInput{
		UserID:    userID,
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, purchaseResponse(*info))
}

// ListPurchases returns the customer's purchase history.
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
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

	purchases, total, err := h.purchaseService.ListUserPurchases(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, purchaseResponse(p))
	}
	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}
