package storefront

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderLinkService composes the WhatsApp hand-off that replaces a checkout.
// The order_click event is best effort: an analytics failure never costs a
// sale.
type OrderLinkService struct {
	productRepo   catalog.ProductRepository
	vendorRepo    partner.VendorRepository
	analyticsRepo engagement.AnalyticsRepository
	siteBaseURL   string
	logger        *zap.Logger
}

// NewOrderLinkService creates a new order link service
func NewOrderLinkService(
	productRepo catalog.ProductRepository,
	vendorRepo partner.VendorRepository,
	analyticsRepo engagement.AnalyticsRepository,
	siteBaseURL string,
	logger *zap.Logger,
) *OrderLinkService {
	return &OrderLinkService{
		productRepo:   productRepo,
		vendorRepo:    vendorRepo,
		analyticsRepo: analyticsRepo,
		siteBaseURL:   strings.TrimRight(siteBaseURL, "/"),
		logger:        logger,
	}
}

// ComposeOrderLink builds the wa.me link for a product and records an
// order_click event.
func (s *OrderLinkService) ComposeOrderLink(ctx context.Context, productID uuid.UUID, userID *uuid.UUID) (*OrderLink, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !product.IsPubliclyVisible() {
		return nil, shared.ErrNotFound
	}

	vendor, err := s.vendorRepo.FindByID(ctx, product.VendorID)
	if err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "Vendor not found")
	}

	normalized, ok := partner.NormalizeWhatsAppNumber(vendor.WhatsAppNumber)
	if !ok {
		return nil, shared.NewDomainError("INVALID_WHATSAPP", "Vendor has no usable WhatsApp number")
	}

	if event, err := engagement.NewAnalyticsEvent(product.ID, vendor.ID, userID, engagement.EventOrderClick); err == nil {
		if err := s.analyticsRepo.Save(ctx, event); err != nil {
			s.logger.Warn("Failed to record order click",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
		}
	}

	message := s.composeMessage(product)
	return &OrderLink{
		URL:            fmt.Sprintf("https://wa.me/%s?text=%s", normalized, url.QueryEscape(message)),
		WhatsAppNumber: normalized,
		Message:        message,
	}, nil
}

func (s *OrderLinkService) composeMessage(product *catalog.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi! I'm interested in ordering *%s*\n\n", product.Name)
	fmt.Fprintf(&b, "Price: %s\n", product.Price)
	fmt.Fprintf(&b, "Product Link: %s/product/%s\n", s.siteBaseURL, product.Slug)
	if product.Description != "" {
		fmt.Fprintf(&b, "\nDescription: %s\n", product.Description)
	}
	b.WriteString("\nPlease let me know about availability and delivery options. Thank you!")
	return b.String()
}
