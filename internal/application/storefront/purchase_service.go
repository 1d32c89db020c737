package storefront

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PurchaseService records customers' self-reported purchases. The price is
// pinned at recording time; later price edits do not rewrite history.
type PurchaseService struct {
	purchaseRepo engagement.PurchaseRepository
	productRepo  catalog.ProductRepository
	vendorRepo   partner.VendorRepository
	logger       *zap.Logger
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(purchaseRepo engagement.PurchaseRepository, productRepo catalog.ProductRepository, vendorRepo partner.VendorRepository, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		vendorRepo:   vendorRepo,
		logger:       logger,
	}
}

// RecordPurchase stores a purchase record against the product's current
// price.
func (s *PurchaseService) RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*PurchaseInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	purchase, err := engagement.NewPurchase(input.UserID, product.ID, product.VendorID, product.Price, input.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("Purchase recorded",
		zap.String("user_id", input.UserID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", purchase.Quantity))

	info := purchaseInfo(purchase)
	return &info, nil
}

// ListUserPurchases returns a customer's purchase history, newest first.
func (s *PurchaseService) ListUserPurchases(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]PurchaseInfo, int64, error) {
	page, err := s.purchaseRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	return purchaseInfos(page.Items), page.Total, nil
}

// ListVendorPurchases returns the purchases recorded against a vendor's
// products.
func (s *PurchaseService) ListVendorPurchases(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]PurchaseInfo, int64, error) {
	page, err := s.purchaseRepo.FindByVendor(ctx, vendorID, filter)
	if err != nil {
		return nil, 0, err
	}
	return purchaseInfos(page.Items), page.Total, nil
}

// ListOwnSales resolves the caller's vendor account and returns purchases
// recorded against it. Suspended vendors can still read their history.
func (s *PurchaseService) ListOwnSales(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]PurchaseInfo, int64, error) {
	vendor, err := s.vendorRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, 0, shared.NewDomainError("VENDOR_NOT_FOUND", "vendor account not found")
	}
	return s.ListVendorPurchases(ctx, vendor.ID, filter)
}

func purchaseInfo(p *engagement.Purchase) PurchaseInfo {
	return PurchaseInfo{
		ID:              p.ID,
		ProductID:       p.ProductID,
		VendorID:        p.VendorID,
		PriceAtPurchase: p.PriceAtPurchase.Int64(),
		PriceDisplay:    p.PriceAtPurchase.String(),
		Quantity:        p.Quantity,
		Total:           p.Total().Int64(),
		RecordedAt:      p.CreatedAt,
	}
}

func purchaseInfos(purchases []engagement.Purchase) []PurchaseInfo {
	infos := make([]PurchaseInfo, 0, len(purchases))
	for i := range purchases {
		infos = append(infos, purchaseInfo(&purchases[i]))
	}
	return infos
}
