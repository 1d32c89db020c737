package vendorapp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MetricsCache caches computed dashboard metrics. A nil cache or a cache
// error is not fatal; metrics are recomputed from the database.
type MetricsCache interface {
	GetMetrics(ctx context.Context, vendorID uuid.UUID) (*DashboardMetrics, bool)
	SetMetrics(ctx context.Context, vendorID uuid.UUID, metrics *DashboardMetrics)
	Invalidate(ctx context.Context, vendorID uuid.UUID)
}

// DashboardService assembles the vendor dashboard: profile, product counts
// and engagement metrics.
type DashboardService struct {
	vendorRepo    partner.VendorRepository
	productRepo   catalog.ProductRepository
	analyticsRepo engagement.AnalyticsRepository
	purchaseRepo  engagement.PurchaseRepository
	cache         MetricsCache
	logger        *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	vendorRepo partner.VendorRepository,
	productRepo catalog.ProductRepository,
	analyticsRepo engagement.AnalyticsRepository,
	purchaseRepo engagement.PurchaseRepository,
	cache MetricsCache,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		vendorRepo:    vendorRepo,
		productRepo:   productRepo,
		analyticsRepo: analyticsRepo,
		purchaseRepo:  purchaseRepo,
		cache:         cache,
		logger:        logger,
	}
}

// GetDashboard returns the dashboard for the vendor owned by userID.
// Suspended vendors can still read their dashboard.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*DashboardResult, error) {
	vendor, err := s.vendorRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "No vendor account for this user")
	}

	metrics, err := s.metricsFor(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}

	return &DashboardResult{
		Vendor:  vendorInfo(vendor),
		Metrics: *metrics,
	}, nil
}

// ProductMetrics returns per-product engagement counts for the vendor's own
// listing detail view.
func (s *DashboardService) ProductMetrics(ctx context.Context, userID, productID uuid.UUID) (*engagement.EventCounts, error) {
	vendor, err := s.vendorRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "No vendor account for this user")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if product.VendorID != vendor.ID {
		return nil, shared.ErrForbidden
	}

	return s.analyticsRepo.CountByProduct(ctx, productID, time.Time{})
}

// InvalidateMetrics drops the cached metrics after a catalog mutation.
func (s *DashboardService) InvalidateMetrics(ctx context.Context, vendorID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, vendorID)
	}
}

func (s *DashboardService) metricsFor(ctx context.Context, vendorID uuid.UUID) (*DashboardMetrics, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetMetrics(ctx, vendorID); ok {
			return cached, nil
		}
	}

	productCount, err := s.productRepo.CountByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	counts, err := s.analyticsRepo.CountByVendor(ctx, vendorID, time.Time{})
	if err != nil {
		return nil, err
	}

	purchaseReports, err := s.purchaseRepo.CountByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	metrics := &DashboardMetrics{
		ProductCount:    productCount,
		Views:           counts.Views,
		OrderClicks:     counts.OrderClicks,
		ManualPurchases: counts.ManualPurchases,
		PurchaseReports: purchaseReports,
	}

	if s.cache != nil {
		s.cache.SetMetrics(ctx, vendorID, metrics)
	}
	return metrics, nil
}
