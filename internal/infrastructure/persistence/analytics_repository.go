package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/engagement"
	"gorm.io/gorm"
)

// GormAnalyticsRepository implements AnalyticsRepository using GORM
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GormAnalyticsRepository
func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// Save appends an analytics event
func (r *GormAnalyticsRepository) Save(ctx context.Context, event *engagement.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// CountByVendor aggregates per-type event counts across a vendor's products
func (r *GormAnalyticsRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID, since time.Time) (*engagement.EventCounts, error) {
	return r.countEvents(ctx, "vendor_id = ?", vendorID, since)
}

// CountByProduct aggregates per-type event counts for a single product
func (r *GormAnalyticsRepository) CountByProduct(ctx context.Context, productID uuid.UUID, since time.Time) (*engagement.EventCounts, error) {
	return r.countEvents(ctx, "product_id = ?", productID, since)
}

func (r *GormAnalyticsRepository) countEvents(ctx context.Context, cond string, id uuid.UUID, since time.Time) (*engagement.EventCounts, error) {
	type row struct {
		Type  engagement.EventType
		Count int64
	}

	q := r.db.WithContext(ctx).
		Model(&engagement.AnalyticsEvent{}).
		Select("type, COUNT(*) as count").
		Where(cond, id)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}

	var rows []row
	if err := q.Group("type").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := &engagement.EventCounts{}
	for _, r := range rows {
		switch r.Type {
		case engagement.EventProductView:
			counts.Views = r.Count
		case engagement.EventOrderClick:
			counts.OrderClicks = r.Count
		case engagement.EventManualPurchase:
			counts.ManualPurchases = r.Count
		}
	}
	return counts, nil
}

var _ engagement.AnalyticsRepository = (*GormAnalyticsRepository)(nil)
