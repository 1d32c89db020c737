package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/shared"
)

// EventType names the product interactions that feed vendor dashboards.
type EventType string

const (
	// EventProductView is recorded when a product detail page loads.
	EventProductView EventType = "view"
	// EventOrderClick is recorded when a customer follows the WhatsApp
	// order link. It is best effort and never blocks the redirect.
	EventOrderClick EventType = "order_click"
	// EventManualPurchase is recorded when a vendor marks a sale as
	// concluded off-platform.
	EventManualPurchase EventType = "manual_purchase"
)

// Valid reports whether the event type is one of the known kinds.
func (t EventType) Valid() bool {
	switch t {
	case EventProductView, EventOrderClick, EventManualPurchase:
		return true
	}
	return false
}

// AnalyticsEvent is an append-only record of a product interaction.
// UserID is nil for anonymous visitors.
type AnalyticsEvent struct {
	shared.BaseEntity
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	VendorID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID    *uuid.UUID `gorm:"type:uuid"`
	Type      EventType  `gorm:"type:varchar(30);not null;index"`
}

// TableName returns the table name for GORM
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}

// NewAnalyticsEvent creates an event record.
func NewAnalyticsEvent(productID, vendorID uuid.UUID, userID *uuid.UUID, eventType EventType) (*AnalyticsEvent, error) {
	if !eventType.Valid() {
		return nil, shared.NewDomainError("INVALID_EVENT_TYPE", "Unknown analytics event type")
	}
	return &AnalyticsEvent{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		VendorID:   vendorID,
		UserID:     userID,
		Type:       eventType,
	}, nil
}

// EventCounts aggregates per-type totals for a vendor or product.
type EventCounts struct {
	Views           int64
	OrderClicks     int64
	ManualPurchases int64
}

// AnalyticsRepository defines the interface for analytics persistence
type AnalyticsRepository interface {
	Save(ctx context.Context, event *AnalyticsEvent) error
	CountByVendor(ctx context.Context, vendorID uuid.UUID, since time.Time) (*EventCounts, error)
	CountByProduct(ctx context.Context, productID uuid.UUID, since time.Time) (*EventCounts, error)
}
