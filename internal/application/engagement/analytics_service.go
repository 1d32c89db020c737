package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RecordEventInput describes one product interaction reported by a client.
type RecordEventInput struct {
	ProductID uuid.UUID
	UserID    *uuid.UUID
	Type      string
}

// AnalyticsService appends product interaction events. Events are fire and
// forget from the client's point of view; an invalid product simply drops
// the event.
type AnalyticsService struct {
	analyticsRepo engagement.AnalyticsRepository
	productRepo   catalog.ProductRepository
	logger        *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo engagement.AnalyticsRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		logger:        logger,
	}
}

// RecordEvent stores one event. The vendor attribution comes from the
// product row, never from the client.
func (s *AnalyticsService) RecordEvent(ctx context.Context, input RecordEventInput) error {
	eventType := engagement.EventType(input.Type)
	if !eventType.Valid() {
		return shared.NewDomainError("INVALID_EVENT_TYPE", "Unknown analytics event type")
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return shared.ErrNotFound
	}

	event, err := engagement.NewAnalyticsEvent(product.ID, product.VendorID, input.UserID, eventType)
	if err != nil {
		return err
	}

	if err := s.analyticsRepo.Save(ctx, event); err != nil {
		s.logger.Warn("Failed to store analytics event",
			zap.String("product_id", product.ID.String()),
			zap.String("type", input.Type),
			zap.Error(err))
		return err
	}
	return nil
}
