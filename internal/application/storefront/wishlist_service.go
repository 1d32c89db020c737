package storefront

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// WishlistService manages the server-side wishlist. The server copy is
// canonical; anonymous carts collected in the client merge into it at login.
type WishlistService struct {
	wishlistRepo engagement.WishlistRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(wishlistRepo engagement.WishlistRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// GetWishlist returns the user's saved products, newest first. Entries whose
// product was deleted or hidden are returned without product details so the
// client can show a placeholder.
func (s *WishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error) {
	entries, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []WishlistItem{}, nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for i := range entries {
		ids = append(ids, entries[i].ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]WishlistItem, 0, len(entries))
	for i := range entries {
		item := WishlistItem{
			ProductID: entries[i].ProductID,
			AddedAt:   entries[i].CreatedAt,
		}
		if product, ok := byID[entries[i].ProductID]; ok && product.IsPubliclyVisible() {
			listed := listedProduct(product)
			item.Product = &listed
		}
		items = append(items, item)
	}
	return items, nil
}

// Toggle adds the product if absent and removes it if present. Toggling is
// idempotent per state: toggling an absent product twice leaves it absent.
func (s *WishlistService) Toggle(ctx context.Context, userID, productID uuid.UUID) (*ToggleResult, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, shared.ErrNotFound
	}

	exists, err := s.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if exists {
		if err := s.wishlistRepo.DeleteByUserAndProduct(ctx, userID, productID); err != nil {
			return nil, err
		}
		return &ToggleResult{ProductID: productID, Saved: false}, nil
	}

	entry := engagement.NewWishlistEntry(userID, productID)
	if err := s.wishlistRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return &ToggleResult{ProductID: productID, Saved: true}, nil
}

// Merge folds an anonymous client-side wishlist into the server one.
// Duplicates and unknown products are skipped; merging twice changes
// nothing.
func (s *WishlistService) Merge(ctx context.Context, input MergeWishlistInput) (*MergeWishlistResult, error) {
	result := &MergeWishlistResult{}

	seen := make(map[uuid.UUID]bool, len(input.ProductIDs))
	for _, productID := range input.ProductIDs {
		if seen[productID] {
			result.Skipped++
			continue
		}
		seen[productID] = true

		if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
			result.Skipped++
			continue
		}

		exists, err := s.wishlistRepo.Exists(ctx, input.UserID, productID)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			continue
		}

		entry := engagement.NewWishlistEntry(input.UserID, productID)
		if err := s.wishlistRepo.Save(ctx, entry); err != nil {
			return nil, err
		}
		result.Added++
	}

	entries, err := s.wishlistRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	result.Total = len(entries)

	if result.Added > 0 {
		s.logger.Info("Wishlist merged",
			zap.String("user_id", input.UserID.String()),
			zap.Int("added", result.Added),
			zap.Int("skipped", result.Skipped))
	}
	return result, nil
}
