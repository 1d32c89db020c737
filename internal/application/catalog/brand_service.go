package catalog

import (
	"context"

	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BrandService exposes the brand list. Brands come into existence through
// product creation, so there is no create endpoint of their own.
type BrandService struct {
	brandRepo catalog.BrandRepository
	logger    *zap.Logger
}

// NewBrandService creates a new brand service
func NewBrandService(brandRepo catalog.BrandRepository, logger *zap.Logger) *BrandService {
	return &BrandService{brandRepo: brandRepo, logger: logger}
}

// ListBrands returns all brands ordered by name.
func (s *BrandService) ListBrands(ctx context.Context) ([]BrandInfo, error) {
	brands, err := s.brandRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]BrandInfo, 0, len(brands))
	for i := range brands {
		infos = append(infos, brandInfo(&brands[i]))
	}
	return infos, nil
}

// GetBySlug returns one brand.
func (s *BrandService) GetBySlug(ctx context.Context, slug string) (*BrandInfo, error) {
	brand, err := s.brandRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	info := brandInfo(brand)
	return &info, nil
}
