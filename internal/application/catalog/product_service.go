package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/application/vendorapp"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/engagement"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ProductService handles a vendor's catalog mutations. Every operation
// re-checks that the acting user owns an approved vendor account; the
// client's word is never enough.
type ProductService struct {
	productRepo   catalog.ProductRepository
	vendorRepo    partner.VendorRepository
	brandRepo     catalog.BrandRepository
	categoryRepo  catalog.CategoryRepository
	analyticsRepo engagement.AnalyticsRepository
	cache         vendorapp.MetricsCache
	logger        *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalog.ProductRepository,
	vendorRepo partner.VendorRepository,
	brandRepo catalog.BrandRepository,
	categoryRepo catalog.CategoryRepository,
	analyticsRepo engagement.AnalyticsRepository,
	cache vendorapp.MetricsCache,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		vendorRepo:    vendorRepo,
		brandRepo:     brandRepo,
		categoryRepo:  categoryRepo,
		analyticsRepo: analyticsRepo,
		cache:         cache,
		logger:        logger,
	}
}

// CreateProduct creates a listing for the vendor owned by input.UserID.
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductInfo, error) {
	vendor, err := vendorapp.RequireApproved(ctx, s.vendorRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(vendor.ID, input.Name, valueobject.Naira(input.Price), input.StockQuantity)
	if err != nil {
		return nil, err
	}
	if input.Description != "" {
		if err := product.UpdateDetails(input.Name, input.Description, product.Price); err != nil {
			return nil, err
		}
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		product.SetCategory(input.CategoryID)
	}
	if input.BrandName != "" {
		brand, err := s.resolveBrand(ctx, input.BrandName)
		if err != nil {
			return nil, err
		}
		product.SetBrand(&brand.ID)
	}
	if len(input.Images) > 0 {
		if err := product.SetImages(input.Images); err != nil {
			return nil, err
		}
	}

	slug, err := s.uniqueSlug(ctx, product.Slug)
	if err != nil {
		return nil, err
	}
	product.Slug = slug

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateMetrics(ctx, vendor.ID)
	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("name", product.Name))

	info := productInfo(product)
	return &info, nil
}

// UpdateProduct edits a listing. Nil fields are left unchanged; the slug
// never changes after creation.
func (s *ProductService) UpdateProduct(ctx context.Context, input UpdateProductInput) (*ProductInfo, error) {
	product, vendor, err := s.ownedProduct(ctx, input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil || input.Description != nil || input.Price != nil {
		name := product.Name
		if input.Name != nil {
			name = *input.Name
		}
		description := product.Description
		if input.Description != nil {
			description = *input.Description
		}
		price := product.Price
		if input.Price != nil {
			price = valueobject.Naira(*input.Price)
		}
		if err := product.UpdateDetails(name, description, price); err != nil {
			return nil, err
		}
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		product.SetCategory(input.CategoryID)
	}
	if input.BrandName != nil {
		if *input.BrandName == "" {
			product.SetBrand(nil)
		} else {
			brand, err := s.resolveBrand(ctx, *input.BrandName)
			if err != nil {
				return nil, err
			}
			product.SetBrand(&brand.ID)
		}
	}
	if input.Images != nil {
		if err := product.SetImages(input.Images); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateMetrics(ctx, vendor.ID)
	info := productInfo(product)
	return &info, nil
}

// UpdateStock sets the stock level; availability status follows from it.
func (s *ProductService) UpdateStock(ctx context.Context, input UpdateStockInput) (*ProductInfo, error) {
	product, _, err := s.ownedProduct(ctx, input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}

	if err := product.UpdateStock(input.Quantity); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	info := productInfo(product)
	return &info, nil
}

// MarkAsSold records an off-platform sale: the counter increments and a
// manual_purchase event feeds the dashboard.
func (s *ProductService) MarkAsSold(ctx context.Context, userID, productID uuid.UUID) (*ProductInfo, error) {
	product, vendor, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	product.RecordManualPurchase()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	// Best effort; the sale stays recorded even if the event write fails.
	if event, err := engagement.NewAnalyticsEvent(product.ID, vendor.ID, &userID, engagement.EventManualPurchase); err == nil {
		if err := s.analyticsRepo.Save(ctx, event); err != nil {
			s.logger.Warn("Failed to record manual purchase event", zap.Error(err))
		}
	}

	s.invalidateMetrics(ctx, vendor.ID)
	info := productInfo(product)
	return &info, nil
}

// Archive hides the product from all public surfaces.
func (s *ProductService) Archive(ctx context.Context, userID, productID uuid.UUID) (*ProductInfo, error) {
	return s.mutate(ctx, userID, productID, func(p *catalog.Product) error {
		p.Archive()
		return nil
	})
}

// Unarchive restores an archived product to its previous status.
func (s *ProductService) Unarchive(ctx context.Context, userID, productID uuid.UUID) (*ProductInfo, error) {
	return s.mutate(ctx, userID, productID, func(p *catalog.Product) error {
		p.Unarchive()
		return nil
	})
}

// Deactivate hides the product without archiving it.
func (s *ProductService) Deactivate(ctx context.Context, userID, productID uuid.UUID) (*ProductInfo, error) {
	return s.mutate(ctx, userID, productID, func(p *catalog.Product) error {
		p.Deactivate()
		return nil
	})
}

// Activate re-derives availability from stock.
func (s *ProductService) Activate(ctx context.Context, userID, productID uuid.UUID) (*ProductInfo, error) {
	return s.mutate(ctx, userID, productID, func(p *catalog.Product) error {
		p.Activate()
		return nil
	})
}

// DeleteProduct permanently removes a listing. Wishlist rows pointing at it
// are cleaned up by the schema's cascade.
func (s *ProductService) DeleteProduct(ctx context.Context, userID, productID uuid.UUID) error {
	product, vendor, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return err
	}

	s.invalidateMetrics(ctx, vendor.ID)
	s.logger.Info("Product deleted",
		zap.String("product_id", product.ID.String()),
		zap.String("vendor_id", vendor.ID.String()))
	return nil
}

// ListVendorProducts returns the vendor's own catalog, archived included.
func (s *ProductService) ListVendorProducts(ctx context.Context, input VendorProductsInput) (*VendorProductsResult, error) {
	vendor, err := s.vendorRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "No vendor account for this user")
	}

	page, err := s.productRepo.FindByVendor(ctx, vendor.ID, input.Filter)
	if err != nil {
		return nil, err
	}

	products := make([]ProductInfo, 0, len(page.Items))
	for i := range page.Items {
		products = append(products, productInfo(&page.Items[i]))
	}

	return &VendorProductsResult{
		Products:   products,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

func (s *ProductService) mutate(ctx context.Context, userID, productID uuid.UUID, fn func(*catalog.Product) error) (*ProductInfo, error) {
	product, vendor, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if err := fn(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateMetrics(ctx, vendor.ID)
	info := productInfo(product)
	return &info, nil
}

// ownedProduct loads the product and verifies the acting user's approved
// vendor owns it.
func (s *ProductService) ownedProduct(ctx context.Context, userID, productID uuid.UUID) (*catalog.Product, *partner.Vendor, error) {
	vendor, err := vendorapp.RequireApproved(ctx, s.vendorRepo, userID)
	if err != nil {
		return nil, nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, shared.ErrNotFound
	}
	if product.VendorID != vendor.ID {
		return nil, nil, shared.ErrForbidden
	}
	return product, vendor, nil
}

// resolveBrand finds the brand whose slug matches the given name, creating
// it on first use. "NIKE" and "nike" resolve to the same brand.
func (s *ProductService) resolveBrand(ctx context.Context, name string) (*catalog.Brand, error) {
	brand, err := catalog.NewBrand(name)
	if err != nil {
		return nil, err
	}

	if existing, err := s.brandRepo.FindBySlug(ctx, brand.Slug); err == nil {
		return existing, nil
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *ProductService) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		exists, err := s.productRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *ProductService) invalidateMetrics(ctx context.Context, vendorID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, vendorID)
	}
}
