package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/application/vendorapp"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/partner"
	"github.com/runmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectStorage is the port to the object store backing image uploads.
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	PublicURL(storageKey string) string
	DeleteObject(ctx context.Context, storageKey string) error
}

// UploadTicket is a presigned upload the client performs directly against
// the object store. PublicURL is where the object will be readable once the
// upload completes; the client sends it back on the product or profile form.
type UploadTicket struct {
	UploadURL string
	PublicURL string
	ExpiresAt time.Time
}

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ImageService issues presigned upload tickets for product and vendor
// images. Keys are random, so a client can never overwrite another
// vendor's objects.
type ImageService struct {
	storage     ObjectStorage
	vendorRepo  partner.VendorRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewImageService creates a new image service
func NewImageService(storage ObjectStorage, vendorRepo partner.VendorRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *ImageService {
	return &ImageService{
		storage:     storage,
		vendorRepo:  vendorRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// RequestProductImageUpload issues an upload ticket for a product image.
// Only the approved vendor owning the product may request one.
func (s *ImageService) RequestProductImageUpload(ctx context.Context, userID, productID uuid.UUID, contentType string) (*UploadTicket, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_IMAGE_TYPE", "Images must be JPEG, PNG or WebP")
	}

	vendor, err := vendorapp.RequireApproved(ctx, s.vendorRepo, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if product.VendorID != vendor.ID {
		return nil, shared.ErrForbidden
	}

	key := fmt.Sprintf("products/%s/%s.%s", product.ID, uuid.New(), ext)
	return s.ticket(ctx, key, contentType)
}

// RequestVendorImageUpload issues an upload ticket for the vendor's logo or
// banner. kind must be "logo" or "banner".
func (s *ImageService) RequestVendorImageUpload(ctx context.Context, userID uuid.UUID, kind, contentType string) (*UploadTicket, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_IMAGE_TYPE", "Images must be JPEG, PNG or WebP")
	}
	if kind != "logo" && kind != "banner" {
		return nil, shared.NewDomainError("INVALID_IMAGE_KIND", "Image kind must be logo or banner")
	}

	vendor, err := s.vendorRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "No vendor account for this user")
	}

	key := fmt.Sprintf("vendors/%s/%s-%s.%s", vendor.ID, kind, uuid.New(), ext)
	return s.ticket(ctx, key, contentType)
}

func (s *ImageService) ticket(ctx context.Context, key, contentType string) (*UploadTicket, error) {
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, 0)
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.String("key", key), zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to prepare upload")
	}

	return &UploadTicket{
		UploadURL: uploadURL,
		PublicURL: s.storage.PublicURL(key),
		ExpiresAt: expiresAt,
	}, nil
}
