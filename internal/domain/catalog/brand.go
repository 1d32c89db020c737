package catalog

import (
	"strings"

	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/domain/shared/valueobject"
)

// Brand is a free-form label vendors attach to products. Brands are created
// on first use; the slug deduplicates spelling variants like "NIKE" / "nike".
type Brand struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null"`
	Slug string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a brand from a vendor-supplied name.
func NewBrand(name string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot exceed 100 characters")
	}

	return &Brand{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       valueobject.Slugify(name),
	}, nil
}
