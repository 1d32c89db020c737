package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/shared"
	"github.com/runmarket/backend/internal/domain/shared/valueobject"
)

// Category is an admin-managed product grouping. Categories form a shallow
// tree through ParentID; storefront filtering matches on the category itself,
// not its descendants.
type Category struct {
	shared.BaseEntity
	Name     string     `gorm:"type:varchar(100);not null"`
	Slug     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	ImageURL string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category, optionally nested under a parent.
func NewCategory(name string, parentID *uuid.UUID) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       valueobject.Slugify(name),
		ParentID:   parentID,
	}, nil
}

// SetImageURL sets the category's display image.
func (c *Category) SetImageURL(url string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot exceed 500 characters")
	}
	c.ImageURL = url
	c.UpdatedAt = time.Now()
	return nil
}

// Rename updates the display name, keeping the slug stable.
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}
