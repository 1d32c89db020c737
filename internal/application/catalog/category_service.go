package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/domain/catalog"
	"github.com/runmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles the admin-managed category tree.
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

// ListCategories returns all categories ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]CategoryInfo, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]CategoryInfo, 0, len(categories))
	for i := range categories {
		infos = append(infos, categoryInfo(&categories[i]))
	}
	return infos, nil
}

// GetBySlug returns one category.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryInfo, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	info := categoryInfo(category)
	return &info, nil
}

// CreateCategory adds a category, optionally under a parent.
func (s *CategoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryInfo, error) {
	if input.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.ParentID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Parent category not found")
		}
	}

	category, err := catalog.NewCategory(input.Name, input.ParentID)
	if err != nil {
		return nil, err
	}
	if input.ImageURL != "" {
		if err := category.SetImageURL(input.ImageURL); err != nil {
			return nil, err
		}
	}

	if existing, err := s.categoryRepo.FindBySlug(ctx, category.Slug); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name))

	info := categoryInfo(category)
	return &info, nil
}

// RenameCategory changes the display name; links keep working because the
// slug is stable.
func (s *CategoryService) RenameCategory(ctx context.Context, id uuid.UUID, name string) (*CategoryInfo, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := category.Rename(name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	info := categoryInfo(category)
	return &info, nil
}

// DeleteCategory removes a category. Products keep their rows; the schema
// nulls out their category reference.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	children, err := s.categoryRepo.FindChildren(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Delete or move child categories first")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}
