package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "storecatalog/internal/errors"
	"storecatalog/internal/model"
	"storecatalog/internal/repository"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = apperrors.NotFound("category not found")
	// ErrSlugTaken is returned when another category already holds the slug.
	ErrSlugTaken = apperrors.Conflict("slug already exists")
	// ErrCategoryInUse is returned when deleting a category that products reference.
	ErrCategoryInUse = apperrors.Conflict("cannot delete a category that has products")
)

// CategoryPatch holds the fields to change. Nil or empty fields are left untouched.
type CategoryPatch struct {
	Name *string
	Slug *string
}

// CategoryService manages categories and their uniqueness and deletion rules.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, name, slug string) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository) CategoryService {
	return &categoryService{categories: categories, products: products}
}

// List returns every category, newest first.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// Get returns one category.
func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// Create inserts a category after checking the slug is free. The unique index on
// slug catches the window between the check and the insert.
func (s *categoryService) Create(ctx context.Context, name, slug string) (*model.Category, error) {
	name, slug = strings.TrimSpace(name), strings.TrimSpace(slug)
	if name == "" || slug == "" {
		return nil, apperrors.Validation("name and slug are required")
	}

	if err := s.ensureSlugFree(ctx, slug, uuid.Nil); err != nil {
		return nil, err
	}

	category := &model.Category{Name: name, Slug: slug}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// Update applies a partial update.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*model.Category, error) {
	fields := map[string]interface{}{}
	if v := trimmed(patch.Name); v != "" {
		fields["name"] = v
	}
	slug := trimmed(patch.Slug)
	if slug != "" {
		fields["slug"] = slug
	}
	if len(fields) == 0 {
		return nil, apperrors.Validation("provide at least one field to update")
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if slug != "" {
		if err := s.ensureSlugFree(ctx, slug, id); err != nil {
			return nil, err
		}
	}

	if err := s.categories.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a category no product references. The check and the delete are
// separate statements; the foreign key on products rejects a product that slipped in.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ensureSlugFree fails with ErrSlugTaken when a category other than self holds slug.
func (s *categoryService) ensureSlugFree(ctx context.Context, slug string, self uuid.UUID) error {
	existing, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check slug: %w", err)
	}
	if existing.ID != self {
		return ErrSlugTaken
	}
	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
