package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "storecatalog/internal/errors"
	"storecatalog/internal/model"
	"storecatalog/internal/repository"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = apperrors.NotFound("product not found")
	// ErrReferencedCategoryMissing is returned when category_id does not resolve.
	// The category is caller input, so this is a validation failure rather than a 404.
	ErrReferencedCategoryMissing = apperrors.Validation("category not found")
	// ErrInvalidPrice is returned for a negative price.
	ErrInvalidPrice = apperrors.Validation("price must be a non-negative number")
	// ErrPricePrecision is returned for a price with more than two decimal places.
	ErrPricePrecision = apperrors.Validation("price must have at most 2 decimal places")
	// ErrPriceTooLarge is returned for a price the decimal(12,2) column cannot hold.
	ErrPriceTooLarge = apperrors.Validation("price must not exceed 9999999999.99")
	// ErrEmptyImageURL is returned when an image url is blank.
	ErrEmptyImageURL = apperrors.Validation("image urls must not be empty")
)

var maxPrice = decimal.RequireFromString("9999999999.99")

// NewProduct is the input for CreateProduct.
type NewProduct struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	CategoryID  uuid.UUID
	Images      []string
}

// ProductPatch holds scalar fields to change. Nil or empty fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	CategoryID  *uuid.UUID
}

// ImageDiff lists image urls to append and to remove.
type ImageDiff struct {
	Add    []string
	Remove []string
}

// CatalogService assembles products with their category and ordered images.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.ProductAggregate, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductAggregate, error)
	CreateProduct(ctx context.Context, in NewProduct) (*model.ProductAggregate, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch, images ImageDiff) (*model.ProductAggregate, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	images     repository.ProductImageRepository
	log        zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	images repository.ProductImageRepository,
	log zerolog.Logger,
) CatalogService {
	return &catalogService{
		categories: categories,
		products:   products,
		images:     images,
		log:        log,
	}
}

// ListProducts returns every product, newest first. Images for all products are
// read in one query and grouped by product.
func (s *catalogService) ListProducts(ctx context.Context) ([]model.ProductAggregate, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		return []model.ProductAggregate{}, nil
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	images, err := s.images.ListByProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}

	byProduct := make(map[uuid.UUID][]model.ProductImage, len(products))
	for _, img := range images {
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
	}

	out := make([]model.ProductAggregate, 0, len(products))
	for i := range products {
		p := &products[i]
		out = append(out, *model.NewProductAggregate(p, p.Category, byProduct[p.ID]))
	}
	return out, nil
}

// GetProduct assembles one product from its current rows.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductAggregate, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.images.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	return model.NewProductAggregate(product, product.Category, images), nil
}

// CreateProduct inserts the product and then its images. An image failure does not
// undo the product: it is logged and the product is returned without those images.
func (s *catalogService) CreateProduct(ctx context.Context, in NewProduct) (*model.ProductAggregate, error) {
	name, description := strings.TrimSpace(in.Name), strings.TrimSpace(in.Description)
	if name == "" || description == "" || in.Price == nil || in.CategoryID == uuid.Nil {
		return nil, apperrors.Validation("name, description, price and category_id are required")
	}
	if err := checkPrice(*in.Price); err != nil {
		return nil, err
	}
	urls, err := cleanURLs(in.Images)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        name,
		Description: description,
		Price:       *in.Price,
		CategoryID:  in.CategoryID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrReferencedCategoryMissing
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	var created []model.ProductImage
	if len(urls) > 0 {
		rows := imageRows(product.ID, urls)
		if err := s.images.CreateBatch(ctx, rows); err != nil {
			s.log.Error().Err(err).
				Str("product_id", product.ID.String()).
				Int("images", len(urls)).
				Msg("insert product images failed; product kept without them")
		} else {
			created = rows
		}
	}

	category, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		s.log.Warn().Err(err).
			Str("product_id", product.ID.String()).
			Str("category_id", in.CategoryID.String()).
			Msg("reload category after product create")
		category = nil
	}
	return model.NewProductAggregate(product, category, created), nil
}

// UpdateProduct applies the scalar patch, removes images by url, appends new images
// and returns the product as it now stands.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch, diff ImageDiff) (*model.ProductAggregate, error) {
	if _, err := s.findProduct(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.CategoryID != nil {
		if err := s.ensureCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *patch.CategoryID
	}
	if patch.Price != nil {
		if err := checkPrice(*patch.Price); err != nil {
			return nil, err
		}
		fields["price"] = *patch.Price
	}
	if v := trimmed(patch.Name); v != "" {
		fields["name"] = v
	}
	if v := trimmed(patch.Description); v != "" {
		fields["description"] = v
	}
	add, err := cleanURLs(diff.Add)
	if err != nil {
		return nil, err
	}
	remove, err := cleanURLs(diff.Remove)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.products.Update(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return nil, ErrReferencedCategoryMissing
			}
			return nil, fmt.Errorf("update product: %w", err)
		}
	}

	if len(remove) > 0 {
		if _, err := s.images.DeleteByURLs(ctx, id, remove); err != nil {
			return nil, fmt.Errorf("remove product images: %w", err)
		}
	}
	if len(add) > 0 {
		if err := s.images.CreateBatch(ctx, imageRows(id, add)); err != nil {
			return nil, fmt.Errorf("add product images: %w", err)
		}
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes the images first so none outlives the product.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProduct(ctx, id); err != nil {
		return err
	}
	if err := s.images.DeleteByProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product images: %w", err)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *catalogService) findProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (s *catalogService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReferencedCategoryMissing
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

// checkPrice accepts exactly the values the price column stores unchanged.
func checkPrice(p decimal.Decimal) error {
	switch {
	case p.IsNegative():
		return ErrInvalidPrice
	case !p.Equal(p.Truncate(2)):
		return ErrPricePrecision
	case p.GreaterThan(maxPrice):
		return ErrPriceTooLarge
	}
	return nil
}

func imageRows(productID uuid.UUID, urls []string) []model.ProductImage {
	rows := make([]model.ProductImage, 0, len(urls))
	for _, u := range urls {
		rows = append(rows, model.ProductImage{ProductID: productID, ImageURL: u})
	}
	return rows
}

func cleanURLs(urls []string) ([]string, error) {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			return nil, ErrEmptyImageURL
		}
		out = append(out, u)
	}
	return out, nil
}
