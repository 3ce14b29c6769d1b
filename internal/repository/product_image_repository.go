package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storecatalog/internal/model"
)

const imageOrder = "created_at ASC, id ASC"

// ProductImageRepository defines product image persistence operations.
type ProductImageRepository interface {
	CreateBatch(ctx context.Context, images []model.ProductImage) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error)
	ListByProducts(ctx context.Context, productIDs []uuid.UUID) ([]model.ProductImage, error)
	DeleteByURLs(ctx context.Context, productID uuid.UUID, urls []string) (int64, error)
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}

type productImageRepository struct {
	db *gorm.DB
}

// NewProductImageRepository creates a new product image repository.
func NewProductImageRepository(db *gorm.DB) ProductImageRepository {
	return &productImageRepository{db: db}
}

// CreateBatch inserts images in one statement; either all rows land or none.
func (r *productImageRepository) CreateBatch(ctx context.Context, images []model.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Product").CreateInBatches(images, 100).Error
}

// ListByProduct returns a product's images in display order.
func (r *productImageRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	var images []model.ProductImage
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).
		Order(imageOrder).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// ListByProducts returns images for several products in display order.
func (r *productImageRepository) ListByProducts(ctx context.Context, productIDs []uuid.UUID) ([]model.ProductImage, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var images []model.ProductImage
	if err := r.db.WithContext(ctx).Where("product_id IN ?", productIDs).
		Order(imageOrder).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// DeleteByURLs removes every image of the product whose url is in urls.
func (r *productImageRepository) DeleteByURLs(ctx context.Context, productID uuid.UUID, urls []string) (int64, error) {
	if len(urls) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND image_url IN ?", productID, urls).
		Delete(&model.ProductImage{})
	return res.RowsAffected, res.Error
}

// DeleteByProduct removes all images of a product.
func (r *productImageRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).
		Delete(&model.ProductImage{}).Error
}
