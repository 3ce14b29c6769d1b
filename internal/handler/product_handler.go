package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "storecatalog/internal/errors"
	"storecatalog/internal/service"
)

var errInvalidCategoryID = apperrors.Validation("category_id must be a valid id")

// ProductHandler handles product endpoints.
type ProductHandler struct {
	catalogService service.CatalogService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// CreateProductRequest represents a product creation request.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	CategoryID  string   `json:"category_id" validate:"required"`
	Images      []string `json:"images"`
}

// UpdateProductRequest represents a partial product update with an image diff.
// images_to_add is accepted as an alias of images.
type UpdateProductRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price"`
	CategoryID     *string  `json:"category_id"`
	Images         []string `json:"images"`
	ImagesToAdd    []string `json:"images_to_add"`
	ImagesToRemove []string `json:"images_to_remove"`
}

// List godoc
// @Summary List products
// @Description Newest first, each with its category and ordered image urls.
// @Tags products
// @Produce json
// @Success 200 {object} Envelope{data=[]model.ProductAggregate}
// @Failure 500 {object} Envelope
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalogService.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", products)
}

// Get godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} Envelope{data=model.ProductAggregate}
// @Failure 404 {object} Envelope
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, service.ErrProductNotFound)
	if err != nil {
		return err
	}
	product, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", product)
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product"
// @Success 201 {object} Envelope{data=model.ProductAggregate}
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return errInvalidCategoryID
	}

	product, err := h.catalogService.CreateProduct(c.Request().Context(), service.NewProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       toDecimal(req.Price),
		CategoryID:  categoryID,
		Images:      req.Images,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "product created", product)
}

// Update godoc
// @Summary Update a product
// @Description Scalar fields are patched, images_to_remove are deleted by url, then images are appended.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body UpdateProductRequest true "Fields to change"
// @Success 200 {object} Envelope{data=model.ProductAggregate}
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, service.ErrProductNotFound)
	if err != nil {
		return err
	}
	var req UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       toDecimal(req.Price),
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return errInvalidCategoryID
		}
		patch.CategoryID = &categoryID
	}

	diff := service.ImageDiff{
		Add:    append(append([]string{}, req.Images...), req.ImagesToAdd...),
		Remove: req.ImagesToRemove,
	}

	product, err := h.catalogService.UpdateProduct(c.Request().Context(), id, patch, diff)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "product updated", product)
}

// Delete godoc
// @Summary Delete a product and its images
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, service.ErrProductNotFound)
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "product deleted", nil)
}

func toDecimal(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
