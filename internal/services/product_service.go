package services

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/query"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    *slog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ListProducts returns the products matching filter.
func (s *ProductService) ListProducts(ctx context.Context, filter query.ProductFilter) ([]models.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return products, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}
	return product, nil
}

// CreateProduct validates req and inserts the product.
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	req.normalize()
	if err := check(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        *req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    *req.Category,
		Subcategory: *req.Subcategory,
		Fabric:      *req.Fabric,
		Sizes:       *req.Sizes,
		Colors:      *req.Colors,
		Images:      *req.Images,
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperror.Internal(err)
	}
	publish(s.publisher, s.logger, EventProductCreated, product)
	return product, nil
}

// UpdateProduct applies the supplied fields of req to an existing product.
// updatedAt is always refreshed.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}

	if req.empty() {
		return nil, apperror.Validation(apperror.CodeNoUpdates, "No valid fields to update")
	}
	req.normalize()
	if err := check(req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = blankToNil(req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Subcategory != nil {
		product.Subcategory = *req.Subcategory
	}
	if req.Fabric != nil {
		product.Fabric = *req.Fabric
	}
	if req.Sizes != nil {
		product.Sizes = *req.Sizes
	}
	if req.Colors != nil {
		product.Colors = *req.Colors
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, productLookupError(err)
	}
	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}
	publish(s.publisher, s.logger, EventProductUpdated, updated)
	return updated, nil
}

// DeleteProduct removes a product and its reviews, returning the removed
// product.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}
	publish(s.publisher, s.logger, EventProductDeleted, product)
	return product, nil
}

func productLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NotFound("Product not found")
	}
	return apperror.Internal(err)
}
