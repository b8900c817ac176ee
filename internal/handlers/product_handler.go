package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/query"
	"storefront/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes. guard, when non-nil, is
// applied to the write routes only.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	writes := []fiber.Handler{}
	if guard != nil {
		writes = append(writes, guard)
	}
	router.Get("/products", h.HandleGetProducts)
	router.Post("/products", append(writes, h.HandleCreateProduct)...)
	router.Put("/products", append(writes, h.HandleUpdateProduct)...)
	router.Delete("/products", append(writes, h.HandleDeleteProduct)...)
}

// HandleGetProducts returns one product when ?id= is present, otherwise the
// filtered listing.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	if c.Query("id") != "" {
		id, err := requiredID(c)
		if err != nil {
			return respondError(c, h.logger, err)
		}
		product, err := h.service.GetProduct(c.UserContext(), id)
		if err != nil {
			return respondError(c, h.logger, err)
		}
		return c.JSON(product)
	}

	filter, err := query.ParseProductFilter(queryParams(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	products, err := h.service.ListProducts(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(products)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req services.CreateProductRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := requiredID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req services.UpdateProductRequest
	if err := decodeBody(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product together with its reviews.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := requiredID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	product, err := h.service.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
		"product": product,
	})
}
