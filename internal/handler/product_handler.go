package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// ProductHandler exposes the flat product catalog
type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// ListProducts handles retrieving all products
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.products.All()
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func (h *ProductHandler) GetProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	product, err := h.products.ByID(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	var req service.ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.products.Create(&req, middleware.UsernameFromContext(c))
	if err != nil {
		log.Warn("Product creation failed",
			zap.String("name", req.Name),
			zap.Error(err))
		return respondError(c, log, err)
	}

	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10),
		product.Name, product.Category, float64(product.Quantity))
	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.products.Update(id, &req, middleware.UsernameFromContext(c))
	if err != nil {
		log.Warn("Product update failed", zap.Uint("product_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10),
		product.Name, product.Category, float64(product.Quantity))
	log.Info("Product updated successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.products.Delete(id); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// LowStockProducts lists products at or below their minimum stock level
func (h *ProductHandler) LowStockProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.products.LowStock()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// OutOfStockProducts lists products with zero quantity
func (h *ProductHandler) OutOfStockProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.products.OutOfStock()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// ProductsByCategory lists products in one category
func (h *ProductHandler) ProductsByCategory(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.products.ByCategory(c.Param("category"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}
