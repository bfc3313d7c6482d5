package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
)

// FashionHandler exposes the variant-based fashion catalog
type FashionHandler struct {
	fashion *service.FashionService
	stock   *service.StockService
}

func NewFashionHandler(fashion *service.FashionService, stock *service.StockService) *FashionHandler {
	return &FashionHandler{fashion: fashion, stock: stock}
}

// ListFashionProducts handles retrieving all fashion products with variants
func (h *FashionHandler) ListFashionProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.fashion.All()
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Fashion products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetFashionProduct handles retrieving one fashion product by ID
func (h *FashionHandler) GetFashionProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	product, err := h.fashion.ByID(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, product)
}

// GetFashionProductBySKU handles retrieving one fashion product by SKU
func (h *FashionHandler) GetFashionProductBySKU(c echo.Context) error {
	log := logger.FromEcho(c)

	product, err := h.fashion.BySKU(c.Param("sku"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, product)
}

// CreateFashionProduct handles creating a fashion product with its variants
func (h *FashionHandler) CreateFashionProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	var req service.FashionProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.fashion.Create(&req)
	if err != nil {
		log.Warn("Fashion product creation failed",
			zap.String("name", req.Name),
			zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Fashion product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("sku", product.SKU),
		zap.Int("variants", len(product.Variants)))
	return c.JSON(http.StatusCreated, product)
}

// UpdateFashionProduct handles updating a fashion product's own fields
func (h *FashionHandler) UpdateFashionProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.FashionProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.fashion.Update(id, &req)
	if err != nil {
		log.Warn("Fashion product update failed", zap.Uint("product_id", id), zap.Error(err))
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteFashionProduct handles deleting a fashion product and its variants
func (h *FashionHandler) DeleteFashionProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.fashion.Delete(id); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Fashion product deleted successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Fashion product deleted successfully"})
}

// FashionProductsByCategory lists fashion products in one category
func (h *FashionHandler) FashionProductsByCategory(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.fashion.ByCategory(c.Param("category"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// FashionProductsByBrand lists fashion products of one brand
func (h *FashionHandler) FashionProductsByBrand(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.fashion.ByBrand(c.Param("brand"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// FashionProductsBySeason lists fashion products of one season
func (h *FashionHandler) FashionProductsBySeason(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.fashion.BySeason(c.Param("season"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// CurrentSeasonProducts lists products for the calendar season plus all-season
func (h *FashionHandler) CurrentSeasonProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.fashion.CurrentSeason()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// FashionProductsByGender lists fashion products for one target gender
func (h *FashionHandler) FashionProductsByGender(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.fashion.ByGender(c.Param("gender"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// SearchFashionProducts searches by name, brand or description
func (h *FashionHandler) SearchFashionProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.fashion.Search(c.QueryParam("q"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// FashionProductsByPriceRange lists products whose base price falls in a range
func (h *FashionHandler) FashionProductsByPriceRange(c echo.Context) error {
	log := logger.FromEcho(c)

	min, errMin := strconv.ParseFloat(c.QueryParam("minPrice"), 64)
	max, errMax := strconv.ParseFloat(c.QueryParam("maxPrice"), 64)
	if errMin != nil || errMax != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "minPrice and maxPrice must be numbers"})
	}

	products, err := h.fashion.ByPriceRange(min, max)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// LowStockFashionProducts lists products whose total stock is at or below the
// total minimum level
func (h *FashionHandler) LowStockFashionProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.fashion.LowStock()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// OutOfStockFashionProducts lists products with zero total stock
func (h *FashionHandler) OutOfStockFashionProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.fashion.OutOfStock()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// TrendingFashionProducts lists the newest products
func (h *FashionHandler) TrendingFashionProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.fashion.Trending()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// AvailableSizes lists in-stock sizes, optionally narrowed to one color
func (h *FashionHandler) AvailableSizes(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	sizes, err := h.fashion.AvailableSizes(id, c.QueryParam("color"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, sizes)
}

// AvailableColors lists in-stock colors, optionally narrowed to one size
func (h *FashionHandler) AvailableColors(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	colors, err := h.fashion.AvailableColors(id, c.QueryParam("size"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, colors)
}

// VariantStockRequest moves stock on one variant
type VariantStockRequest struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// UpdateVariantStock records a stock movement against one variant
func (h *FashionHandler) UpdateVariantStock(c echo.Context) error {
	log := logger.FromEcho(c)

	productID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}
	variantID, err := parseUintParam(c, "variantId")
	if err != nil {
		return respondError(c, log, err)
	}

	var req VariantStockRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	txn, err := h.stock.Create(&service.StockTransactionRequest{
		FashionProductID: &productID,
		VariantID:        &variantID,
		Type:             req.Type,
		Quantity:         req.Quantity,
		Reason:           req.Reason,
	}, middleware.UsernameFromContext(c))
	if err != nil {
		log.Warn("Variant stock update failed",
			zap.Uint("product_id", productID),
			zap.Uint("variant_id", variantID),
			zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Variant stock updated",
		zap.Uint("product_id", productID),
		zap.Uint("variant_id", variantID),
		zap.String("type", req.Type),
		zap.Int("quantity", req.Quantity))
	return c.JSON(http.StatusOK, txn)
}

// FashionProductTransactions lists the ledger entries for one fashion product
func (h *FashionHandler) FashionProductTransactions(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	transactions, err := h.stock.TransactionsByFashionProduct(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, transactions)
}
