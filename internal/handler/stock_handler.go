package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// StockHandler exposes the stock movement ledger
type StockHandler struct {
	stock   *service.StockService
	exports *service.ExportService
}

func NewStockHandler(stock *service.StockService, exports *service.ExportService) *StockHandler {
	return &StockHandler{stock: stock, exports: exports}
}

// CreateTransaction records one stock movement
func (h *StockHandler) CreateTransaction(c echo.Context) error {
	log := logger.FromEcho(c)

	var req service.StockTransactionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	txn, err := h.stock.Create(&req, middleware.UsernameFromContext(c))
	if err != nil {
		log.Warn("Stock transaction failed",
			zap.String("type", req.Type),
			zap.Int("quantity", req.Quantity),
			zap.Error(err))
		return respondError(c, log, err)
	}

	prometheus.RecordStockOperation(string(txn.Type), string(txn.EntityType))
	log.Info("Stock transaction created",
		zap.Uint("transaction_id", txn.ID),
		zap.String("type", string(txn.Type)),
		zap.Int("quantity", txn.Quantity))
	return c.JSON(http.StatusCreated, txn)
}

// ListTransactions returns the full ledger, newest first
func (h *StockHandler) ListTransactions(c echo.Context) error {
	log := logger.FromEcho(c)

	transactions, err := h.stock.AllTransactions()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, transactions)
}

// TransactionsByType filters the ledger by movement type
func (h *StockHandler) TransactionsByType(c echo.Context) error {
	log := logger.FromEcho(c)

	transactions, err := h.stock.TransactionsByType(c.Param("type"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, transactions)
}

// TransactionsByProduct lists the ledger entries for one flat product
func (h *StockHandler) TransactionsByProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "productId")
	if err != nil {
		return respondError(c, log, err)
	}

	transactions, err := h.stock.TransactionsByProduct(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, transactions)
}

// RecentTransactions returns the ten newest ledger entries
func (h *StockHandler) RecentTransactions(c echo.Context) error {
	log := logger.FromEcho(c)

	transactions, err := h.stock.RecentTransactions()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, transactions)
}

// ExportTransactions streams the ledger as a CSV download. An optional
// startDate/endDate pair (YYYY-MM-DD) narrows the range.
func (h *StockHandler) ExportTransactions(c echo.Context) error {
	log := logger.FromEcho(c)

	csv, err := h.exports.TransactionsCSV(c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		return respondError(c, log, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="stock_transactions.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}
