package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/model"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
)

// AdminHandler exposes user administration, dashboard stats and the catalog
// CSV exports
type AdminHandler struct {
	admin   *service.AdminService
	exports *service.ExportService
}

func NewAdminHandler(admin *service.AdminService, exports *service.ExportService) *AdminHandler {
	return &AdminHandler{admin: admin, exports: exports}
}

// PendingUsers lists accounts waiting for approval
func (h *AdminHandler) PendingUsers(c echo.Context) error {
	log := logger.FromEcho(c)

	users, err := h.admin.PendingUsers()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// AllUsers lists every account
func (h *AdminHandler) AllUsers(c echo.Context) error {
	log := logger.FromEcho(c)

	users, err := h.admin.AllUsers()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUserStatusRequest carries the new approval state
type UpdateUserStatusRequest struct {
	Status string `json:"status"`
}

// UpdateUserStatus approves or rejects one account
func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "userId")
	if err != nil {
		return respondError(c, log, err)
	}

	var req UpdateUserStatusRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	user, err := h.admin.UpdateUserStatus(id, model.UserStatus(strings.ToUpper(req.Status)))
	if err != nil {
		log.Warn("User status update failed", zap.Uint("user_id", id), zap.Error(err))
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes one account
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "userId")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.admin.DeleteUser(id); err != nil {
		log.Warn("User deletion failed", zap.Uint("user_id", id), zap.Error(err))
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

// DashboardStats returns the admin overview
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	log := logger.FromEcho(c)

	stats, err := h.admin.Dashboard()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ExportProducts streams the flat catalog as a CSV download
func (h *AdminHandler) ExportProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	csv, err := h.exports.ProductsCSV()
	if err != nil {
		return respondError(c, log, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}

// ExportFashionProducts streams the fashion catalog as a CSV download
func (h *AdminHandler) ExportFashionProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	csv, err := h.exports.FashionProductsCSV()
	if err != nil {
		return respondError(c, log, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="fashion_products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}
