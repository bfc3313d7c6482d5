package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// AlertHandler exposes the stock alert lifecycle
type AlertHandler struct {
	alerts *service.AlertService
}

func NewAlertHandler(alerts *service.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListAlerts returns every alert, newest first
func (h *AlertHandler) ListAlerts(c echo.Context) error {
	log := logger.FromEcho(c)

	alerts, err := h.alerts.AllAlerts()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, alerts)
}

// ActiveAlerts returns ACTIVE alerts, dropping orphans as it goes
func (h *AlertHandler) ActiveAlerts(c echo.Context) error {
	log := logger.FromEcho(c)

	alerts, err := h.alerts.ActiveAlerts()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, alerts)
}

// RecentAlerts returns the ten newest alerts
func (h *AlertHandler) RecentAlerts(c echo.Context) error {
	log := logger.FromEcho(c)

	alerts, err := h.alerts.RecentAlerts()
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, alerts)
}

// AlertsByType filters alerts by LOW_STOCK or OUT_OF_STOCK
func (h *AlertHandler) AlertsByType(c echo.Context) error {
	log := logger.FromEcho(c)

	alerts, err := h.alerts.AlertsByType(c.Param("type"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, alerts)
}

// ResolveAlert marks one alert RESOLVED
func (h *AlertHandler) ResolveAlert(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	alert, err := h.alerts.Resolve(id)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.AlertsResolvedCounter.Inc()
	log.Info("Alert resolved", zap.Uint("alert_id", id))
	return c.JSON(http.StatusOK, alert)
}

// DeleteAlert removes one alert
func (h *AlertHandler) DeleteAlert(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.alerts.Delete(id); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Alert deleted", zap.Uint("alert_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Alert deleted successfully"})
}

// ResolveAllAlerts marks every ACTIVE alert RESOLVED
func (h *AlertHandler) ResolveAllAlerts(c echo.Context) error {
	log := logger.FromEcho(c)

	count, err := h.alerts.ResolveAll()
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("All active alerts resolved", zap.Int64("count", count))
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "All active alerts marked as resolved",
		"resolved": count,
	})
}

// CleanupOrphanedAlerts deletes alerts whose product no longer exists
func (h *AlertHandler) CleanupOrphanedAlerts(c echo.Context) error {
	log := logger.FromEcho(c)

	count, err := h.alerts.CleanupOrphans()
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Orphaned alerts cleaned up", zap.Int("count", count))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Orphaned alerts cleaned up",
		"deleted": count,
	})
}
