package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/service"
)

// respondError maps service errors onto HTTP statuses and renders the
// teacher-style error envelope
func respondError(c echo.Context, log *zap.Logger, err error) error {
	var (
		validationErr   *service.ValidationError
		notFoundErr     *service.NotFoundError
		conflictErr     *service.ConflictError
		stockErr        *service.InsufficientStockError
		rateLimitErr    *service.RateLimitError
		expiredErr      *service.ExpiredError
		attemptsErr     *service.AttemptsExceededError
		invalidOTPErr   *service.InvalidOTPError
		emailErr        *service.EmailDeliveryError
		forbiddenErr    *service.ForbiddenError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		return c.JSON(http.StatusConflict, echo.Map{"error": conflictErr.Error()})
	case errors.As(err, &stockErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": stockErr.Error()})
	case errors.As(err, &rateLimitErr):
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": rateLimitErr.Error()})
	case errors.As(err, &expiredErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": expiredErr.Error()})
	case errors.As(err, &attemptsErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": attemptsErr.Error()})
	case errors.As(err, &invalidOTPErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": invalidOTPErr.Error()})
	case errors.As(err, &emailErr):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to send email, please try again later"})
	case errors.As(err, &forbiddenErr):
		return c.JSON(http.StatusForbidden, echo.Map{"error": forbiddenErr.Error()})
	default:
		log.Error("Unhandled service error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// parseUintParam reads a numeric path parameter
func parseUintParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, &service.ValidationError{Msg: "invalid " + name + " parameter"}
	}
	return uint(id), nil
}
