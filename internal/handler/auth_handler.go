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

// AuthHandler exposes registration, login and the password reset flow
type AuthHandler struct {
	auth   *service.AuthService
	resets *service.PasswordResetService
}

func NewAuthHandler(auth *service.AuthService, resets *service.PasswordResetService) *AuthHandler {
	return &AuthHandler{auth: auth, resets: resets}
}

// Register handles account creation
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req service.RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	message, err := h.auth.Register(&req)
	if err != nil {
		log.Warn("Registration failed",
			zap.String("username", req.Username),
			zap.Error(err))
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": message})
}

// Login authenticates by email and returns a JWT
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	result, err := h.auth.Login(&req)
	if err != nil {
		prometheus.AuthErrorsCounter.Inc()
		log.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		return respondError(c, log, err)
	}

	prometheus.AuthSuccessCounter.Inc()
	return c.JSON(http.StatusOK, result)
}

// Me returns the authenticated account
func (h *AuthHandler) Me(c echo.Context) error {
	log := logger.FromEcho(c)

	username := middleware.UsernameFromContext(c)
	user, err := h.auth.CurrentUser(username)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ForgotPassword issues a reset code to the given email
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	log := logger.FromEcho(c)

	var req service.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := h.resets.Issue(&req); err != nil {
		log.Warn("Password reset issue failed", zap.Error(err))
		return respondError(c, log, err)
	}

	prometheus.OtpIssuedCounter.Inc()
	return c.JSON(http.StatusOK, echo.Map{
		"message": "If the email exists, an OTP has been sent",
	})
}

// VerifyOtp checks a code without consuming it
func (h *AuthHandler) VerifyOtp(c echo.Context) error {
	log := logger.FromEcho(c)

	var req service.VerifyOtpRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := h.resets.Verify(&req); err != nil {
		prometheus.OtpFailedCounter.WithLabelValues("verify").Inc()
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "OTP verified successfully"})
}

// ResetPassword consumes the code and changes the account password
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	log := logger.FromEcho(c)

	var req service.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := h.resets.Reset(&req); err != nil {
		prometheus.OtpFailedCounter.WithLabelValues("reset").Inc()
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password reset successfully"})
}
