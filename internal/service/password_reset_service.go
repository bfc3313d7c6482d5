package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-service/internal/mailer"
	"inventory-service/internal/model"
	"inventory-service/pkg/config"
	"inventory-service/pkg/logger"
)

// ForgotPasswordRequest starts the reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOtpRequest checks a code without consuming it
type VerifyOtpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest consumes the code and changes the password
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// PasswordResetService issues, verifies and consumes one-time reset codes
type PasswordResetService struct {
	db     *gorm.DB
	mailer mailer.Mailer
	cfg    config.OTPConfig
	hashes PasswordHasher
}

func NewPasswordResetService(db *gorm.DB, m mailer.Mailer, cfg config.OTPConfig) *PasswordResetService {
	return &PasswordResetService{
		db:     db,
		mailer: m,
		cfg:    cfg,
		hashes: BcryptHasher{},
	}
}

// Issue generates a new OTP for the email and dispatches it. An unknown email
// is reported as success to avoid account enumeration. A rolling 24-hour cap
// limits how many codes one email can request. A send failure rolls the whole
// issue back.
func (s *PasswordResetService) Issue(req *ForgotPasswordRequest) error {
	email := normalizeEmail(req.Email)
	if email == "" {
		return &ValidationError{Msg: "email is required"}
	}

	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the email exists
			logger.GetLogger().Info("OTP requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	dayStart := time.Now().Add(-24 * time.Hour)
	var recent int64
	if err := s.db.Model(&model.PasswordResetOtp{}).
		Where("email = ? AND created_at > ?", email, dayStart).
		Count(&recent).Error; err != nil {
		return fmt.Errorf("failed to count recent OTPs: %w", err)
	}
	if recent >= int64(s.cfg.MaxDaily) {
		return &RateLimitError{Msg: "too many OTP requests. Please try again after 24 hours"}
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp := model.PasswordResetOtp{
		Email:     email,
		OTP:       code,
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.ExpiryMinutes) * time.Minute),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Purge rows that can never be used again
		if err := tx.Where("expires_at < ?", time.Now()).
			Delete(&model.PasswordResetOtp{}).Error; err != nil {
			return fmt.Errorf("failed to purge expired OTPs: %w", err)
		}

		// A new code supersedes every outstanding one for this email
		if err := tx.Model(&model.PasswordResetOtp{}).
			Where("email = ? AND used = ?", email, false).
			Update("used", true).Error; err != nil {
			return fmt.Errorf("failed to invalidate prior OTPs: %w", err)
		}

		if err := tx.Create(&otp).Error; err != nil {
			return fmt.Errorf("failed to store OTP: %w", err)
		}

		if err := s.mailer.SendOTPEmail(email, code, user.Username); err != nil {
			// Roll back the issue entirely rather than leaving a code the
			// user never received
			return &EmailDeliveryError{Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.GetLogger().Info("Password reset OTP issued",
		zap.String("email", email),
		zap.Time("expires_at", otp.ExpiresAt))
	return nil
}

// Verify checks the code against the latest unused OTP for the email. The
// attempt counter is persisted even on mismatch; the code is not consumed on
// success.
func (s *PasswordResetService) Verify(req *VerifyOtpRequest) error {
	email := normalizeEmail(req.Email)
	code := strings.TrimSpace(req.OTP)

	var otp model.PasswordResetOtp
	err := s.db.Where("email = ? AND used = ?", email, false).
		Order("created_at DESC").First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "valid OTP", Key: nil}
		}
		return fmt.Errorf("failed to load OTP: %w", err)
	}

	if otp.IsExpired() {
		return &ExpiredError{Msg: "OTP has expired. Please request a new OTP"}
	}
	if otp.Attempts >= s.cfg.MaxAttempts {
		return &AttemptsExceededError{Msg: "maximum OTP attempts exceeded. Please request a new OTP"}
	}

	otp.Attempts++
	if err := s.db.Save(&otp).Error; err != nil {
		return fmt.Errorf("failed to record OTP attempt: %w", err)
	}

	if otp.OTP != code {
		return &InvalidOTPError{RemainingAttempts: s.cfg.MaxAttempts - otp.Attempts}
	}
	return nil
}

// Reset re-validates the code by exact email+code lookup, changes the
// password hash and consumes the OTP. The confirmation email is best-effort.
func (s *PasswordResetService) Reset(req *ResetPasswordRequest) error {
	email := normalizeEmail(req.Email)
	code := strings.TrimSpace(req.OTP)

	if req.NewPassword == "" {
		return &ValidationError{Msg: "new password is required"}
	}
	if req.NewPassword != req.ConfirmPassword {
		return &ValidationError{Msg: "passwords do not match"}
	}

	var otp model.PasswordResetOtp
	err := s.db.Where("email = ? AND otp = ? AND used = ?", email, code, false).
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "valid OTP", Key: nil}
		}
		return fmt.Errorf("failed to load OTP: %w", err)
	}
	if !otp.IsUsable(s.cfg.MaxAttempts) {
		if otp.IsExpired() {
			return &ExpiredError{Msg: "OTP has expired. Please request a new OTP"}
		}
		return &AttemptsExceededError{Msg: "maximum OTP attempts exceeded. Please request a new OTP"}
	}

	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "user", Key: email}
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	hash, err := s.hashes.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password", hash).Error; err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if err := tx.Model(&otp).Update("used", true).Error; err != nil {
			return fmt.Errorf("failed to consume OTP: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// The password change already succeeded; a failed confirmation email
	// must not undo it
	if err := s.mailer.SendPasswordResetConfirmation(email, user.Username); err != nil {
		logger.GetLogger().Warn("Failed to send reset confirmation email",
			zap.String("email", email), zap.Error(err))
	}

	logger.GetLogger().Info("Password reset completed", zap.String("email", email))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
