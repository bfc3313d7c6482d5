package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"inventory-service/internal/model"
	"inventory-service/pkg/config"
)

func testOTPConfig() config.OTPConfig {
	return config.OTPConfig{ExpiryMinutes: 10, MaxAttempts: 3, MaxDaily: 5}
}

func TestIssueVerifyResetFlow(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleStaff)
	mail := &stubMailer{}
	svc := NewPasswordResetService(db, mail, testOTPConfig())

	require.NoError(t, svc.Issue(&ForgotPasswordRequest{Email: user.Email}))
	require.Len(t, mail.otps, 1)
	code := mail.otps[0]
	assert.Len(t, code, 6)

	require.NoError(t, svc.Verify(&VerifyOtpRequest{Email: user.Email, OTP: code}))

	require.NoError(t, svc.Reset(&ResetPasswordRequest{
		Email: user.Email, OTP: code,
		NewPassword: "fresh-password", ConfirmPassword: "fresh-password",
	}))

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte("fresh-password")))

	// The code is consumed
	err := svc.Reset(&ResetPasswordRequest{
		Email: user.Email, OTP: code,
		NewPassword: "another", ConfirmPassword: "another",
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestIssueUnknownEmailSilentlySucceeds(t *testing.T) {
	db := setupTestDB(t)
	mail := &stubMailer{}
	svc := NewPasswordResetService(db, mail, testOTPConfig())

	require.NoError(t, svc.Issue(&ForgotPasswordRequest{Email: "nobody@example.com"}))
	assert.Empty(t, mail.otps)
}

func TestIssueRateLimited(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleStaff)
	mail := &stubMailer{}
	svc := NewPasswordResetService(db, mail, testOTPConfig())

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Issue(&ForgotPasswordRequest{Email: user.Email}))
	}

	err := svc.Issue(&ForgotPasswordRequest{Email: user.Email})
	var rateLimit *RateLimitError
	require.ErrorAs(t, err, &rateLimit)
	assert.Len(t, mail.otps, 5)
}

func TestIssueSupersedesPriorCodes(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleStaff)
	mail := &stubMailer{}
	svc := NewPasswordResetService(db, mail, testOTPConfig())

	require.NoError(t, svc.Issue(&ForgotPasswordRequest{Email: user.Email}))
	require.NoError(t, svc.Issue(&ForgotPasswordRequest{Email: user.Email}))

	var unused int64
	require.NoError(t, db.Model(&model.PasswordResetOtp{}).
		Where("email = ? AND used = ?", user.Email, false).Count(&unused).Error)
	assert.Equal(t, int64(1), unused)
}

func TestIssueSendFailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleStaff)
	mail := &stubMailer{failSend: true, err: errors.New("smtp down")}
	svc := NewPasswordResetService(db, mail, testOTPConfig())

	err := svc.Issue(&ForgotPasswordRequest{Email: user.Email})
	var delivery *EmailDeliveryError
	require.ErrorAs(t, err, &delivery)

	var count int64
	require.NoError(t, db.Model(&model.PasswordResetOtp{}).Count(&count).Error)
	assert.Zero(t, count, "a code the user never received must not persist")
}

func TestVerifyAttemptsExhausted(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleStaff)
	mail := &stubMailer{}
	svc := NewPasswordResetService(db, mail, testOTPConfig())

	require.NoError(t, svc.Issue(&ForgotPasswordRequest{Email: user.Email}))
	code := mail.otps[0]
	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}

	for i := 1; i <= 3; i++ {
		err := svc.Verify(&VerifyOtpRequest{Email: user.Email, OTP: wrong})
		var invalid *InvalidOTPError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 3-i, invalid.RemainingAttempts)
	}

	// Even the right code is dead now
	err := svc.Verify(&VerifyOtpRequest{Email: user.Email, OTP: code})
	var exhausted *AttemptsExceededError
	require.ErrorAs(t, err, &exhausted)

	err = svc.Reset(&ResetPasswordRequest{
		Email: user.Email, OTP: code,
		NewPassword: "pw", ConfirmPassword: "pw",
	})
	require.ErrorAs(t, err, &exhausted)
}

func TestVerifyExpiredCode(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleStaff)
	mail := &stubMailer{}
	svc := NewPasswordResetService(db, mail, testOTPConfig())

	require.NoError(t, svc.Issue(&ForgotPasswordRequest{Email: user.Email}))
	require.NoError(t, db.Model(&model.PasswordResetOtp{}).
		Where("email = ?", user.Email).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	err := svc.Verify(&VerifyOtpRequest{Email: user.Email, OTP: mail.otps[0]})
	var expired *ExpiredError
	require.ErrorAs(t, err, &expired)
}

func TestResetPasswordMismatch(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleStaff)
	svc := NewPasswordResetService(db, &stubMailer{}, testOTPConfig())

	err := svc.Reset(&ResetPasswordRequest{
		Email: user.Email, OTP: "123456",
		NewPassword: "one", ConfirmPassword: "two",
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestGenerateOTPRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		var n int
		_, err = fmt.Sscanf(code, "%d", &n)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
