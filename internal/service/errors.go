package service

import "fmt"

// ValidationError reports malformed, missing or ambiguous input
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports an unknown id, sku or email
type NotFoundError struct {
	Resource string
	Key      any
}

func (e *NotFoundError) Error() string {
	if e.Key == nil {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %v", e.Resource, e.Key)
}

// ConflictError reports a duplicate name or SKU on create
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// InsufficientStockError reports a STOCK_OUT exceeding the available quantity
type InsufficientStockError struct {
	Available int
	Detail    string
}

func (e *InsufficientStockError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("insufficient stock. Available: %d for %s", e.Available, e.Detail)
	}
	return fmt.Sprintf("insufficient stock. Available: %d", e.Available)
}

// RateLimitError reports the OTP issuance cap being hit
type RateLimitError struct {
	Msg string
}

func (e *RateLimitError) Error() string { return e.Msg }

// ExpiredError reports an OTP past its expiry
type ExpiredError struct {
	Msg string
}

func (e *ExpiredError) Error() string { return e.Msg }

// AttemptsExceededError reports an OTP whose attempt budget is exhausted
type AttemptsExceededError struct {
	Msg string
}

func (e *AttemptsExceededError) Error() string { return e.Msg }

// InvalidOTPError reports a code mismatch with the remaining attempt count
type InvalidOTPError struct {
	RemainingAttempts int
}

func (e *InvalidOTPError) Error() string {
	if e.RemainingAttempts > 0 {
		return fmt.Sprintf("invalid OTP. You have %d attempts remaining", e.RemainingAttempts)
	}
	return "invalid OTP. Maximum attempts exceeded. Please request a new OTP"
}

// EmailDeliveryError reports an issuance-time send failure with no fallback
type EmailDeliveryError struct {
	Err error
}

func (e *EmailDeliveryError) Error() string {
	return fmt.Sprintf("failed to send email: %v", e.Err)
}

func (e *EmailDeliveryError) Unwrap() error { return e.Err }

// ForbiddenError reports an operation the caller's role does not permit
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }
